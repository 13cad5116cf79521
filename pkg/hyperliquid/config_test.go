package hyperliquid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromReader(t *testing.T) {
	t.Setenv("HL_TEST_KEY", testPrivateKey)

	yaml := `
base_url: https://api.hyperliquid-testnet.xyz
private_key: ${HL_TEST_KEY}
testnet: true
default_slippage: "0.01"
timeout: 10s
retry:
  max_retries: 5
  initial_backoff: 100ms
  max_backoff: 2s
  multiplier: 1.5
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	assert.Equal(t, testPrivateKey, cfg.PrivateKey, "env vars expand into fields")
	assert.True(t, cfg.Testnet)
	assert.Equal(t, "0.01", cfg.DefaultSlippage)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	require.NotNil(t, cfg.Retry)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
}

func TestLoadConfigFromReader_MissingKey(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("testnet: true"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private_key")
}

func TestLoadConfigFromReader_BadTimeout(t *testing.T) {
	yaml := "private_key: " + testPrivateKey + "\ntimeout: soon"
	_, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoadConfigFromReader_BadSlippage(t *testing.T) {
	yaml := "private_key: " + testPrivateKey + "\ndefault_slippage: loose"
	_, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_slippage")
}

func TestRetryConfig_Defaults(t *testing.T) {
	policy, err := (&RetryConfig{}).retryPolicy()
	require.NoError(t, err)
	assert.Equal(t, DefaultRetryPolicy(), policy)

	policy, err = (&RetryConfig{MaxRetries: 7, Multiplier: 3}).retryPolicy()
	require.NoError(t, err)
	assert.Equal(t, 7, policy.MaxRetries)
	assert.Equal(t, 3.0, policy.Multiplier)

	_, err = (&RetryConfig{InitialBackoffRaw: "later"}).retryPolicy()
	assert.Error(t, err)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("private_key: " + testPrivateKey + "\ntestnet: true"))
	require.NoError(t, err)

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", client.Address())
	assert.Equal(t, TestnetBaseURL, client.baseURL)
	assert.Nil(t, client.transport.retry)

	_, err = NewClientFromConfig(nil)
	assert.Error(t, err)
}

func TestNewClientFromConfig_AppliesOptions(t *testing.T) {
	cfg := &Config{
		PrivateKey:   testPrivateKey,
		VaultAddress: testVault,
		Retry:        &RetryConfig{MaxRetries: 2},
		Timeout:      5 * time.Second,
	}
	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "0x1d5e3ce24b4cba00da1d9eef11e195cf7aab1b35", client.vault)
	require.NotNil(t, client.transport.retry)
	assert.Equal(t, 2, client.transport.retry.MaxRetries)
	assert.Equal(t, 5*time.Second, client.transport.httpClient.Timeout)
}
