package hyperliquid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextNonce_StrictlyIncreasing(t *testing.T) {
	// frozen clock forces the monotonic bump
	frozen := time.UnixMilli(1700000000000)
	client, err := NewClient(testPrivateKey, true, WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)

	prev := client.nextNonce()
	for i := 0; i < 100; i++ {
		next := client.nextNonce()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNextNonce_FollowsClock(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	client, err := NewClient(testPrivateKey, true, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000000), client.nextNonce())
	now = now.Add(5 * time.Second)
	assert.Equal(t, int64(1700000005000), client.nextNonce())
}

func TestEffectiveVault(t *testing.T) {
	client, err := NewClient(testPrivateKey, true, WithVaultAddress(testVault))
	require.NoError(t, err)

	assert.Equal(t, "0x1d5e3ce24b4cba00da1d9eef11e195cf7aab1b35", client.effectiveVault("order"))
	assert.Empty(t, client.effectiveVault("usdClassTransfer"))
	assert.Empty(t, client.effectiveVault("sendAsset"))

	// vault equal to the signer collapses to none
	self, err := NewClient(testPrivateKey, true, WithVaultAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	require.NoError(t, err)
	assert.Empty(t, self.effectiveVault("order"))

	bare, err := NewClient(testPrivateKey, true)
	require.NoError(t, err)
	assert.Empty(t, bare.effectiveVault("order"))
}

func TestResolveExpiry(t *testing.T) {
	client, err := NewClient(testPrivateKey, true)
	require.NoError(t, err)
	nonce := int64(1700000000000)

	got := client.resolveExpiry(nonce, nil)
	require.NotNil(t, got)
	assert.Equal(t, nonce+120_000, *got)

	got = client.resolveExpiry(nonce, int64Ptr(30_000))
	assert.Equal(t, nonce+30_000, *got)

	// values at or above 1e12 are absolute timestamps
	absolute := int64(1_800_000_000_000)
	got = client.resolveExpiry(nonce, &absolute)
	assert.Equal(t, absolute, *got)
}

func TestWithExpiresAfter_ClientDefault(t *testing.T) {
	client, err := NewClient(testPrivateKey, true, WithExpiresAfter(45_000))
	require.NoError(t, err)
	nonce := int64(1700000000000)

	got := client.resolveExpiry(nonce, nil)
	assert.Equal(t, nonce+45_000, *got)

	// per-call override beats the client default
	got = client.resolveExpiry(nonce, int64Ptr(10_000))
	assert.Equal(t, nonce+10_000, *got)
}

func TestInfoAddress_AgentWallet(t *testing.T) {
	wallet, err := NewAgentWallet(testPrivateKey, testVault)
	require.NoError(t, err)
	client, err := NewClientFromWallet(wallet, true)
	require.NoError(t, err)

	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", client.Address())
	assert.Equal(t, "0x1d5e3ce24b4cba00da1d9eef11e195cf7aab1b35", client.infoAddress(),
		"info reads target the primary account, not the agent key")
}

func TestWithMainAddress(t *testing.T) {
	client, err := NewClient(testPrivateKey, true, WithMainAddress(testVault))
	require.NoError(t, err)
	assert.Equal(t, "0x1d5e3ce24b4cba00da1d9eef11e195cf7aab1b35", client.infoAddress())
}

func TestNewClient_BaseURLs(t *testing.T) {
	mainnet, err := NewClient(testPrivateKey, false)
	require.NoError(t, err)
	assert.Equal(t, MainnetBaseURL, mainnet.baseURL)

	testnet, err := NewClient(testPrivateKey, true)
	require.NoError(t, err)
	assert.Equal(t, TestnetBaseURL, testnet.baseURL)

	custom, err := NewClient(testPrivateKey, true, WithBaseURL("http://localhost:9999/"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", custom.baseURL, "trailing slash is trimmed")
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client, err := NewClient(testPrivateKey, true)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, client.transport.httpClient.Timeout)
}

func TestNewClientFromWallet_NilWallet(t *testing.T) {
	_, err := NewClientFromWallet(nil, true)
	assert.True(t, IsKind(err, ErrSign))
}

func TestSlippageFor_Precedence(t *testing.T) {
	client, err := NewClient(testPrivateKey, true, WithDefaultSlippage("0.02"))
	require.NoError(t, err)

	assert.Equal(t, "0.02", client.slippageFor("ETH", ""))
	require.NoError(t, client.SetSlippage("ETH", "0.01"))
	assert.Equal(t, "0.01", client.slippageFor("eth", ""))
	assert.Equal(t, "0.03", client.slippageFor("ETH", "0.03"), "per-order value wins")

	assert.Error(t, client.SetSlippage("ETH", "wide"))
}
