package hyperliquid

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config describes a client instance. String fields are expanded against the
// environment, so secrets can stay in env vars or a .env file:
//
//	private_key: ${HL_PRIVATE_KEY}
//	testnet: true
//	timeout: 10s
type Config struct {
	BaseURL         string `yaml:"base_url"`
	PrivateKey      string `yaml:"private_key"`
	MainAddress     string `yaml:"main_address"`
	VaultAddress    string `yaml:"vault_address"`
	Testnet         bool   `yaml:"testnet"`
	DefaultSlippage string `yaml:"default_slippage"`
	Debug           bool   `yaml:"debug"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`

	Retry *RetryConfig `yaml:"retry"`
}

// RetryConfig mirrors RetryPolicy in config form.
type RetryConfig struct {
	MaxRetries        int     `yaml:"max_retries"`
	InitialBackoffRaw string  `yaml:"initial_backoff"`
	MaxBackoffRaw     string  `yaml:"max_backoff"`
	Multiplier        float64 `yaml:"multiplier"`
}

var dotenvOnce sync.Once

// LoadDotenvOnce loads a .env file before config expansion. The first call
// wins; existing environment variables are kept unless DOTENV_OVERLOAD=1.
// ENV_FILE selects an explicit file and NO_DOTENV=1 disables loading.
func LoadDotenvOnce() {
	dotenvOnce.Do(func() {
		if os.Getenv("NO_DOTENV") == "1" {
			return
		}
		load := godotenv.Load
		if os.Getenv("DOTENV_OVERLOAD") == "1" {
			load = godotenv.Overload
		}
		if envFile := os.Getenv("ENV_FILE"); envFile != "" {
			_ = load(envFile)
			return
		}
		_ = load()
	})
}

// LoadConfig reads and validates a client configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open client config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal client config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.BaseURL = strings.TrimSpace(os.ExpandEnv(c.BaseURL))
	c.PrivateKey = strings.TrimSpace(os.ExpandEnv(c.PrivateKey))
	c.MainAddress = strings.TrimSpace(os.ExpandEnv(c.MainAddress))
	c.VaultAddress = strings.TrimSpace(os.ExpandEnv(c.VaultAddress))
	c.DefaultSlippage = strings.TrimSpace(os.ExpandEnv(c.DefaultSlippage))
	c.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(c.TimeoutRaw))

	if c.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("client config: invalid timeout %q: %w", c.TimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("client config: timeout must be positive, got %s", d)
		}
		c.Timeout = d
	}
	return nil
}

// Validate ensures the configuration can construct a client.
func (c *Config) Validate() error {
	if c.PrivateKey == "" {
		return fmt.Errorf("client config: private_key is required")
	}
	if c.DefaultSlippage != "" {
		if _, err := parseDecimal(c.DefaultSlippage); err != nil {
			return fmt.Errorf("client config: invalid default_slippage %q: %w", c.DefaultSlippage, err)
		}
	}
	return nil
}

// retryPolicy converts the config form, applying defaults for gaps.
func (rc *RetryConfig) retryPolicy() (*RetryPolicy, error) {
	policy := DefaultRetryPolicy()
	if rc.MaxRetries > 0 {
		policy.MaxRetries = rc.MaxRetries
	}
	if rc.Multiplier >= 1 {
		policy.Multiplier = rc.Multiplier
	}
	if rc.InitialBackoffRaw != "" {
		d, err := time.ParseDuration(rc.InitialBackoffRaw)
		if err != nil {
			return nil, fmt.Errorf("client config: invalid initial_backoff %q: %w", rc.InitialBackoffRaw, err)
		}
		policy.InitialBackoff = d
	}
	if rc.MaxBackoffRaw != "" {
		d, err := time.ParseDuration(rc.MaxBackoffRaw)
		if err != nil {
			return nil, fmt.Errorf("client config: invalid max_backoff %q: %w", rc.MaxBackoffRaw, err)
		}
		policy.MaxBackoff = d
	}
	return policy, nil
}

// NewClientFromConfig builds a client from a validated configuration.
func NewClientFromConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is nil")
	}
	opts := []ClientOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.MainAddress != "" {
		opts = append(opts, WithMainAddress(cfg.MainAddress))
	}
	if cfg.VaultAddress != "" {
		opts = append(opts, WithVaultAddress(cfg.VaultAddress))
	}
	if cfg.DefaultSlippage != "" {
		opts = append(opts, WithDefaultSlippage(cfg.DefaultSlippage))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.Retry != nil {
		policy, err := cfg.Retry.retryPolicy()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithRetryPolicy(policy))
	}
	if cfg.Debug {
		opts = append(opts, WithDebugLogging())
	}
	return NewClient(cfg.PrivateKey, cfg.Testnet, opts...)
}
