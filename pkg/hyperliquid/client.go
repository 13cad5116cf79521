package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	// MainnetBaseURL is the production API endpoint.
	MainnetBaseURL = "https://api.hyperliquid.xyz"
	// TestnetBaseURL is the testnet API endpoint.
	TestnetBaseURL = "https://api.hyperliquid-testnet.xyz"

	defaultHTTPTimeout = 10 * time.Second

	// L1 actions expire this many milliseconds after their nonce unless the
	// caller overrides it. Values below the absolute-timestamp bound are
	// relative to the nonce.
	defaultExpiryMillis = int64(120_000)
	absoluteExpiryBound = int64(1_000_000_000_000)

	defaultSlippage = "0.05"
)

// Client coordinates signed requests against the Hyperliquid info and
// exchange endpoints.
type Client struct {
	baseURL     string
	transport   *transport
	wallet      *Wallet
	mainAddress string // account address for info reads when using an agent wallet
	isTestnet   bool
	clock       func() time.Time
	vault       string
	expiry      *int64 // client-level expiresAfter override

	nonceMu   sync.Mutex
	lastNonce int64

	metaMu     sync.RWMutex
	perpAssets map[string]Asset
	spotAssets map[string]Asset

	midsMu sync.RWMutex
	mids   map[string]string

	slipMu            sync.RWMutex
	defaultSlip       string
	slippageOverrides map[string]string
}

// ClientOption customises the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.transport.httpClient = httpClient
		}
	}
}

// WithBaseURL points the client at a custom endpoint (primarily for tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
			c.transport.baseURL = c.baseURL
		}
	}
}

// WithVaultAddress signs actions on behalf of a vault or sub-account.
func WithVaultAddress(addr string) ClientOption {
	return func(c *Client) {
		if normalized, err := normalizeAddress(addr); err == nil {
			c.vault = normalized
		}
	}
}

// WithMainAddress sets the main account address for info requests. Use this
// when the signing key belongs to an approved agent wallet: info reads must
// target the main account while actions are signed by the agent.
func WithMainAddress(addr string) ClientOption {
	return func(c *Client) {
		if normalized, err := normalizeAddress(addr); err == nil {
			c.mainAddress = normalized
		}
	}
}

// WithClock overrides the time source (primarily for testing).
func WithClock(clock func() time.Time) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDefaultSlippage sets the slippage fraction used when synthesising
// market order prices, e.g. "0.01" for 1%.
func WithDefaultSlippage(slippage string) ClientOption {
	return func(c *Client) {
		if _, err := parseDecimal(slippage); err == nil {
			c.defaultSlip = slippage
		}
	}
}

// WithRetryPolicy enables transport retries for 5xx and network failures.
func WithRetryPolicy(policy *RetryPolicy) ClientOption {
	return func(c *Client) {
		c.transport.retry = policy
	}
}

// WithDebugLogging logs request and response bodies at debug level.
func WithDebugLogging() ClientOption {
	return func(c *Client) {
		c.transport.debug = true
	}
}

// WithExpiresAfter sets a client-level expiresAfter for L1 actions, in
// milliseconds. Values below 1e12 are relative to each action's nonce.
func WithExpiresAfter(millis int64) ClientOption {
	return func(c *Client) {
		if millis > 0 {
			c.expiry = &millis
		}
	}
}

// NewClient constructs a trading client from a hex private key.
func NewClient(privateKeyHex string, isTestnet bool, opts ...ClientOption) (*Client, error) {
	wallet, err := NewWallet(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return NewClientFromWallet(wallet, isTestnet, opts...)
}

// NewClientFromWallet constructs a client around an existing wallet. The
// wallet's primary address is used for info reads when it differs from the
// signing address.
func NewClientFromWallet(wallet *Wallet, isTestnet bool, opts ...ClientOption) (*Client, error) {
	if wallet == nil {
		return nil, newError(ErrSign, "wallet is required")
	}
	baseURL := MainnetBaseURL
	if isTestnet {
		baseURL = TestnetBaseURL
	}
	client := &Client{
		baseURL:           baseURL,
		transport:         newTransport(baseURL, &http.Client{Timeout: defaultHTTPTimeout}),
		wallet:            wallet,
		isTestnet:         isTestnet,
		clock:             time.Now,
		defaultSlip:       defaultSlippage,
		slippageOverrides: make(map[string]string),
	}
	if wallet.PrimaryAddress() != wallet.Address() {
		client.mainAddress = wallet.PrimaryAddress()
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.clock == nil {
		client.clock = time.Now
	}
	return client, nil
}

// Address returns the signing wallet address.
func (c *Client) Address() string {
	return c.wallet.Address()
}

// infoAddress is the account address used for info queries and position
// reads.
func (c *Client) infoAddress() string {
	if c.mainAddress != "" {
		return c.mainAddress
	}
	return c.wallet.Address()
}

// SetSlippage overrides the default slippage for one symbol.
func (c *Client) SetSlippage(symbol, slippage string) error {
	if _, err := parseDecimal(slippage); err != nil {
		return err
	}
	c.slipMu.Lock()
	c.slippageOverrides[canonicalSymbol(symbol)] = slippage
	c.slipMu.Unlock()
	return nil
}

// slippageFor resolves the slippage fraction for a symbol: per-order value,
// then per-symbol override, then the client default.
func (c *Client) slippageFor(symbol, override string) string {
	if override != "" {
		return override
	}
	c.slipMu.RLock()
	defer c.slipMu.RUnlock()
	if s, ok := c.slippageOverrides[canonicalSymbol(symbol)]; ok {
		return s
	}
	return c.defaultSlip
}

// nextNonce returns a millisecond timestamp, strictly increasing per client.
func (c *Client) nextNonce() int64 {
	c.nonceMu.Lock()
	defer c.nonceMu.Unlock()
	nonce := c.clock().UnixMilli()
	if nonce <= c.lastNonce {
		nonce = c.lastNonce + 1
	}
	c.lastNonce = nonce
	return nonce
}

// effectiveVault applies the vault gating rules: some actions never carry a
// vault, and a vault equal to the signer collapses to none.
func (c *Client) effectiveVault(actionType string) string {
	switch actionType {
	case "usdClassTransfer", "sendAsset":
		return ""
	}
	if c.vault == "" || strings.EqualFold(c.vault, c.wallet.Address()) {
		return ""
	}
	return strings.ToLower(c.vault)
}

// resolveExpiry turns the configured or per-call expiry into an absolute
// timestamp. Small values are offsets from the nonce.
func (c *Client) resolveExpiry(nonce int64, override *int64) *int64 {
	millis := defaultExpiryMillis
	if c.expiry != nil {
		millis = *c.expiry
	}
	if override != nil {
		millis = *override
	}
	if millis < absoluteExpiryBound {
		millis = nonce + millis
	}
	return &millis
}

// postAction signs and posts an L1 action with the default expiry.
func (c *Client) postAction(ctx context.Context, actionType string, action interface{}) (json.RawMessage, error) {
	return c.postActionExpiry(ctx, actionType, action, nil)
}

// postActionExpiry signs and posts an L1 action with a fresh nonce.
func (c *Client) postActionExpiry(ctx context.Context, actionType string, action interface{}, expiresAfter *int64) (json.RawMessage, error) {
	return c.postActionNonce(ctx, actionType, action, c.nextNonce(), expiresAfter)
}

// postActionNonce signs and posts an L1 action under an explicit nonce. The
// action is marshalled once; the digest and the request body share the same
// bytes.
func (c *Client) postActionNonce(ctx context.Context, actionType string, action interface{}, nonce int64, expiresAfter *int64) (json.RawMessage, error) {
	actionJSON, err := marshalAction(action)
	if err != nil {
		return nil, err
	}
	vault := c.effectiveVault(actionType)
	expiry := c.resolveExpiry(nonce, expiresAfter)

	sig, err := signL1Action(c.wallet, actionJSON, nonce, vault, expiry, !c.isTestnet)
	if err != nil {
		return nil, err
	}
	req := exchangeRequest{
		Action:       actionJSON,
		Nonce:        nonce,
		Signature:    sig,
		VaultAddress: vault,
		ExpiresAfter: expiry,
	}
	return c.transport.post(ctx, exchangePath, req)
}

// postOrderAction posts an order-shaped action and decodes the typed
// response.
func (c *Client) postOrderAction(ctx context.Context, actionType string, action interface{}, expiresAfter *int64) (*OrderResponse, error) {
	raw, err := c.postActionExpiry(ctx, actionType, action, expiresAfter)
	if err != nil {
		return nil, err
	}
	var resp OrderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, wrapError(ErrIO, err, "decode order response")
	}
	return &resp, nil
}

// postUserSigned signs a user-signed action against the
// HyperliquidSignTransaction domain and posts it. User-signed requests never
// carry expiresAfter.
func (c *Client) postUserSigned(ctx context.Context, actionType, primaryType string, payloadTypes []apitypes.Type, message map[string]interface{}, action interface{}, nonce int64) (json.RawMessage, error) {
	actionJSON, err := marshalAction(action)
	if err != nil {
		return nil, err
	}
	sig, err := signUserSignedAction(c.wallet, primaryType, payloadTypes, message, !c.isTestnet)
	if err != nil {
		return nil, err
	}
	req := exchangeRequest{
		Action:       actionJSON,
		Nonce:        nonce,
		Signature:    sig,
		VaultAddress: c.effectiveVault(actionType),
	}
	return c.transport.post(ctx, exchangePath, req)
}
