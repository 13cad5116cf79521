package hyperliquid

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"

	mathhex "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// UsdSend transfers perp USDC to another address.
func (c *Client) UsdSend(ctx context.Context, destination, amount string) (json.RawMessage, error) {
	dest, err := normalizeAddress(destination)
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	nonce := c.nextNonce()
	action := usdSendAction{Type: "usdSend", Destination: dest, Amount: amount, Time: nonce}
	message := map[string]interface{}{
		"destination": dest,
		"amount":      amount,
		"time":        mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "usdSend", "HyperliquidTransaction:UsdSend", usdSendTypes, message, action, nonce)
}

// SpotSend transfers a spot token to another address. Token is the
// "NAME:0xtokenid" form.
func (c *Client) SpotSend(ctx context.Context, destination, token, amount string) (json.RawMessage, error) {
	dest, err := normalizeAddress(destination)
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	nonce := c.nextNonce()
	action := spotSendAction{Type: "spotSend", Destination: dest, Token: token, Amount: amount, Time: nonce}
	message := map[string]interface{}{
		"destination": dest,
		"token":       token,
		"amount":      amount,
		"time":        mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "spotSend", "HyperliquidTransaction:SpotSend", spotSendTypes, message, action, nonce)
}

// Withdraw sends USDC to an L1 address via the bridge.
func (c *Client) Withdraw(ctx context.Context, destination, amount string) (json.RawMessage, error) {
	dest, err := normalizeAddress(destination)
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	nonce := c.nextNonce()
	action := withdrawAction{Type: "withdraw3", Destination: dest, Amount: amount, Time: nonce}
	message := map[string]interface{}{
		"destination": dest,
		"amount":      amount,
		"time":        mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "withdraw3", "HyperliquidTransaction:Withdraw", withdrawTypes, message, action, nonce)
}

// UsdClassTransfer moves USDC between the spot and perp wallets. When a
// vault is configured the amount gains a sub-account suffix instead of a
// vaultAddress field.
func (c *Client) UsdClassTransfer(ctx context.Context, amount string, toPerp bool) (json.RawMessage, error) {
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	wireAmount := amount
	if c.vault != "" {
		wireAmount = amount + " subaccount:" + strings.ToLower(c.vault)
	}
	nonce := c.nextNonce()
	action := usdClassTransferAction{Type: "usdClassTransfer", Amount: wireAmount, ToPerp: toPerp, Nonce: nonce}
	message := map[string]interface{}{
		"amount": wireAmount,
		"toPerp": toPerp,
		"nonce":  mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "usdClassTransfer", "HyperliquidTransaction:UsdClassTransfer", usdClassTransferTypes, message, action, nonce)
}

// SendAsset moves a token between dexes and/or addresses. Empty dex strings
// mean the default perp dex; fromSubAccount falls back to the configured
// vault.
func (c *Client) SendAsset(ctx context.Context, destination, sourceDex, destinationDex, token, amount, fromSubAccount string) (json.RawMessage, error) {
	dest, err := normalizeAddress(destination)
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	if fromSubAccount == "" && c.vault != "" {
		fromSubAccount = strings.ToLower(c.vault)
	}
	nonce := c.nextNonce()
	action := sendAssetAction{
		Type:           "sendAsset",
		Destination:    dest,
		SourceDex:      sourceDex,
		DestinationDex: destinationDex,
		Token:          token,
		Amount:         amount,
		FromSubAccount: fromSubAccount,
		Nonce:          nonce,
	}
	message := map[string]interface{}{
		"destination":    dest,
		"sourceDex":      sourceDex,
		"destinationDex": destinationDex,
		"token":          token,
		"amount":         amount,
		"fromSubAccount": fromSubAccount,
		"nonce":          mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "sendAsset", "HyperliquidTransaction:SendAsset", sendAssetTypes, message, action, nonce)
}

// ApproveAgent generates a fresh agent key, authorises it for the account,
// and returns the agent's private key hex and address alongside the exchange
// response. The name is optional; unnamed agents replace each other.
func (c *Client) ApproveAgent(ctx context.Context, agentName string) (json.RawMessage, string, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", "", wrapError(ErrSign, err, "generate agent key")
	}
	agentKeyHex := hex.EncodeToString(crypto.FromECDSA(key))
	agentAddress := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())

	nonce := c.nextNonce()
	action := approveAgentAction{
		Type:         "approveAgent",
		AgentAddress: agentAddress,
		AgentName:    agentName,
		Nonce:        nonce,
	}
	// The signature always covers agentName, empty or not; the posted body
	// omits it when empty.
	message := map[string]interface{}{
		"agentAddress": agentAddress,
		"agentName":    agentName,
		"nonce":        mathhex.NewHexOrDecimal256(nonce),
	}
	resp, err := c.postUserSigned(ctx, "approveAgent", "HyperliquidTransaction:ApproveAgent", approveAgentTypes, message, action, nonce)
	if err != nil {
		return nil, "", "", err
	}
	return resp, agentKeyHex, agentAddress, nil
}

// ApproveBuilderFee authorises a builder to charge up to maxFeeRate (a
// percent string such as "0.001%") on the account's orders.
func (c *Client) ApproveBuilderFee(ctx context.Context, builder, maxFeeRate string) (json.RawMessage, error) {
	address, err := normalizeAddress(builder)
	if err != nil {
		return nil, err
	}
	nonce := c.nextNonce()
	action := approveBuilderFeeAction{
		Type:       "approveBuilderFee",
		MaxFeeRate: maxFeeRate,
		Builder:    address,
		Nonce:      nonce,
	}
	message := map[string]interface{}{
		"maxFeeRate": maxFeeRate,
		"builder":    address,
		"nonce":      mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "approveBuilderFee", "HyperliquidTransaction:ApproveBuilderFee", approveBuilderFeeTypes, message, action, nonce)
}

// TokenDelegate stakes (or with isUndelegate unstakes) wei with a validator.
func (c *Client) TokenDelegate(ctx context.Context, validator string, wei int64, isUndelegate bool) (json.RawMessage, error) {
	address, err := normalizeAddress(validator)
	if err != nil {
		return nil, err
	}
	if wei < 0 {
		return nil, newError(ErrBadNumber, "wei %d must be non-negative", wei)
	}
	nonce := c.nextNonce()
	action := tokenDelegateAction{
		Type:         "tokenDelegate",
		Validator:    address,
		Wei:          wei,
		IsUndelegate: isUndelegate,
		Nonce:        nonce,
	}
	message := map[string]interface{}{
		"validator":    address,
		"wei":          mathhex.NewHexOrDecimal256(wei),
		"isUndelegate": isUndelegate,
		"nonce":        mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "tokenDelegate", "HyperliquidTransaction:TokenDelegate", tokenDelegateTypes, message, action, nonce)
}

// ConvertToMultiSigUser converts the account to a multi-sig user. Signers is
// the JSON document describing authorized users and threshold.
func (c *Client) ConvertToMultiSigUser(ctx context.Context, signers string) (json.RawMessage, error) {
	nonce := c.nextNonce()
	action := convertToMultiSigUserAction{Type: "convertToMultiSigUser", Signers: signers, Nonce: nonce}
	message := map[string]interface{}{
		"signers": signers,
		"nonce":   mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "convertToMultiSigUser", "HyperliquidTransaction:ConvertToMultiSigUser", convertToMultiSigUserTypes, message, action, nonce)
}

// UserDexAbstraction toggles dex abstraction for a user.
func (c *Client) UserDexAbstraction(ctx context.Context, user string, enabled bool) (json.RawMessage, error) {
	address, err := normalizeAddress(user)
	if err != nil {
		return nil, err
	}
	nonce := c.nextNonce()
	action := userDexAbstractionAction{Type: "userDexAbstraction", User: address, Enabled: enabled, Nonce: nonce}
	message := map[string]interface{}{
		"user":    address,
		"enabled": enabled,
		"nonce":   mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "userDexAbstraction", "HyperliquidTransaction:UserDexAbstraction", userDexAbstractionTypes, message, action, nonce)
}

// AgentEnableDexAbstraction enables dex abstraction from an agent wallet.
func (c *Client) AgentEnableDexAbstraction(ctx context.Context) (json.RawMessage, error) {
	action := agentEnableDexAbstractionAction{Type: "agentEnableDexAbstraction"}
	return c.postAction(ctx, "agentEnableDexAbstraction", action)
}

// SetReferrer attaches a referral code to the account.
func (c *Client) SetReferrer(ctx context.Context, code string) (json.RawMessage, error) {
	if strings.TrimSpace(code) == "" {
		return nil, newError(ErrBadNumber, "referral code required")
	}
	nonce := c.nextNonce()
	action := setReferrerAction{Type: "setReferrer", Code: code, Nonce: nonce}
	message := map[string]interface{}{
		"code":  code,
		"nonce": mathhex.NewHexOrDecimal256(nonce),
	}
	return c.postUserSigned(ctx, "setReferrer", "HyperliquidTransaction:SetReferrer", setReferrerTypes, message, action, nonce)
}

// VaultTransfer deposits to or withdraws from a vault. The amount is a USD
// decimal string, scaled to micro-USD on the wire.
func (c *Client) VaultTransfer(ctx context.Context, vaultAddress string, isDeposit bool, amount string) (json.RawMessage, error) {
	address, err := normalizeAddress(vaultAddress)
	if err != nil {
		return nil, err
	}
	usd, err := usdInt(amount)
	if err != nil {
		return nil, err
	}
	action := vaultTransferAction{
		Type:         "vaultTransfer",
		VaultAddress: address,
		IsDeposit:    isDeposit,
		Usd:          usd,
	}
	return c.postAction(ctx, "vaultTransfer", action)
}

// SubAccountTransfer moves perp USDC between the master and a sub-account.
func (c *Client) SubAccountTransfer(ctx context.Context, subAccountUser string, isDeposit bool, amount string) (json.RawMessage, error) {
	address, err := normalizeAddress(subAccountUser)
	if err != nil {
		return nil, err
	}
	usd, err := usdInt(amount)
	if err != nil {
		return nil, err
	}
	action := subAccountTransferAction{
		Type:           "subAccountTransfer",
		SubAccountUser: address,
		IsDeposit:      isDeposit,
		Usd:            usd,
	}
	return c.postAction(ctx, "subAccountTransfer", action)
}

// SubAccountSpotTransfer moves a spot token between the master and a
// sub-account.
func (c *Client) SubAccountSpotTransfer(ctx context.Context, subAccountUser string, isDeposit bool, token, amount string) (json.RawMessage, error) {
	address, err := normalizeAddress(subAccountUser)
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(amount); err != nil {
		return nil, err
	}
	action := subAccountSpotTransferAction{
		Type:           "subAccountSpotTransfer",
		SubAccountUser: address,
		IsDeposit:      isDeposit,
		Token:          token,
		Amount:         amount,
	}
	return c.postAction(ctx, "subAccountSpotTransfer", action)
}

// CreateSubAccount registers a named sub-account under the master.
func (c *Client) CreateSubAccount(ctx context.Context, name string) (json.RawMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newError(ErrBadNumber, "sub-account name required")
	}
	action := createSubAccountAction{Type: "createSubAccount", Name: name}
	return c.postAction(ctx, "createSubAccount", action)
}
