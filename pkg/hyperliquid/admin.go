package hyperliquid

import (
	"context"
	"encoding/json"
	"sort"
)

// MultiSig posts an action on behalf of a multi-sig user, wrapping the inner
// action with the collected signatures. The outer signer is this client's
// wallet; the envelope itself is signed as a regular L1 action.
func (c *Client) MultiSig(ctx context.Context, multiSigUser string, signatures []Signature, innerAction json.RawMessage) (json.RawMessage, error) {
	user, err := normalizeAddress(multiSigUser)
	if err != nil {
		return nil, err
	}
	if len(signatures) == 0 {
		return nil, newError(ErrSign, "multi-sig requires at least one signature")
	}
	action := multiSigAction{
		Type:             "multiSig",
		SignatureChainID: userSignedChainIDHex,
		Signatures:       signatures,
		Payload: multiSigPayload{
			MultiSigUser: user,
			OuterSigner:  c.wallet.Address(),
			Action:       innerAction,
		},
	}
	return c.postAction(ctx, "multiSig", action)
}

// sortedPairs renders a price map as key-sorted [key, value] pairs, the form
// deploy actions require.
func sortedPairs(m map[string]string) []oraclePricePair {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]oraclePricePair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, oraclePricePair{Key: k, Value: m[k]})
	}
	return pairs
}

// PerpDeploySetOracle pushes oracle and mark prices for a builder-deployed
// perp dex. Maps are serialised as key-sorted pair lists.
func (c *Client) PerpDeploySetOracle(ctx context.Context, dex string, oraclePxs map[string]string, markPxs []map[string]string, externalPerpPxs map[string]string) (json.RawMessage, error) {
	marks := make([][]oraclePricePair, 0, len(markPxs))
	for _, m := range markPxs {
		marks = append(marks, sortedPairs(m))
	}
	action := perpDeployAction{
		Type: "perpDeploy",
		SetOracle: &setOracleParams{
			Dex:             dex,
			OraclePxs:       sortedPairs(oraclePxs),
			MarkPxs:         marks,
			ExternalPerpPxs: sortedPairs(externalPerpPxs),
		},
	}
	return c.postAction(ctx, "perpDeploy", action)
}

func (c *Client) postSpotDeploy(ctx context.Context, action spotDeployAction) (json.RawMessage, error) {
	action.Type = "spotDeploy"
	return c.postAction(ctx, "spotDeploy", action)
}

// SpotDeployRegisterToken starts a spot token deployment auction.
func (c *Client) SpotDeployRegisterToken(ctx context.Context, name string, szDecimals, weiDecimals int, maxGas int64, fullName string) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		RegisterToken2: &registerToken2Wire{
			Spec:     tokenSpecWire{Name: name, SzDecimals: szDecimals, WeiDecimals: weiDecimals},
			MaxGas:   maxGas,
			FullName: fullName,
		},
	})
}

// SpotDeployUserGenesis allocates genesis balances to users and existing
// token holders.
func (c *Client) SpotDeployUserGenesis(ctx context.Context, token int, userAndWei, existingTokenAndWei []GenesisUserBalance) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		UserGenesis: &userGenesisWire{
			Token:               token,
			UserAndWei:          userAndWei,
			ExistingTokenAndWei: existingTokenAndWei,
		},
	})
}

// SpotDeployGenesis finalises the genesis distribution of a token.
func (c *Client) SpotDeployGenesis(ctx context.Context, token int, maxSupply string, noHyperliquidity bool) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		Genesis: &genesisWire{
			Token:            token,
			MaxSupply:        maxSupply,
			NoHyperliquidity: noHyperliquidity,
		},
	})
}

// SpotDeployRegisterSpot registers the trading pair for a deployed token.
func (c *Client) SpotDeployRegisterSpot(ctx context.Context, baseToken, quoteToken int) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		RegisterSpot: &registerSpotWire{Tokens: [2]int{baseToken, quoteToken}},
	})
}

// SpotDeployRegisterHyperliquidity seeds the hyperliquidity order grid.
func (c *Client) SpotDeployRegisterHyperliquidity(ctx context.Context, spot int, startPx, orderSz string, nOrders int, nSeededLevels *int) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		RegisterHyperliquidity: &registerHyperliquidityWire{
			Spot:          spot,
			StartPx:       startPx,
			OrderSz:       orderSz,
			NOrders:       nOrders,
			NSeededLevels: nSeededLevels,
		},
	})
}

// SpotDeploySetDeployerTradingFeeShare sets the deployer's share of trading
// fees, e.g. "100%".
func (c *Client) SpotDeploySetDeployerTradingFeeShare(ctx context.Context, token int, share string) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		SetDeployerTradingFeeShare: &deployerFeeShareWire{Token: token, Share: share},
	})
}

// SpotDeployEnableFreezePrivilege lets the deployer freeze token holders.
func (c *Client) SpotDeployEnableFreezePrivilege(ctx context.Context, token int) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		EnableFreezePrivilege: &tokenRefWire{Token: token},
	})
}

// SpotDeployRevokeFreezePrivilege permanently revokes the freeze privilege.
func (c *Client) SpotDeployRevokeFreezePrivilege(ctx context.Context, token int) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		RevokeFreezePrivilege: &tokenRefWire{Token: token},
	})
}

// SpotDeployFreezeUser freezes or unfreezes a holder of the token.
func (c *Client) SpotDeployFreezeUser(ctx context.Context, token int, user string, freeze bool) (json.RawMessage, error) {
	address, err := normalizeAddress(user)
	if err != nil {
		return nil, err
	}
	return c.postSpotDeploy(ctx, spotDeployAction{
		FreezeUser: &freezeUserWire{Token: token, User: address, Freeze: freeze},
	})
}

// SpotDeployEnableQuoteToken marks the token as usable as a quote asset.
func (c *Client) SpotDeployEnableQuoteToken(ctx context.Context, token int) (json.RawMessage, error) {
	return c.postSpotDeploy(ctx, spotDeployAction{
		EnableQuoteToken: &enableQuoteTokenWire{Token: token},
	})
}

// CValidatorRegister registers this node as a validator.
func (c *Client) CValidatorRegister(ctx context.Context, profile ValidatorProfile, unjailed bool, initialWei int64) (json.RawMessage, error) {
	action := cValidatorAction{
		Type: "CValidatorAction",
		Register: &validatorRegisterWire{
			Profile:    profile,
			Unjailed:   unjailed,
			InitialWei: initialWei,
		},
	}
	return c.postAction(ctx, "CValidatorAction", action)
}

// CValidatorChangeProfile updates the validator's profile.
func (c *Client) CValidatorChangeProfile(ctx context.Context, profile ValidatorProfile) (json.RawMessage, error) {
	action := cValidatorAction{Type: "CValidatorAction", ChangeProfile: &profile}
	return c.postAction(ctx, "CValidatorAction", action)
}

// CValidatorUnregister removes the validator registration.
func (c *Client) CValidatorUnregister(ctx context.Context) (json.RawMessage, error) {
	action := cValidatorAction{Type: "CValidatorAction", Unregister: &jsonNull{}}
	return c.postAction(ctx, "CValidatorAction", action)
}

// CSignerJailSelf jails this signer, taking it out of consensus.
func (c *Client) CSignerJailSelf(ctx context.Context) (json.RawMessage, error) {
	action := cSignerAction{Type: "CSignerAction", JailSelf: &jsonNull{}}
	return c.postAction(ctx, "CSignerAction", action)
}

// CSignerUnjailSelf returns this signer to consensus.
func (c *Client) CSignerUnjailSelf(ctx context.Context) (json.RawMessage, error) {
	action := cSignerAction{Type: "CSignerAction", UnjailSelf: &jsonNull{}}
	return c.postAction(ctx, "CSignerAction", action)
}

// UseBigBlocks opts the account's EVM transactions into big blocks.
func (c *Client) UseBigBlocks(ctx context.Context, enable bool) (json.RawMessage, error) {
	action := evmUserModifyAction{Type: "evmUserModify", UsingBigBlocks: enable}
	return c.postAction(ctx, "evmUserModify", action)
}

// Noop burns a nonce without any effect, e.g. to invalidate in-flight
// actions. A nil timeMs burns the next client nonce; otherwise the given
// millisecond timestamp is used verbatim.
func (c *Client) Noop(ctx context.Context, timeMs *int64) (json.RawMessage, error) {
	var nonce int64
	if timeMs != nil {
		nonce = *timeMs
	} else {
		nonce = c.nextNonce()
	}
	return c.postActionNonce(ctx, "noop", noopAction{Type: "noop"}, nonce, nil)
}
