package hyperliquid

import (
	"bytes"
	"encoding/json"

	mathhex "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	verifyingContractHex = "0x0000000000000000000000000000000000000000"

	// L1 phantom-agent domain chain ids.
	mainnetChainID = 1337
	testnetChainID = 1338

	// User-signed actions always sign against this chain id (0x66eee),
	// regardless of network.
	userSignedChainID    = 0x66eee
	userSignedChainIDHex = "0x66eee"
)

var eip712DomainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// actionDigest computes the keccak256 hash that identifies an L1 action.
// The msgpack stream wraps the action's JSON bytes as a binary blob, so the
// digest covers exactly the bytes that will be posted, then appends the
// nonce, the optional vault address, and the optional expiry, each behind a
// presence flag. Nonce and expiry are packed as uint64.
func actionDigest(actionJSON []byte, nonce int64, vaultAddress string, expiresAfter *int64) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeBytes(actionJSON); err != nil {
		return nil, wrapError(ErrEncode, err, "pack action bytes")
	}
	if err := enc.EncodeUint64(uint64(nonce)); err != nil {
		return nil, wrapError(ErrEncode, err, "pack nonce")
	}

	if vaultAddress != "" {
		if err := enc.EncodeBool(true); err != nil {
			return nil, wrapError(ErrEncode, err, "pack vault flag")
		}
		addr, err := addressBytes(vaultAddress)
		if err != nil {
			return nil, err
		}
		if err := enc.EncodeBytes(addr); err != nil {
			return nil, wrapError(ErrEncode, err, "pack vault address")
		}
	} else if err := enc.EncodeBool(false); err != nil {
		return nil, wrapError(ErrEncode, err, "pack vault flag")
	}

	if expiresAfter != nil {
		if err := enc.EncodeBool(true); err != nil {
			return nil, wrapError(ErrEncode, err, "pack expiry flag")
		}
		if err := enc.EncodeUint64(uint64(*expiresAfter)); err != nil {
			return nil, wrapError(ErrEncode, err, "pack expiry")
		}
	} else if err := enc.EncodeBool(false); err != nil {
		return nil, wrapError(ErrEncode, err, "pack expiry flag")
	}

	return crypto.Keccak256(buf.Bytes()), nil
}

// signL1Action signs an action digest through the phantom-agent typed data.
func signL1Action(w *Wallet, actionJSON []byte, nonce int64, vaultAddress string, expiresAfter *int64, isMainnet bool) (Signature, error) {
	digest, err := actionDigest(actionJSON, nonce, vaultAddress, expiresAfter)
	if err != nil {
		return Signature{}, err
	}

	source := "a"
	chainID := int64(mainnetChainID)
	if !isMainnet {
		source = "b"
		chainID = testnetChainID
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": eip712DomainType,
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           mathhex.NewHexOrDecimal256(chainID),
			VerifyingContract: verifyingContractHex,
		},
		Message: map[string]interface{}{
			"source":       source,
			"connectionId": digest,
		},
	}

	hash, err := typedDataHash(typedData)
	if err != nil {
		return Signature{}, err
	}
	return w.signDigest(hash)
}

// signUserSignedAction signs a user-signed action. The message gains a
// hyperliquidChain field reflecting the network; payloadTypes lists the
// action's own fields and determines which message keys are hashed.
func signUserSignedAction(w *Wallet, primaryType string, payloadTypes []apitypes.Type, message map[string]interface{}, isMainnet bool) (Signature, error) {
	chain := "Mainnet"
	if !isMainnet {
		chain = "Testnet"
	}

	fields := append([]apitypes.Type{{Name: "hyperliquidChain", Type: "string"}}, payloadTypes...)

	msg := map[string]interface{}{"hyperliquidChain": chain}
	for _, f := range fields {
		if v, ok := message[f.Name]; ok {
			msg[f.Name] = v
		}
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": eip712DomainType,
			primaryType:    fields,
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           mathhex.NewHexOrDecimal256(userSignedChainID),
			VerifyingContract: verifyingContractHex,
		},
		Message: msg,
	}

	hash, err := typedDataHash(typedData)
	if err != nil {
		return Signature{}, err
	}
	return w.signDigest(hash)
}

// typedDataHash produces the EIP-712 signing hash:
// keccak256(0x19 0x01 || domainSeparator || hashStruct(message)).
func typedDataHash(td apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return nil, wrapError(ErrSign, err, "hash domain")
	}
	messageHash, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return nil, wrapError(ErrSign, err, "hash %s", td.PrimaryType)
	}
	raw := make([]byte, 0, 2+len(domainSeparator)+len(messageHash))
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256(raw), nil
}

// marshalAction serialises an action once; the same bytes feed both the
// digest and the posted body.
func marshalAction(action interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(action)
	if err != nil {
		return nil, wrapError(ErrEncode, err, "encode action")
	}
	return data, nil
}

// User-signed payload type catalog. Order is part of the signature.
var (
	usdSendTypes = []apitypes.Type{
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
	spotSendTypes = []apitypes.Type{
		{Name: "destination", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
	withdrawTypes = []apitypes.Type{
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
	usdClassTransferTypes = []apitypes.Type{
		{Name: "amount", Type: "string"},
		{Name: "toPerp", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}
	sendAssetTypes = []apitypes.Type{
		{Name: "destination", Type: "string"},
		{Name: "sourceDex", Type: "string"},
		{Name: "destinationDex", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "fromSubAccount", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}
	approveAgentTypes = []apitypes.Type{
		{Name: "agentAddress", Type: "address"},
		{Name: "agentName", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}
	approveBuilderFeeTypes = []apitypes.Type{
		{Name: "maxFeeRate", Type: "string"},
		{Name: "builder", Type: "address"},
		{Name: "nonce", Type: "uint64"},
	}
	tokenDelegateTypes = []apitypes.Type{
		{Name: "validator", Type: "address"},
		{Name: "wei", Type: "uint64"},
		{Name: "isUndelegate", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}
	setReferrerTypes = []apitypes.Type{
		{Name: "code", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}
	convertToMultiSigUserTypes = []apitypes.Type{
		{Name: "signers", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}
	userDexAbstractionTypes = []apitypes.Type{
		{Name: "user", Type: "address"},
		{Name: "enabled", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}
)
