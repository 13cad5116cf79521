package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet holds the secp256k1 key used to sign actions. For agent (API)
// wallets the primary address identifies the account acted upon while the
// key belongs to the agent; for a plain wallet both are the derived address.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address string // derived from key, lowercase
	primary string // account address, lowercase
}

// NewWallet constructs a wallet from a hex private key (optional 0x prefix).
func NewWallet(privateKeyHex string) (*Wallet, error) {
	return NewAgentWallet(privateKeyHex, "")
}

// NewAgentWallet constructs a wallet whose key signs on behalf of a primary
// account. An empty primaryAddress falls back to the derived address.
func NewAgentWallet(privateKeyHex, primaryAddress string) (*Wallet, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return nil, newError(ErrSign, "empty private key")
	}
	if len(keyHex) != 64 {
		return nil, newError(ErrSign, "private key must be 64 hex characters, got %d", len(keyHex))
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, wrapError(ErrSign, err, "decode private key")
	}

	derived := strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
	primary := derived
	if strings.TrimSpace(primaryAddress) != "" {
		primary, err = normalizeAddress(primaryAddress)
		if err != nil {
			return nil, err
		}
	}
	return &Wallet{key: key, address: derived, primary: primary}, nil
}

// Address returns the lowercase address derived from the signing key.
func (w *Wallet) Address() string {
	if w == nil {
		return ""
	}
	return w.address
}

// PrimaryAddress returns the lowercase account address used for info queries
// and position reads.
func (w *Wallet) PrimaryAddress() string {
	if w == nil {
		return ""
	}
	return w.primary
}

// signDigest signs a 32-byte hash and encodes r/s/v as hex strings.
func (w *Wallet) signDigest(digest []byte) (Signature, error) {
	if w == nil || w.key == nil {
		return Signature{}, newError(ErrSign, "wallet not initialised")
	}
	if len(digest) != 32 {
		return Signature{}, newError(ErrSign, "expected 32-byte digest, got %d bytes", len(digest))
	}
	sig, err := crypto.Sign(digest, w.key)
	if err != nil {
		return Signature{}, wrapError(ErrSign, err, "sign digest")
	}
	return Signature{
		R: "0x" + hex.EncodeToString(sig[:32]),
		S: "0x" + hex.EncodeToString(sig[32:64]),
		V: "0x" + hex.EncodeToString([]byte{sig[64] + 27}),
	}, nil
}

// normalizeAddress validates a 0x-prefixed hex address and lowercases it.
func normalizeAddress(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if !common.IsHexAddress(trimmed) {
		return "", newError(ErrBadAddress, "invalid address %q", addr)
	}
	return strings.ToLower(common.HexToAddress(trimmed).Hex()), nil
}

// addressBytes converts a validated address to its 20-byte form.
func addressBytes(addr string) ([]byte, error) {
	normalized, err := normalizeAddress(addr)
	if err != nil {
		return nil, err
	}
	return common.HexToAddress(normalized).Bytes(), nil
}
