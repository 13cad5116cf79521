package hyperliquid

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Cloid is a 16-byte client order id, canonically rendered as "0x" followed
// by 32 lowercase hex characters.
type Cloid struct {
	raw string
}

// NewCloid generates a random client order id.
func NewCloid() Cloid {
	u := uuid.New()
	return Cloid{raw: "0x" + hex.EncodeToString(u[:])}
}

// CloidFromHex parses a canonical client order id string.
func CloidFromHex(s string) (Cloid, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(trimmed, "0x") {
		return Cloid{}, newError(ErrBadNumber, "cloid %q missing 0x prefix", s)
	}
	body := trimmed[2:]
	if len(body) != 32 {
		return Cloid{}, newError(ErrBadNumber, "cloid %q must be 16 bytes of hex", s)
	}
	if _, err := hex.DecodeString(body); err != nil {
		return Cloid{}, wrapError(ErrBadNumber, err, "cloid %q is not hex", s)
	}
	return Cloid{raw: trimmed}, nil
}

// CloidFromInt builds a client order id from a non-negative integer.
func CloidFromInt(n uint64) Cloid {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[15-i] = byte(n >> (8 * i))
	}
	return Cloid{raw: "0x" + hex.EncodeToString(b[:])}
}

func (c Cloid) String() string {
	return c.raw
}

// IsZero reports whether the cloid is unset.
func (c Cloid) IsZero() bool {
	return c.raw == ""
}

func (c Cloid) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.raw + `"`), nil
}

func (c *Cloid) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := CloidFromHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
