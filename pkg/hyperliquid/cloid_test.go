package hyperliquid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloid_Format(t *testing.T) {
	c := NewCloid()
	assert.Len(t, c.String(), 34)
	assert.Equal(t, "0x", c.String()[:2])

	parsed, err := CloidFromHex(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestCloidFromHex(t *testing.T) {
	c, err := CloidFromHex("0x00000000000000000000000000C0FFEE")
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000c0ffee", c.String())

	for _, in := range []string{"", "c0ffee", "0x1234", "0x" + "zz" + "00000000000000000000000000000000"[2:]} {
		_, err := CloidFromHex(in)
		assert.True(t, IsKind(err, ErrBadNumber), "input %q", in)
	}
}

func TestCloidFromInt(t *testing.T) {
	c := CloidFromInt(0xC0FFEE)
	assert.Equal(t, "0x00000000000000000000000000c0ffee", c.String())
}

func TestCloid_JSONRoundTrip(t *testing.T) {
	c := CloidFromInt(42)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"0x0000000000000000000000000000002a"`, string(data))

	var back Cloid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)
}
