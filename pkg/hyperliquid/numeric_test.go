package hyperliquid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	cases := map[string]struct {
		in         string
		szDecimals int
		want       string
	}{
		"truncates excess precision": {"1.23456789", 3, "1.234"},
		"never rounds up":            {"0.9999", 2, "0.99"},
		"integer precision":          {"10.9", 0, "10"},
		"absolute value":             {"-2.5", 1, "2.5"},
		"keeps exact input":          {"0.5", 2, "0.5"},
		"zero":                       {"0", 4, "0"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := formatSize(tc.in, tc.szDecimals)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatSize_BadInput(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "1.2.3"} {
		_, err := formatSize(in, 2)
		assert.True(t, IsKind(err, ErrBadNumber), "input %q", in)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]struct {
		in         string
		szDecimals int
		isSpot     bool
		want       string
	}{
		"keeps sig-fig scale":       {"3150.0413", 1, false, "3150.0"},
		"rounds half-up to integer": {"12345.678", 0, false, "12346"},
		"rounds half-up at scale":   {"3135.561", 1, false, "3135.6"},
		"small price hits perp cap": {"0.001234567", 0, false, "0.001235"},
		"decimal cap binds":         {"0.123456", 5, false, "0.1"},
		"spot cap is wider":         {"0.00012345678", 0, true, "0.00012346"},
		"never pads":                {"0.001", 0, false, "0.001"},
		"six figure integer":        {"123456.7", 0, false, "123460"},
		"exact integer":             {"97000", 5, false, "97000"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := formatPrice(tc.in, tc.szDecimals, tc.isSpot)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatPrice_Idempotent(t *testing.T) {
	inputs := []string{"3150.0413", "12345.678", "3135.561", "0.001234567", "97000"}
	for _, in := range inputs {
		once, err := formatPrice(in, 1, false)
		require.NoError(t, err)
		twice, err := formatPrice(once, 1, false)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %s", in)
	}
}

func TestFormatPrice_Rejects(t *testing.T) {
	for _, in := range []string{"", "0", "-1.5", "nope"} {
		_, err := formatPrice(in, 2, false)
		assert.True(t, IsKind(err, ErrBadNumber), "input %q", in)
	}
}

func TestUsdInt(t *testing.T) {
	cases := map[string]struct {
		in   string
		want int64
	}{
		"whole dollars":    {"25", 25_000_000},
		"fractional":       {"1.5", 1_500_000},
		"truncates dust":   {"0.0000019", 1},
		"negative removal": {"-10.25", -10_250_000},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := usdInt(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHashInt(t *testing.T) {
	got, err := hashInt("1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000_000), got)

	_, err = hashInt("not-a-number")
	assert.True(t, IsKind(err, ErrBadNumber))
}
