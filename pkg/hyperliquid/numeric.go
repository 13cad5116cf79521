package hyperliquid

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Wire decimal caps: price decimals may not exceed (cap - szDecimals).
const (
	perpMaxDecimals = 6
	spotMaxDecimals = 8

	priceSigFigs = 5
)

var (
	usdScale  = decimal.NewFromInt(1_000_000)
	hashScale = decimal.NewFromInt(1_000_000_000)
)

func parseDecimal(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, newError(ErrBadNumber, "empty numeric value")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, wrapError(ErrBadNumber, err, "parse %q", s)
	}
	return d, nil
}

// formatSize renders an order size for the wire: absolute value, truncated
// (never rounded) to the asset's szDecimals, plain notation.
func formatSize(sz string, szDecimals int) (string, error) {
	d, err := parseDecimal(sz)
	if err != nil {
		return "", err
	}
	return d.Abs().Truncate(int32(szDecimals)).String(), nil
}

// formatPrice renders a limit or trigger price for the wire. The price is
// rounded half-up to 5 significant figures, then capped at
// (8 spot / 6 perp) - szDecimals fractional digits. The scale introduced by
// significant-figure rounding is kept ("3150.0" stays "3150.0"), but the
// input's own scale is never extended, so the transform is idempotent.
func formatPrice(px string, szDecimals int, isSpot bool) (string, error) {
	d, err := parseDecimal(px)
	if err != nil {
		return "", err
	}
	if d.Sign() <= 0 {
		return "", newError(ErrBadNumber, "price %q must be positive", px)
	}

	cap := perpMaxDecimals - szDecimals
	if isSpot {
		cap = spotMaxDecimals - szDecimals
	}
	if cap < 0 {
		cap = 0
	}

	// order of magnitude: digit count left of the decimal point
	order := int(d.NumDigits()) + int(d.Exponent())
	sigScale := priceSigFigs - order

	inputScale := 0
	if d.Exponent() < 0 {
		inputScale = int(-d.Exponent())
	}

	scale := sigScale
	if cap < scale {
		scale = cap
	}
	if inputScale < scale {
		scale = inputScale
	}

	rounded := d.Round(int32(scale))
	if scale < 0 {
		scale = 0
	}
	return rounded.StringFixed(int32(scale)), nil
}

// usdInt scales a USD amount by 1e6 and truncates, as required by
// isolated-margin and fee fields.
func usdInt(amount string) (int64, error) {
	d, err := parseDecimal(amount)
	if err != nil {
		return 0, err
	}
	return d.Mul(usdScale).IntPart(), nil
}

// hashInt scales a value by 1e9 and truncates, as required by oracle price
// wires.
func hashInt(value string) (int64, error) {
	d, err := parseDecimal(value)
	if err != nil {
		return 0, err
	}
	return d.Mul(hashScale).IntPart(), nil
}
