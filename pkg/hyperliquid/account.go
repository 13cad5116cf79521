package hyperliquid

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserState fetches the perp account snapshot for the primary address. Every
// call hits the API: position data is never cached across operations.
func (c *Client) UserState(ctx context.Context) (*ClearinghouseState, error) {
	return c.UserStateFor(ctx, c.infoAddress())
}

// UserStateFor fetches the perp account snapshot for an arbitrary address.
func (c *Client) UserStateFor(ctx context.Context, user string) (*ClearinghouseState, error) {
	address, err := normalizeAddress(user)
	if err != nil {
		return nil, err
	}
	var state ClearinghouseState
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "clearinghouseState", User: address}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SpotUserState fetches the spot balances for the primary address.
func (c *Client) SpotUserState(ctx context.Context) (*SpotClearinghouseState, error) {
	var state SpotClearinghouseState
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "spotClearinghouseState", User: c.infoAddress()}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// AccountValue returns the account equity from the margin summary.
func (c *Client) AccountValue(ctx context.Context) (string, error) {
	state, err := c.UserState(ctx)
	if err != nil {
		return "", err
	}
	return state.MarginSummary.AccountValue, nil
}

// positionSnapshot maps canonical symbol to signed position size. Entries
// with unparsable sizes are kept verbatim; parsing happens at the point of
// use so one bad entry does not poison unrelated symbols.
func (c *Client) positionSnapshot(ctx context.Context) (map[string]string, error) {
	state, err := c.UserState(ctx)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]string, len(state.AssetPositions))
	for _, entry := range state.AssetPositions {
		positions[canonicalSymbol(entry.Position.Coin)] = entry.Position.Szi
	}
	return positions, nil
}

// signedSizeFrom parses a snapshot entry for one symbol. A missing entry is
// a flat (zero) position; a present but malformed entry is BAD_POSITION.
func signedSizeFrom(snapshot map[string]string, symbol string) (decimal.Decimal, error) {
	szi, ok := snapshot[canonicalSymbol(symbol)]
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(szi)
	if err != nil {
		return decimal.Decimal{}, wrapError(ErrBadPosition, err, "position size %q for %s", szi, symbol)
	}
	return d, nil
}

// signedPosition fetches a fresh snapshot and parses one symbol's size.
func (c *Client) signedPosition(ctx context.Context, symbol string) (decimal.Decimal, error) {
	snapshot, err := c.positionSnapshot(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return signedSizeFrom(snapshot, symbol)
}
