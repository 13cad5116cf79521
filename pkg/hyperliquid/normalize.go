package hyperliquid

import (
	"context"

	"github.com/shopspring/decimal"
)

// snapshotFunc supplies the position snapshot for an operation, fetched at
// most once however many orders need it.
type snapshotFunc func() (map[string]string, error)

func (c *Client) snapshotOnce(ctx context.Context) snapshotFunc {
	var snapshot map[string]string
	return func() (map[string]string, error) {
		if snapshot != nil {
			return snapshot, nil
		}
		s, err := c.positionSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		snapshot = s
		return snapshot, nil
	}
}

func instrumentOf(r *OrderRequest) Instrument {
	if r.Instrument == Spot {
		return Spot
	}
	return Perp
}

// Placeholder classifications. A market open leaves the price empty on an
// IOC limit; the close variants additionally set reduceOnly, with IOC+no
// price meaning market close and price+no direction meaning limit close,
// whatever the time-in-force.

func isMarketOpen(r *OrderRequest) bool {
	return r.LimitPx == "" && r.OrderType.Limit != nil && r.OrderType.Limit.Tif == TifIoc && !r.ReduceOnly
}

func isMarketClose(r *OrderRequest) bool {
	return instrumentOf(r) == Perp && r.ReduceOnly &&
		r.OrderType.Limit != nil && r.OrderType.Limit.Tif == TifIoc && r.LimitPx == ""
}

func isLimitClose(r *OrderRequest) bool {
	return instrumentOf(r) == Perp && r.ReduceOnly &&
		r.OrderType.Limit != nil && r.LimitPx != "" && r.IsBuy == nil
}

// slippagePrice synthesises an aggressive limit price from the cached mid:
// mid*(1+slip) for buys, mid*(1-slip) for sells. The result is raw; price
// formatting happens later in the pipeline.
func (c *Client) slippagePrice(ctx context.Context, symbol string, isBuy bool, slippage string) (string, error) {
	mid, err := c.midOrError(ctx, symbol)
	if err != nil {
		return "", err
	}
	midDec, err := parseDecimal(mid)
	if err != nil {
		return "", err
	}
	slipDec, err := parseDecimal(slippage)
	if err != nil {
		return "", err
	}
	factor := decimal.NewFromInt(1)
	if isBuy {
		factor = factor.Add(slipDec)
	} else {
		factor = factor.Sub(slipDec)
	}
	return midDec.Mul(factor).String(), nil
}

// prepareOrder fills placeholders in an order request. Position-dependent
// inference pulls from the shared snapshot.
func (c *Client) prepareOrder(ctx context.Context, r *OrderRequest, snapshot snapshotFunc) error {
	r.Instrument = instrumentOf(r)

	switch {
	case isMarketClose(r):
		szi, err := c.closeSize(r.Coin, snapshot)
		if err != nil {
			return err
		}
		if r.IsBuy == nil {
			isBuy := szi.Sign() < 0
			r.IsBuy = &isBuy
		}
		if r.Sz == "" {
			r.Sz = szi.Abs().String()
		}
		px, err := c.slippagePrice(ctx, r.Coin, *r.IsBuy, c.slippageFor(r.Coin, r.Slippage))
		if err != nil {
			return err
		}
		r.LimitPx = px

	case isLimitClose(r):
		szi, err := c.closeSize(r.Coin, snapshot)
		if err != nil {
			return err
		}
		isBuy := szi.Sign() < 0
		r.IsBuy = &isBuy
		if r.Sz == "" {
			r.Sz = szi.Abs().String()
		}

	case isMarketOpen(r):
		if r.IsBuy == nil {
			return newError(ErrBadNumber, "market order for %s missing direction", r.Coin)
		}
		px, err := c.slippagePrice(ctx, r.Coin, *r.IsBuy, c.slippageFor(r.Coin, r.Slippage))
		if err != nil {
			return err
		}
		r.LimitPx = px

	case r.OrderType.Trigger != nil && r.LimitPx == "":
		mid, err := c.midOrError(ctx, r.Coin)
		if err != nil {
			return err
		}
		r.LimitPx = mid
	}

	if r.IsBuy == nil {
		return newError(ErrBadNumber, "order for %s missing direction", r.Coin)
	}
	if r.Sz == "" {
		return newError(ErrBadNumber, "order for %s missing size", r.Coin)
	}
	if r.LimitPx == "" {
		return newError(ErrBadNumber, "order for %s missing price", r.Coin)
	}
	return nil
}

// closeSize reads the signed position for a close order. Flat is an error:
// there is nothing to close.
func (c *Client) closeSize(symbol string, snapshot snapshotFunc) (decimal.Decimal, error) {
	positions, err := snapshot()
	if err != nil {
		return decimal.Decimal{}, err
	}
	szi, err := signedSizeFrom(positions, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if szi.IsZero() {
		return decimal.Decimal{}, newError(ErrNoPosition, "no open position in %s", symbol)
	}
	return szi, nil
}

// inferPositionTpsl fills direction and size for positionTpsl groups from
// the live position. Reduce-only legs close, so they take the reversed
// direction; explicit fields are never overwritten.
func (c *Client) inferPositionTpsl(orders []OrderRequest, snapshot snapshotFunc) error {
	needsInference := false
	for i := range orders {
		if orders[i].IsBuy == nil || orders[i].Sz == "" {
			needsInference = true
			break
		}
	}
	if !needsInference {
		return nil
	}

	for i := range orders {
		r := &orders[i]
		if r.IsBuy != nil && r.Sz != "" {
			continue
		}
		szi, err := c.closeSize(r.Coin, snapshot)
		if err != nil {
			return err
		}
		if r.IsBuy == nil && r.ReduceOnly {
			isBuy := szi.Sign() < 0
			r.IsBuy = &isBuy
		}
		if r.Sz == "" {
			r.Sz = szi.Abs().String()
		}
	}
	return nil
}

// formatOrder applies wire formatting to size, price, and trigger price.
func (c *Client) formatOrder(ctx context.Context, r *OrderRequest) (Asset, error) {
	asset, err := c.ResolveAsset(ctx, r.Instrument, r.Coin)
	if err != nil {
		return Asset{}, err
	}
	isSpot := r.Instrument == Spot

	sz, err := formatSize(r.Sz, asset.SzDecimals)
	if err != nil {
		return Asset{}, err
	}
	r.Sz = sz

	px, err := formatPrice(r.LimitPx, asset.SzDecimals, isSpot)
	if err != nil {
		return Asset{}, err
	}
	r.LimitPx = px

	if trigger := r.OrderType.Trigger; trigger != nil {
		triggerPx, err := formatPrice(trigger.TriggerPx, asset.SzDecimals, isSpot)
		if err != nil {
			return Asset{}, err
		}
		formatted := *trigger
		formatted.TriggerPx = triggerPx
		r.OrderType.Trigger = &formatted
	}
	return asset, nil
}

func orderTypeWireOf(ot OrderType) orderTypeWire {
	var wire orderTypeWire
	if ot.Limit != nil {
		wire.Limit = &limitTypeWire{Tif: ot.Limit.Tif}
	}
	if ot.Trigger != nil {
		wire.Trigger = &triggerTypeWire{
			TriggerPx: ot.Trigger.TriggerPx,
			IsMarket:  ot.Trigger.IsMarket,
			Tpsl:      ot.Trigger.Tpsl,
		}
	}
	return wire
}

// toOrderWire finishes one prepared order.
func toOrderWire(asset Asset, r *OrderRequest) orderWire {
	wire := orderWire{
		Asset:      asset.ID,
		IsBuy:      *r.IsBuy,
		LimitPx:    r.LimitPx,
		Sz:         r.Sz,
		ReduceOnly: r.ReduceOnly,
		Type:       orderTypeWireOf(r.OrderType),
	}
	if r.Cloid != nil && !r.Cloid.IsZero() {
		wire.Cloid = r.Cloid.String()
	}
	return wire
}

// buildOrderWires runs the full normalization pipeline over a batch. The
// batch shares one position snapshot, fetched only if some order needs it.
func (c *Client) buildOrderWires(ctx context.Context, orders []OrderRequest, grouping Grouping) ([]orderWire, error) {
	if len(orders) == 0 {
		return nil, newError(ErrBadNumber, "at least one order required")
	}
	snapshot := c.snapshotOnce(ctx)

	if grouping == GroupingPositionTpsl {
		if err := c.inferPositionTpsl(orders, snapshot); err != nil {
			return nil, err
		}
	}

	wires := make([]orderWire, 0, len(orders))
	for i := range orders {
		r := &orders[i]
		if err := c.prepareOrder(ctx, r, snapshot); err != nil {
			return nil, err
		}
		asset, err := c.formatOrder(ctx, r)
		if err != nil {
			return nil, err
		}
		wires = append(wires, toOrderWire(asset, r))
	}
	return wires, nil
}
