package hyperliquid

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const maxBuilderFee = 1_000_000

// validateBuilder checks a builder attribution and converts it to its wire
// form. Only the two wire keys are ever emitted.
func validateBuilder(b *BuilderFee) (*builderWire, error) {
	if b == nil {
		return nil, nil
	}
	address, err := normalizeAddress(b.Builder)
	if err != nil {
		return nil, err
	}
	if b.Fee < 0 || b.Fee > maxBuilderFee {
		return nil, newError(ErrBadBuilderFee, "builder fee %d out of range [0, %d]", b.Fee, maxBuilderFee)
	}
	return &builderWire{B: address, F: b.Fee}, nil
}

// Order normalizes and submits a single order.
func (c *Client) Order(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	return c.PlaceOrders(ctx, []OrderRequest{order}, GroupingNA, nil, nil)
}

// OrderWithBuilder submits a single order with a builder attribution.
func (c *Client) OrderWithBuilder(ctx context.Context, order OrderRequest, builder *BuilderFee) (*OrderResponse, error) {
	return c.PlaceOrders(ctx, []OrderRequest{order}, GroupingNA, builder, nil)
}

// BulkOrders submits a batch of unrelated orders.
func (c *Client) BulkOrders(ctx context.Context, orders []OrderRequest) (*OrderResponse, error) {
	return c.PlaceOrders(ctx, orders, GroupingNA, nil, nil)
}

// PlaceOrders is the full order entry point: normalization pipeline,
// grouping, optional builder, optional per-call expiry.
func (c *Client) PlaceOrders(ctx context.Context, orders []OrderRequest, grouping Grouping, builder *BuilderFee, expiresAfter *int64) (*OrderResponse, error) {
	builderW, err := validateBuilder(builder)
	if err != nil {
		return nil, err
	}
	if grouping == "" {
		grouping = GroupingNA
	}
	wires, err := c.buildOrderWires(ctx, orders, grouping)
	if err != nil {
		return nil, err
	}
	action := orderAction{
		Type:     "order",
		Orders:   wires,
		Grouping: grouping,
		Builder:  builderW,
	}
	return c.postOrderAction(ctx, "order", action, expiresAfter)
}

// Cancel removes a resting order by exchange order id.
func (c *Client) Cancel(ctx context.Context, coin string, oid int64) (*OrderResponse, error) {
	return c.BulkCancel(ctx, []CancelRequest{{Coin: coin, Oid: oid}})
}

// BulkCancel removes several resting orders.
func (c *Client) BulkCancel(ctx context.Context, cancels []CancelRequest) (*OrderResponse, error) {
	if len(cancels) == 0 {
		return nil, newError(ErrBadNumber, "at least one cancel required")
	}
	wires := make([]cancelWire, 0, len(cancels))
	for _, cancel := range cancels {
		asset, err := c.ResolveAsset(ctx, Perp, cancel.Coin)
		if err != nil {
			return nil, err
		}
		wires = append(wires, cancelWire{A: asset.ID, O: cancel.Oid})
	}
	action := cancelAction{Type: "cancel", Cancels: wires}
	return c.postOrderAction(ctx, "cancel", action, nil)
}

// CancelByCloid removes a resting order by client order id.
func (c *Client) CancelByCloid(ctx context.Context, coin string, cloid Cloid) (*OrderResponse, error) {
	return c.BulkCancelByCloid(ctx, []CancelByCloidRequest{{Coin: coin, Cloid: cloid}})
}

// BulkCancelByCloid removes several resting orders by client order id.
func (c *Client) BulkCancelByCloid(ctx context.Context, cancels []CancelByCloidRequest) (*OrderResponse, error) {
	if len(cancels) == 0 {
		return nil, newError(ErrBadNumber, "at least one cancel required")
	}
	wires := make([]cancelByCloidWire, 0, len(cancels))
	for _, cancel := range cancels {
		asset, err := c.ResolveAsset(ctx, Perp, cancel.Coin)
		if err != nil {
			return nil, err
		}
		wires = append(wires, cancelByCloidWire{Asset: asset.ID, Cloid: cancel.Cloid.String()})
	}
	action := cancelByCloidAction{Type: "cancelByCloid", Cancels: wires}
	return c.postOrderAction(ctx, "cancelByCloid", action, nil)
}

// ScheduleCancel arms (or with a nil time disarms) the dead-man's-switch
// cancelling all orders at the given millisecond timestamp.
func (c *Client) ScheduleCancel(ctx context.Context, at *int64) (json.RawMessage, error) {
	action := scheduleCancelAction{Type: "scheduleCancel", Time: at}
	return c.postAction(ctx, "scheduleCancel", action)
}

// modifyOid resolves the exactly-one-of oid/cloid identifier.
func modifyOid(req ModifyRequest) (interface{}, error) {
	hasOid := req.Oid != nil
	hasCloid := req.Cloid != nil && !req.Cloid.IsZero()
	if hasOid == hasCloid {
		return nil, newError(ErrBadNumber, "modify requires exactly one of oid or cloid")
	}
	if hasOid {
		return *req.Oid, nil
	}
	return req.Cloid.String(), nil
}

// Modify replaces a resting order. The replacement runs through the same
// normalization pipeline as a new order.
func (c *Client) Modify(ctx context.Context, req ModifyRequest) (*OrderResponse, error) {
	oid, err := modifyOid(req)
	if err != nil {
		return nil, err
	}
	wires, err := c.buildOrderWires(ctx, []OrderRequest{req.Order}, GroupingNA)
	if err != nil {
		return nil, err
	}
	action := modifyAction{Type: "modify", Oid: oid, Order: wires[0]}
	return c.postOrderAction(ctx, "modify", action, nil)
}

// BulkModify replaces several resting orders atomically.
func (c *Client) BulkModify(ctx context.Context, reqs []ModifyRequest) (*OrderResponse, error) {
	if len(reqs) == 0 {
		return nil, newError(ErrBadNumber, "at least one modify required")
	}
	orders := make([]OrderRequest, len(reqs))
	for i, req := range reqs {
		orders[i] = req.Order
	}
	wires, err := c.buildOrderWires(ctx, orders, GroupingNA)
	if err != nil {
		return nil, err
	}
	modifies := make([]modifyWire, len(reqs))
	for i, req := range reqs {
		oid, err := modifyOid(req)
		if err != nil {
			return nil, err
		}
		modifies[i] = modifyWire{Oid: oid, Order: wires[i]}
	}
	action := batchModifyAction{Type: "batchModify", Modifies: modifies}
	return c.postOrderAction(ctx, "batchModify", action, nil)
}

// UpdateLeverage sets the leverage and margin mode for one asset.
func (c *Client) UpdateLeverage(ctx context.Context, coin string, isCross bool, leverage int) (json.RawMessage, error) {
	if leverage < 1 {
		return nil, newError(ErrBadNumber, "leverage %d must be at least 1", leverage)
	}
	asset, err := c.ResolveAsset(ctx, Perp, coin)
	if err != nil {
		return nil, err
	}
	action := updateLeverageAction{
		Type:     "updateLeverage",
		Asset:    asset.ID,
		IsCross:  isCross,
		Leverage: leverage,
	}
	return c.postAction(ctx, "updateLeverage", action)
}

// UpdateIsolatedMargin adds (positive) or removes (negative) isolated margin
// on one asset. The amount is a USD decimal string.
func (c *Client) UpdateIsolatedMargin(ctx context.Context, coin, amount string) (json.RawMessage, error) {
	asset, err := c.ResolveAsset(ctx, Perp, coin)
	if err != nil {
		return nil, err
	}
	ntli, err := usdInt(amount)
	if err != nil {
		return nil, err
	}
	action := updateIsolatedMarginAction{
		Type:  "updateIsolatedMargin",
		Asset: asset.ID,
		IsBuy: true,
		Ntli:  ntli,
	}
	return c.postAction(ctx, "updateIsolatedMargin", action)
}

// ClosePositionParams tunes a market close; the zero value closes the whole
// position at the default slippage.
type ClosePositionParams struct {
	Sz       string
	Slippage string
	Cloid    *Cloid
	Builder  *BuilderFee
}

// ClosePositionMarket closes a perp position with an aggressive IOC order.
// Direction and size are inferred from the live position; a flat position is
// NO_POSITION and nothing is sent.
func (c *Client) ClosePositionMarket(ctx context.Context, coin string, params *ClosePositionParams) (*OrderResponse, error) {
	if params == nil {
		params = &ClosePositionParams{}
	}
	order := OrderRequest{
		Instrument: Perp,
		Coin:       coin,
		Sz:         params.Sz,
		OrderType:  OrderType{Limit: &LimitOrderType{Tif: TifIoc}},
		ReduceOnly: true,
		Cloid:      params.Cloid,
		Slippage:   params.Slippage,
	}
	return c.PlaceOrders(ctx, []OrderRequest{order}, GroupingNA, params.Builder, nil)
}

// ClosePositionLimit closes a perp position with a limit order at the given
// price and time-in-force; direction is inferred from the position sign.
func (c *Client) ClosePositionLimit(ctx context.Context, tif Tif, coin, limitPx string, cloid *Cloid) (*OrderResponse, error) {
	order := OrderRequest{
		Instrument: Perp,
		Coin:       coin,
		LimitPx:    limitPx,
		OrderType:  OrderType{Limit: &LimitOrderType{Tif: tif}},
		ReduceOnly: true,
		Cloid:      cloid,
	}
	return c.Order(ctx, order)
}

// CloseAllPositions closes every open perp position in one bulk order.
// Entries that are flat or carry unparsable sizes are skipped; NO_POSITION
// when nothing remains.
func (c *Client) CloseAllPositions(ctx context.Context) (*OrderResponse, error) {
	snapshot, err := c.positionSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	var orders []OrderRequest
	for symbol, szi := range snapshot {
		size, err := decimal.NewFromString(szi)
		if err != nil || size.IsZero() {
			continue
		}
		isBuy := size.Sign() < 0
		orders = append(orders, OrderRequest{
			Instrument: Perp,
			Coin:       symbol,
			IsBuy:      &isBuy,
			Sz:         size.Abs().String(),
			OrderType:  OrderType{Limit: &LimitOrderType{Tif: TifIoc}},
			ReduceOnly: true,
		})
	}
	if len(orders) == 0 {
		return nil, newError(ErrNoPosition, "no open positions")
	}
	return c.PlaceOrders(ctx, orders, GroupingNA, nil, nil)
}
