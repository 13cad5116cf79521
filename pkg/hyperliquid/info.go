package hyperliquid

import (
	"context"
	"encoding/json"
)

// OpenOrders lists the resting orders of the primary address.
func (c *Client) OpenOrders(ctx context.Context) ([]OpenOrder, error) {
	var out []OpenOrder
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "openOrders", User: c.infoAddress()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FrontendOpenOrders lists resting orders with frontend annotations (trigger
// conditions, order kinds). The payload varies by order type, so the raw
// document is returned.
func (c *Client) FrontendOpenOrders(ctx context.Context) (json.RawMessage, error) {
	return c.transport.post(ctx, infoPath, infoRequest{Type: "frontendOpenOrders", User: c.infoAddress()})
}

// UserFills lists recent fills for the primary address.
func (c *Client) UserFills(ctx context.Context) ([]Fill, error) {
	var out []Fill
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "userFills", User: c.infoAddress()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubAccounts lists the sub-accounts of a master address.
func (c *Client) SubAccounts(ctx context.Context, user string) ([]SubAccount, error) {
	address, err := normalizeAddress(user)
	if err != nil {
		return nil, err
	}
	var out []SubAccount
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "subAccounts", User: address}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVaultDetails describes a vault, optionally scoped to one depositor.
func (c *Client) GetVaultDetails(ctx context.Context, vaultAddress, user string) (*VaultDetails, error) {
	address, err := normalizeAddress(vaultAddress)
	if err != nil {
		return nil, err
	}
	req := infoRequest{Type: "vaultDetails", VaultAddress: address}
	if user != "" {
		if req.User, err = normalizeAddress(user); err != nil {
			return nil, err
		}
	}
	var out VaultDetails
	if err := c.transport.postJSON(ctx, infoPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetReferral reports the referral state of the primary address.
func (c *Client) GetReferral(ctx context.Context) (*Referral, error) {
	var out Referral
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "referral", User: c.infoAddress()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// L2Snapshot fetches the current book for one coin.
func (c *Client) L2Snapshot(ctx context.Context, coin string) (*L2Book, error) {
	var out L2Book
	if err := c.transport.postJSON(ctx, infoPath, infoRequest{Type: "l2Book", Coin: coin}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryOrderByOid fetches the status of one order by exchange order id.
func (c *Client) QueryOrderByOid(ctx context.Context, oid int64) (json.RawMessage, error) {
	return c.transport.post(ctx, infoPath, infoRequest{Type: "orderStatus", User: c.infoAddress(), Oid: &oid})
}

// QueryOrderByCloid fetches the status of one order by client order id.
func (c *Client) QueryOrderByCloid(ctx context.Context, cloid Cloid) (json.RawMessage, error) {
	return c.transport.post(ctx, infoPath, infoRequest{Type: "orderStatus", User: c.infoAddress(), Cloid: cloid.String()})
}
