package hyperliquid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOrders(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	orders, err := client.OpenOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ETH", orders[0].Coin)
	assert.Equal(t, int64(77), orders[0].Oid)
	assert.Equal(t, "B", orders[0].Side)
	assert.Equal(t, "2990.0", orders[0].LimitPx)
}

func TestL2Snapshot(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	book, err := client.L2Snapshot(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Equal(t, "ETH", book.Coin)
	require.Len(t, book.Levels[0], 1)
	assert.Equal(t, "2999.9", book.Levels[0][0].Px, "bids first")
	assert.Equal(t, "3000.1", book.Levels[1][0].Px)
}

func TestQueryOrderByOid(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	raw, err := client.QueryOrderByOid(context.Background(), 77)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"order"`)
}

func TestQueryOrderByCloid(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	raw, err := client.QueryOrderByCloid(context.Background(), CloidFromInt(7))
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestSubAccounts_RejectsBadAddress(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.SubAccounts(context.Background(), "nope")
	assert.True(t, IsKind(err, ErrBadAddress))
}

func TestGetVaultDetails_RejectsBadAddresses(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.GetVaultDetails(context.Background(), "nope", "")
	assert.True(t, IsKind(err, ErrBadAddress))

	_, err = client.GetVaultDetails(context.Background(), testVault, "nope")
	assert.True(t, IsKind(err, ErrBadAddress))
}
