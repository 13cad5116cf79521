package hyperliquid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAsset_Perp(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	asset, err := client.ResolveAsset(context.Background(), Perp, "ETH")
	require.NoError(t, err)
	assert.Equal(t, 1, asset.ID)
	assert.Equal(t, 4, asset.SzDecimals)
	assert.Equal(t, Perp, asset.Instrument)
}

func TestResolveAsset_CaseInsensitive(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	for _, symbol := range []string{"eth", "Eth", " ETH ", "ETH"} {
		asset, err := client.ResolveAsset(context.Background(), Perp, symbol)
		require.NoError(t, err, "symbol %q", symbol)
		assert.Equal(t, 1, asset.ID)
	}
}

func TestResolveAsset_SpotOffset(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	asset, err := client.ResolveAsset(context.Background(), Spot, "PURR/USDC")
	require.NoError(t, err)
	assert.Equal(t, 10000, asset.ID)
	// szDecimals follow the base token (PURR)
	assert.Equal(t, 0, asset.SzDecimals)
}

func TestResolveAsset_Unknown(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.ResolveAsset(context.Background(), Perp, "NOPE")
	assert.True(t, IsKind(err, ErrUnknownSymbol))

	_, err = client.ResolveAsset(context.Background(), Perp, "")
	assert.True(t, IsKind(err, ErrUnknownSymbol))
}

func TestResolveAsset_CachedAfterFirstLoad(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.ResolveAsset(context.Background(), Perp, "BTC")
	require.NoError(t, err)
	infoBefore, _ := stub.counts()

	_, err = client.ResolveAsset(context.Background(), Perp, "SOL")
	require.NoError(t, err)
	infoAfter, _ := stub.counts()
	assert.Equal(t, infoBefore, infoAfter, "second lookup must hit the cache")
}

func TestMidOrError_RefreshOnMiss(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	mid, err := client.midOrError(context.Background(), "eth")
	require.NoError(t, err)
	assert.Equal(t, "3000.04", mid)

	_, err = client.midOrError(context.Background(), "NOPE")
	assert.True(t, IsKind(err, ErrUnknownSymbol))
}

func TestWarmUp_PrimesCaches(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	client.WarmUp(context.Background())
	info, _ := stub.counts()
	assert.Equal(t, 3, info, "perp meta, spot meta, mids")

	// cached lookups afterwards issue no further requests
	_, err := client.ResolveAsset(context.Background(), Perp, "BTC")
	require.NoError(t, err)
	_, err = client.midOrError(context.Background(), "BTC")
	require.NoError(t, err)
	infoAfter, _ := stub.counts()
	assert.Equal(t, info, infoAfter)
}

func TestWarmUp_BestEffort(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	client := newTestClient(t, server.URL)
	server.Close()

	// must not panic or error with the API unreachable
	client.WarmUp(context.Background())

	// lazy loading still works once the API is back
	recovered := newStubAPI(t)
	recoveredServer := recovered.server()
	defer recoveredServer.Close()
	client.baseURL = recoveredServer.URL
	client.transport.baseURL = recoveredServer.URL

	asset, err := client.ResolveAsset(context.Background(), Perp, "ETH")
	require.NoError(t, err)
	assert.Equal(t, 1, asset.ID)
}
