package hyperliquid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserState_ParsesPositions(t *testing.T) {
	stub := newStubAPI(t)
	stub.setPositions(ethShort("-2.5"))
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	state, err := client.UserState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000.0", state.MarginSummary.AccountValue)
	assert.Equal(t, "500.0", state.Withdrawable)
	require.Len(t, state.AssetPositions, 1)
	assert.Equal(t, "ETH", state.AssetPositions[0].Position.Coin)
	assert.Equal(t, "-2.5", state.AssetPositions[0].Position.Szi)
}

func TestUserState_FreshPerCall(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.UserState(context.Background())
	require.NoError(t, err)
	_, err = client.UserState(context.Background())
	require.NoError(t, err)

	info, _ := stub.counts()
	assert.Equal(t, 2, info, "position reads are never cached")
}

func TestUserStateFor_RejectsBadAddress(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	_, err := client.UserStateFor(context.Background(), "not-an-address")
	assert.True(t, IsKind(err, ErrBadAddress))
	info, _ := stub.counts()
	assert.Zero(t, info)
}

func TestAccountValue(t *testing.T) {
	stub := newStubAPI(t)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	value, err := client.AccountValue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1000.0", value)
}

func TestPositionSnapshot_CanonicalKeys(t *testing.T) {
	stub := newStubAPI(t)
	stub.setPositions(
		ethShort("-2.5"),
		AssetPosition{Type: "oneWay", Position: Position{Coin: "BTC", Szi: "0.01"}},
	)
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	snapshot, err := client.positionSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ETH": "-2.5", "BTC": "0.01"}, snapshot)
}

func TestSignedSizeFrom(t *testing.T) {
	snapshot := map[string]string{"ETH": "-2.5", "DOGE": "not-a-number"}

	szi, err := signedSizeFrom(snapshot, "eth")
	require.NoError(t, err)
	assert.Equal(t, "-2.5", szi.String())

	szi, err = signedSizeFrom(snapshot, "BTC")
	require.NoError(t, err)
	assert.True(t, szi.IsZero(), "missing symbol reads as flat")

	_, err = signedSizeFrom(snapshot, "DOGE")
	assert.True(t, IsKind(err, ErrBadPosition))
}

func TestSignedPosition(t *testing.T) {
	stub := newStubAPI(t)
	stub.setPositions(ethShort("1.25"))
	server := stub.server()
	defer server.Close()
	client := newTestClient(t, server.URL)

	szi, err := client.signedPosition(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Equal(t, "1.25", szi.String())
}
