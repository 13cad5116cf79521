package hyperliquid

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Throwaway key, same as the hardhat test account.
const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// stubAPI fakes the info and exchange endpoints.
type stubAPI struct {
	t *testing.T

	mu               sync.Mutex
	infoCalls        int
	exchangeCalls    int
	lastExchangeBody []byte

	mids           map[string]string
	positions      []AssetPosition
	exchangeStatus int
	exchangeBody   string
}

func newStubAPI(t *testing.T) *stubAPI {
	return &stubAPI{
		t: t,
		mids: map[string]string{
			"BTC": "97000.0",
			"ETH": "3000.04",
			"SOL": "150.0",
		},
		exchangeStatus: http.StatusOK,
		exchangeBody:   `{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":77}}]}}}`,
	}
}

func (s *stubAPI) setPositions(positions ...AssetPosition) {
	s.mu.Lock()
	s.positions = positions
	s.mu.Unlock()
}

func (s *stubAPI) counts() (info, exchange int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoCalls, s.exchangeCalls
}

func (s *stubAPI) lastAction(t *testing.T) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.lastExchangeBody, "no exchange request captured")
	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(s.lastExchangeBody, &req))
	return req
}

func (s *stubAPI) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))

		switch r.URL.Path {
		case "/info":
			s.mu.Lock()
			s.infoCalls++
			s.mu.Unlock()
			s.serveInfo(w, body)
		case "/exchange":
			s.mu.Lock()
			s.exchangeCalls++
			raw, _ := json.Marshal(body)
			s.lastExchangeBody = raw
			status := s.exchangeStatus
			resp := s.exchangeBody
			s.mu.Unlock()
			w.WriteHeader(status)
			_, _ = w.Write([]byte(resp))
		default:
			http.NotFound(w, r)
		}
	}))
}

func (s *stubAPI) serveInfo(w http.ResponseWriter, body map[string]interface{}) {
	switch body["type"] {
	case "meta":
		_, _ = w.Write([]byte(`{"universe":[
			{"name":"BTC","szDecimals":5,"maxLeverage":50},
			{"name":"ETH","szDecimals":4,"maxLeverage":50},
			{"name":"SOL","szDecimals":2,"maxLeverage":20}]}`))
	case "spotMeta":
		_, _ = w.Write([]byte(`{
			"universe":[{"name":"PURR/USDC","tokens":[1,0],"index":0}],
			"tokens":[
				{"name":"USDC","szDecimals":8,"weiDecimals":8,"index":0},
				{"name":"PURR","szDecimals":0,"weiDecimals":5,"index":1}]}`))
	case "allMids":
		s.mu.Lock()
		mids := s.mids
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(mids)
	case "openOrders":
		_, _ = w.Write([]byte(`[
			{"coin":"ETH","oid":77,"side":"B","limitPx":"2990.0","sz":"1.5","timestamp":1700000000000},
			{"coin":"BTC","oid":78,"side":"A","limitPx":"99000.0","sz":"0.01","timestamp":1700000000001}]`))
	case "orderStatus":
		_, _ = w.Write([]byte(`{"status":"order","order":{"order":{"coin":"ETH","oid":77},"status":"open"}}`))
	case "l2Book":
		_, _ = w.Write([]byte(`{"coin":"ETH","time":1700000000000,"levels":[
			[{"px":"2999.9","sz":"10.0","n":3}],
			[{"px":"3000.1","sz":"8.0","n":2}]]}`))
	case "clearinghouseState":
		s.mu.Lock()
		positions := s.positions
		s.mu.Unlock()
		state := ClearinghouseState{
			MarginSummary:  MarginSummary{AccountValue: "1000.0"},
			Withdrawable:   "500.0",
			AssetPositions: positions,
			Time:           1700000000000,
		}
		_ = json.NewEncoder(w).Encode(state)
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

func newTestClient(t *testing.T, baseURL string, opts ...ClientOption) *Client {
	base := time.UnixMilli(1700000000000)
	var mu sync.Mutex
	calls := int64(0)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}
	all := append([]ClientOption{WithBaseURL(baseURL), WithClock(clock)}, opts...)
	client, err := NewClient(testPrivateKey, true, all...)
	require.NoError(t, err)
	return client
}

func boolPtr(b bool) *bool { return &b }

func int64Ptr(n int64) *int64 { return &n }
