package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jmendoza/cryptowallet-backend/internal/adapter/repository/memory"
	"github.com/jmendoza/cryptowallet-backend/internal/domain"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/client"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/portfolio"
	"github.com/jmendoza/cryptowallet-backend/internal/usecase/transaction"
)

// stubPriceSource quotes fixed ask/bid prices per asset; unknown assets are
// unavailable
type stubPriceSource struct {
	ask map[string]decimal.Decimal
	bid map[string]decimal.Decimal
}

func (s *stubPriceSource) GetPrice(_ context.Context, assetCode string, direction domain.Direction) (decimal.Decimal, error) {
	prices := s.ask
	if direction == domain.DirectionSale {
		prices = s.bid
	}
	price, ok := prices[domain.NormalizeAssetCode(assetCode)]
	if !ok {
		return decimal.Zero, domain.ErrPriceUnavailable
	}
	return price, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	clientRepo := memory.NewClientRepository(store)
	txRepo := memory.NewTransactionRepository(store)
	prices := &stubPriceSource{
		ask: map[string]decimal.Decimal{
			"btc": decimal.NewFromInt(50000),
			"eth": decimal.NewFromInt(2000),
		},
		bid: map[string]decimal.Decimal{
			"btc": decimal.NewFromInt(49500),
			"eth": decimal.NewFromInt(1980),
		},
	}

	server := NewServer(
		client.NewService(clientRepo),
		transaction.NewService(clientRepo, txRepo, prices),
		portfolio.NewService(clientRepo, txRepo, prices),
		zap.NewNop(),
	)

	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func createTestClient(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/clients", map[string]string{
		"name":  "Ana Lopez",
		"email": "ana.lopez@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestCreateTransaction_EndToEnd(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", map[string]interface{}{
		"clientId":     clientID,
		"cryptoCode":   "BTC",
		"action":       "Purchase",
		"cryptoAmount": "0.5",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "btc", body["cryptoCode"])
	assert.Equal(t, "purchase", body["action"])
	assert.Equal(t, "25000.00", body["money"])
	assert.Equal(t, "Ana Lopez", body["clientName"])
}

func TestCreateTransaction_InsufficientHoldingsIsBadRequest(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", map[string]interface{}{
		"clientId":     clientID,
		"cryptoCode":   "btc",
		"action":       "sale",
		"cryptoAmount": "1",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "insufficient")
}

func TestCreateTransaction_PriceUnavailableIsBadRequest(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", map[string]interface{}{
		"clientId":     clientID,
		"cryptoCode":   "doge", // not quoted by the stub
		"action":       "purchase",
		"cryptoAmount": "1",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "price unavailable")
}

func TestTransactionLifecycle_UpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	_, purchase := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", map[string]interface{}{
		"clientId":     clientID,
		"cryptoCode":   "eth",
		"action":       "purchase",
		"cryptoAmount": "2",
	})
	txID := purchase["id"].(string)

	// edit the purchase down to 1.5 eth
	resp, updated := doJSON(t, http.MethodPut, ts.URL+"/api/transactions/"+txID, map[string]interface{}{
		"cryptoCode":   "eth",
		"action":       "purchase",
		"cryptoAmount": "1.5",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.5", updated["cryptoAmount"])
	assert.Equal(t, txID, updated["id"])

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/transactions/"+txID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/transactions/"+txID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPortfolio_OmitsSoldAndUnpricedAssets(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	for _, intent := range []map[string]interface{}{
		{"cryptoCode": "btc", "action": "purchase", "cryptoAmount": "1"},
		{"cryptoCode": "eth", "action": "purchase", "cryptoAmount": "2"},
		{"cryptoCode": "eth", "action": "sale", "cryptoAmount": "2"}, // sold down to zero
	} {
		intent["clientId"] = clientID
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", intent)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/portfolio/"+clientID, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "btc", item["cryptoCode"])
	assert.Equal(t, "50000", body["total"])
}

func TestDeleteClient_BlockedWhileOwningTransactions(t *testing.T) {
	ts := newTestServer(t)
	clientID := createTestClient(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", map[string]interface{}{
		"clientId":     clientID,
		"cryptoCode":   "btc",
		"action":       "purchase",
		"cryptoAmount": "1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodDelete, ts.URL+"/api/clients/"+clientID, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "cannot be deleted")
}

func TestUnknownClient_IsNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/portfolio/6f1f64a5-54cd-4a52-9036-7e6a0ea80ba4", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/clients/6f1f64a5-54cd-4a52-9036-7e6a0ea80ba4", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
