package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/costing"
	"github.com/talgya/bakehouse/internal/economy"
	"github.com/talgya/bakehouse/internal/entropy"
	"github.com/talgya/bakehouse/internal/ledger"
	"github.com/talgya/bakehouse/internal/sim"
	"github.com/talgya/bakehouse/internal/supply"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat := catalog.Default()
	rng := entropy.NewSeeded(1)
	econ := economy.New(cat, economy.DefaultConfig(), 1, rng)
	inv := costing.New(cat)
	chain := supply.New(cat, econ, supply.DefaultConfig())
	books := ledger.New(ledger.DefaultConfig())
	bakery := sim.New(sim.DefaultConfig(), cat, econ, inv, chain, books, rng)
	return &Server{
		Bakery:   bakery,
		Clock:    sim.NewClock(bakery),
		Port:     0,
		AdminKey: "test-key",
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["day"])
	assert.Equal(t, string(sim.PhasePurchasing), body["phase"])
	assert.EqualValues(t, 50000, body["cash"])
	assert.NotContains(t, body, "final")
}

func TestAdminOnlyRejectsBadToken(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(s.handleOpenShop)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/open", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/shop/open", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/shop/open", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sim.PhaseSalesFloor, s.Bakery.Phase())
}

func TestAdminOnlyDisabledWithoutKey(t *testing.T) {
	s := newTestServer(t)
	s.AdminKey = ""
	handler := s.adminOnly(s.handleOpenShop)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shop/open", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPurchaseEndpoint(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(map[string]any{
		"vendor": "RESTAURANT_DEPOT",
		"lines": []map[string]any{
			{"ingredient": "FLOUR_AP", "quantity": 100},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handlePurchase(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Accepted bool `json:"accepted"`
		Order    struct {
			EstimatedDeliveryDay int `json:"estimated_delivery_day"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Accepted)
	assert.Equal(t, 4, body.Order.EstimatedDeliveryDay)
}

func TestPurchaseEndpointRejectionIsReported(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(map[string]any{
		"vendor": "RESTAURANT_DEPOT",
		"lines": []map[string]any{
			{"ingredient": "FLOUR_AP", "quantity": 1}, // below 25 lb minimum
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/purchase", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	s.handlePurchase(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Accepted bool   `json:"accepted"`
		Reason   string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Accepted)
	assert.NotEmpty(t, body.Reason)
	// The refused command left the game in its prior state.
	assert.Empty(t, s.Bakery.SupplyChain().PendingOrders())
}

func TestSpeedEndpointBounds(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/speed",
		bytes.NewReader([]byte(`{"speed": 10}`)))
	rec := httptest.NewRecorder()
	s.handleSpeed(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 10, s.Clock.Speed(), 1e-9)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/speed",
		bytes.NewReader([]byte(`{"speed": 5000}`)))
	rec = httptest.NewRecorder()
	s.handleSpeed(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.InDelta(t, 10, s.Clock.Speed(), 1e-9)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	// Other clients have their own budget.
	assert.True(t, rl.Allow("5.6.7.8"))
}
