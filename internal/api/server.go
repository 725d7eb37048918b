// Package api provides the HTTP API for observing and steering the bakery.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (player/admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/money"
	"github.com/talgya/bakehouse/internal/persistence"
	"github.com/talgya/bakehouse/internal/sim"
	"github.com/talgya/bakehouse/internal/supply"
)

// Server serves the bakery state over HTTP.
type Server struct {
	Bakery   *sim.Bakery
	Clock    *sim.Clock
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	// Mutating command endpoints get a modest per-IP budget.
	commandLimiter := NewRateLimiter(120, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the shop).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/ledger", s.handleLedger)
	mux.HandleFunc("/api/v1/kpis", s.handleKPIs)
	mux.HandleFunc("/api/v1/inventory", s.handleInventory)
	mux.HandleFunc("/api/v1/orders", s.handleOrders)
	mux.HandleFunc("/api/v1/economy", s.handleEconomy)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Command endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/purchase", s.adminOnly(RateLimitMiddleware(commandLimiter, s.handlePurchase)))
	mux.HandleFunc("/api/v1/produce", s.adminOnly(RateLimitMiddleware(commandLimiter, s.handleProduce)))
	mux.HandleFunc("/api/v1/shop/open", s.adminOnly(s.handleOpenShop))
	mux.HandleFunc("/api/v1/shop/close", s.adminOnly(s.handleCloseShop))
	mux.HandleFunc("/api/v1/day/next", s.adminOnly(s.handleNextDay))
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/snapshot", s.adminOnly(s.handleSnapshot))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkBearerToken returns true if the request has a valid admin bearer token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly wraps a handler to require bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "command endpoints disabled (no BAKEHOUSE_ADMIN_KEY set)", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	b := s.Bakery
	var status map[string]any
	b.View(func() {
		today := b.Today()
		status = map[string]any{
			"name":       "Bakehouse",
			"day":        b.Day(),
			"hour":       b.Hour(),
			"phase":      b.Phase(),
			"season":     b.Economy().CurrentSeason().Name(),
			"speed":      s.Clock.Speed(),
			"running":    s.Clock.Running(),
			"cash":       money.RoundCents(b.Ledger().CashOnHand()),
			"net_worth":  money.RoundCents(b.Ledger().NetWorth()),
			"customers":  today.Customers,
			"lost_sales": today.LostSales,
			"items_sold": today.ItemsSold,
		}
		if final := b.Final(); final != nil {
			status["final"] = final
		}
	})
	writeJSON(w, status)
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	led := s.Bakery.Ledger()
	var payload map[string]any
	s.Bakery.View(func() {
		payload = map[string]any{
			"cash_on_hand":     money.RoundCents(led.CashOnHand()),
			"inventory_value":  money.RoundCents(led.InventoryValue()),
			"net_worth":        money.RoundCents(led.NetWorth()),
			"monthly_revenue":  money.RoundCents(led.MonthlyRevenue()),
			"monthly_cogs":     money.RoundCents(led.MonthlyCOGS()),
			"monthly_expenses": money.RoundCents(led.MonthlyExpenses()),
			"total_revenue":    money.RoundCents(led.TotalRevenue()),
			"total_cogs":       money.RoundCents(led.TotalCOGS()),
			"total_shrinkage":  money.RoundCents(led.TotalShrinkage()),
			"current_month":    led.CurrentMonth(),
			"transactions":     led.Transactions(),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	led := s.Bakery.Ledger()
	var payload map[string]any
	s.Bakery.View(func() {
		payload = map[string]any{
			"gross_margin":       led.GrossMargin(),
			"inventory_turnover": led.InventoryTurnover(),
			"net_worth":          money.RoundCents(led.NetWorth()),
			"bankrupt":           led.IsBankrupt(),
			"won":                led.HasWon(),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	b := s.Bakery
	inv := b.Inventory()

	type rawEntry struct {
		Type    catalog.IngredientType `json:"type"`
		Stock   float64                `json:"stock"`
		Batches int                    `json:"batches"`
	}
	type finishedEntry struct {
		Recipe  catalog.RecipeID `json:"recipe"`
		Stock   int              `json:"stock"`
		Batches int              `json:"batches"`
	}

	var payload map[string]any
	b.View(func() {
		var raw []rawEntry
		for _, t := range b.Catalog().IngredientTypes() {
			batches := inv.RawBatches(t)
			if len(batches) == 0 {
				continue
			}
			raw = append(raw, rawEntry{Type: t, Stock: inv.Stock(t), Batches: len(batches)})
		}
		var finished []finishedEntry
		for _, id := range b.Catalog().RecipeIDs() {
			batches := inv.FinishedBatches(id)
			if len(batches) == 0 {
				continue
			}
			finished = append(finished, finishedEntry{Recipe: id, Stock: inv.FinishedStock(id), Batches: len(batches)})
		}
		payload = map[string]any{
			"raw":         raw,
			"finished":    finished,
			"total_value": money.RoundCents(inv.TotalInventoryValue()),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	chain := s.Bakery.SupplyChain()
	var payload map[string]any
	s.Bakery.View(func() {
		payload = map[string]any{
			"pending":   chain.PendingOrders(),
			"delivered": chain.DeliveryHistory(),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleEconomy(w http.ResponseWriter, r *http.Request) {
	b := s.Bakery
	econ := b.Economy()

	var payload map[string]any
	b.View(func() {
		multipliers := make(map[string]float64)
		for _, t := range b.Catalog().IngredientTypes() {
			multipliers[string(t)] = econ.Multiplier(t)
		}
		payload = map[string]any{
			"day":               econ.Day(),
			"season":            econ.CurrentSeason().Name(),
			"inflation":         econ.InflationState(),
			"multipliers":       multipliers,
			"market":            econ.MarketConditions(),
			"active_events":     econ.ActiveEvents(),
			"demand_multiplier": econ.DemandMultiplier(),
			"history":           econ.History(),
		}
	})
	writeJSON(w, payload)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.Bakery.Catalog()

	var ingredients []catalog.Ingredient
	for _, t := range cat.IngredientTypes() {
		if ing, ok := cat.Ingredient(t); ok {
			ingredients = append(ingredients, ing)
		}
	}
	var recipes []catalog.Recipe
	for _, id := range cat.RecipeIDs() {
		if rec, ok := cat.Recipe(id); ok {
			recipes = append(recipes, rec)
		}
	}

	writeJSON(w, map[string]any{
		"ingredients": ingredients,
		"recipes":     recipes,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeJSON(w, []persistence.Event{})
		return
	}
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	events, err := s.DB.RecentEvents(limit)
	if err != nil {
		slog.Error("event query failed", "error", err)
		http.Error(w, "event query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Vendor string `json:"vendor"`
		Lines  []struct {
			Ingredient string  `json:"ingredient"`
			Quantity   float64 `json:"quantity"`
		} `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	order := supply.Request{VendorID: req.Vendor}
	for _, line := range req.Lines {
		order.Lines = append(order.Lines, supply.RequestLine{
			Type:     catalog.IngredientType(line.Ingredient),
			Quantity: line.Quantity,
		})
	}

	placed, err := s.Bakery.Purchase(order)
	if err != nil {
		writeJSON(w, map[string]any{"accepted": false, "reason": err.Error()})
		return
	}
	writeJSON(w, map[string]any{"accepted": true, "order": placed})
}

func (s *Server) handleProduce(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Recipe   string `json:"recipe"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	batch, err := s.Bakery.Produce(catalog.RecipeID(req.Recipe), req.Quantity)
	if err != nil {
		writeJSON(w, map[string]any{"accepted": false, "reason": err.Error()})
		return
	}
	writeJSON(w, map[string]any{"accepted": true, "batch": batch})
}

func (s *Server) handleOpenShop(w http.ResponseWriter, r *http.Request) {
	s.handleCommand(w, r, s.Bakery.OpenShop)
}

func (s *Server) handleCloseShop(w http.ResponseWriter, r *http.Request) {
	s.handleCommand(w, r, s.Bakery.CloseShop)
}

func (s *Server) handleNextDay(w http.ResponseWriter, r *http.Request) {
	s.handleCommand(w, r, s.Bakery.NextDay)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request, cmd func() error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := cmd(); err != nil {
		writeJSON(w, map[string]any{"accepted": false, "reason": err.Error()})
		return
	}
	var phase sim.Phase
	s.Bakery.View(func() { phase = s.Bakery.Phase() })
	writeJSON(w, map[string]any{"accepted": true, "phase": phase})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 1000 {
			http.Error(w, "speed must be 0-1000", http.StatusBadRequest)
			return
		}
		s.Clock.SetSpeed(req.Speed)
		slog.Info("speed changed", "speed", req.Speed)
	}

	writeJSON(w, map[string]float64{"speed": s.Clock.Speed()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}

	// The save walks every component snapshot; hold the engine lock so the
	// clock cannot mutate state mid-walk.
	var saveErr error
	var day int
	s.Bakery.View(func() {
		saveErr = s.DB.SaveGame(s.Bakery)
		day = s.Bakery.Day()
	})
	if saveErr != nil {
		slog.Error("snapshot save failed", "error", saveErr)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"day":     day,
		"message": "snapshot saved",
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
