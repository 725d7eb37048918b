// Package autopilot implements an autonomous shopkeeper. It observes the
// bakery via the read API, decides a day plan from par-level rules, and
// acts through the command endpoints.
package autopilot

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ShopSnapshot holds all data collected during an observation cycle.
type ShopSnapshot struct {
	Status    ShopStatus    `json:"status"`
	Inventory InventoryData `json:"inventory"`
	Orders    OrdersData    `json:"orders"`
	Economy   EconomyData   `json:"economy"`
}

// ShopStatus mirrors GET /api/v1/status.
type ShopStatus struct {
	Name      string  `json:"name"`
	Day       int     `json:"day"`
	Hour      float64 `json:"hour"`
	Phase     string  `json:"phase"`
	Season    string  `json:"season"`
	Speed     float64 `json:"speed"`
	Running   bool    `json:"running"`
	Cash      float64 `json:"cash"`
	NetWorth  float64 `json:"net_worth"`
	Customers int     `json:"customers"`
	LostSales int     `json:"lost_sales"`
	ItemsSold int     `json:"items_sold"`
}

// RawLevel is one raw-ingredient stock line from the inventory endpoint.
type RawLevel struct {
	Type    string  `json:"type"`
	Stock   float64 `json:"stock"`
	Batches int     `json:"batches"`
}

// FinishedLevel is one finished-goods stock line.
type FinishedLevel struct {
	Recipe  string `json:"recipe"`
	Stock   int    `json:"stock"`
	Batches int    `json:"batches"`
}

// InventoryData mirrors GET /api/v1/inventory.
type InventoryData struct {
	Raw        []RawLevel      `json:"raw"`
	Finished   []FinishedLevel `json:"finished"`
	TotalValue float64         `json:"total_value"`
}

// OrderLine is one line of a pending order.
type OrderLine struct {
	Type     string  `json:"ingredient_type"`
	Quantity float64 `json:"quantity"`
}

// PendingOrder is one in-transit order from the orders endpoint.
type PendingOrder struct {
	OrderID              uint64      `json:"order_id"`
	VendorID             string      `json:"vendor_id"`
	EstimatedDeliveryDay int         `json:"estimated_delivery_day"`
	Items                []OrderLine `json:"line_items"`
}

// OrdersData mirrors GET /api/v1/orders.
type OrdersData struct {
	Pending []PendingOrder `json:"pending"`
}

// EconomyData mirrors GET /api/v1/economy.
type EconomyData struct {
	Day              int                `json:"day"`
	Season           string             `json:"season"`
	Multipliers      map[string]float64 `json:"multipliers"`
	DemandMultiplier float64            `json:"demand_multiplier"`
}

// Observer fetches bakery state from the API.
type Observer struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewObserver creates an Observer targeting the given API base URL.
func NewObserver(baseURL string) *Observer {
	return &Observer{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Observe fetches all four endpoints and returns a ShopSnapshot.
func (o *Observer) Observe() (*ShopSnapshot, error) {
	snap := &ShopSnapshot{}

	if err := o.fetchJSON("/api/v1/status", &snap.Status); err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	if err := o.fetchJSON("/api/v1/inventory", &snap.Inventory); err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	if err := o.fetchJSON("/api/v1/orders", &snap.Orders); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	if err := o.fetchJSON("/api/v1/economy", &snap.Economy); err != nil {
		return nil, fmt.Errorf("fetch economy: %w", err)
	}

	return snap, nil
}

// RawStock returns the observed on-hand quantity for an ingredient.
func (s *ShopSnapshot) RawStock(ingredient string) float64 {
	for _, r := range s.Inventory.Raw {
		if r.Type == ingredient {
			return r.Stock
		}
	}
	return 0
}

// FinishedStock returns the observed on-hand quantity for a recipe.
func (s *ShopSnapshot) FinishedStock(recipe string) int {
	for _, f := range s.Inventory.Finished {
		if f.Recipe == recipe {
			return f.Stock
		}
	}
	return 0
}

// OnOrder returns the quantity of an ingredient already bought and in
// transit, so the planner does not double-order during a lead time.
func (s *ShopSnapshot) OnOrder(ingredient string) float64 {
	total := 0.0
	for _, o := range s.Orders.Pending {
		for _, item := range o.Items {
			if item.Type == ingredient {
				total += item.Quantity
			}
		}
	}
	return total
}

// fetchJSON GETs a path and decodes the JSON response into target.
func (o *Observer) fetchJSON(path string, target any) error {
	resp, err := o.HTTPClient.Get(o.BaseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
