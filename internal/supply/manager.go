// Package supply gates all ingredient acquisition through realistic
// ordering constraints: minimum order quantities, bulk discount tiers, a
// cash-payment discount, and per-category delivery lead times. Payment
// clears at order time (pay-on-order, not pay-on-delivery); the only way
// out of a bad order is to let it deliver. Lead times are day-counted and
// never skippable.
package supply

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/economy"
	"github.com/talgya/bakehouse/internal/money"
)

// Order-time validation failures. Surfaced to the player; never retried
// automatically. A failed order creates nothing and debits nothing.
var (
	ErrUnknownVendor     = errors.New("unknown vendor")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrEmptyOrder        = errors.New("order has no line items")
	ErrBelowMinimumOrder = errors.New("below minimum order quantity")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Payer is the cash-paying collaborator debited when an order is placed.
type Payer interface {
	CashOnHand() float64
	PayForOrder(day int, cost float64, memo string) error
}

// Receiver accepts delivered goods into inventory.
type Receiver interface {
	ReceiveIngredient(t catalog.IngredientType, quantity, unitCost float64, day int) error
}

// Config sets ordering rules.
type Config struct {
	LeadTimes    map[catalog.Category]int // delivery days per category
	DefaultLead  int                      // fallback for unlisted categories
	CashDiscount float64                  // flat discount for paying on order
	HistoryCap   int                      // delivered orders retained
}

// DefaultConfig returns lead times and discounts for the standard game.
func DefaultConfig() Config {
	return Config{
		LeadTimes: map[catalog.Category]int{
			catalog.CategoryGrain:   3,
			catalog.CategoryDairy:   1,
			catalog.CategorySweet:   2,
			catalog.CategoryProduce: 1,
			catalog.CategoryDry:     2,
		},
		DefaultLead:  2,
		CashDiscount: 0.02,
		HistoryCap:   100,
	}
}

// Manager owns every order from placement through delivery.
type Manager struct {
	cfg  Config
	cat  *catalog.Catalog
	econ *economy.Conditions

	active      []*Order
	history     []*Order
	nextOrderID uint64
}

// New creates a supply chain manager.
func New(cat *catalog.Catalog, econ *economy.Conditions, cfg Config) *Manager {
	return &Manager{
		cfg:         cfg,
		cat:         cat,
		econ:        econ,
		nextOrderID: 1,
	}
}

// PlaceOrder validates and prices a request, debits the payer, and creates
// a PENDING order maturing after the longest lead time among its lines.
// Any validation failure rejects the whole order with nothing created.
func (m *Manager) PlaceOrder(req Request, day int, payer Payer) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if _, ok := m.cat.Vendor(req.VendorID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVendor, req.VendorID)
	}

	items := make([]LineItem, 0, len(req.Lines))
	subtotal := 0.0
	leadTime := 0
	for _, line := range req.Lines {
		ing, ok := m.cat.Ingredient(line.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.Type)
		}
		if line.Quantity < ing.MinOrderQty {
			return nil, fmt.Errorf("%w: %s needs at least %.1f %s, got %.1f",
				ErrBelowMinimumOrder, line.Type, ing.MinOrderQty, ing.Unit, line.Quantity)
		}

		price, ok := m.econ.IngredientUnitPrice(line.Type, req.VendorID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.Type)
		}
		// Highest qualifying bulk tier wins.
		unitCost := price * (1 - ing.BulkDiscount(line.Quantity))

		items = append(items, LineItem{Type: line.Type, Quantity: line.Quantity, UnitCost: unitCost})
		subtotal += unitCost * line.Quantity

		if lt := m.leadTime(ing.Category); lt > leadTime {
			leadTime = lt
		}
	}

	total := money.RoundCents(subtotal * (1 - m.cfg.CashDiscount))
	if payer.CashOnHand() < total {
		return nil, fmt.Errorf("%w: order costs %.2f, cash %.2f",
			ErrInsufficientFunds, total, payer.CashOnHand())
	}

	memo := fmt.Sprintf("order #%d from %s", m.nextOrderID, req.VendorID)
	if err := payer.PayForOrder(day, total, memo); err != nil {
		return nil, err
	}

	order := &Order{
		ID:                   m.nextOrderID,
		VendorID:             req.VendorID,
		OrderDay:             day,
		EstimatedDeliveryDay: day + leadTime,
		Items:                items,
		Subtotal:             money.RoundCents(subtotal),
		TotalCost:            total,
		Status:               StatusPending,
	}
	m.nextOrderID++
	m.active = append(m.active, order)

	slog.Info("order placed",
		"order_id", order.ID,
		"vendor", order.VendorID,
		"lines", len(order.Items),
		"total", money.Format(order.TotalCost),
		"delivery_day", order.EstimatedDeliveryDay,
	)
	return order, nil
}

// ProcessDeliveries matures every PENDING order whose delivery day has
// arrived, handing each line to the receiver. Each order delivers exactly
// once; calling again the same day is a no-op for delivered orders.
func (m *Manager) ProcessDeliveries(day int, recv Receiver) []*Order {
	var delivered []*Order
	remaining := m.active[:0]
	for _, o := range m.active {
		if o.Status != StatusPending || o.EstimatedDeliveryDay > day {
			remaining = append(remaining, o)
			continue
		}
		o.Status = StatusDelivered
		o.ActualDeliveryDay = day
		for _, item := range o.Items {
			if err := recv.ReceiveIngredient(item.Type, item.Quantity, item.UnitCost, day); err != nil {
				// Items were validated at order time; a failure here means
				// the catalog changed mid-game.
				slog.Error("delivery receipt failed",
					"order_id", o.ID, "ingredient", item.Type, "error", err)
			}
		}
		delivered = append(delivered, o)
		m.archive(o)
	}
	m.active = remaining
	return delivered
}

// PendingOrders returns value copies of the orders still awaiting
// delivery, oldest first. Copies keep observers insulated from the status
// flips ProcessDeliveries applies to the live orders.
func (m *Manager) PendingOrders() []Order {
	out := make([]Order, 0, len(m.active))
	for _, o := range m.active {
		out = append(out, *o)
	}
	return out
}

// DeliveryHistory returns value copies of archived delivered orders,
// oldest first.
func (m *Manager) DeliveryHistory() []Order {
	out := make([]Order, 0, len(m.history))
	for _, o := range m.history {
		out = append(out, *o)
	}
	return out
}

func (m *Manager) archive(o *Order) {
	m.history = append(m.history, o)
	if limit := m.cfg.HistoryCap; limit > 0 && len(m.history) > limit {
		m.history = m.history[len(m.history)-limit:]
	}
}

func (m *Manager) leadTime(cat catalog.Category) int {
	if lt, ok := m.cfg.LeadTimes[cat]; ok {
		return lt
	}
	return m.cfg.DefaultLead
}
