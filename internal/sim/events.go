// Typed publish/subscribe surface for presentation layers. Each event name
// maps to exactly one payload shape, checked at compile time.
package sim

import "github.com/talgya/bakehouse/internal/catalog"

// CustomerPurchase is emitted for every completed sale on the floor.
type CustomerPurchase struct {
	Day      int              `json:"day"`
	Hour     int              `json:"hour"`
	Recipe   catalog.RecipeID `json:"recipe_id"`
	Quantity int              `json:"quantity"`
	Price    float64          `json:"price"`
	COGS     float64          `json:"cogs"`
}

// ProductionComplete is emitted when a bake finishes.
type ProductionComplete struct {
	Day      int              `json:"day"`
	Recipe   catalog.RecipeID `json:"recipe_id"`
	Quantity int              `json:"quantity"`
	UnitCOGS float64          `json:"unit_cogs"`
}

// ShrinkageDetected is emitted for every expired batch swept.
type ShrinkageDetected struct {
	Day      int     `json:"day"`
	Item     string  `json:"item"`
	Finished bool    `json:"finished"`
	Quantity float64 `json:"quantity"`
	Value    float64 `json:"value"`
}

// OrderDelivered is emitted when a pending supply order matures.
type OrderDelivered struct {
	Day      int     `json:"day"`
	OrderID  uint64  `json:"order_id"`
	VendorID string  `json:"vendor_id"`
	Lines    int     `json:"lines"`
	Total    float64 `json:"total"`
}

// DayClosed is emitted when a trading day wraps up.
type DayClosed struct {
	Day        int     `json:"day"`
	Customers  int     `json:"customers"`
	LostSales  int     `json:"lost_sales"`
	ItemsSold  int     `json:"items_sold"`
	Revenue    float64 `json:"revenue"`
	COGS       float64 `json:"cogs"`
	Shrinkage  float64 `json:"shrinkage"`
	CashOnHand float64 `json:"cash_on_hand"`
	NetWorth   float64 `json:"net_worth"`
}

// Events fans simulation events out to registered handlers. Registration is
// not synchronized; wire all handlers before the simulation starts.
type Events struct {
	customerPurchase   []func(CustomerPurchase)
	productionComplete []func(ProductionComplete)
	shrinkageDetected  []func(ShrinkageDetected)
	orderDelivered     []func(OrderDelivered)
	dayClosed          []func(DayClosed)
}

// OnCustomerPurchase registers a sale handler.
func (e *Events) OnCustomerPurchase(fn func(CustomerPurchase)) {
	e.customerPurchase = append(e.customerPurchase, fn)
}

// OnProductionComplete registers a bake-finished handler.
func (e *Events) OnProductionComplete(fn func(ProductionComplete)) {
	e.productionComplete = append(e.productionComplete, fn)
}

// OnShrinkageDetected registers an expiration handler.
func (e *Events) OnShrinkageDetected(fn func(ShrinkageDetected)) {
	e.shrinkageDetected = append(e.shrinkageDetected, fn)
}

// OnOrderDelivered registers a delivery handler.
func (e *Events) OnOrderDelivered(fn func(OrderDelivered)) {
	e.orderDelivered = append(e.orderDelivered, fn)
}

// OnDayClosed registers an end-of-day handler.
func (e *Events) OnDayClosed(fn func(DayClosed)) {
	e.dayClosed = append(e.dayClosed, fn)
}

func (e *Events) emitCustomerPurchase(ev CustomerPurchase) {
	for _, fn := range e.customerPurchase {
		fn(ev)
	}
}

func (e *Events) emitProductionComplete(ev ProductionComplete) {
	for _, fn := range e.productionComplete {
		fn(ev)
	}
}

func (e *Events) emitShrinkageDetected(ev ShrinkageDetected) {
	for _, fn := range e.shrinkageDetected {
		fn(ev)
	}
}

func (e *Events) emitOrderDelivered(ev OrderDelivered) {
	for _, fn := range e.orderDelivered {
		fn(ev)
	}
}

func (e *Events) emitDayClosed(ev DayClosed) {
	for _, fn := range e.dayClosed {
		fn(ev)
	}
}
