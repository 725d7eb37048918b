// Package sim drives the bakery simulation: it owns the daily phase
// machine, spawns customer demand against finished stock, sweeps
// expirations at hour boundaries, and applies day/month boundary
// accounting. All engine state is mutated from a single update path per
// tick; within a tick the order is fixed: boundary detection, then
// customer simulation, then metrics resync.
package sim

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/costing"
	"github.com/talgya/bakehouse/internal/economy"
	"github.com/talgya/bakehouse/internal/entropy"
	"github.com/talgya/bakehouse/internal/ledger"
	"github.com/talgya/bakehouse/internal/money"
	"github.com/talgya/bakehouse/internal/supply"
)

// Config tunes the orchestrator.
type Config struct {
	BaseCustomersPerDay float64 // customers on an average day before modifiers
	SecondsPerHour      float64 // real seconds per simulated hour at speed 1
	OpenHour            int     // shop opens (24h clock)
	CloseHour           int     // shop auto-closes
	MaxItemsPerCustomer int
	DaysPerMonth        int
	MonthsToWin         int     // win checked once this many months elapsed
	MonthlyExpenses     float64 // rent, wages, utilities
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		BaseCustomersPerDay: 80,
		SecondsPerHour:      60,
		OpenHour:            7,
		CloseHour:           19,
		MaxItemsPerCustomer: 3,
		DaysPerMonth:        30,
		MonthsToWin:         12,
		MonthlyExpenses:     3500,
	}
}

// DayStats aggregates one trading day for reporting.
type DayStats struct {
	Customers int     `json:"customers"`
	LostSales int     `json:"lost_sales"`
	ItemsSold int     `json:"items_sold"`
	Revenue   float64 `json:"revenue"`
	COGS      float64 `json:"cogs"`
	Shrinkage float64 `json:"shrinkage"`
}

// FinalReport is the financial snapshot frozen at a terminal phase.
type FinalReport struct {
	Outcome        string  `json:"outcome"` // "bankrupt" or "victory"
	Day            int     `json:"day"`
	Month          int     `json:"month"`
	CashOnHand     float64 `json:"cash_on_hand"`
	InventoryValue float64 `json:"inventory_value"`
	NetWorth       float64 `json:"net_worth"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCOGS      float64 `json:"total_cogs"`
	TotalShrinkage float64 `json:"total_shrinkage"`
}

// Bakery wires the engine components together and runs the day cycle.
// A single mutex serializes the clock goroutine against HTTP callers:
// every exported command takes it, and observers hold it via View.
type Bakery struct {
	mu sync.Mutex

	cfg   Config
	cat   *catalog.Catalog
	econ  *economy.Conditions
	inv   *costing.Engine
	chain *supply.Manager
	books *ledger.Ledger
	rng   entropy.Source

	events *Events

	phase         Phase
	day           int
	hour          float64 // fractional clock hour within the day
	customerAccum float64
	today         DayStats
	finalReport   *FinalReport
}

// New wires a bakery from its collaborators and opens day 1 in the
// purchasing phase.
func New(cfg Config, cat *catalog.Catalog, econ *economy.Conditions,
	inv *costing.Engine, chain *supply.Manager, books *ledger.Ledger,
	rng entropy.Source) *Bakery {

	b := &Bakery{
		cfg:    cfg,
		cat:    cat,
		econ:   econ,
		inv:    inv,
		chain:  chain,
		books:  books,
		rng:    rng,
		events: &Events{},
		phase:  PhasePurchasing,
		day:    1,
	}
	econ.AdvanceDay(1)
	return b
}

// Events returns the subscription surface for presentation layers.
func (b *Bakery) Events() *Events { return b.events }

// ledgerPayer adapts the ledger to the supply chain's Payer contract.
type ledgerPayer struct {
	books *ledger.Ledger
}

func (p ledgerPayer) CashOnHand() float64 { return p.books.CashOnHand() }

func (p ledgerPayer) PayForOrder(day int, cost float64, memo string) error {
	return p.books.PurchaseSupplies(ledger.Purchase{Day: day, Cost: cost, Memo: memo})
}

// Purchase places a supply order with a vendor. Allowed before the shop
// opens; the order matures after its lead time regardless of anything the
// player does.
func (b *Bakery) Purchase(req supply.Request) (*supply.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhasePurchasing && b.phase != PhaseProduction {
		return nil, fmt.Errorf("%w: purchase during %s", ErrWrongPhase, b.phase)
	}
	o, err := b.chain.PlaceOrder(req, b.day, ledgerPayer{books: b.books})
	if err != nil {
		return nil, err
	}
	// Copy while the lock is held; the live order keeps mutating as it
	// matures through the delivery pipeline.
	cp := *o
	return &cp, nil
}

// Produce bakes a quantity of a recipe from raw stock.
func (b *Bakery) Produce(id catalog.RecipeID, quantity int) (costing.FinishedBatch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhasePurchasing && b.phase != PhaseProduction {
		return costing.FinishedBatch{}, fmt.Errorf("%w: produce during %s", ErrWrongPhase, b.phase)
	}
	batch, err := b.inv.Produce(id, quantity, b.day)
	if err != nil {
		// A rejected bake leaves the game where it was, phase included.
		return costing.FinishedBatch{}, err
	}
	b.phase = PhaseProduction
	b.events.emitProductionComplete(ProductionComplete{
		Day:      b.day,
		Recipe:   id,
		Quantity: batch.Quantity,
		UnitCOGS: batch.UnitCOGS,
	})
	return batch, nil
}

// OpenShop starts the sales floor for the current day.
func (b *Bakery) OpenShop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhasePurchasing && b.phase != PhaseProduction {
		return fmt.Errorf("%w: open shop during %s", ErrWrongPhase, b.phase)
	}
	b.phase = PhaseSalesFloor
	b.hour = float64(b.cfg.OpenHour)
	b.customerAccum = 0
	slog.Info("shop open", "day", b.day, "season", b.econ.CurrentSeason().Name(),
		"demand", fmt.Sprintf("%.2f", b.econ.DemandMultiplier()))
	return nil
}

// CloseShop ends the sales floor and runs the day summary, including
// day-boundary and month-boundary accounting.
func (b *Bakery) CloseShop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseSalesFloor {
		return fmt.Errorf("%w: close shop during %s", ErrWrongPhase, b.phase)
	}
	b.finalizeDay()
	return nil
}

// NextDay advances from the day summary into the next day's purchasing
// phase: the economy moves one day, matured orders deliver, and the day
// stats reset.
func (b *Bakery) NextDay() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseDaySummary {
		return fmt.Errorf("%w: next day during %s", ErrWrongPhase, b.phase)
	}
	b.day++
	b.econ.AdvanceDay(b.day)
	b.today = DayStats{}
	b.hour = 0
	b.phase = PhasePurchasing
	b.processDeliveries()
	return nil
}

// AdvanceTick advances the sales floor by elapsed wall-clock seconds.
// Boundary work runs before customer simulation so expirations are swept
// before new sales hit possibly-stale stock. A no-op outside SALES_FLOOR.
func (b *Bakery) AdvanceTick(elapsedSeconds float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.phase != PhaseSalesFloor || elapsedSeconds <= 0 {
		return
	}

	from := b.hour
	b.hour += elapsedSeconds / b.cfg.SecondsPerHour

	// Hour boundary: sweep expirations before anything sells.
	if int(b.hour) > int(from) {
		b.sweepExpired()
	}

	b.accumulateCustomers(from, b.hour)

	if b.hour >= float64(b.cfg.CloseHour) {
		b.finalizeDay()
	}
}

// processDeliveries matures pending orders into the costing engine and
// resyncs the ledger's inventory valuation.
func (b *Bakery) processDeliveries() {
	delivered := b.chain.ProcessDeliveries(b.day, b.inv)
	for _, o := range delivered {
		b.events.emitOrderDelivered(OrderDelivered{
			Day:      b.day,
			OrderID:  o.ID,
			VendorID: o.VendorID,
			Lines:    len(o.Items),
			Total:    o.TotalCost,
		})
		slog.Info("order delivered", "day", b.day, "order_id", o.ID,
			"vendor", o.VendorID, "total", money.Format(o.TotalCost))
	}
	if len(delivered) > 0 {
		b.books.SyncInventoryValue(b.inv.TotalInventoryValue())
	}
}

// sweepExpired removes expired batches and writes each off as shrinkage.
func (b *Bakery) sweepExpired() {
	for _, s := range b.inv.ExpireAndSweep(b.day) {
		b.books.WriteOffShrinkage(ledger.Shrinkage{
			Day:      b.day,
			Item:     s.Item,
			Quantity: s.Quantity,
			Value:    s.Value,
		})
		b.today.Shrinkage += s.Value
		b.events.emitShrinkageDetected(ShrinkageDetected{
			Day:      b.day,
			Item:     s.Item,
			Finished: s.Finished,
			Quantity: s.Quantity,
			Value:    s.Value,
		})
	}
}

// finalizeDay stamps the day's results, resyncs valuation, and applies
// day- and month-boundary checks. Terminal phases freeze a final report.
func (b *Bakery) finalizeDay() {
	b.phase = PhaseDaySummary

	// Day boundary: authoritative valuation resync, then solvency.
	b.books.SyncInventoryValue(b.inv.TotalInventoryValue())

	slog.Info("daily report",
		"day", b.day,
		"season", b.econ.CurrentSeason().Name(),
		"customers", b.today.Customers,
		"lost_sales", b.today.LostSales,
		"items_sold", b.today.ItemsSold,
		"revenue", money.Format(b.today.Revenue),
		"cogs", money.Format(b.today.COGS),
		"shrinkage", money.Format(b.today.Shrinkage),
		"cash", money.Format(b.books.CashOnHand()),
		"net_worth", money.Format(b.books.NetWorth()),
	)

	b.events.emitDayClosed(DayClosed{
		Day:        b.day,
		Customers:  b.today.Customers,
		LostSales:  b.today.LostSales,
		ItemsSold:  b.today.ItemsSold,
		Revenue:    b.today.Revenue,
		COGS:       b.today.COGS,
		Shrinkage:  b.today.Shrinkage,
		CashOnHand: b.books.CashOnHand(),
		NetWorth:   b.books.NetWorth(),
	})

	if b.books.IsBankrupt() {
		b.terminate(PhaseGameOver, "bankrupt")
		return
	}

	if b.day%b.cfg.DaysPerMonth == 0 {
		b.closeMonth()
	}
}

// closeMonth deducts fixed expenses, re-checks solvency, and evaluates the
// win condition once the configured month count has elapsed.
func (b *Bakery) closeMonth() {
	month := b.day / b.cfg.DaysPerMonth
	paid, shortfall := b.books.DeductMonthlyExpenses(ledger.ExpenseCharge{
		Day:    b.day,
		Month:  month,
		Amount: b.cfg.MonthlyExpenses,
	})
	if shortfall > 0 {
		slog.Warn("monthly expenses short-paid",
			"month", month, "paid", money.Format(paid), "short", money.Format(shortfall))
	} else {
		slog.Info("monthly expenses paid", "month", month, "amount", money.Format(paid))
	}

	if month >= b.cfg.MonthsToWin && b.books.HasWon() {
		b.terminate(PhaseVictory, "victory")
		return
	}
	if b.books.IsBankrupt() {
		b.terminate(PhaseGameOver, "bankrupt")
		return
	}

	b.books.AdvanceMonth(month + 1)
	slog.Info("month closed",
		"month", month,
		"gross_margin", fmt.Sprintf("%.3f", b.books.GrossMargin()),
		"inventory_turnover", fmt.Sprintf("%.2f", b.books.InventoryTurnover()),
	)
}

// terminate freezes the final report and enters a terminal phase.
func (b *Bakery) terminate(phase Phase, outcome string) {
	b.phase = phase
	b.finalReport = &FinalReport{
		Outcome:        outcome,
		Day:            b.day,
		Month:          b.books.CurrentMonth(),
		CashOnHand:     money.RoundCents(b.books.CashOnHand()),
		InventoryValue: money.RoundCents(b.books.InventoryValue()),
		NetWorth:       money.RoundCents(b.books.NetWorth()),
		TotalRevenue:   money.RoundCents(b.books.TotalRevenue()),
		TotalCOGS:      money.RoundCents(b.books.TotalCOGS()),
		TotalShrinkage: money.RoundCents(b.books.TotalShrinkage()),
	}
	slog.Info("game over",
		"outcome", outcome,
		"day", b.day,
		"net_worth", money.Format(b.finalReport.NetWorth),
	)
}

func (b *Bakery) dayOfWeek() int {
	return economy.DayOfWeek(b.day)
}

// View runs fn with the engine lock held so the caller gets a consistent
// read across the orchestrator and its components. The accessors below do
// not synchronize on their own; any goroutine racing the clock must read
// through View. Event handlers already run with the lock held and must
// not call View (or any exported command) from inside a handler.
func (b *Bakery) View(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

// Phase returns the current phase.
func (b *Bakery) Phase() Phase { return b.phase }

// Day returns the current 1-based day number.
func (b *Bakery) Day() int { return b.day }

// Hour returns the fractional clock hour within the current day.
func (b *Bakery) Hour() float64 { return b.hour }

// Today returns the running stats for the current day.
func (b *Bakery) Today() DayStats { return b.today }

// FinalReport returns the frozen terminal snapshot, or nil while playing.
func (b *Bakery) Final() *FinalReport { return b.finalReport }

// Ledger exposes the financial state for read-only observation.
func (b *Bakery) Ledger() *ledger.Ledger { return b.books }

// Inventory exposes the costing engine for read-only observation.
func (b *Bakery) Inventory() *costing.Engine { return b.inv }

// SupplyChain exposes the order book for read-only observation.
func (b *Bakery) SupplyChain() *supply.Manager { return b.chain }

// Economy exposes the market simulator for read-only observation.
func (b *Bakery) Economy() *economy.Conditions { return b.econ }

// Catalog exposes the reference data.
func (b *Bakery) Catalog() *catalog.Catalog { return b.cat }
