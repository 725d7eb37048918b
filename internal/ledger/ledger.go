// Package ledger is the single source of truth for solvency. It keeps
// double-entry style cash/inventory/revenue bookkeeping over scalar values:
// every mutation moves cash and inventory in paired steps so that
// netWorth == cashOnHand + inventoryValue holds in every reachable state.
// Inventory composition lives in the costing engine; the ledger tracks only
// its valuation and is resynced from it at day boundaries.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInsufficientCash rejects a purchase larger than the cash on hand.
var ErrInsufficientCash = errors.New("insufficient cash")

// TransactionType tags entries in the append-only log.
type TransactionType string

const (
	TxPurchase        TransactionType = "PURCHASE"
	TxSale            TransactionType = "SALE"
	TxShrinkage       TransactionType = "SHRINKAGE"
	TxMonthlyExpenses TransactionType = "MONTHLY_EXPENSES"
)

// Transaction is one entry in the capped transaction log. CashDelta is the
// signed cash movement; InventoryDelta the signed inventory-value movement.
type Transaction struct {
	ID             string          `json:"id"`
	Type           TransactionType `json:"type"`
	Day            int             `json:"day"`
	CashDelta      float64         `json:"cash_delta"`
	InventoryDelta float64         `json:"inventory_delta"`
	Memo           string          `json:"memo"`
}

// Config sets the financial rules of the game.
type Config struct {
	StartingCash        float64
	BankruptcyThreshold float64 // net worth below this is game over
	WinThreshold        float64
	TransactionCap      int // ring-buffer size of the retained log
	HistoryWindow       int // trailing inventory-value snapshots for turnover
}

// DefaultConfig returns the standard scenario.
func DefaultConfig() Config {
	return Config{
		StartingCash:        50000,
		BankruptcyThreshold: 0,
		WinThreshold:        150000,
		TransactionCap:      500,
		HistoryWindow:       30,
	}
}

// Purchase records cash spent on supplies. The caller resyncs
// inventoryValue from the costing engine after delivery.
type Purchase struct {
	Day  int
	Cost float64
	Memo string
}

// Sale records one completed customer sale.
type Sale struct {
	Day      int
	Item     string
	Quantity int
	Price    float64
	COGS     float64
}

// Shrinkage records an expired-inventory write-off. No cash moves; that is
// what distinguishes shrinkage from a sale.
type Shrinkage struct {
	Day      int
	Item     string
	Quantity float64
	Value    float64
}

// ExpenseCharge records a monthly fixed-expense deduction.
type ExpenseCharge struct {
	Day    int
	Month  int
	Amount float64
}

// Ledger holds the financial state for one game session.
type Ledger struct {
	cfg Config

	cashOnHand     float64
	inventoryValue float64

	monthlyRevenue  float64
	monthlyCOGS     float64
	monthlyExpenses float64

	totalRevenue   float64
	totalCOGS      float64
	totalShrinkage float64

	currentMonth     int
	lastShortfall    float64
	transactions     []Transaction
	inventoryHistory []float64
}

// New creates a ledger with the configured starting cash.
func New(cfg Config) *Ledger {
	return &Ledger{
		cfg:          cfg,
		cashOnHand:   cfg.StartingCash,
		currentMonth: 1,
	}
}

// PurchaseSupplies debits cash for an order. Inventory value is resynced by
// the caller once goods land in the costing engine.
func (l *Ledger) PurchaseSupplies(p Purchase) error {
	if l.cashOnHand < p.Cost {
		return fmt.Errorf("%w: need %.2f have %.2f", ErrInsufficientCash, p.Cost, l.cashOnHand)
	}
	l.cashOnHand -= p.Cost
	l.append(Transaction{
		Type:      TxPurchase,
		Day:       p.Day,
		CashDelta: -p.Cost,
		Memo:      p.Memo,
	})
	return nil
}

// RecordSale credits cash and relieves inventory at cost. The costing
// engine authorized the sale; no validation happens here.
func (l *Ledger) RecordSale(s Sale) {
	l.cashOnHand += s.Price
	l.inventoryValue -= s.COGS
	l.monthlyRevenue += s.Price
	l.monthlyCOGS += s.COGS
	l.totalRevenue += s.Price
	l.totalCOGS += s.COGS
	l.append(Transaction{
		Type:           TxSale,
		Day:            s.Day,
		CashDelta:      s.Price,
		InventoryDelta: -s.COGS,
		Memo:           fmt.Sprintf("%dx %s", s.Quantity, s.Item),
	})
}

// WriteOffShrinkage removes expired inventory value with no cash movement.
func (l *Ledger) WriteOffShrinkage(s Shrinkage) {
	l.inventoryValue -= s.Value
	l.totalShrinkage += s.Value
	l.append(Transaction{
		Type:           TxShrinkage,
		Day:            s.Day,
		InventoryDelta: -s.Value,
		Memo:           fmt.Sprintf("%.2f %s expired", s.Quantity, s.Item),
	})
}

// DeductMonthlyExpenses pays fixed expenses, partially if cash runs out.
// Expenses are never skipped, only short-paid; the shortfall is recorded
// and can cascade into bankruptcy at the next check.
func (l *Ledger) DeductMonthlyExpenses(e ExpenseCharge) (paid, shortfall float64) {
	paid = e.Amount
	if l.cashOnHand < e.Amount {
		paid = l.cashOnHand
		shortfall = e.Amount - paid
	}
	l.cashOnHand -= paid
	l.monthlyExpenses += paid
	l.lastShortfall = shortfall
	memo := fmt.Sprintf("month %d fixed expenses", e.Month)
	if shortfall > 0 {
		memo = fmt.Sprintf("month %d fixed expenses (short %.2f)", e.Month, shortfall)
	}
	l.append(Transaction{
		Type:      TxMonthlyExpenses,
		Day:       e.Day,
		CashDelta: -paid,
		Memo:      memo,
	})
	return paid, shortfall
}

// SyncInventoryValue replaces the scalar inventory valuation with the
// costing engine's authoritative figure and snapshots it for the
// turnover window.
func (l *Ledger) SyncInventoryValue(v float64) {
	l.inventoryValue = v
	l.inventoryHistory = append(l.inventoryHistory, v)
	if w := l.cfg.HistoryWindow; w > 0 && len(l.inventoryHistory) > w {
		l.inventoryHistory = l.inventoryHistory[len(l.inventoryHistory)-w:]
	}
}

// AdvanceMonth resets the monthly accumulators for a new month.
func (l *Ledger) AdvanceMonth(month int) {
	l.currentMonth = month
	l.monthlyRevenue = 0
	l.monthlyCOGS = 0
	l.monthlyExpenses = 0
}

// NetWorth is the accounting identity the whole engine pivots on.
func (l *Ledger) NetWorth() float64 {
	return l.cashOnHand + l.inventoryValue
}

// IsBankrupt reports whether net worth fell below the threshold.
func (l *Ledger) IsBankrupt() bool {
	return l.NetWorth() < l.cfg.BankruptcyThreshold
}

// HasWon reports whether net worth reached the victory threshold.
func (l *Ledger) HasWon() bool {
	return l.NetWorth() >= l.cfg.WinThreshold
}

// GrossMargin is (revenue - COGS) / revenue over the whole session.
func (l *Ledger) GrossMargin() float64 {
	if l.totalRevenue == 0 {
		return 0
	}
	return (l.totalRevenue - l.totalCOGS) / l.totalRevenue
}

// InventoryTurnover is total COGS over the trailing mean inventory value.
func (l *Ledger) InventoryTurnover() float64 {
	if len(l.inventoryHistory) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range l.inventoryHistory {
		sum += v
	}
	avg := sum / float64(len(l.inventoryHistory))
	if avg == 0 {
		return 0
	}
	return l.totalCOGS / avg
}

// CashOnHand returns the current cash balance.
func (l *Ledger) CashOnHand() float64 { return l.cashOnHand }

// InventoryValue returns the tracked scalar inventory valuation.
func (l *Ledger) InventoryValue() float64 { return l.inventoryValue }

// MonthlyRevenue returns revenue accumulated this month.
func (l *Ledger) MonthlyRevenue() float64 { return l.monthlyRevenue }

// MonthlyCOGS returns cost of goods sold this month.
func (l *Ledger) MonthlyCOGS() float64 { return l.monthlyCOGS }

// MonthlyExpenses returns fixed expenses paid this month.
func (l *Ledger) MonthlyExpenses() float64 { return l.monthlyExpenses }

// TotalRevenue returns session revenue.
func (l *Ledger) TotalRevenue() float64 { return l.totalRevenue }

// TotalCOGS returns session cost of goods sold.
func (l *Ledger) TotalCOGS() float64 { return l.totalCOGS }

// TotalShrinkage returns session expired-inventory write-offs.
func (l *Ledger) TotalShrinkage() float64 { return l.totalShrinkage }

// CurrentMonth returns the 1-based month counter.
func (l *Ledger) CurrentMonth() int { return l.currentMonth }

// LastShortfall returns the unpaid portion of the most recent expense run.
func (l *Ledger) LastShortfall() float64 { return l.lastShortfall }

// Transactions returns a copy of the retained transaction log, oldest
// first.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) append(tx Transaction) {
	tx.ID = uuid.NewString()
	l.transactions = append(l.transactions, tx)
	if limit := l.cfg.TransactionCap; limit > 0 && len(l.transactions) > limit {
		l.transactions = l.transactions[len(l.transactions)-limit:]
	}
}
