// Snapshot round-tripping for the persistence layer.
package ledger

// Snapshot is the serializable form of the financial state.
type Snapshot struct {
	CashOnHand       float64       `json:"cash_on_hand"`
	InventoryValue   float64       `json:"inventory_value"`
	MonthlyRevenue   float64       `json:"monthly_revenue"`
	MonthlyCOGS      float64       `json:"monthly_cogs"`
	MonthlyExpenses  float64       `json:"monthly_expenses"`
	TotalRevenue     float64       `json:"total_revenue"`
	TotalCOGS        float64       `json:"total_cogs"`
	TotalShrinkage   float64       `json:"total_shrinkage"`
	CurrentMonth     int           `json:"current_month"`
	LastShortfall    float64       `json:"last_shortfall"`
	Transactions     []Transaction `json:"transactions"`
	InventoryHistory []float64     `json:"inventory_value_history"`
}

// Snapshot captures the current financial state.
func (l *Ledger) Snapshot() Snapshot {
	return Snapshot{
		CashOnHand:       l.cashOnHand,
		InventoryValue:   l.inventoryValue,
		MonthlyRevenue:   l.monthlyRevenue,
		MonthlyCOGS:      l.monthlyCOGS,
		MonthlyExpenses:  l.monthlyExpenses,
		TotalRevenue:     l.totalRevenue,
		TotalCOGS:        l.totalCOGS,
		TotalShrinkage:   l.totalShrinkage,
		CurrentMonth:     l.currentMonth,
		LastShortfall:    l.lastShortfall,
		Transactions:     append([]Transaction(nil), l.transactions...),
		InventoryHistory: append([]float64(nil), l.inventoryHistory...),
	}
}

// Restore replaces the current financial state with a snapshot.
func (l *Ledger) Restore(s Snapshot) {
	l.cashOnHand = s.CashOnHand
	l.inventoryValue = s.InventoryValue
	l.monthlyRevenue = s.MonthlyRevenue
	l.monthlyCOGS = s.MonthlyCOGS
	l.monthlyExpenses = s.MonthlyExpenses
	l.totalRevenue = s.TotalRevenue
	l.totalCOGS = s.TotalCOGS
	l.totalShrinkage = s.TotalShrinkage
	l.currentMonth = s.CurrentMonth
	if l.currentMonth < 1 {
		l.currentMonth = 1
	}
	l.lastShortfall = s.LastShortfall
	l.transactions = append([]Transaction(nil), s.Transactions...)
	l.inventoryHistory = append([]float64(nil), s.InventoryHistory...)
}
