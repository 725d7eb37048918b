package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/economy"
	"github.com/talgya/bakehouse/internal/entropy"
)

// fakePayer records payments without a full ledger behind it.
type fakePayer struct {
	cash float64
	paid []float64
}

func (p *fakePayer) CashOnHand() float64 { return p.cash }

func (p *fakePayer) PayForOrder(day int, cost float64, memo string) error {
	p.cash -= cost
	p.paid = append(p.paid, cost)
	return nil
}

// fakeReceiver records received goods.
type fakeReceiver struct {
	received map[catalog.IngredientType]float64
	calls    int
}

func (r *fakeReceiver) ReceiveIngredient(t catalog.IngredientType, quantity, unitCost float64, day int) error {
	if r.received == nil {
		r.received = make(map[catalog.IngredientType]float64)
	}
	r.received[t] += quantity
	r.calls++
	return nil
}

// newTestManager builds a manager over an untouched market, so every
// ingredient prices at its base rate.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cat := catalog.Default()
	econ := economy.New(cat, economy.DefaultConfig(), 1, entropy.NewSeeded(1))
	return New(cat, econ, DefaultConfig())
}

func TestPlaceOrderFlourLeadTime(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}

	order, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 1, order.OrderDay)
	// Grain carries a three-day lead time.
	assert.Equal(t, 4, order.EstimatedDeliveryDay)

	// 100 lb at $0.45 hits the 10% bulk tier; 2% cash discount on top.
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 0.405, order.Items[0].UnitCost, 1e-9)
	assert.InDelta(t, 40.50, order.Subtotal, 1e-9)
	assert.InDelta(t, 39.69, order.TotalCost, 1e-9)

	// Pay-on-order: cash left the payer at placement.
	assert.InDelta(t, 50000-39.69, payer.cash, 1e-9)
	require.Len(t, m.PendingOrders(), 1)
}

func TestPlaceOrderRejectsBelowMinimum(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}

	// FLOUR_AP requires at least 25 lb; the salt line alone would be fine,
	// but one bad line rejects the whole order.
	_, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines: []RequestLine{
			{Type: "SALT", Quantity: 5},
			{Type: "FLOUR_AP", Quantity: 10},
		},
	}, 1, payer)
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)
	assert.Empty(t, m.PendingOrders())
	assert.Empty(t, payer.paid)
}

func TestPlaceOrderRejectsInsufficientFunds(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 10}

	_, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.InDelta(t, 10, payer.cash, 1e-9)
	assert.Empty(t, m.PendingOrders())
}

func TestPlaceOrderRejectsBadReferences(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}

	_, err := m.PlaceOrder(Request{VendorID: "RESTAURANT_DEPOT"}, 1, payer)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = m.PlaceOrder(Request{
		VendorID: "AMAZON",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	assert.ErrorIs(t, err, ErrUnknownVendor)

	_, err = m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "SAFFRON", Quantity: 100}},
	}, 1, payer)
	assert.ErrorIs(t, err, ErrUnknownIngredient)
}

func TestVendorPriceMultiplierApplies(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}

	// SYSCO charges 8% over base: 0.45 x 1.08 = 0.486, rounded to 0.49,
	// then the 10% bulk tier.
	order, err := m.PlaceOrder(Request{
		VendorID: "SYSCO",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	require.NoError(t, err)
	assert.InDelta(t, 0.49*0.90, order.Items[0].UnitCost, 1e-9)
}

func TestMixedOrderUsesLongestLeadTime(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}

	// Dairy delivers next day, grain in three; the order waits for grain.
	order, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines: []RequestLine{
			{Type: "BUTTER", Quantity: 10},
			{Type: "FLOUR_AP", Quantity: 25},
		},
	}, 5, payer)
	require.NoError(t, err)
	assert.Equal(t, 8, order.EstimatedDeliveryDay)
}

func TestProcessDeliveriesMaturesOnTime(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}
	recv := &fakeReceiver{}

	order, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	require.NoError(t, err)

	// Days 2 and 3: still in transit.
	assert.Empty(t, m.ProcessDeliveries(2, recv))
	assert.Empty(t, m.ProcessDeliveries(3, recv))
	assert.Zero(t, recv.calls)

	delivered := m.ProcessDeliveries(4, recv)
	require.Len(t, delivered, 1)
	assert.Equal(t, StatusDelivered, delivered[0].Status)
	assert.Equal(t, 4, delivered[0].ActualDeliveryDay)
	assert.Equal(t, order.ID, delivered[0].ID)
	assert.InDelta(t, 100, recv.received["FLOUR_AP"], 1e-9)

	assert.Empty(t, m.PendingOrders())
	require.Len(t, m.DeliveryHistory(), 1)
}

func TestProcessDeliveriesIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}
	recv := &fakeReceiver{}

	_, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 100}},
	}, 1, payer)
	require.NoError(t, err)

	first := m.ProcessDeliveries(4, recv)
	second := m.ProcessDeliveries(4, recv)

	assert.Len(t, first, 1)
	assert.Empty(t, second)
	// Goods landed exactly once.
	assert.InDelta(t, 100, recv.received["FLOUR_AP"], 1e-9)
	assert.Equal(t, 1, recv.calls)
}

func TestDeliveryHistoryIsCapped(t *testing.T) {
	cat := catalog.Default()
	econ := economy.New(cat, economy.DefaultConfig(), 1, entropy.NewSeeded(1))
	cfg := DefaultConfig()
	cfg.HistoryCap = 3
	m := New(cat, econ, cfg)

	payer := &fakePayer{cash: 50000}
	recv := &fakeReceiver{}
	for day := 1; day <= 5; day++ {
		_, err := m.PlaceOrder(Request{
			VendorID: "RESTAURANT_DEPOT",
			Lines:    []RequestLine{{Type: "BUTTER", Quantity: 5}},
		}, day, payer)
		require.NoError(t, err)
		m.ProcessDeliveries(day+1, recv)
	}

	history := m.DeliveryHistory()
	require.Len(t, history, 3)
	assert.Equal(t, uint64(3), history[0].ID)
	assert.Equal(t, uint64(5), history[2].ID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestManager(t)
	payer := &fakePayer{cash: 50000}
	recv := &fakeReceiver{}

	_, err := m.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "BUTTER", Quantity: 5}},
	}, 1, payer)
	require.NoError(t, err)
	m.ProcessDeliveries(2, recv)

	_, err = m.PlaceOrder(Request{
		VendorID: "SYSCO",
		Lines:    []RequestLine{{Type: "FLOUR_AP", Quantity: 25}},
	}, 2, payer)
	require.NoError(t, err)

	cat := catalog.Default()
	econ := economy.New(cat, economy.DefaultConfig(), 1, entropy.NewSeeded(1))
	restored := New(cat, econ, DefaultConfig())
	restored.Restore(m.Snapshot())

	require.Len(t, restored.PendingOrders(), 1)
	assert.Equal(t, m.PendingOrders()[0].ID, restored.PendingOrders()[0].ID)
	require.Len(t, restored.DeliveryHistory(), 1)

	// The restored manager continues order numbering and delivers the
	// pending order on schedule.
	delivered := restored.ProcessDeliveries(5, recv)
	assert.Len(t, delivered, 1)
	next, err := restored.PlaceOrder(Request{
		VendorID: "RESTAURANT_DEPOT",
		Lines:    []RequestLine{{Type: "SALT", Quantity: 2}},
	}, 5, payer)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), next.ID)
}
