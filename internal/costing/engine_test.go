package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/bakehouse/internal/catalog"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(catalog.Default())
}

func TestReceiveIngredient(t *testing.T) {
	e := newTestEngine(t)

	err := e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1)
	require.NoError(t, err)

	assert.InDelta(t, 100, e.Stock("FLOUR_AP"), 1e-9)

	batches := e.RawBatches("FLOUR_AP")
	require.Len(t, batches, 1)
	assert.Equal(t, uint64(1), batches[0].ID)
	assert.Equal(t, 1, batches[0].PurchaseDay)
	// FLOUR_AP keeps for 180 days.
	assert.Equal(t, 181, batches[0].ExpirationDay)
}

func TestReceiveIngredientRejectsBadInput(t *testing.T) {
	e := newTestEngine(t)

	err := e.ReceiveIngredient("PLUTONIUM", 10, 1.0, 1)
	assert.ErrorIs(t, err, ErrUnknownIngredient)

	err = e.ReceiveIngredient("FLOUR_AP", -5, 0.45, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Zero(t, e.Stock("FLOUR_AP"))
}

func TestConsumeDrainsOldestBatchFirst(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 10, 0.40, 1))
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 10, 0.50, 2))

	// 15 lb spans both batches: all 10 of the older, 5 of the newer.
	cost, err := e.Consume("FLOUR_AP", 15)
	require.NoError(t, err)
	assert.InDelta(t, 10*0.40+5*0.50, cost, 1e-9)

	batches := e.RawBatches("FLOUR_AP")
	require.Len(t, batches, 1)
	assert.InDelta(t, 5, batches[0].Quantity, 1e-9)
	assert.InDelta(t, 0.50, batches[0].UnitCost, 1e-9)
	assert.InDelta(t, 5, e.Stock("FLOUR_AP"), 1e-9)
}

func TestConsumeInsufficientStockLeavesBatchesUntouched(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 10, 0.40, 1))
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 5, 0.50, 2))
	before := e.RawBatches("FLOUR_AP")

	_, err := e.Consume("FLOUR_AP", 20)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	after := e.RawBatches("FLOUR_AP")
	assert.Equal(t, before, after)
	assert.InDelta(t, 15, e.Stock("FLOUR_AP"), 1e-9)
}

func TestProduceBasicBread(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))

	batch, err := e.Produce("BASIC_BREAD", 10, 2)
	require.NoError(t, err)

	// 10 loaves x (1.2 lb flour + 0.02 lb yeast + 0.03 lb salt).
	wantCost := 12*0.45 + 0.2*4.80 + 0.3*0.80
	assert.InDelta(t, wantCost/10, batch.UnitCOGS, 1e-9)
	assert.Equal(t, 10, batch.Quantity)
	assert.Equal(t, 2, batch.ProductionDay)
	// Bread keeps one day.
	assert.Equal(t, 3, batch.ExpirationDay)

	assert.InDelta(t, 88, e.Stock("FLOUR_AP"), 1e-9)
	assert.Equal(t, 10, e.FinishedStock("BASIC_BREAD"))
}

func TestProduceShortfallConsumesNothing(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	// No yeast, no salt.

	_, err := e.Produce("BASIC_BREAD", 10, 1)
	assert.ErrorIs(t, err, ErrInsufficientIngredients)

	// The flour queue must be byte-for-byte untouched.
	assert.InDelta(t, 100, e.Stock("FLOUR_AP"), 1e-9)
	require.Len(t, e.RawBatches("FLOUR_AP"), 1)
	assert.Zero(t, e.FinishedStock("BASIC_BREAD"))
}

func TestProduceRejectsUnknownRecipe(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Produce("WEDDING_CAKE", 1, 1)
	assert.ErrorIs(t, err, ErrUnknownRecipe)
}

func TestSellOldestFirst(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))

	first, err := e.Produce("BASIC_BREAD", 5, 1)
	require.NoError(t, err)
	second, err := e.Produce("BASIC_BREAD", 5, 2)
	require.NoError(t, err)

	// 7 loaves drains the day-1 bake entirely plus 2 from day 2.
	cogs, err := e.Sell("BASIC_BREAD", 7)
	require.NoError(t, err)
	assert.InDelta(t, 5*first.UnitCOGS+2*second.UnitCOGS, cogs, 1e-9)

	remaining := e.FinishedBatches("BASIC_BREAD")
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ID)
	assert.Equal(t, 3, remaining[0].Quantity)
}

func TestSellInsufficientStockLeavesBatchesUntouched(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))
	_, err := e.Produce("BASIC_BREAD", 5, 1)
	require.NoError(t, err)
	before := e.FinishedBatches("BASIC_BREAD")

	_, err = e.Sell("BASIC_BREAD", 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, before, e.FinishedBatches("BASIC_BREAD"))
}

func TestExpireAndSweepRemovesWholeBatches(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))

	stale, err := e.Produce("BASIC_BREAD", 4, 1) // expires day 2
	require.NoError(t, err)
	fresh, err := e.Produce("BASIC_BREAD", 6, 2) // expires day 3
	require.NoError(t, err)

	swept := e.ExpireAndSweep(2)
	require.Len(t, swept, 1)
	assert.Equal(t, "BASIC_BREAD", swept[0].Item)
	assert.True(t, swept[0].Finished)
	assert.InDelta(t, 4, swept[0].Quantity, 1e-9)
	assert.InDelta(t, 4*stale.UnitCOGS, swept[0].Value, 1e-9)

	// The fresh bake survives intact.
	assert.Equal(t, 6, e.FinishedStock("BASIC_BREAD"))
	remaining := e.FinishedBatches("BASIC_BREAD")
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)

	// A second sweep on the same day is a no-op.
	assert.Empty(t, e.ExpireAndSweep(2))
}

func TestExpireAndSweepRawIngredients(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("MILK", 5, 3.50, 1)) // 7-day shelf life

	assert.Empty(t, e.ExpireAndSweep(7))

	swept := e.ExpireAndSweep(8)
	require.Len(t, swept, 1)
	assert.Equal(t, "MILK", swept[0].Item)
	assert.False(t, swept[0].Finished)
	assert.InDelta(t, 5*3.50, swept[0].Value, 1e-9)
	assert.Zero(t, e.Stock("MILK"))
}

func TestStockMatchesBatchSum(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 50, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 30, 0.48, 2))
	_, err := e.Consume("FLOUR_AP", 62)
	require.NoError(t, err)

	sum := 0.0
	for _, b := range e.RawBatches("FLOUR_AP") {
		assert.GreaterOrEqual(t, b.Quantity, 0.0)
		sum += b.Quantity
	}
	assert.InDelta(t, sum, e.Stock("FLOUR_AP"), 1e-9)
}

func TestTotalInventoryValue(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))

	raw := 100*0.45 + 1*4.80 + 2*0.80
	assert.InDelta(t, raw, e.TotalInventoryValue(), 1e-9)

	batch, err := e.Produce("BASIC_BREAD", 10, 1)
	require.NoError(t, err)

	// Production moves cost basis between queues without changing the total.
	assert.InDelta(t, raw, e.TotalInventoryValue(), 1e-9)

	_, err = e.Sell("BASIC_BREAD", 10)
	require.NoError(t, err)
	assert.InDelta(t, raw-10*batch.UnitCOGS, e.TotalInventoryValue(), 1e-9)
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ReceiveIngredient("FLOUR_AP", 100, 0.45, 1))
	require.NoError(t, e.ReceiveIngredient("YEAST", 1, 4.80, 1))
	require.NoError(t, e.ReceiveIngredient("SALT", 2, 0.80, 1))
	_, err := e.Produce("BASIC_BREAD", 10, 2)
	require.NoError(t, err)

	restored := New(catalog.Default())
	restored.Restore(e.Snapshot())

	assert.InDelta(t, e.Stock("FLOUR_AP"), restored.Stock("FLOUR_AP"), 1e-9)
	assert.Equal(t, e.FinishedStock("BASIC_BREAD"), restored.FinishedStock("BASIC_BREAD"))
	assert.InDelta(t, e.TotalInventoryValue(), restored.TotalInventoryValue(), 1e-9)
	assert.Equal(t, e.RawBatches("FLOUR_AP"), restored.RawBatches("FLOUR_AP"))
	assert.Equal(t, e.FinishedBatches("BASIC_BREAD"), restored.FinishedBatches("BASIC_BREAD"))

	// Batch numbering continues where the original left off.
	require.NoError(t, restored.ReceiveIngredient("SUGAR", 10, 0.60, 3))
	newBatch := restored.RawBatches("SUGAR")[0]
	assert.Equal(t, e.Snapshot().NextBatchID, newBatch.ID)
}
