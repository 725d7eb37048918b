// FIFO batch types and the queue abstraction they live in.
package costing

import "github.com/talgya/bakehouse/internal/catalog"

// IngredientBatch is one FIFO lot of a raw ingredient. Quantity only ever
// decreases after receipt and never goes negative.
type IngredientBatch struct {
	ID            uint64                 `json:"batch_id"`
	Type          catalog.IngredientType `json:"ingredient_type"`
	Quantity      float64                `json:"quantity"`
	UnitCost      float64                `json:"unit_cost"`
	PurchaseDay   int                    `json:"purchase_day"`
	ExpirationDay int                    `json:"expiration_day"`
}

// FinishedBatch is one FIFO lot of a produced product. UnitCOGS is fixed at
// production time and never recalculated.
type FinishedBatch struct {
	ID            uint64           `json:"batch_id"`
	Recipe        catalog.RecipeID `json:"recipe_id"`
	Quantity      int              `json:"quantity"`
	ProductionDay int              `json:"production_day"`
	ExpirationDay int              `json:"expiration_day"`
	UnitCOGS      float64          `json:"unit_cogs"`
}

// batchQueue is an explicit double-ended queue of batches. Receipts push
// onto the back, consumption pops from the front, so insertion order is age
// order and the oldest-first contract holds mechanically.
type batchQueue[B any] struct {
	items []B
}

func (q *batchQueue[B]) pushBack(b B) {
	q.items = append(q.items, b)
}

func (q *batchQueue[B]) front() *B {
	if len(q.items) == 0 {
		return nil
	}
	return &q.items[0]
}

func (q *batchQueue[B]) popFront() (B, bool) {
	var zero B
	if len(q.items) == 0 {
		return zero, false
	}
	b := q.items[0]
	q.items = q.items[1:]
	return b, true
}

func (q *batchQueue[B]) len() int {
	return len(q.items)
}

// all returns the live batches oldest-first. The returned slice aliases the
// queue; callers must not mutate it.
func (q *batchQueue[B]) all() []B {
	return q.items
}

// filterInPlace keeps batches for which keep returns true, preserving order.
func (q *batchQueue[B]) filterInPlace(keep func(B) bool) []B {
	var removed []B
	kept := q.items[:0]
	for _, b := range q.items {
		if keep(b) {
			kept = append(kept, b)
		} else {
			removed = append(removed, b)
		}
	}
	q.items = kept
	return removed
}
