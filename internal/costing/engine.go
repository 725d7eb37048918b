// Package costing is the authoritative quantity and cost-basis ledger for
// raw ingredients and finished goods. Every lot is a FIFO batch; costs flow
// out oldest-first, and any call that would fail for insufficient stock
// pre-checks availability and commits nothing.
package costing

import (
	"errors"
	"fmt"

	"github.com/talgya/bakehouse/internal/catalog"
)

// Business-logic refusals. Callers re-check and retry on their own; none of
// these are retried automatically.
var (
	ErrUnknownIngredient       = errors.New("unknown ingredient")
	ErrUnknownRecipe           = errors.New("unknown recipe")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
)

// Shrinkage is one expired batch reported by ExpireAndSweep.
type Shrinkage struct {
	Item     string  `json:"item"` // ingredient type or recipe id
	Finished bool    `json:"finished"`
	Quantity float64 `json:"quantity"`
	Value    float64 `json:"value"` // at cost, not at sale price
}

// Engine owns the per-ingredient and per-recipe batch queues.
type Engine struct {
	cat         *catalog.Catalog
	raw         map[catalog.IngredientType]*batchQueue[IngredientBatch]
	finished    map[catalog.RecipeID]*batchQueue[FinishedBatch]
	nextBatchID uint64
}

// New creates an empty costing engine over the given reference data.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{
		cat:         cat,
		raw:         make(map[catalog.IngredientType]*batchQueue[IngredientBatch]),
		finished:    make(map[catalog.RecipeID]*batchQueue[FinishedBatch]),
		nextBatchID: 1,
	}
}

// ReceiveIngredient appends a new raw batch. Expiration is purchase day
// plus the ingredient's shelf life.
func (e *Engine) ReceiveIngredient(t catalog.IngredientType, quantity, unitCost float64, day int) error {
	ing, ok := e.cat.Ingredient(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIngredient, t)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: %s qty %.3f", ErrInvalidQuantity, t, quantity)
	}
	q := e.rawQueue(t)
	q.pushBack(IngredientBatch{
		ID:            e.nextBatchID,
		Type:          t,
		Quantity:      quantity,
		UnitCost:      unitCost,
		PurchaseDay:   day,
		ExpirationDay: day + ing.ShelfLifeDays,
	})
	e.nextBatchID++
	return nil
}

// Stock returns the total raw quantity on hand for an ingredient.
func (e *Engine) Stock(t catalog.IngredientType) float64 {
	q, ok := e.raw[t]
	if !ok {
		return 0
	}
	total := 0.0
	for _, b := range q.all() {
		total += b.Quantity
	}
	return total
}

// FinishedStock returns the total finished quantity on hand for a recipe.
func (e *Engine) FinishedStock(r catalog.RecipeID) int {
	q, ok := e.finished[r]
	if !ok {
		return 0
	}
	total := 0
	for _, b := range q.all() {
		total += b.Quantity
	}
	return total
}

// InStockRecipes returns recipe ids with at least one finished unit, in
// catalog definition order.
func (e *Engine) InStockRecipes() []catalog.RecipeID {
	var out []catalog.RecipeID
	for _, id := range e.cat.RecipeIDs() {
		if e.FinishedStock(id) > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Consume draws amount units of an ingredient oldest-batch-first and
// returns the accumulated cost. If total availability is short the call
// fails and no batch is touched.
func (e *Engine) Consume(t catalog.IngredientType, amount float64) (float64, error) {
	if _, ok := e.cat.Ingredient(t); !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownIngredient, t)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %s qty %.3f", ErrInvalidQuantity, t, amount)
	}
	if e.Stock(t) < amount {
		return 0, fmt.Errorf("%w: %s need %.3f have %.3f", ErrInsufficientStock, t, amount, e.Stock(t))
	}

	q := e.rawQueue(t)
	remaining := amount
	cost := 0.0
	for remaining > 0 {
		b := q.front()
		if b == nil {
			break // cannot happen after the pre-check
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		cost += take * b.UnitCost
		b.Quantity -= take
		remaining -= take
		if b.Quantity <= 0 {
			q.popFront()
		}
	}
	return cost, nil
}

// Produce bakes quantity units of a recipe: verifies every required
// ingredient is available, consumes them oldest-first, and appends one
// finished-goods batch whose UnitCOGS is the weighted average ingredient
// cost. On any shortfall nothing is consumed.
func (e *Engine) Produce(id catalog.RecipeID, quantity, day int) (FinishedBatch, error) {
	recipe, ok := e.cat.Recipe(id)
	if !ok {
		return FinishedBatch{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}
	if quantity <= 0 {
		return FinishedBatch{}, fmt.Errorf("%w: %s qty %d", ErrInvalidQuantity, id, quantity)
	}

	// Pre-flight: all-or-nothing across the whole bill of materials.
	for _, line := range recipe.Ingredients {
		if _, ok := e.cat.Ingredient(line.Type); !ok {
			return FinishedBatch{}, fmt.Errorf("%w: %s", ErrUnknownIngredient, line.Type)
		}
		required := line.Amount * float64(quantity)
		if e.Stock(line.Type) < required {
			return FinishedBatch{}, fmt.Errorf("%w: %s needs %.3f %s, have %.3f",
				ErrInsufficientIngredients, id, required, line.Type, e.Stock(line.Type))
		}
	}

	totalCost := 0.0
	for _, line := range recipe.Ingredients {
		cost, err := e.Consume(line.Type, line.Amount*float64(quantity))
		if err != nil {
			// Unreachable after the pre-flight check.
			return FinishedBatch{}, err
		}
		totalCost += cost
	}

	batch := FinishedBatch{
		ID:            e.nextBatchID,
		Recipe:        id,
		Quantity:      quantity,
		ProductionDay: day,
		ExpirationDay: day + recipe.ShelfLifeDays,
		UnitCOGS:      totalCost / float64(quantity),
	}
	e.nextBatchID++
	e.finishedQueue(id).pushBack(batch)
	return batch, nil
}

// Sell removes quantity units of a finished product oldest-first and
// returns the cost of goods sold. Fails without mutation when stock is
// short.
func (e *Engine) Sell(id catalog.RecipeID, quantity int) (float64, error) {
	if _, ok := e.cat.Recipe(id); !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: %s qty %d", ErrInvalidQuantity, id, quantity)
	}
	if e.FinishedStock(id) < quantity {
		return 0, fmt.Errorf("%w: %s need %d have %d", ErrInsufficientStock, id, quantity, e.FinishedStock(id))
	}

	q := e.finishedQueue(id)
	remaining := quantity
	cogs := 0.0
	for remaining > 0 {
		b := q.front()
		if b == nil {
			break
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		cogs += float64(take) * b.UnitCOGS
		b.Quantity -= take
		remaining -= take
		if b.Quantity <= 0 {
			q.popFront()
		}
	}
	return cogs, nil
}

// ExpireAndSweep removes every batch whose expiration day has arrived and
// reports the write-offs. A batch expires whole; partially-aged batches are
// untouched.
func (e *Engine) ExpireAndSweep(day int) []Shrinkage {
	var swept []Shrinkage
	for _, t := range e.cat.IngredientTypes() {
		q, ok := e.raw[t]
		if !ok {
			continue
		}
		expired := q.filterInPlace(func(b IngredientBatch) bool {
			return b.ExpirationDay > day
		})
		for _, b := range expired {
			swept = append(swept, Shrinkage{
				Item:     string(b.Type),
				Quantity: b.Quantity,
				Value:    b.Quantity * b.UnitCost,
			})
		}
	}
	for _, id := range e.cat.RecipeIDs() {
		q, ok := e.finished[id]
		if !ok {
			continue
		}
		expired := q.filterInPlace(func(b FinishedBatch) bool {
			return b.ExpirationDay > day
		})
		for _, b := range expired {
			swept = append(swept, Shrinkage{
				Item:     string(b.Recipe),
				Finished: true,
				Quantity: float64(b.Quantity),
				Value:    float64(b.Quantity) * b.UnitCOGS,
			})
		}
	}
	return swept
}

// TotalInventoryValue sums quantity x unit cost across every raw batch plus
// quantity x unit COGS across every finished batch. The ledger's
// inventoryValue tracks this figure.
func (e *Engine) TotalInventoryValue() float64 {
	total := 0.0
	for _, q := range e.raw {
		for _, b := range q.all() {
			total += b.Quantity * b.UnitCost
		}
	}
	for _, q := range e.finished {
		for _, b := range q.all() {
			total += float64(b.Quantity) * b.UnitCOGS
		}
	}
	return total
}

// RawBatches returns the live raw batches for an ingredient, oldest first.
func (e *Engine) RawBatches(t catalog.IngredientType) []IngredientBatch {
	q, ok := e.raw[t]
	if !ok {
		return nil
	}
	out := make([]IngredientBatch, q.len())
	copy(out, q.all())
	return out
}

// FinishedBatches returns the live finished batches for a recipe, oldest
// first.
func (e *Engine) FinishedBatches(id catalog.RecipeID) []FinishedBatch {
	q, ok := e.finished[id]
	if !ok {
		return nil
	}
	out := make([]FinishedBatch, q.len())
	copy(out, q.all())
	return out
}

func (e *Engine) rawQueue(t catalog.IngredientType) *batchQueue[IngredientBatch] {
	q, ok := e.raw[t]
	if !ok {
		q = &batchQueue[IngredientBatch]{}
		e.raw[t] = q
	}
	return q
}

func (e *Engine) finishedQueue(id catalog.RecipeID) *batchQueue[FinishedBatch] {
	q, ok := e.finished[id]
	if !ok {
		q = &batchQueue[FinishedBatch]{}
		e.finished[id] = q
	}
	return q
}
