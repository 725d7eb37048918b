// Snapshot round-tripping for the persistence layer.
package costing

import "github.com/talgya/bakehouse/internal/catalog"

// Snapshot is the serializable form of both batch ledgers.
type Snapshot struct {
	RawIngredients   map[catalog.IngredientType][]IngredientBatch `json:"raw_ingredients"`
	FinishedProducts map[catalog.RecipeID][]FinishedBatch         `json:"finished_products"`
	NextBatchID      uint64                                       `json:"next_batch_id"`
}

// Snapshot captures every live batch queue.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		RawIngredients:   make(map[catalog.IngredientType][]IngredientBatch),
		FinishedProducts: make(map[catalog.RecipeID][]FinishedBatch),
		NextBatchID:      e.nextBatchID,
	}
	for t, q := range e.raw {
		if q.len() == 0 {
			continue
		}
		batches := make([]IngredientBatch, q.len())
		copy(batches, q.all())
		s.RawIngredients[t] = batches
	}
	for id, q := range e.finished {
		if q.len() == 0 {
			continue
		}
		batches := make([]FinishedBatch, q.len())
		copy(batches, q.all())
		s.FinishedProducts[id] = batches
	}
	return s
}

// Restore replaces the current queues with a snapshot's contents.
func (e *Engine) Restore(s Snapshot) {
	e.raw = make(map[catalog.IngredientType]*batchQueue[IngredientBatch], len(s.RawIngredients))
	for t, batches := range s.RawIngredients {
		q := &batchQueue[IngredientBatch]{items: append([]IngredientBatch(nil), batches...)}
		e.raw[t] = q
	}
	e.finished = make(map[catalog.RecipeID]*batchQueue[FinishedBatch], len(s.FinishedProducts))
	for id, batches := range s.FinishedProducts {
		q := &batchQueue[FinishedBatch]{items: append([]FinishedBatch(nil), batches...)}
		e.finished[id] = q
	}
	e.nextBatchID = s.NextBatchID
	if e.nextBatchID == 0 {
		e.nextBatchID = 1
	}
}
