// Snapshot round-tripping for the persistence layer.
package sim

// Snapshot is the serializable orchestrator state. Component state
// (ledger, inventory, orders, economy) is snapshotted separately by each
// owner.
type Snapshot struct {
	Phase         Phase        `json:"phase"`
	Day           int          `json:"day"`
	Hour          float64      `json:"hour"`
	CustomerAccum float64      `json:"customer_accum"`
	Today         DayStats     `json:"today"`
	Final         *FinalReport `json:"final,omitempty"`
}

// Snapshot captures the orchestrator state. Unsynchronized; callers
// racing the clock take it inside View.
func (b *Bakery) Snapshot() Snapshot {
	return Snapshot{
		Phase:         b.phase,
		Day:           b.day,
		Hour:          b.hour,
		CustomerAccum: b.customerAccum,
		Today:         b.today,
		Final:         b.finalReport,
	}
}

// Restore replaces the orchestrator state with a snapshot. Component
// snapshots must be restored before this so the day numbers line up.
func (b *Bakery) Restore(s Snapshot) {
	b.phase = s.Phase
	b.day = s.Day
	if b.day < 1 {
		b.day = 1
	}
	b.hour = s.Hour
	b.customerAccum = s.CustomerAccum
	b.today = s.Today
	b.finalReport = s.Final
}
