// Daily phase machine.
package sim

import "errors"

// Phase is the current stage of the bakery's day. The cycle runs
// PURCHASING -> PRODUCTION -> SALES_FLOOR -> DAY_SUMMARY and wraps to the
// next day's PURCHASING; GAME_OVER and VICTORY are terminal.
type Phase string

const (
	PhasePurchasing Phase = "PURCHASING"
	PhaseProduction Phase = "PRODUCTION"
	PhaseSalesFloor Phase = "SALES_FLOOR"
	PhaseDaySummary Phase = "DAY_SUMMARY"
	PhaseGameOver   Phase = "GAME_OVER"
	PhaseVictory    Phase = "VICTORY"
)

// ErrWrongPhase rejects a command issued outside its allowed phase.
var ErrWrongPhase = errors.New("command not allowed in current phase")

// Terminal reports whether the phase ends the game.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}
