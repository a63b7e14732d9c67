package engine

// Snapshot is a read-only view of the engine for rendering and tests.
type Snapshot struct {
	Grid           *Grid
	Score          int
	MovesRemaining int
	Unlimited      bool
	Ended          bool
	Reason         EndReason
	Busy           bool
}

// Snapshot captures the current state. The grid is a copy.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:           e.grid.Clone(),
		Score:          e.score,
		MovesRemaining: e.moves,
		Unlimited:      e.cfg.Unlimited,
		Ended:          e.ended,
		Reason:         e.reason,
		Busy:           e.busy,
	}
}
