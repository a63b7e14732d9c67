package engine

// PointsPerToken is the score awarded for each matched position.
const PointsPerToken = 10

// Phase is a state of the cascade resolution state machine.
type Phase int

const (
	PhaseMatching Phase = iota
	PhaseScoring
	PhaseRemoving
	PhaseGravity
	PhaseRefilling
	PhaseSettled
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMatching:
		return "matching"
	case PhaseScoring:
		return "scoring"
	case PhaseRemoving:
		return "removing"
	case PhaseGravity:
		return "gravity"
	case PhaseRefilling:
		return "refilling"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// CascadeStep records one Matching..Refilling iteration of a cascade.
// The grid snapshots are independent copies the presentation layer may
// reveal at its own pace.
type CascadeStep struct {
	Chain   int        // 1-based iteration number
	Matched []Position // row-major
	Points  int        // PointsPerToken * len(Matched)

	Before  *Grid      // grid when the matches were found
	Removed *Grid      // after matched cells became Empty
	Falls   []Fall     // gravity moves
	Fallen  *Grid      // after gravity
	Filled  []Position // cells refilled
	After   *Grid      // after refill
}

// resolveCascade runs the cascade state machine on e.grid until a Matching
// pass finds nothing. It returns the recorded steps and total points.
func (e *Engine) resolveCascade() ([]CascadeStep, int) {
	var (
		steps   []CascadeStep
		total   int
		matches MatchSet
		step    CascadeStep
	)

	phase := PhaseMatching
	for phase != PhaseSettled {
		switch phase {
		case PhaseMatching:
			matches = FindMatches(e.grid)
			if matches.Len() == 0 {
				phase = PhaseSettled
				continue
			}
			step = CascadeStep{
				Chain:   len(steps) + 1,
				Matched: matches.Positions(),
				Before:  e.grid.Clone(),
			}
			phase = PhaseScoring

		case PhaseScoring:
			step.Points = PointsPerToken * matches.Len()
			e.score += step.Points
			total += step.Points
			e.emit(MatchFound{Chain: step.Chain, Positions: step.Matched, Points: step.Points})
			phase = PhaseRemoving

		case PhaseRemoving:
			RemoveMatches(e.grid, matches)
			step.Removed = e.grid.Clone()
			phase = PhaseGravity

		case PhaseGravity:
			step.Falls = ApplyGravity(e.grid)
			step.Fallen = e.grid.Clone()
			phase = PhaseRefilling

		case PhaseRefilling:
			step.Filled = Refill(e.grid, e.kinds, e.rng, e.fill.PlacementAttempts)
			step.After = e.grid.Clone()
			steps = append(steps, step)
			e.emit(step)
			e.debug("cascade step",
				"chain", step.Chain,
				"matched", len(step.Matched),
				"points", step.Points,
				"falls", len(step.Falls),
				"filled", len(step.Filled),
			)
			phase = PhaseMatching
		}
	}

	return steps, total
}
