package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	Moves     int // -1 in endless mode
	MovesUsed int
	MaxChain  int
	Board     [][]engine.Kind
	Cursor    engine.Position
	Selected  *engine.Position
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.anim.playing():
		state = StateAnimating
	case g.eng.IsEnded():
		state = StateGameOver
	}

	var selected *engine.Position
	if g.selecting {
		p := g.selected
		selected = &p
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.eng.Score(),
		Moves:     g.State().Moves,
		MovesUsed: g.movesUsed,
		MaxChain:  g.maxChain,
		Board:     g.eng.Grid().Rows(),
		Cursor:    g.cursor,
		Selected:  selected,
		State:     state,
	}
}
