package engine

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// Defaults for the reference game instance.
const (
	DefaultSize      = 8
	DefaultKindCount = 6
	DefaultMoves     = 30
)

// playableRerolls bounds NewGame's search for a board with a legal move.
const playableRerolls = 50

// EndReason explains why a game ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndMovesExhausted
	EndNoMoves
)

// String returns a short description of the reason.
func (r EndReason) String() string {
	switch r {
	case EndMovesExhausted:
		return "out of moves"
	case EndNoMoves:
		return "no possible moves"
	default:
		return "none"
	}
}

// Config configures an Engine.
type Config struct {
	Size  int    // grid dimension, default DefaultSize
	Kinds []Kind // token kinds, default DefaultKinds(DefaultKindCount)
	Moves int    // starting move budget, default DefaultMoves

	// Unlimited disables the move budget. The game then ends only when no
	// swap can produce a match.
	Unlimited bool

	// Rand overrides the random source. When nil, one is seeded from Seed.
	Rand Rand
	Seed int64

	Fill FillOptions

	// RequirePlayable rerolls a fresh board (bounded) until it has at
	// least one matching swap.
	RequirePlayable bool

	// Logger receives debug output. Nil disables logging.
	Logger *log.Logger
}

// SwapResult reports the outcome of AttemptSwap.
type SwapResult struct {
	Accepted   bool // false when the attempt was rejected with an error
	Matched    bool // the swap formed at least one match and was kept
	ScoreDelta int
	MovesDelta int // -1 on a matched swap with a move budget, else 0
	Final      *Grid
	Steps      []CascadeStep
	Ended      bool
	Reason     EndReason
}

// Engine owns a grid and the score/move bookkeeping of one game session.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	cfg    Config
	kinds  []Kind
	fill   FillOptions
	rng    Rand
	logger *log.Logger

	grid   *Grid
	score  int
	moves  int
	ended  bool
	reason EndReason
	busy   bool

	listeners    []listenerEntry
	nextListener int
}

// New validates cfg, applies defaults and starts a first game.
func New(cfg Config) (*Engine, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.Kinds == nil {
		cfg.Kinds = DefaultKinds(DefaultKindCount)
	}
	switch {
	case cfg.Unlimited:
		cfg.Moves = 0
	case cfg.Moves <= 0:
		cfg.Moves = DefaultMoves
	}
	if err := validateKinds(cfg.Size, cfg.Kinds); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	kinds := make([]Kind, len(cfg.Kinds))
	copy(kinds, cfg.Kinds)

	e := &Engine{
		cfg:    cfg,
		kinds:  kinds,
		fill:   cfg.Fill.withDefaults(),
		rng:    rng,
		logger: cfg.Logger,
	}
	if err := e.NewGame(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewGame discards the current board and starts over: score 0, the
// configured move budget and a fresh match-free grid. A board that opens
// without any matching swap ends the game at once with EndNoMoves.
func (e *Engine) NewGame() error {
	if e.busy {
		return ErrEngineBusy
	}

	g, err := e.freshGrid()
	if err != nil {
		return err
	}

	e.grid = g
	e.score = 0
	e.moves = e.cfg.Moves
	e.ended = false
	e.reason = EndNone

	e.debug("new game", "size", e.cfg.Size, "kinds", len(e.kinds), "moves", e.moves)
	if !HasPossibleMoves(e.grid) {
		e.end(EndNoMoves)
	}
	return nil
}

// freshGrid initializes a board, rerolling when a playable one is required.
func (e *Engine) freshGrid() (*Grid, error) {
	var g *Grid
	var err error
	for i := 0; i < playableRerolls; i++ {
		g, err = Initialize(e.cfg.Size, e.kinds, e.rng, e.fill)
		if err != nil {
			return nil, err
		}
		if !e.cfg.RequirePlayable || HasPossibleMoves(g) {
			return g, nil
		}
		e.debug("board has no moves, rerolling", "attempt", i+1)
	}
	return g, nil
}

// AttemptSwap exchanges the tokens at a and b if that forms a match.
//
// Rejections (out-of-bounds, non-adjacent, busy, ended) return an error and
// leave everything untouched. A swap that forms no match is reverted at no
// move cost and reports Matched=false. A matching swap costs one move and
// runs the cascade to completion before returning.
func (e *Engine) AttemptSwap(a, b Position) (SwapResult, error) {
	switch {
	case e.busy:
		return SwapResult{}, ErrEngineBusy
	case e.ended:
		return SwapResult{}, ErrGameEnded
	case !e.grid.InBounds(a) || !e.grid.InBounds(b):
		return SwapResult{}, ErrInvalidPosition
	case !a.Adjacent(b):
		return SwapResult{}, ErrNonAdjacentSwap
	}

	e.grid.Swap(a, b)
	if !HasMatch(e.grid) {
		e.grid.Swap(a, b)
		return SwapResult{Accepted: true, Final: e.grid.Clone()}, nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	movesDelta := 0
	if !e.cfg.Unlimited {
		e.moves--
		movesDelta = -1
	}

	steps, points := e.resolveCascade()
	e.checkEnd()

	return SwapResult{
		Accepted:   true,
		Matched:    true,
		ScoreDelta: points,
		MovesDelta: movesDelta,
		Final:      e.grid.Clone(),
		Steps:      steps,
		Ended:      e.ended,
		Reason:     e.reason,
	}, nil
}

// checkEnd ends the game when the budget is spent or no move remains.
func (e *Engine) checkEnd() {
	switch {
	case !e.cfg.Unlimited && e.moves <= 0:
		e.end(EndMovesExhausted)
	case !HasPossibleMoves(e.grid):
		e.end(EndNoMoves)
	}
}

func (e *Engine) end(reason EndReason) {
	if e.ended {
		return
	}
	e.ended = true
	e.reason = reason
	e.debug("game ended", "reason", reason, "score", e.score)
	e.emit(GameEnded{Reason: reason, Score: e.score})
}

// QueryHint returns the first matching swap on the current grid.
// No hint is offered while busy or after the game has ended.
func (e *Engine) QueryHint() (Move, bool) {
	if e.busy || e.ended {
		return Move{}, false
	}
	m, ok := FindHint(e.grid)
	if ok {
		e.emit(HintFound{Move: m})
	}
	return m, ok
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// MovesRemaining returns the remaining move budget.
// Always 0 for engines configured with Unlimited.
func (e *Engine) MovesRemaining() int {
	return e.moves
}

// Unlimited reports whether the engine has no move budget.
func (e *Engine) Unlimited() bool {
	return e.cfg.Unlimited
}

// IsEnded reports whether the game is over.
func (e *Engine) IsEnded() bool {
	return e.ended
}

// EndReason returns why the game ended, or EndNone.
func (e *Engine) EndReason() EndReason {
	return e.reason
}

// IsBusy reports whether a cascade is being resolved.
func (e *Engine) IsBusy() bool {
	return e.busy
}

// IsSettled reports whether the grid is at rest: no cascade running, no
// matches and no Empty cells.
func (e *Engine) IsSettled() bool {
	return !e.busy && e.grid.EmptyCount() == 0 && !HasMatch(e.grid)
}

// Kinds returns a copy of the configured token kinds.
func (e *Engine) Kinds() []Kind {
	out := make([]Kind, len(e.kinds))
	copy(out, e.kinds)
	return out
}

func (e *Engine) debug(msg string, keyvals ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}
