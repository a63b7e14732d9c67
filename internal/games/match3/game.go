// Package match3 is the playable match-3 game: cursor and selection input,
// paced cascade animation and rendering on top of the grid engine.
package match3

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // Fixed move budget
	ModeEndless Mode = "endless" // Play until no swap can match
)

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	engineLogger     *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes engine debug output to l. Nil disables it.
func SetLogger(l *log.Logger) {
	engineLogger = l
}

// LoadConfig loads the match-3 config with the current path and preset.
func LoadConfig() (config.Match3Config, error) {
	return loadConfig(difficultyPreset)
}

// PresetConfig loads the config as the given preset would adjust it.
func PresetConfig(preset config.DifficultyPreset) (config.Match3Config, error) {
	return loadConfig(preset)
}

func loadConfig(preset config.DifficultyPreset) (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		return config.DefaultMatch3Config(), err
	}
	if preset != "" && !config.IsFixedPreset(preset) {
		config.ApplyMatch3Preset(&cfg, preset)
	}
	return cfg, nil
}

// EngineConfig converts a loaded config into engine settings.
func EngineConfig(cfg config.Match3Config, mode Mode, seed int64) engine.Config {
	return engine.Config{
		Size:      cfg.Board.Size,
		Kinds:     engine.DefaultKinds(cfg.Board.Kinds),
		Moves:     cfg.Rules.Moves,
		Unlimited: mode == ModeEndless,
		Seed:      seed,
		Fill: engine.FillOptions{
			PlacementAttempts: cfg.Rules.PlacementAttempts,
			MaxRerolls:        cfg.Rules.MaxRerolls,
		},
		RequirePlayable: cfg.Rules.RequirePlayable,
		Logger:          engineLogger,
	}
}

// Game implements the match-3 game for the terminal platform.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // overrides the package preset when set
	cfg    config.Match3Config
	eng    *engine.Engine
	tick   uint64

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	cursor    engine.Position
	selected  engine.Position
	selecting bool

	hint      engine.Move
	hintTicks int

	anim   animation
	status string

	movesUsed int
	maxChain  int
	lastChain int
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates an endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match-3 (Endless)"
	}
	return "Match-3"
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode == ModeEndless {
		return "Swap gems with no move limit until the board locks up"
	}
	return "Swap gems to line up three or more before your moves run out"
}

// SetDifficulty selects a preset for this instance only, so concurrent
// sessions do not share one.
func (g *Game) SetDifficulty(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// Resize follows a terminal resize without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.eng != nil {
		g.checkScreenSize()
	}
}

// Reset loads configuration and starts a fresh game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.status = ""

	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	loaded, err := loadConfig(preset)
	if err != nil {
		g.status = "Config error, using defaults"
	}
	g.cfg = loaded

	eng, err := engine.New(EngineConfig(g.cfg, g.mode, cfg.Seed))
	if err != nil {
		// Only reachable with a config that bypassed validation
		g.cfg = config.DefaultMatch3Config()
		eng, _ = engine.New(EngineConfig(g.cfg, g.mode, cfg.Seed))
		g.status = "Invalid board settings, using defaults"
	}
	g.eng = eng

	g.clearRound()
	g.checkScreenSize()
}

// clearRound resets per-game presentation state.
func (g *Game) clearRound() {
	n := g.eng.Grid().Size()
	g.cursor = engine.P(n/2, n/2)
	g.selecting = false
	g.hintTicks = 0
	g.anim = animation{}
	g.movesUsed = 0
	g.maxChain = 0
	g.lastChain = 0
}

// newGame restarts on the current engine, continuing its random sequence.
func (g *Game) newGame() {
	if g.eng.IsBusy() {
		g.status = "Busy, try again"
		return
	}
	if err := g.eng.NewGame(); err != nil {
		g.status = "Cannot start a new game"
		return
	}
	g.clearRound()
	g.status = "New game"
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.eng.IsEnded() {
		g.paused = !g.paused
		return core.StepResult{State: g.State(), Changed: true}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Frames play out before any new input is accepted
	if g.anim.playing() {
		g.anim.advance()
		return core.StepResult{State: g.State(), Changed: true}
	}

	changed := false
	if g.hintTicks > 0 {
		g.hintTicks--
		changed = g.hintTicks == 0
	}

	if g.eng.IsEnded() {
		// Restart after game over is handled by the platform
		return core.StepResult{State: g.State(), Changed: changed}
	}

	if !in.Empty() {
		g.handleInput(in)
		changed = true
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

// handleInput applies at most one movement plus confirm, hint and restart.
func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		g.newGame()
		return
	}

	n := g.eng.Grid().Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionConfirm) {
		g.confirm()
	}
}

// confirm selects the token under the cursor, or swaps it with the
// selection when the two are adjacent.
func (g *Game) confirm() {
	switch {
	case !g.selecting:
		g.selected = g.cursor
		g.selecting = true
		g.status = ""
	case g.selected == g.cursor:
		g.selecting = false
	case g.selected.Adjacent(g.cursor):
		g.selecting = false
		g.swap(g.selected, g.cursor)
	default:
		g.selected = g.cursor
	}
}

// swap submits a swap to the engine and queues its frames.
func (g *Game) swap(a, b engine.Position) {
	before := g.eng.Grid()

	res, err := g.eng.AttemptSwap(a, b)
	if err != nil {
		g.status = swapErrorMessage(err)
		return
	}

	g.hintTicks = 0
	g.anim = newAnimation(framesForSwap(before, engine.Move{A: a, B: b}, res), g.cfg.Presentation.FrameTicks)

	if !res.Matched {
		g.status = "No match"
		return
	}

	g.movesUsed++
	g.lastChain = len(res.Steps)
	if g.lastChain > g.maxChain {
		g.maxChain = g.lastChain
	}
	if g.lastChain > 1 {
		g.status = fmt.Sprintf("Chain x%d  +%d", g.lastChain, res.ScoreDelta)
	} else {
		g.status = fmt.Sprintf("+%d", res.ScoreDelta)
	}
}

func swapErrorMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrGameEnded):
		return "Game over"
	case errors.Is(err, engine.ErrEngineBusy):
		return "Wait for the board to settle"
	case errors.Is(err, engine.ErrNonAdjacentSwap):
		return "Tokens must be neighbours"
	case errors.Is(err, engine.ErrInvalidPosition):
		return "Outside the board"
	default:
		return err.Error()
	}
}

// showHint highlights the first matching swap, if any.
func (g *Game) showHint() {
	m, ok := g.eng.QueryHint()
	if !ok {
		g.status = "No moves available"
		return
	}
	g.hint = m
	g.hintTicks = g.cfg.Presentation.HintTicks
	g.status = "Hint"
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.eng.Grid().Size())
	g.tooSmall = g.screenW < w || g.screenH < h
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	moves := g.eng.MovesRemaining()
	if g.eng.Unlimited() {
		moves = -1
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.IsEnded() && !g.anim.playing(),
		Paused:   g.paused || g.tooSmall,
		Busy:     g.anim.playing(),
		Moves:    moves,
	}
}

// Summary reports the finished game for score records.
func (g *Game) Summary() core.GameSummary {
	s := core.GameSummary{
		Score:     g.eng.Score(),
		MovesUsed: g.movesUsed,
		MaxChain:  g.maxChain,
	}
	if g.eng.IsEnded() {
		s.EndReason = g.eng.EndReason().String()
	}
	return s
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space: Select/Swap | ?: Hint | N: New | P: Pause | Esc: Menu"
}
