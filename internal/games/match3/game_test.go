package match3

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func newTestGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

// settle steps until queued frames have played.
func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.anim.playing(); i++ {
		if i > 10000 {
			t.Fatal("animation never finished")
		}
		g.Step(core.NewInputFrame())
	}
}

// playHint performs the engine's hinted swap through the cursor.
func playHint(t *testing.T, g *Game) {
	t.Helper()
	m, ok := engine.FindHint(g.eng.Grid())
	if !ok {
		t.Fatal("no hint available")
	}
	g.cursor = m.A
	g.Step(core.FrameOf(core.ActionConfirm))
	g.cursor = m.B
	g.Step(core.FrameOf(core.ActionConfirm))
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := []core.InputFrame{
		core.FrameOf(core.ActionLeft),
		core.FrameOf(core.ActionHint),
		core.FrameOf(core.ActionConfirm),
		core.FrameOf(core.ActionDown),
		core.FrameOf(core.ActionConfirm),
		core.NewInputFrame(),
		core.FrameOf(core.ActionRight),
	}

	run := func() Snapshot {
		g := newTestGame(t, New(), 12345)
		for i := 0; i < 3; i++ {
			playHint(t, g)
			settle(t, g)
		}
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Determinism failed:\n%+v\n%+v", a, b)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	g := newTestGame(t, New(), 1)
	n := g.eng.Grid().Size()

	for i := 0; i < n+2; i++ {
		g.Step(core.FrameOf(core.ActionUp))
		g.Step(core.FrameOf(core.ActionLeft))
	}
	if g.cursor != engine.P(0, 0) {
		t.Errorf("cursor = %v, expected top-left", g.cursor)
	}

	for i := 0; i < n+2; i++ {
		g.Step(core.FrameOf(core.ActionDown))
		g.Step(core.FrameOf(core.ActionRight))
	}
	if g.cursor != engine.P(n-1, n-1) {
		t.Errorf("cursor = %v, expected bottom-right", g.cursor)
	}
}

func TestSelectionSemantics(t *testing.T) {
	g := newTestGame(t, New(), 1)
	g.cursor = engine.P(2, 2)

	g.Step(core.FrameOf(core.ActionConfirm))
	if !g.selecting || g.selected != engine.P(2, 2) {
		t.Fatal("first confirm should select the cursor cell")
	}

	g.Step(core.FrameOf(core.ActionConfirm))
	if g.selecting {
		t.Fatal("confirming the selected cell should deselect it")
	}

	g.Step(core.FrameOf(core.ActionConfirm))
	g.cursor = engine.P(4, 4)
	g.Step(core.FrameOf(core.ActionConfirm))
	if !g.selecting || g.selected != engine.P(4, 4) {
		t.Error("confirming a distant cell should move the selection")
	}
}

func TestMatchingSwapAnimatesThenScores(t *testing.T) {
	g := newTestGame(t, New(), 7)
	moves := g.eng.MovesRemaining()

	playHint(t, g)

	if !g.State().Busy {
		t.Fatal("matching swap should start an animation")
	}
	if g.eng.Score() == 0 || g.eng.MovesRemaining() != moves-1 {
		t.Errorf("engine should already hold the final state: score=%d moves=%d", g.eng.Score(), g.eng.MovesRemaining())
	}

	// Input is dropped while frames play
	cursor := g.cursor
	g.Step(core.FrameOf(core.ActionUp))
	if g.cursor != cursor {
		t.Error("cursor moved during animation")
	}

	settle(t, g)
	if g.State().Busy {
		t.Error("animation should have finished")
	}
	if g.movesUsed != 1 || g.maxChain < 1 {
		t.Errorf("movesUsed=%d maxChain=%d", g.movesUsed, g.maxChain)
	}
}

func TestUnmatchedSwapCostsNothing(t *testing.T) {
	g := newTestGame(t, New(), 3)
	grid := g.eng.Grid()
	n := grid.Size()

	var a, b engine.Position
	found := false
	for r := 0; r < n && !found; r++ {
		for c := 0; c+1 < n && !found; c++ {
			probe := grid.Clone()
			probe.Swap(engine.P(r, c), engine.P(r, c+1))
			if !engine.HasMatch(probe) {
				a, b, found = engine.P(r, c), engine.P(r, c+1), true
			}
		}
	}
	if !found {
		t.Fatal("no unmatched swap on the board")
	}

	moves := g.eng.MovesRemaining()
	g.cursor = a
	g.Step(core.FrameOf(core.ActionConfirm))
	g.cursor = b
	g.Step(core.FrameOf(core.ActionConfirm))

	if len(g.anim.frames) != 2 {
		t.Errorf("unmatched swap should animate there and back, got %d frames", len(g.anim.frames))
	}
	if g.status != "No match" {
		t.Errorf("status = %q", g.status)
	}
	settle(t, g)
	if g.eng.MovesRemaining() != moves || g.eng.Score() != 0 {
		t.Error("unmatched swap should not cost a move or score")
	}
	if !g.eng.Grid().Equal(grid) {
		t.Error("board should be unchanged")
	}
}

func TestHintHighlightExpires(t *testing.T) {
	g := newTestGame(t, New(), 5)
	g.Step(core.FrameOf(core.ActionHint))

	if g.hintTicks != g.cfg.Presentation.HintTicks {
		t.Fatalf("hintTicks = %d, expected %d", g.hintTicks, g.cfg.Presentation.HintTicks)
	}
	want, _ := engine.FindHint(g.eng.Grid())
	if g.hint != want {
		t.Errorf("hint = %v, expected %v", g.hint, want)
	}

	for i := 0; i < g.cfg.Presentation.HintTicks; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.hintTicks != 0 {
		t.Error("hint should expire")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, New(), 1)
	cursor := g.cursor

	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	g.Step(core.FrameOf(core.ActionUp))
	if g.cursor != cursor {
		t.Error("input should be ignored while paused")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestRestartMidGame(t *testing.T) {
	g := newTestGame(t, New(), 9)
	playHint(t, g)
	settle(t, g)

	g.Step(core.FrameOf(core.ActionRestart))
	if g.eng.Score() != 0 || g.movesUsed != 0 {
		t.Errorf("restart should reset score and counters: %+v", g.Snapshot())
	}
	if g.eng.MovesRemaining() != g.cfg.Rules.Moves {
		t.Errorf("MovesRemaining() = %d, expected %d", g.eng.MovesRemaining(), g.cfg.Rules.Moves)
	}
}

func TestNewGameWaitsForCascade(t *testing.T) {
	g := newTestGame(t, New(), 9)

	var status string
	unsubscribe := g.eng.Subscribe(func(ev engine.Event) {
		if _, ok := ev.(engine.MatchFound); ok && status == "" {
			g.newGame()
			status = g.status
		}
	})
	playHint(t, g)
	unsubscribe()

	if status != "Busy, try again" {
		t.Errorf("status during cascade = %q, expected busy", status)
	}
	if g.eng.Score() == 0 {
		t.Error("the swap in progress should still have scored")
	}
}

func TestEndlessHasNoMoveBudget(t *testing.T) {
	g := newTestGame(t, NewEndless(), 2)
	if g.State().Moves != -1 {
		t.Errorf("Moves = %d, expected -1", g.State().Moves)
	}
	playHint(t, g)
	settle(t, g)
	if g.State().Moves != -1 || g.State().GameOver && g.eng.EndReason() == engine.EndMovesExhausted {
		t.Error("endless mode should not spend moves")
	}
}

func TestGameOverAfterLastMove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match3.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  moves: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(t, New(), 11)
	playHint(t, g)

	if g.State().GameOver {
		t.Error("game over should wait for the animation")
	}
	settle(t, g)

	st := g.State()
	if !st.GameOver {
		t.Fatal("game should be over after the only move")
	}
	sum := g.Summary()
	if sum.MovesUsed != 1 || sum.EndReason != engine.EndMovesExhausted.String() || sum.Score != st.Score {
		t.Errorf("Summary() = %+v", sum)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over overlay not rendered")
	}
}

func TestDeadOpeningBoardIsGameOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match3.yaml")
	yml := "board:\n  size: 4\nrules:\n  require_playable: false\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	for seed := int64(0); seed < 200; seed++ {
		g := newTestGame(t, New(), seed)
		if engine.HasPossibleMoves(g.eng.Grid()) {
			continue
		}

		if !g.State().GameOver {
			t.Fatalf("seed %d: dead opening board should be game over", seed)
		}
		if sum := g.Summary(); sum.EndReason != engine.EndNoMoves.String() {
			t.Errorf("seed %d: EndReason = %q, expected %q", seed, sum.EndReason, engine.EndNoMoves.String())
		}
		return
	}
	t.Fatal("expected a dead opening board on a 4x4 grid")
}

func TestDifficultyPresetApplies(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, New(), 4)
	if g.eng.MovesRemaining() != 40 || len(g.eng.Kinds()) != 5 {
		t.Errorf("easy preset not applied: moves=%d kinds=%d", g.eng.MovesRemaining(), len(g.eng.Kinds()))
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Error("small screen should pause the game")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too-small message not rendered")
	}
}

func TestInstanceDifficultyOverridesPackagePreset(t *testing.T) {
	SetDifficultyPreset("easy")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := New()
	if err := g.SetDifficulty("hard"); err != nil {
		t.Fatalf("SetDifficulty(hard) failed: %v", err)
	}
	newTestGame(t, g, 4)
	if g.eng.MovesRemaining() != 20 {
		t.Errorf("moves = %d, want the hard preset's 20", g.eng.MovesRemaining())
	}

	// Other instances still follow the package preset
	other := newTestGame(t, New(), 4)
	if other.eng.MovesRemaining() != 40 {
		t.Errorf("moves = %d, want the easy preset's 40", other.eng.MovesRemaining())
	}

	if err := g.SetDifficulty("impossible"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}

func TestResizeKeepsRound(t *testing.T) {
	g := newTestGame(t, New(), 9)
	g.Step(core.FrameOf(core.ActionRight))
	before := g.Snapshot()

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}

	g.Resize(120, 40)
	after := g.Snapshot()
	if after.State != StatePlaying {
		t.Errorf("state = %v after growing back, want playing", after.State)
	}
	if after.Tick != before.Tick || after.Cursor != before.Cursor || !reflect.DeepEqual(after.Board, before.Board) {
		t.Error("resize should not restart the round")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New(), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Score: 0") || !strings.Contains(out, "Moves: 30") {
		t.Errorf("HUD missing:\n%s", out)
	}

	// Every token is drawn with its kind's color
	grid := g.eng.Grid()
	n := grid.Size()
	boardX := (80 - (n*cellWidth + 2)) / 2
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			cell := screen.GetCell(boardX+1+c*cellWidth+1, hudHeight+1+r)
			ch, color := GlyphFor(grid.Get(engine.P(r, c)))
			if cell.Rune != ch || cell.Color != color {
				t.Fatalf("cell (%d,%d) = %+v, expected %q/%v", r, c, cell, ch, color)
			}
		}
	}
}
