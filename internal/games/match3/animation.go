package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/engine"

// frameKind says how a frame's highlighted cells are drawn.
type frameKind int

const (
	frameSwap    frameKind = iota // Swapped pair, before matching
	frameMatched                  // Matched runs flash
	frameRemoved                  // Holes left by removal
	frameFallen                   // After gravity
	frameFilled                   // New tokens dropped in
)

// frame is one still image of a resolving swap.
type frame struct {
	kind      frameKind
	grid      *engine.Grid
	highlight map[engine.Position]bool
	chain     int
}

// animation reveals frames at a fixed number of ticks each.
// The engine state is already final while frames play.
type animation struct {
	frames   []frame
	index    int
	ticks    int
	perFrame int
}

func newAnimation(frames []frame, perFrame int) animation {
	if perFrame < 1 {
		perFrame = 1
	}
	return animation{frames: frames, perFrame: perFrame}
}

// playing reports whether frames remain to be shown.
func (a *animation) playing() bool {
	return a.index < len(a.frames)
}

// current returns the frame on screen, or nil when idle.
func (a *animation) current() *frame {
	if !a.playing() {
		return nil
	}
	return &a.frames[a.index]
}

// advance moves time forward by one tick.
func (a *animation) advance() {
	if !a.playing() {
		return
	}
	a.ticks++
	if a.ticks >= a.perFrame {
		a.index++
		a.ticks = 0
	}
}

func highlightSet(ps ...engine.Position) map[engine.Position]bool {
	set := make(map[engine.Position]bool, len(ps))
	for _, p := range ps {
		set[p] = true
	}
	return set
}

// framesForSwap builds the frame sequence for a swap result. before is the
// grid prior to the swap. A rejected (unmatched) swap shows the pair swapped
// and then back in place.
func framesForSwap(before *engine.Grid, m engine.Move, res engine.SwapResult) []frame {
	swapped := before.Clone()
	swapped.Swap(m.A, m.B)
	pair := highlightSet(m.A, m.B)

	frames := []frame{{kind: frameSwap, grid: swapped, highlight: pair}}
	if !res.Matched {
		return append(frames, frame{kind: frameSwap, grid: before.Clone(), highlight: pair})
	}

	for _, step := range res.Steps {
		frames = append(frames,
			frame{kind: frameMatched, grid: step.Before, highlight: highlightSet(step.Matched...), chain: step.Chain},
			frame{kind: frameRemoved, grid: step.Removed, chain: step.Chain},
			frame{kind: frameFallen, grid: step.Fallen, chain: step.Chain},
			frame{kind: frameFilled, grid: step.After, highlight: highlightSet(step.Filled...), chain: step.Chain},
		)
	}
	return frames
}
