package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	cellWidth = 3 // Glyph plus a marker column on each side
	hudHeight = 3
	minWidth  = 40
)

// glyph is how one token kind looks on screen.
type glyph struct {
	r     rune
	color core.Color
}

var glyphs = map[engine.Kind]glyph{
	engine.Red:    {'●', core.ColorBrightRed},
	engine.Blue:   {'■', core.ColorBrightBlue},
	engine.Green:  {'▲', core.ColorBrightGreen},
	engine.Yellow: {'◆', core.ColorBrightYellow},
	engine.Purple: {'★', core.ColorBrightMagenta},
	engine.Orange: {'✚', core.ColorOrange},
}

// GlyphFor returns the rune and color used for a kind.
func GlyphFor(k engine.Kind) (rune, core.Color) {
	if gl, ok := glyphs[k]; ok {
		return gl.r, gl.color
	}
	return ' ', core.ColorDefault
}

// layoutSize returns the minimum screen size for an n x n board.
func layoutSize(n int) (w, h int) {
	boardW := n*cellWidth + 2
	boardH := n + 2
	return core.Max(boardW, minWidth), hudHeight + boardH + 3
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.eng.Grid().Size()
	boardW := n*cellWidth + 2
	boardH := n + 2
	board := core.NewRect((g.screenW-boardW)/2, hudHeight, boardW, boardH)

	g.renderHUD(dst, board)
	g.renderBoard(dst, board)
	g.renderStatus(dst, board)
	g.renderOverlays(dst, board)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := layoutSize(g.eng.Grid().Size())
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

// renderHUD draws the title, score and remaining moves.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	title := "MATCH-3"
	if g.mode == ModeEndless {
		title = "MATCH-3  ENDLESS"
	}
	dst.DrawTextCenteredColored(0, title, core.ColorBrightCyan)

	left := board.X
	right := board.Right()
	if board.W < minWidth {
		left = (g.screenW - minWidth) / 2
		right = left + minWidth
	}

	dst.DrawText(left, 1, fmt.Sprintf("Score: %d", g.eng.Score()))

	moves := "Moves: ∞"
	color := core.ColorDefault
	if !g.eng.Unlimited() {
		remaining := g.eng.MovesRemaining()
		moves = fmt.Sprintf("Moves: %d", remaining)
		if remaining <= 5 {
			color = core.ColorBrightRed
		}
	}
	dst.DrawTextColored(right-len([]rune(moves)), 1, moves, color)
}

// renderBoard draws the box, the tokens and the cursor/selection markers.
func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBoxColored(board, core.ColorGray)

	f := g.anim.current()
	grid := g.eng.Grid()
	if f != nil {
		grid = f.grid
	}

	n := grid.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := engine.P(r, c)
			x := board.X + 1 + c*cellWidth
			y := board.Y + 1 + r

			ch, color := GlyphFor(grid.Get(p))
			left, right, markColor := g.marker(p, f)
			if f != nil && f.kind == frameMatched && f.highlight[p] {
				color = core.ColorBrightWhite
			}

			dst.SetColored(x, y, left, markColor)
			dst.SetColored(x+1, y, ch, color)
			dst.SetColored(x+2, y, right, markColor)
		}
	}
}

// marker picks the bracket pair drawn around a cell.
func (g *Game) marker(p engine.Position, f *frame) (rune, rune, core.Color) {
	if f != nil {
		if !f.highlight[p] {
			return ' ', ' ', core.ColorDefault
		}
		switch f.kind {
		case frameSwap:
			return '<', '>', core.ColorBrightYellow
		case frameMatched:
			return '*', '*', core.ColorBrightWhite
		case frameFilled:
			return '·', '·', core.ColorGray
		}
		return ' ', ' ', core.ColorDefault
	}

	switch {
	case p == g.cursor && g.selecting && p == g.selected:
		return '<', '>', core.ColorBrightYellow
	case p == g.cursor:
		return '[', ']', core.ColorBrightWhite
	case g.selecting && p == g.selected:
		return '<', '>', core.ColorYellow
	case g.hintTicks > 0 && (p == g.hint.A || p == g.hint.B):
		return '(', ')', core.ColorBrightCyan
	}
	return ' ', ' ', core.ColorDefault
}

// renderStatus draws the last event message and the control line.
func (g *Game) renderStatus(dst *core.Screen, board core.Rect) {
	y := board.Bottom() + 1

	status := g.status
	if f := g.anim.current(); f != nil && f.chain > 1 {
		status = fmt.Sprintf("Chain x%d!", f.chain)
	}
	if status != "" {
		dst.DrawTextCenteredColored(y, status, core.ColorBrightYellow)
	}

	controls := g.Controls()
	if len(controls) > g.screenW {
		controls = "Space: select/swap  ?: hint  N: new  P: pause"
	}
	dst.DrawTextCenteredColored(y+1, controls, core.ColorGray)
}

// renderOverlays draws pause and game-over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	st := g.State()
	if st.GameOver {
		reason := g.eng.EndReason().String()
		drawOverlay(dst, board,
			"GAME OVER",
			"("+reason+")",
			fmt.Sprintf("Score: %d", st.Score),
			"Press R to play again",
		)
	}
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	box := area.CenteredIn(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}
