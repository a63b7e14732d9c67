package engine

import (
	"strings"
)

// Position is a zero-based (row, col) grid coordinate.
type Position struct {
	Row int
	Col int
}

// P is shorthand for Position{Row: row, Col: col}.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Adjacent reports whether p and o differ by exactly one unit along exactly
// one axis. Diagonals are not adjacent.
func (p Position) Adjacent(o Position) bool {
	dr := abs(p.Row - o.Row)
	dc := abs(p.Col - o.Col)
	return dr+dc == 1
}

// Move is a pair of adjacent positions whose tokens are exchanged.
type Move struct {
	A Position
	B Position
}

// Grid is a fixed-size square matrix of kinds stored row-major.
type Grid struct {
	size  int
	cells []Kind
}

// NewGrid creates an empty size x size grid.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{
		size:  size,
		cells: make([]Kind, size*size),
	}
}

// GridFromRows builds a grid from a square row slice.
// Returns ErrInvalidConfig if the rows are not square.
func GridFromRows(rows [][]Kind) (*Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, configErrorf("row %d has %d cells, want %d", r, len(row), n)
		}
		copy(g.cells[r*n:(r+1)*n], row)
	}
	return g, nil
}

// Size returns the grid dimension N.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// Get returns the kind at p. Out-of-bounds positions read as Empty.
func (g *Grid) Get(p Position) Kind {
	if !g.InBounds(p) {
		return Empty
	}
	return g.cells[p.Row*g.size+p.Col]
}

// Set stores k at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Position, k Kind) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Row*g.size+p.Col] = k
}

// Swap exchanges the contents of a and b unconditionally.
// It performs no legality check and is its own inverse.
func (g *Grid) Swap(a, b Position) {
	ia := a.Row*g.size + a.Col
	ib := b.Row*g.size + b.Col
	g.cells[ia], g.cells[ib] = g.cells[ib], g.cells[ia]
}

// Clear sets every cell to Empty.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		size:  g.size,
		cells: make([]Kind, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]Kind {
	rows := make([][]Kind, g.size)
	for r := range rows {
		rows[r] = make([]Kind, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// EmptyCount returns the number of Empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, k := range g.cells {
		if k == Empty {
			n++
		}
	}
	return n
}

// String renders the grid one row per line, using '.' for Empty and the
// kind number otherwise. Intended for logs and test failures.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.size * (g.size + 1))
	for r := 0; r < g.size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.size; c++ {
			k := g.cells[r*g.size+c]
			if k == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(k%10))
			}
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
