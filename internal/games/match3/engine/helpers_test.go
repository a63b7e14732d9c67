package engine

import "testing"

// Short names for test boards.
const (
	A = Red
	B = Blue
	C = Green
	D = Yellow
)

// seqRand replays vals cyclically, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func mustGrid(t *testing.T, rows [][]Kind) *Grid {
	t.Helper()
	g, err := GridFromRows(rows)
	if err != nil {
		t.Fatalf("GridFromRows() failed: %v", err)
	}
	return g
}

// newTestEngine builds an engine around a fixed grid without running
// Initialize, so scripted random sources start at their first value.
func newTestEngine(t *testing.T, rows [][]Kind, kinds []Kind, moves int, rng Rand) *Engine {
	t.Helper()
	g := mustGrid(t, rows)
	return &Engine{
		cfg:   Config{Size: g.Size(), Kinds: kinds, Moves: moves},
		kinds: kinds,
		fill:  FillOptions{}.withDefaults(),
		rng:   rng,
		grid:  g,
		moves: moves,
	}
}

// noMoveRows is a 4x4 board where every row holds four distinct kinds and
// every column alternates two kinds, so no swap can form a run.
var noMoveRows = [][]Kind{
	{A, B, C, D},
	{C, D, A, B},
	{A, B, C, D},
	{C, D, A, B},
}
