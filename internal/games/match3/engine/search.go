package engine

// FindHint returns the first adjacent swap that produces a match.
//
// Pairs are probed in row-major order, the rightward neighbour before the
// downward one. Each probe swaps, scans for matches and swaps back, so the
// grid is unchanged on return. The search stops at the first hit.
//
// Cost: O(N^2) probes, each an O(N^2) scan, so O(N^4) for an N x N grid.
func FindHint(g *Grid) (Move, bool) {
	var found Move
	ok := false
	forEachProbe(g, func(m Move) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// HasPossibleMoves reports whether any adjacent swap produces a match.
// Same probe order and cost as FindHint.
func HasPossibleMoves(g *Grid) bool {
	_, ok := FindHint(g)
	return ok
}

// AllMoves returns every adjacent swap that produces a match, in probe order.
func AllMoves(g *Grid) []Move {
	var moves []Move
	forEachProbe(g, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// forEachProbe calls fn for each matching swap until fn returns false.
func forEachProbe(g *Grid, fn func(Move) bool) {
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			a := P(r, c)
			if c+1 < n && probe(g, a, P(r, c+1)) {
				if !fn(Move{A: a, B: P(r, c+1)}) {
					return
				}
			}
			if r+1 < n && probe(g, a, P(r+1, c)) {
				if !fn(Move{A: a, B: P(r+1, c)}) {
					return
				}
			}
		}
	}
}

// probe applies the swap, checks for a match and always reverts.
func probe(g *Grid, a, b Position) bool {
	g.Swap(a, b)
	hit := HasMatch(g)
	g.Swap(a, b)
	return hit
}
