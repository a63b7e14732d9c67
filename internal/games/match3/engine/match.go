package engine

import "sort"

// MinRun is the shortest run of equal kinds that counts as a match.
const MinRun = 3

// MatchSet is a set of unique grid positions produced by FindMatches.
type MatchSet map[Position]struct{}

// Add inserts p. Adding an existing position is a no-op.
func (m MatchSet) Add(p Position) {
	m[p] = struct{}{}
}

// Contains reports whether p is in the set.
func (m MatchSet) Contains(p Position) bool {
	_, ok := m[p]
	return ok
}

// Len returns the number of positions in the set.
func (m MatchSet) Len() int {
	return len(m)
}

// Positions returns the set's members in row-major order.
func (m MatchSet) Positions() []Position {
	out := make([]Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// FindMatches returns every position that belongs to a horizontal or vertical
// run of at least MinRun equal tokens. Rows are scanned left to right and
// columns top to bottom; a cell in both a horizontal and a vertical run is
// reported once. Empty cells break runs. An empty result means the grid has
// no matches.
func FindMatches(g *Grid) MatchSet {
	matches := make(MatchSet)
	n := g.Size()

	for r := 0; r < n; r++ {
		scanLine(g, matches, n, func(i int) Position { return P(r, i) })
	}
	for c := 0; c < n; c++ {
		scanLine(g, matches, n, func(i int) Position { return P(i, c) })
	}

	return matches
}

// scanLine walks one row or column through at and adds runs >= MinRun.
func scanLine(g *Grid, matches MatchSet, n int, at func(int) Position) {
	start := 0
	for i := 1; i <= n; i++ {
		if i < n {
			cur := g.Get(at(i))
			if cur != Empty && cur == g.Get(at(start)) {
				continue
			}
		}
		// Run [start, i) ended.
		if i-start >= MinRun && g.Get(at(start)) != Empty {
			for j := start; j < i; j++ {
				matches.Add(at(j))
			}
		}
		start = i
	}
}

// HasMatch reports whether the grid contains at least one match.
func HasMatch(g *Grid) bool {
	return FindMatches(g).Len() > 0
}
