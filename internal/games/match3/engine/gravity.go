package engine

// Fall records a token moving down its column during gravity.
type Fall struct {
	From Position
	To   Position
	Kind Kind
}

// RemoveMatches sets every matched position to Empty.
func RemoveMatches(g *Grid, m MatchSet) {
	for p := range m {
		g.Set(p, Empty)
	}
}

// ApplyGravity compacts every column downward: each Empty cell takes the
// nearest token above it, leaving the gap where that token came from.
// Columns are independent. Passes repeat until no column has an Empty cell
// below a token. Returns the moves in the order they were applied.
func ApplyGravity(g *Grid) []Fall {
	var falls []Fall
	n := g.Size()

	for moved := true; moved; {
		moved = false
		for c := 0; c < n; c++ {
			for r := n - 1; r >= 0; r-- {
				if g.Get(P(r, c)) != Empty {
					continue
				}
				for above := r - 1; above >= 0; above-- {
					k := g.Get(P(above, c))
					if k == Empty {
						continue
					}
					g.Set(P(r, c), k)
					g.Set(P(above, c), Empty)
					falls = append(falls, Fall{From: P(above, c), To: P(r, c), Kind: k})
					moved = true
					break
				}
			}
		}
	}

	return falls
}
