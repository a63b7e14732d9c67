package engine

// Rand is the source of randomness used for token placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Fill defaults.
const (
	DefaultPlacementAttempts = 10
	DefaultMaxRerolls        = 100
)

// FillOptions bounds the retry loops used when filling a grid.
type FillOptions struct {
	// PlacementAttempts caps the random draws per cell before the last draw
	// is accepted even if it completes a run.
	PlacementAttempts int

	// MaxRerolls caps whole-board refills during Initialize before falling
	// back to a deterministic match-free pattern.
	MaxRerolls int
}

// withDefaults replaces non-positive fields with package defaults.
func (o FillOptions) withDefaults() FillOptions {
	if o.PlacementAttempts <= 0 {
		o.PlacementAttempts = DefaultPlacementAttempts
	}
	if o.MaxRerolls <= 0 {
		o.MaxRerolls = DefaultMaxRerolls
	}
	return o
}

// WouldCreateMatch reports whether placing kind at p would complete a
// horizontal or vertical run of MinRun or more, counting only contiguous
// filled neighbours. The current content of p is ignored.
func WouldCreateMatch(g *Grid, p Position, kind Kind) bool {
	if kind == Empty {
		return false
	}

	horizontal := 1
	for c := p.Col - 1; c >= 0 && g.Get(P(p.Row, c)) == kind; c-- {
		horizontal++
	}
	for c := p.Col + 1; c < g.Size() && g.Get(P(p.Row, c)) == kind; c++ {
		horizontal++
	}

	vertical := 1
	for r := p.Row - 1; r >= 0 && g.Get(P(r, p.Col)) == kind; r-- {
		vertical++
	}
	for r := p.Row + 1; r < g.Size() && g.Get(P(r, p.Col)) == kind; r++ {
		vertical++
	}

	return horizontal >= MinRun || vertical >= MinRun
}

// placeBiased picks a kind for p, redrawing while the draw would complete a
// run, at most attempts draws in total. The last draw is accepted regardless.
func placeBiased(g *Grid, p Position, kinds []Kind, rng Rand, attempts int) Kind {
	var k Kind
	for i := 0; i < attempts; i++ {
		k = kinds[rng.Intn(len(kinds))]
		if !WouldCreateMatch(g, p, k) {
			break
		}
	}
	return k
}

// validateKinds checks that size and kinds can produce a playable board.
func validateKinds(size int, kinds []Kind) error {
	if size < MinRun {
		return configErrorf("size %d is smaller than %d", size, MinRun)
	}
	if len(kinds) < 2 {
		return configErrorf("need at least 2 token kinds, got %d", len(kinds))
	}
	seen := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if k == Empty {
			return configErrorf("token kinds must not include Empty")
		}
		if seen[k] {
			return configErrorf("duplicate token kind %s", k)
		}
		seen[k] = true
	}
	return nil
}

// Initialize creates a size x size grid filled with kinds drawn from rng so
// that no match exists. Cells are filled in row-major order with placement
// bias, then the whole board is validated and, on any residual match,
// cleared and refilled. After opts.MaxRerolls refills a deterministic
// match-free pattern is used instead.
func Initialize(size int, kinds []Kind, rng Rand, opts FillOptions) (*Grid, error) {
	if err := validateKinds(size, kinds); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	g := NewGrid(size)
	for attempt := 0; attempt < opts.MaxRerolls; attempt++ {
		g.Clear()
		Refill(g, kinds, rng, opts.PlacementAttempts)
		if !HasMatch(g) {
			return g, nil
		}
	}

	fillPattern(g, kinds)
	return g, nil
}

// Refill places a biased random token into every Empty cell in row-major
// order and returns the filled positions. The result is not re-validated.
func Refill(g *Grid, kinds []Kind, rng Rand, attempts int) []Position {
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}
	var filled []Position
	n := g.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := P(r, c)
			if g.Get(p) != Empty {
				continue
			}
			g.Set(p, placeBiased(g, p, kinds, rng, attempts))
			filled = append(filled, p)
		}
	}
	return filled
}

// fillPattern writes a deterministic board without runs of MinRun.
// Three or more kinds use a diagonal stripe where neighbours always differ;
// two kinds use 2x2 blocks in a checkerboard.
func fillPattern(g *Grid, kinds []Kind) {
	n := g.Size()
	k := len(kinds)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if k >= 3 {
				g.Set(P(r, c), kinds[(r+c)%k])
			} else {
				g.Set(P(r, c), kinds[(r/2+c/2)%2])
			}
		}
	}
}
