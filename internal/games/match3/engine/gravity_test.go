package engine

import "testing"

func TestApplyGravity(t *testing.T) {
	g := mustGrid(t, [][]Kind{
		{A, Empty, B, C},
		{Empty, B, Empty, D},
		{C, Empty, Empty, Empty},
		{D, A, Empty, B},
	})
	expected := mustGrid(t, [][]Kind{
		{Empty, Empty, Empty, Empty},
		{A, Empty, Empty, C},
		{C, B, Empty, D},
		{D, A, B, B},
	})

	falls := ApplyGravity(g)

	if !g.Equal(expected) {
		t.Errorf("ApplyGravity() got\n%s\nwant\n%s", g, expected)
	}
	for _, f := range falls {
		if f.From.Col != f.To.Col {
			t.Errorf("fall %v crosses columns", f)
		}
		if f.From.Row >= f.To.Row {
			t.Errorf("fall %v does not move down", f)
		}
	}
	if len(falls) != 5 {
		t.Errorf("len(falls) = %d, expected 5", len(falls))
	}
}

func TestApplyGravityLeavesNoInversion(t *testing.T) {
	g := mustGrid(t, [][]Kind{
		{A, B, Empty, C, D},
		{Empty, Empty, A, Empty, Empty},
		{B, Empty, Empty, D, Empty},
		{Empty, C, Empty, Empty, A},
		{Empty, Empty, B, Empty, Empty},
	})
	tokens := 25 - g.EmptyCount()

	ApplyGravity(g)

	if 25-g.EmptyCount() != tokens {
		t.Fatalf("gravity changed the token count")
	}
	for c := 0; c < g.Size(); c++ {
		seenToken := false
		for r := 0; r < g.Size(); r++ {
			if g.Get(P(r, c)) != Empty {
				seenToken = true
			} else if seenToken {
				t.Errorf("column %d has an empty cell below a token at row %d", c, r)
			}
		}
	}
}

func TestRemoveMatches(t *testing.T) {
	g := mustGrid(t, [][]Kind{
		{A, A, A},
		{B, C, B},
		{C, B, C},
	})
	RemoveMatches(g, FindMatches(g))

	for c := 0; c < 3; c++ {
		if g.Get(P(0, c)) != Empty {
			t.Errorf("(0,%d) should be empty after removal", c)
		}
	}
	if g.EmptyCount() != 3 {
		t.Errorf("EmptyCount() = %d, expected 3", g.EmptyCount())
	}
}
