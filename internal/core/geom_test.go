package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"last cell", 29, 24, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 9, 15, false},
		{"above rect", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 5)
	if r.Right() != 12 {
		t.Errorf("Right() = %d, expected 12", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, expected 8", r.Bottom())
	}
	if x, y := r.Center(); x != 7 || y != 5 {
		t.Errorf("Center() = (%d, %d), expected (7, 5)", x, y)
	}
}

func TestRectCenteredIn(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.CenteredIn(20, 10)

	expected := NewRect(30, 7, 20, 10)
	if inner != expected {
		t.Errorf("CenteredIn() = %+v, expected %+v", inner, expected)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n, expected int
	}{
		{3, 8, 3},
		{8, 8, 0},
		{-1, 8, 7},
		{-9, 8, 7},
		{5, 0, 0},
	}

	for _, tc := range tests {
		if got := Wrap(tc.val, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, got, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(3, 5) != 3 || Min(5, 3) != 3 {
		t.Error("Min failed")
	}
	if Max(3, 5) != 5 || Max(5, 3) != 5 {
		t.Error("Max failed")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs failed")
	}
}
