// Package engine implements the match-3 grid engine: match detection, swap
// validation, cascade resolution and hint search over a square token grid.
// It is pure and synchronous; rendering, input and animation pacing live in
// the presentation layer that calls into it.
package engine

import "fmt"

// Kind is the content of a single grid cell.
// The zero value is Empty; token kinds start at 1.
type Kind uint8

const (
	Empty Kind = iota
	Red
	Blue
	Green
	Yellow
	Purple
	Orange
)

// MaxKinds is the number of named token kinds.
const MaxKinds = int(Orange)

var kindNames = [...]string{
	Empty:  "empty",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Yellow: "yellow",
	Purple: "purple",
	Orange: "orange",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsToken reports whether k is a token (not Empty).
func (k Kind) IsToken() bool {
	return k != Empty
}

// DefaultKinds returns the first n token kinds.
// n is clamped to [0, MaxKinds].
func DefaultKinds(n int) []Kind {
	if n < 0 {
		n = 0
	}
	if n > MaxKinds {
		n = MaxKinds
	}
	kinds := make([]Kind, n)
	for i := range kinds {
		kinds[i] = Kind(i + 1)
	}
	return kinds
}
