package engine

import (
	"reflect"
	"testing"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]Kind
		expected []Position
	}{
		{
			name: "no match",
			rows: [][]Kind{
				{A, A, B, B},
				{B, B, A, A},
				{A, A, B, B},
				{B, B, A, A},
			},
			expected: []Position{},
		},
		{
			name: "horizontal run of three",
			rows: [][]Kind{
				{A, A, A, B},
				{B, C, D, C},
				{C, D, C, D},
				{D, C, D, C},
			},
			expected: []Position{P(0, 0), P(0, 1), P(0, 2)},
		},
		{
			name: "vertical run at end of column",
			rows: [][]Kind{
				{A, B, C, D},
				{B, C, D, A},
				{C, D, B, A},
				{D, C, B, A},
			},
			expected: []Position{P(1, 3), P(2, 3), P(3, 3)},
		},
		{
			name: "run of four",
			rows: [][]Kind{
				{B, C, D, C},
				{A, A, A, A},
				{C, D, C, D},
				{D, C, D, C},
			},
			expected: []Position{P(1, 0), P(1, 1), P(1, 2), P(1, 3)},
		},
		{
			name: "cross shares a cell once",
			rows: [][]Kind{
				{B, A, C, D},
				{A, A, A, C},
				{C, A, D, B},
				{D, C, B, D},
			},
			expected: []Position{P(0, 1), P(1, 0), P(1, 1), P(1, 2), P(2, 1)},
		},
		{
			name: "empty cells break runs",
			rows: [][]Kind{
				{A, A, Empty, A},
				{Empty, Empty, Empty, Empty},
				{Empty, Empty, Empty, Empty},
				{B, Empty, B, B},
			},
			expected: []Position{},
		},
		{
			name: "empty runs never match",
			rows: [][]Kind{
				{Empty, Empty, Empty, Empty},
				{Empty, Empty, Empty, Empty},
				{Empty, Empty, Empty, Empty},
				{Empty, Empty, Empty, Empty},
			},
			expected: []Position{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.rows)
			got := FindMatches(g).Positions()
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("FindMatches() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFindMatchesIsPure(t *testing.T) {
	g := mustGrid(t, [][]Kind{
		{A, A, A},
		{B, C, B},
		{C, B, C},
	})
	before := g.Clone()
	FindMatches(g)
	if !g.Equal(before) {
		t.Error("FindMatches should not modify the grid")
	}
}

func TestMatchSetUniqueness(t *testing.T) {
	m := make(MatchSet)
	m.Add(P(1, 1))
	m.Add(P(1, 1))
	m.Add(P(0, 2))

	if m.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", m.Len())
	}
	if !m.Contains(P(0, 2)) || m.Contains(P(2, 0)) {
		t.Error("Contains() returned wrong membership")
	}
	if got := m.Positions(); !reflect.DeepEqual(got, []Position{P(0, 2), P(1, 1)}) {
		t.Errorf("Positions() = %v, expected row-major order", got)
	}
}
