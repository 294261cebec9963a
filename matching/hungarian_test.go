package matching_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/matching"
)

const eps = 1e-9

// bruteForce returns the best total over all matchings of cardinality
// min(rows, cols).
func bruteForce(w [][]float64) float64 {
	rows := len(w)
	if rows == 0 || len(w[0]) == 0 {
		return 0
	}
	cols := len(w[0])
	if rows > cols {
		t := make([][]float64, cols)
		for c := range t {
			t[c] = make([]float64, rows)
			for r := range w {
				t[c][r] = w[r][c]
			}
		}
		return bruteForce(t)
	}
	used := make([]bool, cols)
	best := math.Inf(-1)
	var rec func(r int, acc float64)
	rec = func(r int, acc float64) {
		if r == rows {
			best = math.Max(best, acc)
			return
		}
		for c := 0; c < cols; c++ {
			if !used[c] {
				used[c] = true
				rec(r+1, acc+w[r][c])
				used[c] = false
			}
		}
	}
	rec(0, 0)

	return best
}

// checkAssignment verifies shape, injectivity, cardinality and the reported total.
func checkAssignment(t *testing.T, w [][]float64, assign []int, total float64) {
	t.Helper()
	require.Len(t, assign, len(w))
	cols := 0
	if len(w) > 0 {
		cols = len(w[0])
	}
	seen := map[int]bool{}
	matched := 0
	var sum float64
	for r, c := range assign {
		if c < 0 {
			continue
		}
		require.Less(t, c, cols)
		require.False(t, seen[c], "column %d matched twice", c)
		seen[c] = true
		matched++
		sum += w[r][c]
	}
	assert.Equal(t, min(len(w), cols), matched)
	assert.InDelta(t, sum, total, eps)
}

// TestMaxWeightAssignment_Small covers hand-checked cases in both orientations.
func TestMaxWeightAssignment_Small(t *testing.T) {
	w := [][]float64{{8, 7, 6, 5}, {12, 8, 4, 2}}
	assign, total := matching.MaxWeightAssignment(w)
	assert.Equal(t, []int{1, 0}, assign)
	assert.Equal(t, 19.0, total)

	tall := [][]float64{{1}, {5}, {3}}
	assign, total = matching.MaxWeightAssignment(tall)
	assert.Equal(t, []int{-1, 0, -1}, assign)
	assert.Equal(t, 5.0, total)

	neg := [][]float64{{5, -2}, {2, -3}}
	assign, total = matching.MaxWeightAssignment(neg)
	assert.Equal(t, []int{0, 1}, assign)
	assert.Equal(t, 2.0, total)
}

// TestMaxWeightAssignment_Degenerate handles empty inputs.
func TestMaxWeightAssignment_Degenerate(t *testing.T) {
	assign, total := matching.MaxWeightAssignment(nil)
	assert.Empty(t, assign)
	assert.Zero(t, total)

	assign, total = matching.MaxWeightAssignment([][]float64{{}, {}})
	assert.Equal(t, []int{-1, -1}, assign)
	assert.Zero(t, total)
}

// TestMaxWeightAssignment_MatchesBruteForce cross-checks random matrices,
// including negative weights and heavy ties.
func TestMaxWeightAssignment_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	for trial := 0; trial < 300; trial++ {
		rows := 1 + rng.IntN(5)
		cols := 1 + rng.IntN(5)
		w := make([][]float64, rows)
		for r := range w {
			w[r] = make([]float64, cols)
			for c := range w[r] {
				if trial%3 == 0 {
					w[r][c] = float64(rng.IntN(3)) // many ties
				} else {
					w[r][c] = rng.Float64()*20 - 5
				}
			}
		}
		assign, total := matching.MaxWeightAssignment(w)
		checkAssignment(t, w, assign, total)
		assert.InDelta(t, bruteForce(w), total, 1e-7, "trial %d: %v", trial, w)

		again, _ := matching.MaxWeightAssignment(w)
		assert.Equal(t, assign, again, "deterministic")
	}
}

// lexBest enumerates max-cardinality matchings row by row, columns
// ascending before "unmatched", and returns the first one reaching the
// optimal total: the optimum that is smallest by row then column.
func lexBest(w [][]float64) []int {
	rows, cols := len(w), len(w[0])
	best := bruteForce(w)
	want := min(rows, cols)
	assign := make([]int, rows)
	used := make([]bool, cols)
	var found []int
	var rec func(r, matched int, acc float64) bool
	rec = func(r, matched int, acc float64) bool {
		if r == rows {
			if matched == want && acc >= best-eps {
				found = append([]int(nil), assign...)
				return true
			}
			return false
		}
		for c := 0; c < cols; c++ {
			if used[c] {
				continue
			}
			used[c], assign[r] = true, c
			ok := rec(r+1, matched+1, acc+w[r][c])
			used[c] = false
			if ok {
				return true
			}
		}
		assign[r] = -1
		return rec(r+1, matched, acc)
	}
	rec(0, 0, 0)

	return found
}

// TestMaxWeightAssignment_TieBreak prefers the lowest item for the first
// agent, then the next agent, among all optimal matchings.
func TestMaxWeightAssignment_TieBreak(t *testing.T) {
	w := [][]float64{{0, 1, 2}, {0, 1, 2}, {0, 0, 1}}
	assign, total := matching.MaxWeightAssignment(w)
	assert.Equal(t, []int{1, 2, 0}, assign)
	assert.Equal(t, 3.0, total)

	flat := [][]float64{{1, 1, 1}, {1, 1, 1}}
	assign, _ = matching.MaxWeightAssignment(flat)
	assert.Equal(t, []int{0, 1}, assign)

	tall := [][]float64{{4}, {4}, {4}}
	assign, _ = matching.MaxWeightAssignment(tall)
	assert.Equal(t, []int{0, -1, -1}, assign)

	rng := rand.New(rand.NewPCG(5, 8))
	for trial := 0; trial < 2000; trial++ {
		rows := 1 + rng.IntN(4)
		cols := 1 + rng.IntN(4)
		w := make([][]float64, rows)
		for r := range w {
			w[r] = make([]float64, cols)
			for c := range w[r] {
				w[r][c] = float64(rng.IntN(3))
			}
		}
		assign, total := matching.MaxWeightAssignment(w)
		checkAssignment(t, w, assign, total)
		require.Equal(t, lexBest(w), assign, "trial %d: %v", trial, w)
	}
}
