package matching

import "math"

// MaxWeightAssignment finds a maximum-weight matching of maximum cardinality
// between the rows and columns of w (w[r][c] is the weight of pairing row r
// with column c). Exactly min(rows, cols) pairs are matched; among all such
// matchings the total weight is maximal.
//
// It returns assign, where assign[r] is the column matched to row r or -1,
// and the total weight of the matching. Rows must all have the same length.
//
// Ties between optimal matchings are broken by row then column order: row 0
// gets the lowest column that still admits an optimal matching, then row 1,
// and so on. Leaving a row unmatched ranks after every column.
//
// Algorithm Outline:
//  1. Solve once with the Hungarian method (see solve) for the optimum.
//  2. Walk the rows in order. For each free column in ascending order,
//     tentatively fix the pair and re-solve the remaining rows × columns;
//     keep the first column whose completion still reaches the optimum.
//  3. A row that may stay unmatched (more rows than free columns left)
//     and has no such column stays unmatched.
//
// Complexity: O(n·m) Hungarian solves of O(n²·m) each, n = min(rows, cols),
// m = max(rows, cols).
func MaxWeightAssignment(w [][]float64) (assign []int, total float64) {
	rows := len(w)
	if rows == 0 {
		return []int{}, 0
	}
	cols := len(w[0])
	assign = make([]int, rows)
	for r := range assign {
		assign[r] = -1
	}
	if cols == 0 {
		return assign, 0
	}

	_, best := solve(w)
	tol := 1e-9 * (1 + math.Abs(best))
	free := make([]int, cols)
	for c := range free {
		free[c] = c
	}

	var acc float64
	for r := 0; r < rows && len(free) > 0; r++ {
		mustMatch := rows-r-1 < len(free)
		pick, fallback := -1, -1
		fallbackScore := math.Inf(-1)
		for k, c := range free {
			score := acc + w[r][c] + optimum(w, r+1, without(free, k))
			if score >= best-tol {
				pick = k
				break
			}
			if score > fallbackScore {
				fallback, fallbackScore = k, score
			}
		}
		if pick < 0 && mustMatch {
			// rounding kept every column just under the optimum
			pick = fallback
		}
		if pick < 0 {
			continue
		}
		c := free[pick]
		assign[r] = c
		acc += w[r][c]
		total += w[r][c]
		free = without(free, pick)
	}

	return assign, total
}

// optimum returns the best max-cardinality total of rows from.. against cols.
func optimum(w [][]float64, from int, cols []int) float64 {
	if from >= len(w) || len(cols) == 0 {
		return 0
	}
	sub := make([][]float64, len(w)-from)
	for k := range sub {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = w[from+k][c]
		}
		sub[k] = row
	}
	_, total := solve(sub)

	return total
}

// without returns a copy of s minus the element at k.
func without(s []int, k int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:k]...)

	return append(out, s[k+1:]...)
}

// solve returns one maximum-weight max-cardinality matching of a non-empty
// matrix, transposing when rows outnumber columns.
func solve(w [][]float64) (assign []int, total float64) {
	rows, cols := len(w), len(w[0])
	assign = make([]int, rows)
	for r := range assign {
		assign[r] = -1
	}

	if rows <= cols {
		colOf := hungarian(rows, cols, func(r, c int) float64 { return -w[r][c] })
		for r, c := range colOf {
			assign[r] = c
			total += w[r][c]
		}
		return assign, total
	}

	rowOf := hungarian(cols, rows, func(c, r int) float64 { return -w[r][c] })
	for c, r := range rowOf {
		assign[r] = c
		total += w[r][c]
	}

	return assign, total
}

// hungarian solves the rectangular assignment problem for n ≤ m, minimizing
// the sum of cost(r, c). It returns the column matched to each row.
func hungarian(n, m int, cost func(r, c int) float64) []int {
	inf := math.Inf(1)
	// 1-indexed; index 0 is the virtual root of the alternating tree.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)   // p[c] = row matched to column c (0 = free)
	way := make([]int, m+1) // predecessor column on the alternating path
	minv := make([]float64, m+1)
	used := make([]bool, m+1)

	for r := 1; r <= n; r++ {
		p[0] = r
		c0 := 0
		for c := range minv {
			minv[c] = inf
			used[c] = false
		}
		for {
			used[c0] = true
			r0 := p[c0]
			delta := inf
			c1 := -1
			for c := 1; c <= m; c++ {
				if used[c] {
					continue
				}
				reduced := cost(r0-1, c-1) - u[r0] - v[c]
				if reduced < minv[c] {
					minv[c] = reduced
					way[c] = c0
				}
				if minv[c] < delta {
					delta = minv[c]
					c1 = c
				}
			}
			for c := 0; c <= m; c++ {
				if used[c] {
					u[p[c]] += delta
					v[c] -= delta
				} else {
					minv[c] -= delta
				}
			}
			c0 = c1
			if p[c0] == 0 {
				break
			}
		}
		// flip the augmenting path
		for c0 != 0 {
			c1 := way[c0]
			p[c0] = p[c1]
			c0 = c1
		}
	}

	colOf := make([]int, n)
	for c := 1; c <= m; c++ {
		if p[c] != 0 {
			colOf[p[c]-1] = c - 1
		}
	}

	return colOf
}
