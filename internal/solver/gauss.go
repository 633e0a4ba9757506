package solver

import "math"

// pivotTolerance: a pivot below this magnitude marks its column as
// structurally singular; the unknown is left at zero and elimination moves
// on. Degenerate topologies solve silently instead of failing.
const pivotTolerance = 1e-10

// gaussianSolve solves a*x = b in place by Gaussian elimination with
// partial pivoting. Both a and b are clobbered.
func gaussianSolve(a [][]float64, b []float64) []float64 {
	n := len(b)
	skipped := make([]bool, n)

	for k := 0; k < n; k++ {
		pivot := k
		for r := k + 1; r < n; r++ {
			if math.Abs(a[r][k]) > math.Abs(a[pivot][k]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][k]) < pivotTolerance {
			skipped[k] = true
			continue
		}
		if pivot != k {
			a[pivot], a[k] = a[k], a[pivot]
			b[pivot], b[k] = b[k], b[pivot]
		}
		for r := k + 1; r < n; r++ {
			f := a[r][k] / a[k][k]
			if f == 0 {
				continue
			}
			for col := k; col < n; col++ {
				a[r][col] -= f * a[k][col]
			}
			b[r] -= f * b[k]
		}
	}

	x := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		if skipped[k] {
			continue
		}
		sum := b[k]
		for col := k + 1; col < n; col++ {
			sum -= a[k][col] * x[col]
		}
		x[k] = sum / a[k][k]
	}
	return x
}
