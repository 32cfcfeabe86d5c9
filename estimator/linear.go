// SPDX-License-Identifier: MIT

// Package estimator: least-squares baseline.
package estimator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Linear is an ordinary least-squares fit y ≈ Intercept + X·Coef.
type Linear struct {
	Intercept float64
	Coef      []float64
}

// FitLinear fits y on X with an intercept.
//
// Implementation:
//   - Stage 1: centre every column of X and y.
//   - Stage 2: thin SVD of the centred X; the numerical rank uses the
//     cutoff max(n, p)·ε·σ_max.
//   - Stage 3: minimum-norm solution at that rank; Intercept = ȳ − x̄·Coef.
//
// Wide designs (p > n) get the minimum-norm coefficients. A constant design
// (rank 0) yields zero coefficients and Intercept = ȳ.
//
// Complexity: O(n·p·min(n, p)).
func FitLinear(X mat.Matrix, y []float64) (*Linear, error) {
	if X == nil {
		return nil, estimatorErrorf(opFitLinear, invalid("nil design"))
	}
	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, estimatorErrorf(opFitLinear, invalid("empty design %d×%d", n, p))
	}
	if len(y) != n {
		return nil, estimatorErrorf(opFitLinear, invalid("y has %d entries, X has %d rows", len(y), n))
	}
	for i, v := range y {
		if !isFinite(v) {
			return nil, estimatorErrorf(opFitLinear, invalid("y[%d] is not finite", i))
		}
	}

	Xc := mat.DenseCopyOf(X)
	means := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, Xc)
		for i, v := range col {
			if !isFinite(v) {
				return nil, estimatorErrorf(opFitLinear, invalid("X[%d,%d] is not finite", i, j))
			}
		}
		means[j] = stat.Mean(col, nil)
		floats.AddConst(-means[j], col)
		Xc.SetCol(j, col)
	}
	yMean := stat.Mean(y, nil)
	yc := make([]float64, n)
	copy(yc, y)
	floats.AddConst(-yMean, yc)

	coef := make([]float64, p)
	var svd mat.SVD
	if !svd.Factorize(Xc, mat.SVDThin) {
		return nil, estimatorErrorf(opFitLinear, invalid("SVD did not converge"))
	}
	rcond := float64(max(n, p)) * eps
	if rank := svd.Rank(rcond); rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, mat.NewVecDense(n, yc), rank)
		mat.Col(coef, 0, &beta)
	}

	return &Linear{
		Intercept: yMean - floats.Dot(means, coef),
		Coef:      coef,
	}, nil
}

// eps is the float64 machine epsilon.
const eps = 2.220446049250313e-16

// Predict returns Intercept + X·Coef.
func (l *Linear) Predict(X mat.Matrix) ([]float64, error) {
	n, p := X.Dims()
	if p != len(l.Coef) {
		return nil, estimatorErrorf(opPredict, invalid("X has %d columns, model has %d coefficients", p, len(l.Coef)))
	}
	out := make([]float64, n)
	row := make([]float64, p)
	for i := range out {
		mat.Row(row, i, X)
		out[i] = l.Intercept + floats.Dot(row, l.Coef)
	}

	return out, nil
}

// BaselineResponse returns the first response column: y itself for
// Continuous and Binary outcomes, the event time for Survival.
func BaselineResponse(Y *mat.Dense) []float64 { return mat.Col(nil, 0, Y) }
