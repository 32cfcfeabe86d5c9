// SPDX-License-Identifier: MIT

// Package basis - evaluation kernels.
//
// Purpose:
//   - EvalMatrix fills a locations×nbasis matrix with D^deriv φ_k(t).
//   - Each family has one private row kernel writing into a caller buffer,
//     so EvalMatrix allocates only the result.
//
// Determinism:
//   - Fixed i→k loop order; no data-dependent branching beyond the knot span.

package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// EvalMatrix returns B with B[i,k] = D^deriv φ_k(locations[i]).
//
// Inputs:
//   - locations: finite points inside [Lo, Hi], any order.
//   - deriv: derivative order ≥ 0.
//
// Returns:
//   - *mat.Dense of shape len(locations) × N.
//
// Errors:
//   - ErrInvalidInput for empty/out-of-interval locations or deriv < 0.
//
// Complexity:
//   - Bspline: O(L · (N+order) · order); other families O(L · N).
func (b *Basis) EvalMatrix(locations []float64, deriv int) (*mat.Dense, error) {
	if deriv < 0 {
		return nil, basisErrorf(opEvalMatrix, invalid("derivative order %d must be ≥ 0", deriv))
	}
	if err := b.validateLocations(locations); err != nil {
		return nil, basisErrorf(opEvalMatrix, err)
	}

	out := mat.NewDense(len(locations), b.n, nil)
	row := make([]float64, b.n)
	for i, t := range locations {
		b.evalRow(t, deriv, row)
		out.SetRow(i, row)
	}

	return out, nil
}

// evalRow writes D^deriv φ_k(t) for all k into dst (len N). t is assumed valid.
func (b *Basis) evalRow(t float64, deriv int, dst []float64) {
	switch b.kind {
	case Bspline:
		copy(dst, bsplineDeriv(b.knots, b.order, deriv, t))
	case Exponential:
		for k, r := range b.rates {
			dst[k] = math.Pow(r, float64(deriv)) * math.Exp(r*t)
		}
	case Fourier:
		b.fourierRow(t, deriv, dst)
	case Monomial, Power:
		for k, e := range b.exps {
			dst[k] = powDeriv(t, e, deriv)
		}
	}
}

// fourierRow evaluates the orthonormal Fourier family on [lo, lo+P]:
// φ_0 = 1/√P, φ_{2j-1} = sin(jωs)/√(P/2), φ_{2j} = cos(jωs)/√(P/2), s = t-lo.
// The d-th derivative of sin(a·s) is a^d·sin(a·s + dπ/2), likewise for cos.
func (b *Basis) fourierRow(t float64, deriv int, dst []float64) {
	p := b.period
	omega := 2 * math.Pi / p
	s := t - b.lo
	if deriv == 0 {
		dst[0] = 1 / math.Sqrt(p)
	} else {
		dst[0] = 0
	}
	norm := 1 / math.Sqrt(p/2)
	shift := float64(deriv) * math.Pi / 2
	for j := 1; 2*j-1 < b.n; j++ {
		a := float64(j) * omega
		amp := math.Pow(a, float64(deriv)) * norm
		dst[2*j-1] = amp * math.Sin(a*s+shift)
		if 2*j < b.n {
			dst[2*j] = amp * math.Cos(a*s+shift)
		}
	}
}

// powDeriv returns D^d t^e = e(e-1)…(e-d+1)·t^(e-d).
// Integer exponents with d > e vanish identically.
func powDeriv(t, e float64, d int) float64 {
	coef := 1.0
	for i := 0; i < d; i++ {
		coef *= e - float64(i)
	}
	if coef == 0 {
		return 0
	}

	return coef * math.Pow(t, e-float64(d))
}

// bsplineValues returns all len(knots)-order B-spline values of the given
// order at x via the Cox–de Boor recursion.
//
// Implementation:
//   - Stage 1: order-1 indicator on the knot span containing x (the last
//     non-degenerate span when x equals the right end).
//   - Stage 2: raise the order one step at a time; 0/0 terms are dropped.
func bsplineValues(knots []float64, order int, x float64) []float64 {
	m := len(knots)
	b := make([]float64, m-1)
	b[knotSpan(knots, x)] = 1
	for k := 2; k <= order; k++ {
		next := make([]float64, m-k)
		for i := range next {
			var v float64
			if d := knots[i+k-1] - knots[i]; d > 0 {
				v += (x - knots[i]) / d * b[i]
			}
			if d := knots[i+k] - knots[i+1]; d > 0 {
				v += (knots[i+k] - x) / d * b[i+1]
			}
			next[i] = v
		}
		b = next
	}

	return b
}

// bsplineDeriv returns D^deriv of every order-`order` B-spline at x using
// D B_{i,k} = (k-1)[B_{i,k-1}/(t_{i+k-1}-t_i) - B_{i+1,k-1}/(t_{i+k}-t_{i+1})].
// Derivatives of order ≥ k are identically zero.
func bsplineDeriv(knots []float64, order, deriv int, x float64) []float64 {
	if deriv == 0 {
		return bsplineValues(knots, order, x)
	}
	n := len(knots) - order
	out := make([]float64, n)
	if deriv >= order {
		return out
	}
	lower := bsplineDeriv(knots, order-1, deriv-1, x) // len n+1
	k := float64(order - 1)
	for i := 0; i < n; i++ {
		if d := knots[i+order-1] - knots[i]; d > 0 {
			out[i] += k * lower[i] / d
		}
		if d := knots[i+order] - knots[i+1]; d > 0 {
			out[i] -= k * lower[i+1] / d
		}
	}

	return out
}

// knotSpan returns i with knots[i] ≤ x < knots[i+1]; at the right end it
// returns the last span of positive length so the end point is included.
func knotSpan(knots []float64, x float64) int {
	last := len(knots) - 1
	if x >= knots[last] {
		for i := last - 1; i >= 0; i-- {
			if knots[i] < knots[i+1] {
				return i
			}
		}

		return 0
	}
	for i := 0; i < last; i++ {
		if knots[i] <= x && x < knots[i+1] {
			return i
		}
	}

	return 0
}
