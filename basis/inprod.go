// SPDX-License-Identifier: MIT

// Package basis - inner products between two bases.
//
// Purpose:
//   - InnerProduct computes M[p,q] = ∫ D^da φa_p(t) · D^db φb_q(t) dt over the
//     intersection of the two intervals.
//   - Gram is the self inner product used for projections and penalties.
//
// Determinism & Policy:
//   - Breakpoints of both bases are merged so each quadrature panel sees a
//     smooth integrand; polynomial pieces are integrated exactly once the
//     node count exceeds half their degree.
//   - Node count doubles until two successive matrices agree within tolerance;
//     the result depends only on (a, b, da, db, options).
//   - Power terms t^e with fractional e are not smooth at 0. The panel
//     starting at 0 is integrated in s with t = lo + h·s², which turns
//     t^e into s^(2e+1) and restores fast convergence.

package basis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
)

// Quadrature defaults.
const (
	// DefaultQuadNodes is the initial Gauss–Legendre node count per panel.
	DefaultQuadNodes = 8

	// DefaultMaxQuadNodes caps node doubling per panel.
	DefaultMaxQuadNodes = 1024

	// DefaultQuadTolerance is the relative agreement required between two
	// successive node counts (relative to max(1, max|M|)).
	DefaultQuadTolerance = 1e-10
)

const (
	panicTolInvalid   = "basis: WithTolerance: tol must be finite and > 0"
	panicNodesInvalid = "basis: WithMaxNodes: n must be ≥ 1"
)

// Option configures InnerProduct.
type Option func(*quadOptions)

type quadOptions struct {
	tol      float64
	maxNodes int
}

// WithTolerance sets the convergence tolerance. Panics on non-finite or
// non-positive tol (programmer error).
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolInvalid)
	}

	return func(o *quadOptions) { o.tol = tol }
}

// WithMaxNodes caps the per-panel node count. Panics on n < 1.
func WithMaxNodes(n int) Option {
	if n < 1 {
		panic(panicNodesInvalid)
	}

	return func(o *quadOptions) { o.maxNodes = n }
}

func gatherOptions(user ...Option) quadOptions {
	o := quadOptions{tol: DefaultQuadTolerance, maxNodes: DefaultMaxQuadNodes}
	for _, set := range user {
		set(&o)
	}

	return o
}

// InnerProduct returns the a.N()×b.N() matrix of inner products between the
// derivA-th derivatives of a and the derivB-th derivatives of b.
//
// Implementation:
//   - Stage 1: intersect intervals; empty intersection ⇒ ErrIncompatibleInterval.
//   - Stage 2: panels = sorted union of both bases' breakpoints inside the intersection.
//   - Stage 3: per panel, Gauss–Legendre nodes x and weights w;
//     M += Aᵀ·diag(w)·B with A = a.EvalMatrix(x), B = b.EvalMatrix(x).
//   - Stage 4: repeat with doubled nodes until successive M agree.
//
// When the intersection starts at 0 and either basis has a fractional
// Power exponent, the first panel uses graded nodes (t = s²).
//
// Errors:
//   - ErrInvalidInput for nil bases or negative derivative orders.
//   - ErrIncompatibleInterval for disjoint intervals or no convergence.
//
// Complexity:
//   - Time O(P · n · (a.N()+b.N()) · cost(eval)) per round, P panels, n nodes.
func InnerProduct(a, b *Basis, derivA, derivB int, opts ...Option) (*mat.Dense, error) {
	if a == nil || b == nil {
		return nil, basisErrorf(opInnerProduct, invalid("nil basis"))
	}
	if derivA < 0 || derivB < 0 {
		return nil, basisErrorf(opInnerProduct, invalid("derivative orders (%d, %d) must be ≥ 0", derivA, derivB))
	}
	o := gatherOptions(opts...)

	lo, hi := math.Max(a.lo, b.lo), math.Min(a.hi, b.hi)
	if !(hi > lo) {
		return nil, basisErrorf(opInnerProduct, fmt.Errorf("[%g, %g] ∩ [%g, %g] is empty: %w",
			a.lo, a.hi, b.lo, b.hi, funcge.ErrIncompatibleInterval))
	}
	panels := mergeBreaks(lo, hi, a.Breaks(), b.Breaks())
	graded := lo == 0 && (fractionalPower(a) || fractionalPower(b))

	nodes := DefaultQuadNodes
	if nodes > o.maxNodes {
		nodes = o.maxNodes
	}
	prev, err := quadrature(a, b, derivA, derivB, panels, nodes, graded)
	if err != nil {
		return nil, basisErrorf(opInnerProduct, err)
	}
	for nodes*2 <= o.maxNodes {
		nodes *= 2
		next, err := quadrature(a, b, derivA, derivB, panels, nodes, graded)
		if err != nil {
			return nil, basisErrorf(opInnerProduct, err)
		}
		if converged(prev, next, o.tol) {
			return next, nil
		}
		prev = next
	}

	return nil, basisErrorf(opInnerProduct, fmt.Errorf("quadrature did not converge with %d nodes per panel: %w",
		nodes, funcge.ErrIncompatibleInterval))
}

// Gram returns InnerProduct(b, b, 0, 0).
func Gram(b *Basis, opts ...Option) (*mat.Dense, error) {
	return InnerProduct(b, b, 0, 0, opts...)
}

// quadrature evaluates one round with n nodes per panel. graded maps the
// first panel's nodes through t = lo + h·s², dt = 2h·s ds.
func quadrature(a, b *Basis, da, db int, panels []float64, n int, graded bool) (*mat.Dense, error) {
	out := mat.NewDense(a.n, b.n, nil)
	x := make([]float64, n)
	w := make([]float64, n)
	var rule quad.Legendre
	var part mat.Dense
	for p := 0; p+1 < len(panels); p++ {
		lo, hi := panels[p], panels[p+1]
		if graded && p == 0 {
			rule.FixedLocations(x, w, 0, 1)
			h := hi - lo
			for i, s := range x {
				x[i] = lo + h*s*s
				w[i] *= 2 * h * s
			}
		} else {
			rule.FixedLocations(x, w, lo, hi)
		}
		A, err := a.EvalMatrix(x, da)
		if err != nil {
			return nil, err
		}
		B, err := b.EvalMatrix(x, db)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			row := A.RawRowView(i)
			for k := range row {
				row[k] *= w[i]
			}
		}
		part.Reset()
		part.Mul(A.T(), B)
		out.Add(out, &part)
	}

	return out, nil
}

// fractionalPower reports whether b is a Power basis with a non-integer
// exponent.
func fractionalPower(b *Basis) bool {
	if b.kind != Power {
		return false
	}
	for _, e := range b.exps {
		if e != math.Trunc(e) {
			return true
		}
	}

	return false
}

// converged reports max|a-b| ≤ tol·max(1, max|b|). NaN never converges.
func converged(a, b *mat.Dense, tol float64) bool {
	var diff mat.Dense
	diff.Sub(a, b)

	return maxAbs(&diff) <= tol*math.Max(1, maxAbs(b))
}

// maxAbs returns max|m[i,j]|, or +Inf when any entry is NaN.
func maxAbs(m *mat.Dense) float64 {
	r, c := m.Dims()
	var best float64
	for i := 0; i < r; i++ {
		for _, v := range m.RawRowView(i)[:c] {
			if math.IsNaN(v) {
				return math.Inf(1)
			}
			best = math.Max(best, math.Abs(v))
		}
	}

	return best
}

// mergeBreaks returns the sorted, de-duplicated union of lo, hi and every
// breakpoint strictly between them.
func mergeBreaks(lo, hi float64, sets ...[]float64) []float64 {
	pts := []float64{lo, hi}
	for _, s := range sets {
		for _, v := range s {
			if v > lo && v < hi {
				pts = append(pts, v)
			}
		}
	}
	sort.Float64s(pts)
	out := pts[:1]
	for _, v := range pts[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out
}
