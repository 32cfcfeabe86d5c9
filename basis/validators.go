// SPDX-License-Identifier: MIT
// Package: basis
//
// Purpose:
//   - Single source of truth for constructor and evaluation guards.
//   - Every guard returns a sentinel from the root package, wrapped with a
//     short reason, so call sites only add their operation tag.

package basis

import (
	"fmt"
	"math"

	"github.com/katalvlaran/funcge"
)

// Operation tags for error wrapping.
const (
	opNew          = "basis.New"
	opBspline      = "basis.NewBspline"
	opExponential  = "basis.NewExponential"
	opFourier      = "basis.NewFourier"
	opMonomial     = "basis.NewMonomial"
	opPower        = "basis.NewPower"
	opParseKind    = "basis.ParseKind"
	opEvalMatrix   = "basis.EvalMatrix"
	opInnerProduct = "basis.InnerProduct"
)

// basisErrorf wraps err with an operation tag, preserving the sentinel via %w.
func basisErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// invalid attaches a reason to ErrInvalidInput.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), funcge.ErrInvalidInput)
}

// unsupported attaches the offending name to ErrUnsupportedBasisType.
func unsupported(name string) error {
	return fmt.Errorf("%q: %w", name, funcge.ErrUnsupportedBasisType)
}

// validateInterval requires finite lo < hi.
func validateInterval(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return invalid("interval [%g, %g] must be finite", lo, hi)
	}
	if !(lo < hi) {
		return invalid("interval [%g, %g] must satisfy lo < hi", lo, hi)
	}

	return nil
}

// validateCount requires nbasis ≥ 1.
func validateCount(n int) error {
	if n < 1 {
		return invalid("nbasis %d must be ≥ 1", n)
	}

	return nil
}

// validateDistinctFinite rejects NaN/Inf entries and duplicates.
// Complexity: O(n²); vectors here are basis-sized.
func validateDistinctFinite(name string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalid("%s[%d] = %g is not finite", name, i, x)
		}
		for j := 0; j < i; j++ {
			if v[j] == x {
				return invalid("%s[%d] duplicates %s[%d] = %g", name, i, name, j, x)
			}
		}
	}

	return nil
}

// validateLocations requires finite points inside [lo, hi].
func (b *Basis) validateLocations(x []float64) error {
	if len(x) == 0 {
		return invalid("no evaluation points")
	}
	for i, t := range x {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return invalid("location[%d] = %g is not finite", i, t)
		}
		if t < b.lo || t > b.hi {
			return invalid("location[%d] = %g outside [%g, %g]", i, t, b.lo, b.hi)
		}
	}

	return nil
}
