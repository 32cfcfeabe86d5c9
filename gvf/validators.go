// SPDX-License-Identifier: MIT

// Package gvf: input guards shared by the projector entry points.
package gvf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
)

// validateLocation requires a non-empty, finite, non-decreasing vector.
func validateLocation(location []float64) error {
	if len(location) == 0 {
		return fmt.Errorf("empty location vector: %w", funcge.ErrInvalidInput)
	}
	for j, v := range location {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("location[%d] = %g: %w", j, v, funcge.ErrInvalidInput)
		}
		if j > 0 && v < location[j-1] {
			return fmt.Errorf("location must be non-decreasing (location[%d] = %g < %g): %w",
				j, v, location[j-1], funcge.ErrInvalidInput)
		}
	}

	return nil
}

// validateInputs checks location, the shape of X, infinities in X and that
// b covers the observed range. NaN in X is allowed (missing).
func validateInputs(location []float64, X *mat.Dense, b *basis.Basis) error {
	if X == nil || b == nil {
		return fmt.Errorf("nil signal matrix or basis: %w", funcge.ErrInvalidInput)
	}
	if err := validateLocation(location); err != nil {
		return err
	}
	n, m := X.Dims()
	if m != len(location) {
		return fmt.Errorf("X has %d columns, location has %d entries: %w", m, len(location), funcge.ErrInvalidInput)
	}
	for i := 0; i < n; i++ {
		for j, v := range X.RawRowView(i)[:m] {
			if math.IsInf(v, 0) {
				return fmt.Errorf("X[%d,%d] is infinite: %w", i, j, funcge.ErrInvalidInput)
			}
		}
	}
	lo, hi := location[0], location[len(location)-1]
	if !b.Covers(lo, hi) {
		blo, bhi := b.Interval()
		return fmt.Errorf("basis interval [%g, %g] does not cover locations [%g, %g]: %w",
			blo, bhi, lo, hi, funcge.ErrInvalidInput)
	}

	return nil
}
