// SPDX-License-Identifier: MIT
// Package funcge: sentinel error set shared by every subpackage.
// This file defines ONLY the error kinds of the pipeline. Subpackages wrap
// them with an operation tag (fmt.Errorf("%s: %w", tag, err)); callers match
// them with errors.Is regardless of the stage that failed.

package funcge

import "errors"

var (
	// ErrInvalidInput signals a malformed argument: nil or empty location,
	// unordered or non-finite locations, shape mismatch between X/z/y/location,
	// or a parameter outside its documented domain.
	ErrInvalidInput = errors.New("funcge: invalid input")

	// ErrSingularBasis signals that the normal-equations matrix BᵀB is singular
	// (too few observed samples relative to the basis size).
	ErrSingularBasis = errors.New("funcge: singular basis system")

	// ErrIncompatibleInterval signals that two bases do not share an interval,
	// or that the inner-product quadrature failed to converge.
	ErrIncompatibleInterval = errors.New("funcge: incompatible basis intervals")

	// ErrUnsupportedBasisType signals an unknown basis family.
	ErrUnsupportedBasisType = errors.New("funcge: unsupported basis type")
)
