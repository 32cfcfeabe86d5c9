// SPDX-License-Identifier: MIT

package snpge

import (
	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/estimator"
)

// Defaults for zero-valued fields of Common.
const (
	DefaultBsplines = 20
	DefaultNOrder1  = 4
)

// Common are the parameters shared by SNPGE and GridSNPGE.
type Common struct {
	Outcome estimator.Outcome

	// Basis, NBasis1 and Params1 describe the source basis the raw signal
	// is projected on.
	Basis   basis.Kind
	NBasis1 int
	Params1 basis.Params

	// NumHidden must equal len(Hidden).
	NumHidden int
	Hidden    []int
	Epochs    int

	// Bsplines and NOrder1 size the target B-spline basis
	// (0 selects DefaultBsplines / DefaultNOrder1).
	Bsplines int
	NOrder1  int

	Split estimator.SplitType
	// Ratio nil selects estimator.DefaultRatio(Split).
	Ratio []float64

	// T, when non-nil, requests the time-dependent AUC at T. Survival only.
	T *float64
}

// Params configures SNPGE: one hyperparameter point.
type Params struct {
	Common
	Hyper estimator.Hyper
}

// GridParams configures GridSNPGE: candidate lists per hyperparameter.
type GridParams struct {
	Common
	Grid estimator.Grid
}

func (c Common) bsplines() int {
	if c.Bsplines == 0 {
		return DefaultBsplines
	}

	return c.Bsplines
}

func (c Common) norder() int {
	if c.NOrder1 == 0 {
		return DefaultNOrder1
	}

	return c.NOrder1
}
