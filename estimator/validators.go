// SPDX-License-Identifier: MIT
// Package: estimator
//
// Purpose:
//   - Guards for Data, Config, Hyper and Grid. Each returns a reason wrapped
//     around funcge.ErrInvalidInput; entry points add their operation tag.

package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/funcge"
)

// Operation tags for error wrapping.
const (
	opFitLinear    = "estimator.FitLinear"
	opFit          = "estimator.Fit"
	opGridSearch   = "estimator.GridSearch"
	opParseOutcome = "estimator.ParseOutcome"
	opSplit        = "estimator.Split"
	opPredict      = "estimator.Predict"
)

func estimatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), funcge.ErrInvalidInput)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// validateData checks the design and the response against the outcome.
func validateData(d Data, o Outcome) error {
	if d.Design == nil || d.Design.Data == nil || d.Y == nil {
		return invalid("nil design or response")
	}
	n := d.Design.Rows()
	r, c := d.Y.Dims()
	if r != n {
		return invalid("response has %d rows, design has %d", r, n)
	}
	if c != o.Columns() {
		return invalid("%s outcome needs %d response column(s), got %d", o, o.Columns(), c)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			if !isFinite(d.Y.At(i, j)) {
				return invalid("y[%d,%d] is not finite", i, j)
			}
		}
		switch o {
		case Binary:
			if v := d.Y.At(i, 0); v != 0 && v != 1 {
				return invalid("binary y[%d] = %g, want 0 or 1", i, v)
			}
		case Survival:
			if st := d.Y.At(i, 1); st != 0 && st != 1 {
				return invalid("survival status[%d] = %g, want 0 or 1", i, st)
			}
		}
	}

	return nil
}

// validateConfig checks outcome, architecture, epochs, split and horizon.
func validateConfig(c Config) error {
	if !c.Outcome.valid() {
		return invalid("unknown outcome %v", c.Outcome)
	}
	if c.NumHidden != len(c.Hidden) {
		return invalid("NumHidden %d != len(Hidden) %d", c.NumHidden, len(c.Hidden))
	}
	for i, w := range c.Hidden {
		if w < 1 {
			return invalid("Hidden[%d] = %d, want ≥ 1", i, w)
		}
	}
	if c.Epochs < 1 {
		return invalid("Epochs = %d, want ≥ 1", c.Epochs)
	}
	switch c.Split {
	case TrainTest, TrainValidationTest:
	default:
		return invalid("unknown split type %d", c.Split)
	}
	want := 2
	if c.Split == TrainValidationTest {
		want = 3
	}
	ratio := c.ratio()
	if len(ratio) != want {
		return invalid("split type %d needs %d ratio entries, got %d", c.Split, want, len(ratio))
	}
	for i, r := range ratio {
		if !isFinite(r) || r <= 0 {
			return invalid("ratio[%d] = %g, want > 0", i, r)
		}
	}
	if c.Horizon != nil {
		if c.Outcome != Survival {
			return invalid("a time point applies to survival outcomes only, got %s", c.Outcome)
		}
		if !isFinite(*c.Horizon) {
			return invalid("time point %g is not finite", *c.Horizon)
		}
	}

	return nil
}

// validateHyper requires finite, non-negative values and positive rates.
func validateHyper(h Hyper) error {
	if !isFinite(h.LearningRate1) || h.LearningRate1 <= 0 || !isFinite(h.LearningRate2) || h.LearningRate2 <= 0 {
		return invalid("learning rates must be > 0 (LearningRate1 %g, LearningRate2 %g)", h.LearningRate1, h.LearningRate2)
	}
	if !isFinite(h.L) || h.L < 0 || !isFinite(h.L2) || h.L2 < 0 {
		return invalid("penalties must be ≥ 0 (L %g, L2 %g)", h.L, h.L2)
	}

	return nil
}

// validateGrid requires every axis non-empty and every point valid.
func validateGrid(g Grid) error {
	if g.Size() == 0 {
		return invalid("empty hyperparameter grid (%d×%d×%d×%d)",
			len(g.LearningRate2), len(g.L2), len(g.LearningRate1), len(g.L))
	}
	for i, h := range g.Points() {
		if err := validateHyper(h); err != nil {
			return fmt.Errorf("grid point %d: %w", i, err)
		}
	}

	return nil
}
