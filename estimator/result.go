// SPDX-License-Identifier: MIT

package estimator

import "math"

// Weights are the trained sparse-layer weights, the quantities the
// functional decoder turns into coefficient curves.
type Weights struct {
	// Sparse1 has one weight per genotype column (DimG).
	Sparse1 []float64
	// Sparse2 has one weight per interaction column (DimG·DimE).
	Sparse2 []float64
}

// Epoch is one entry of the training history.
type Epoch struct {
	Epoch     int
	TrainLoss float64
	// SelectionLoss is measured on the validation part, or on the test part
	// for TrainTest splits.
	SelectionLoss float64
}

// GridPoint is the score of one grid configuration.
type GridPoint struct {
	Index         int
	Hyper         Hyper
	SelectionLoss float64
}

// Result is the outcome of Fit or GridSearch. The shape is the same for
// every outcome and split; Horizon is nil unless a time point was given.
type Result struct {
	Outcome  Outcome
	Hyper    Hyper
	Weights  Weights
	Model    *Network
	Baseline *Linear
	Parts    Parts

	Train      Metrics
	Validation Metrics // zero for TrainTest splits
	Test       Metrics

	Horizon *HorizonMetrics
	History []Epoch     // nil unless Config.RecordHistory
	Grid    []GridPoint // nil for Fit
}

// SelectionLoss is the loss used to rank runs: validation loss when a
// validation part exists, test loss otherwise. NaN ranks as +Inf.
func (r *Result) SelectionLoss() float64 {
	l := r.Test.Loss
	if len(r.Parts.Validation) > 0 {
		l = r.Validation.Loss
	}
	if math.IsNaN(l) {
		return math.Inf(1)
	}

	return l
}
