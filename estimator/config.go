// SPDX-License-Identifier: MIT

// Package estimator: run configuration and training data.
package estimator

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge/design"
)

// SplitType selects how rows are partitioned.
type SplitType int

const (
	// TrainTest splits rows into train and test (ratio of length 2).
	TrainTest SplitType = 0
	// TrainValidationTest splits rows into train, validation and test
	// (ratio of length 3).
	TrainValidationTest SplitType = 1
)

// Defaults.
const (
	DefaultEpochs      = 100
	DefaultSeed uint64 = 1
)

// DefaultRatio returns the default split ratio for st: [7, 3] for
// TrainTest, [3, 1, 1] for TrainValidationTest.
func DefaultRatio(st SplitType) []float64 {
	if st == TrainValidationTest {
		return []float64{3, 1, 1}
	}

	return []float64{7, 3}
}

// Data is an assembled design with its response.
//
// Y is n×1 for Continuous and Binary outcomes and n×2 (time, status) for
// Survival.
type Data struct {
	Design *design.Matrix
	Y      *mat.Dense
}

// Hyper is one point of the hyperparameter space.
type Hyper struct {
	// LearningRate2 is the Adam step size of the dense layers.
	LearningRate2 float64
	// L2 is the weight decay on dense weights.
	L2 float64
	// LearningRate1 is the Adam step size of the sparse layers.
	LearningRate1 float64
	// L is the L1 proximal strength on the sparse weights.
	L float64
}

// Grid lists candidate values per hyperparameter. Points are enumerated
// with LearningRate2 outermost and L innermost.
type Grid struct {
	LearningRate2 []float64
	L2            []float64
	LearningRate1 []float64
	L             []float64
}

// Size is the number of grid points.
func (g Grid) Size() int {
	return len(g.LearningRate2) * len(g.L2) * len(g.LearningRate1) * len(g.L)
}

// Points enumerates the cartesian product in canonical order.
func (g Grid) Points() []Hyper {
	out := make([]Hyper, 0, g.Size())
	for _, lr2 := range g.LearningRate2 {
		for _, l2 := range g.L2 {
			for _, lr1 := range g.LearningRate1 {
				for _, l := range g.L {
					out = append(out, Hyper{LearningRate2: lr2, L2: l2, LearningRate1: lr1, L: l})
				}
			}
		}
	}

	return out
}

// Config holds everything except the hyperparameters.
type Config struct {
	Outcome Outcome
	// NumHidden must equal len(Hidden).
	NumHidden int
	// Hidden lists the widths of the dense ReLU layers.
	Hidden []int
	// Epochs is the number of full-batch updates (≥ 1).
	Epochs int

	Split SplitType
	// Ratio is the relative size of each part; nil selects DefaultRatio(Split).
	Ratio []float64
	// Seed drives the split permutation and the dense initialisation.
	Seed uint64

	// Horizon, when non-nil, requests the time-dependent AUC at that time on
	// the test part. Survival only.
	Horizon *float64

	// Baseline seeds the sparse layers; nil fits one with FitLinear.
	Baseline *Linear
	// Model, when non-nil, is cloned and trained instead of a fresh network.
	Model *Network

	// RecordHistory keeps per-epoch losses in Result.History.
	RecordHistory bool
}

// ratio resolves the configured ratio.
func (c Config) ratio() []float64 {
	if c.Ratio == nil {
		return DefaultRatio(c.Split)
	}

	return c.Ratio
}
