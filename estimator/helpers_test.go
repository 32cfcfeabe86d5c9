package estimator_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge/design"
	"github.com/katalvlaran/funcge/estimator"
)

// synthetic builds an n-row design with dG genotype and dE environment
// columns and a response for o generated from a fixed linear signal.
func synthetic(t testing.TB, n, dG, dE int, o estimator.Outcome, seed uint64) estimator.Data {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	U := mat.NewDense(n, dG, nil)
	Z := mat.NewDense(n, dE, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dG; j++ {
			U.Set(i, j, rng.NormFloat64())
		}
		for j := 0; j < dE; j++ {
			Z.Set(i, j, rng.NormFloat64())
		}
	}
	d, err := design.Assemble(U, Z)
	require.NoError(t, err)

	Y := mat.NewDense(n, o.Columns(), nil)
	for i := 0; i < n; i++ {
		eta := 0.5*U.At(i, 0) - 0.3*Z.At(i, 0) + 0.1*rng.NormFloat64()
		switch o {
		case estimator.Binary:
			if eta > 0 {
				Y.Set(i, 0, 1)
			}
		case estimator.Survival:
			Y.Set(i, 0, math.Exp(-eta)*(0.5+rng.Float64()))
			if rng.Float64() < 0.8 {
				Y.Set(i, 1, 1)
			}
		default:
			Y.Set(i, 0, eta)
		}
	}

	return estimator.Data{Design: d, Y: Y}
}

// baseConfig is a small, fast configuration.
func baseConfig(o estimator.Outcome) estimator.Config {
	return estimator.Config{
		Outcome:   o,
		NumHidden: 1,
		Hidden:    []int{3},
		Epochs:    20,
		Seed:      1,
	}
}

var smallHyper = estimator.Hyper{LearningRate2: 0.01, L2: 0.001, LearningRate1: 0.01, L: 0.001}
