package estimator_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/estimator"
)

func TestGrid_PointsOrder(t *testing.T) {
	g := estimator.Grid{
		LearningRate2: []float64{1, 2},
		L2:            []float64{0.1},
		LearningRate1: []float64{3},
		L:             []float64{0.5, 0.6},
	}
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, []estimator.Hyper{
		{LearningRate2: 1, L2: 0.1, LearningRate1: 3, L: 0.5},
		{LearningRate2: 1, L2: 0.1, LearningRate1: 3, L: 0.6},
		{LearningRate2: 2, L2: 0.1, LearningRate1: 3, L: 0.5},
		{LearningRate2: 2, L2: 0.1, LearningRate1: 3, L: 0.6},
	}, g.Points())
}

func TestGridSearch_PicksLowestSelectionLoss(t *testing.T) {
	d := synthetic(t, 40, 2, 2, estimator.Continuous, 10)
	g := estimator.Grid{
		LearningRate2: []float64{0.001, 0.02},
		L2:            []float64{0, 0.01},
		LearningRate1: []float64{0.01},
		L:             []float64{0.001},
	}
	res, err := estimator.GridSearch(context.Background(), d, g, baseConfig(estimator.Continuous))
	require.NoError(t, err)
	require.Len(t, res.Grid, 4)
	for i, p := range res.Grid {
		assert.Equal(t, i, p.Index)
		assert.GreaterOrEqual(t, p.SelectionLoss, res.SelectionLoss())
	}
}

// TestGridSearch_TieGoesToFirstPoint: identical points score identically, so
// the first one wins.
func TestGridSearch_TieGoesToFirstPoint(t *testing.T) {
	d := synthetic(t, 30, 2, 1, estimator.Continuous, 11)
	g := estimator.Grid{
		LearningRate2: []float64{0.01, 0.01, 0.01},
		L2:            []float64{0.001},
		LearningRate1: []float64{0.01},
		L:             []float64{0},
	}
	res, err := estimator.GridSearch(context.Background(), d, g, baseConfig(estimator.Continuous), estimator.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, res.Grid, 3)
	assert.Equal(t, res.Grid[0].SelectionLoss, res.Grid[1].SelectionLoss)
	assert.Equal(t, res.Grid[0].SelectionLoss, res.Grid[2].SelectionLoss)

	single, err := estimator.Fit(context.Background(), d, g.Points()[0], baseConfig(estimator.Continuous))
	require.NoError(t, err)
	assert.Equal(t, single.Weights, res.Weights, "grid runs reuse the configured seed")
}

func TestGridSearch_WorkersDoNotChangeResult(t *testing.T) {
	d := synthetic(t, 30, 2, 2, estimator.Continuous, 12)
	g := estimator.Grid{
		LearningRate2: []float64{0.005, 0.05},
		L2:            []float64{0.01},
		LearningRate1: []float64{0.005, 0.05},
		L:             []float64{0.01},
	}
	cfg := baseConfig(estimator.Continuous)
	cfg.Split = estimator.TrainValidationTest

	one, err := estimator.GridSearch(context.Background(), d, g, cfg, estimator.WithWorkers(1))
	require.NoError(t, err)
	many, err := estimator.GridSearch(context.Background(), d, g, cfg, estimator.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, one.Hyper, many.Hyper)
	assert.Equal(t, one.Weights, many.Weights)
	assert.Equal(t, one.Grid, many.Grid)
}

func TestGridSearch_InvalidInput(t *testing.T) {
	d := synthetic(t, 20, 2, 1, estimator.Continuous, 13)
	_, err := estimator.GridSearch(context.Background(), d, estimator.Grid{}, baseConfig(estimator.Continuous))
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "empty grid")

	bad := estimator.Grid{LearningRate2: []float64{0.01}, L2: []float64{0}, LearningRate1: []float64{-1}, L: []float64{0}}
	_, err = estimator.GridSearch(context.Background(), d, bad, baseConfig(estimator.Continuous))
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "negative rate")

	assert.Panics(t, func() { estimator.WithWorkers(-1) })
}

// TestGridSearch_SurvivalWithoutSelectionEvents: a selection part with only
// censored rows gives every point an infinite selection loss; the first
// point is kept and a warning is logged.
func TestGridSearch_SurvivalWithoutSelectionEvents(t *testing.T) {
	d := synthetic(t, 40, 2, 2, estimator.Survival, 4)
	cfg := baseConfig(estimator.Survival)
	parts, err := estimator.Split(d.Design.Rows(), cfg.Split, cfg.Ratio, cfg.Seed)
	require.NoError(t, err)
	for _, i := range parts.Test {
		d.Y.Set(i, 1, 0)
	}
	g := estimator.Grid{
		LearningRate2: []float64{0.001, 0.02},
		L2:            []float64{0},
		LearningRate1: []float64{0.01},
		L:             []float64{0.001},
	}
	core, logs := observer.New(zapcore.WarnLevel)

	res, err := estimator.GridSearch(context.Background(), d, g, cfg, estimator.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Test.Loss))
	for _, p := range res.Grid {
		assert.True(t, math.IsInf(p.SelectionLoss, 1), "point %d", p.Index)
	}
	assert.Equal(t, g.Points()[0], res.Hyper)
	assert.Equal(t, 1, logs.FilterMessageSnippet("finite selection loss").Len())
}
