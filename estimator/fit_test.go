package estimator_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/estimator"
)

func TestFit_ContinuousHistoryDecreases(t *testing.T) {
	d := synthetic(t, 60, 3, 2, estimator.Continuous, 1)
	cfg := baseConfig(estimator.Continuous)
	cfg.Epochs = 150
	cfg.RecordHistory = true

	res, err := estimator.Fit(context.Background(), d, smallHyper, cfg, estimator.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	require.Len(t, res.History, cfg.Epochs)
	assert.Less(t, res.History[len(res.History)-1].TrainLoss, res.History[0].TrainLoss)
	assert.Equal(t, 1, res.History[0].Epoch)

	assert.Len(t, res.Weights.Sparse1, 3)
	assert.Len(t, res.Weights.Sparse2, 6)
	assert.Equal(t, 42, res.Train.N)
	assert.Equal(t, 18, res.Test.N)
	assert.Zero(t, res.Validation.N)
	assert.Nil(t, res.Horizon)
	assert.Nil(t, res.Grid)
	assert.NotNil(t, res.Baseline)
	assert.False(t, math.IsNaN(res.Test.R2))
}

func TestFit_Deterministic(t *testing.T) {
	d := synthetic(t, 30, 2, 2, estimator.Continuous, 2)
	cfg := baseConfig(estimator.Continuous)

	a, err := estimator.Fit(context.Background(), d, smallHyper, cfg)
	require.NoError(t, err)
	b, err := estimator.Fit(context.Background(), d, smallHyper, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Test, b.Test)
}

func TestFit_BinaryAndSurvival(t *testing.T) {
	d := synthetic(t, 40, 2, 2, estimator.Binary, 3)
	res, err := estimator.Fit(context.Background(), d, smallHyper, baseConfig(estimator.Binary))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Test.Accuracy, 0.0)
	assert.LessOrEqual(t, res.Test.Accuracy, 1.0)

	d = synthetic(t, 40, 2, 2, estimator.Survival, 4)
	cfg := baseConfig(estimator.Survival)
	cfg.Split = estimator.TrainValidationTest
	h := 1.0
	cfg.Horizon = &h
	res, err = estimator.Fit(context.Background(), d, smallHyper, cfg)
	require.NoError(t, err)
	require.NotNil(t, res.Horizon)
	assert.Equal(t, 1.0, res.Horizon.Time)
	assert.Equal(t, res.Test.N, len(res.Parts.Test))
	assert.Positive(t, res.Validation.N)
	assert.Equal(t, res.Validation.Loss, res.SelectionLoss())
}

func TestFit_HorizonRequiresSurvival(t *testing.T) {
	d := synthetic(t, 20, 2, 1, estimator.Continuous, 5)
	cfg := baseConfig(estimator.Continuous)
	h := 2.0
	cfg.Horizon = &h
	_, err := estimator.Fit(context.Background(), d, smallHyper, cfg)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput)
}

func TestFit_WarmStart(t *testing.T) {
	d := synthetic(t, 30, 2, 2, estimator.Continuous, 6)
	cfg := baseConfig(estimator.Continuous)
	first, err := estimator.Fit(context.Background(), d, smallHyper, cfg)
	require.NoError(t, err)

	cfg.Model = first.Model
	second, err := estimator.Fit(context.Background(), d, smallHyper, cfg)
	require.NoError(t, err)
	assert.NotSame(t, first.Model, second.Model, "warm start trains a copy")
	assert.Equal(t, first.Weights.Sparse1, first.Model.Sparse1(), "the source model is untouched")

	cfg.Hidden, cfg.NumHidden = []int{5}, 1
	_, err = estimator.Fit(context.Background(), d, smallHyper, cfg)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "shape mismatch")
}

func TestFit_InvalidInput(t *testing.T) {
	d := synthetic(t, 20, 2, 1, estimator.Continuous, 7)
	cases := map[string]func(*estimator.Config, *estimator.Hyper){
		"NumHidden mismatch": func(c *estimator.Config, _ *estimator.Hyper) { c.NumHidden = 2 },
		"zero epochs":        func(c *estimator.Config, _ *estimator.Hyper) { c.Epochs = 0 },
		"bad outcome":        func(c *estimator.Config, _ *estimator.Hyper) { c.Outcome = 0 },
		"survival columns":   func(c *estimator.Config, _ *estimator.Hyper) { c.Outcome = estimator.Survival },
		"zero rate":          func(_ *estimator.Config, h *estimator.Hyper) { h.LearningRate1 = 0 },
		"negative L":         func(_ *estimator.Config, h *estimator.Hyper) { h.L = -1 },
		"short baseline": func(c *estimator.Config, _ *estimator.Hyper) {
			c.Baseline = &estimator.Linear{Coef: []float64{1}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, h := baseConfig(estimator.Continuous), smallHyper
			mutate(&cfg, &h)
			_, err := estimator.Fit(context.Background(), d, h, cfg)
			assert.ErrorIs(t, err, funcge.ErrInvalidInput)
		})
	}

	bin := synthetic(t, 20, 2, 1, estimator.Continuous, 8)
	_, err := estimator.Fit(context.Background(), bin, smallHyper, baseConfig(estimator.Binary))
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "non 0/1 binary response")
}

func TestFit_Canceled(t *testing.T) {
	d := synthetic(t, 20, 2, 1, estimator.Continuous, 9)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := estimator.Fit(ctx, d, smallHyper, baseConfig(estimator.Continuous))
	assert.ErrorIs(t, err, context.Canceled)
}
