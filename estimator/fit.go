// SPDX-License-Identifier: MIT

// Package estimator: public entry points.
package estimator

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fit trains the network for one hyperparameter point.
//
// Errors:
//   - ErrInvalidInput for malformed data, config or hyperparameters, for a
//     time point on a non-survival outcome and for a mismatched warm start.
//   - ctx.Err() when ctx is cancelled between epochs.
func Fit(ctx context.Context, d Data, h Hyper, cfg Config, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	parts, base, err := prepare(d, cfg)
	if err != nil {
		return nil, estimatorErrorf(opFit, err)
	}
	if err = validateHyper(h); err != nil {
		return nil, estimatorErrorf(opFit, err)
	}
	res, err := run(ctx, d, parts, h, cfg, base, o.logger)
	if err != nil {
		return nil, estimatorErrorf(opFit, err)
	}
	o.logger.Info("estimator fitted",
		zap.Stringer("outcome", cfg.Outcome),
		zap.Int("train", len(parts.Train)), zap.Int("test", len(parts.Test)),
		zap.Float64("test_loss", res.Test.Loss))

	return res, nil
}

// GridSearch trains every point of g and returns the best run.
//
// Implementation:
//   - Stage 1: one split and one baseline shared by all runs.
//   - Stage 2: runs on an errgroup pool bounded by WithWorkers; run i writes
//     slot i only, all runs use cfg.Seed.
//   - Stage 3: lowest SelectionLoss wins; ties go to the lowest index.
//
// The returned Result carries the score of every grid point in Grid.
func GridSearch(ctx context.Context, d Data, g Grid, cfg Config, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	parts, base, err := prepare(d, cfg)
	if err != nil {
		return nil, estimatorErrorf(opGridSearch, err)
	}
	if err = validateGrid(g); err != nil {
		return nil, estimatorErrorf(opGridSearch, err)
	}

	points := g.Points()
	results := make([]*Result, len(points))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for i, h := range points {
		eg.Go(func() error {
			res, err := run(gctx, d, parts, h, cfg, base, o.logger)
			if err != nil {
				return fmt.Errorf("grid point %d: %w", i, err)
			}
			results[i] = res
			o.logger.Debug("grid point trained", zap.Int("index", i),
				zap.Float64("selection_loss", res.SelectionLoss()))

			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, estimatorErrorf(opGridSearch, err)
	}

	best, bestLoss := 0, math.Inf(1)
	scores := make([]GridPoint, len(points))
	for i, res := range results {
		l := res.SelectionLoss()
		scores[i] = GridPoint{Index: i, Hyper: points[i], SelectionLoss: l}
		if l < bestLoss {
			best, bestLoss = i, l
		}
	}
	out := results[best]
	out.Grid = scores
	if math.IsInf(bestLoss, 1) {
		o.logger.Warn("no grid point has a finite selection loss; keeping the first",
			zap.Int("points", len(points)), zap.Int("selection_rows", len(parts.selection())))
	}
	o.logger.Info("grid search done",
		zap.Int("points", len(points)), zap.Int("best", best), zap.Float64("selection_loss", bestLoss))

	return out, nil
}

// prepare validates d and cfg, splits rows and resolves the baseline.
func prepare(d Data, cfg Config) (Parts, *Linear, error) {
	if err := validateConfig(cfg); err != nil {
		return Parts{}, nil, err
	}
	if err := validateData(d, cfg.Outcome); err != nil {
		return Parts{}, nil, err
	}
	parts, err := Split(d.Design.Rows(), cfg.Split, cfg.Ratio, cfg.Seed)
	if err != nil {
		return Parts{}, nil, err
	}

	base := cfg.Baseline
	if base == nil {
		if base, err = FitLinear(d.Design.Data, BaselineResponse(d.Y)); err != nil {
			return Parts{}, nil, err
		}
	}
	if len(base.Coef) != d.Design.Cols() {
		return Parts{}, nil, invalid("baseline has %d coefficients, design has %d columns", len(base.Coef), d.Design.Cols())
	}

	return parts, base, nil
}
