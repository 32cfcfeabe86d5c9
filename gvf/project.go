// SPDX-License-Identifier: MIT

// Package gvf - basis projector.
//
// Purpose:
//   - Project: shared locations, subjects×locations matrix, NaN = missing.
//   - ProjectSamples: per-subject (ragged) locations.
//   - ProjectWith: builds the basis over [min, max] of the locations first.
//
// Determinism:
//   - Every subject writes only its own coefficient row; the pool size never
//     changes the result.

package gvf

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/fd"
)

const (
	opProject        = "gvf.Project"
	opProjectSamples = "gvf.ProjectSamples"
	opProjectWith    = "gvf.ProjectWith"
)

// Sample is one subject's signal at its own locations. NaN values are
// treated as missing.
type Sample struct {
	Locations []float64
	Values    []float64
}

// Project fits per-subject basis coefficients from X (subjects×locations).
// Uses context.Background; see ProjectContext.
func Project(location []float64, X *mat.Dense, b *basis.Basis, opts ...Option) (*fd.FD, error) {
	return ProjectContext(context.Background(), location, X, b, opts...)
}

// ProjectContext fits per-subject basis coefficients from X.
//
// Implementation:
//   - Stage 1: validate location (non-empty, finite, non-decreasing), shape
//     of X and basis coverage of [min(location), max(location)].
//   - Stage 2: B = EvalMatrix(location) once.
//   - Stage 3a: no NaN ⇒ solve (BᵀB)C = BᵀXᵀ for all subjects together.
//   - Stage 3b: any NaN ⇒ per-subject solve on observed rows of B, pooled.
//
// Errors:
//   - ErrInvalidInput, ErrSingularBasis (subject index in the message).
//
// Complexity:
//   - 3a: O(m·N² + N³ + m·N·n); 3b: O(n·(m·N² + N³)).
func ProjectContext(ctx context.Context, location []float64, X *mat.Dense, b *basis.Basis, opts ...Option) (*fd.FD, error) {
	o := gatherOptions(opts...)
	if err := validateInputs(location, X, b); err != nil {
		return nil, gvfErrorf(opProject, err)
	}
	B, err := b.EvalMatrix(location, 0)
	if err != nil {
		return nil, gvfErrorf(opProject, err)
	}
	n, m := X.Dims()

	missing := countMissing(X)
	if missing == 0 {
		var xt mat.Dense
		xt.CloneFrom(X.T()) // m×n, one column per subject
		C, err := solveNormal(B, &xt)
		if err != nil {
			return nil, gvfErrorf(opProject, err)
		}
		o.logger.Debug("gvf projected (shared design)",
			zap.Int("subjects", n), zap.Int("locations", m), zap.Int("nbasis", b.N()))

		return fd.New(C.T(), b)
	}

	coef := mat.NewDense(n, b.N(), nil)
	err = forEachSubject(ctx, n, o.workers, func(i int) error {
		rows, vals := observed(X.RawRowView(i))
		if len(rows) == 0 {
			return fmt.Errorf("subject %d: no observed values: %w", i, funcge.ErrSingularBasis)
		}
		c, err := solveSubject(selectRows(B, rows), vals)
		if err != nil {
			return fmt.Errorf("subject %d: %w", i, err)
		}
		coef.SetRow(i, c)

		return nil
	})
	if err != nil {
		return nil, gvfErrorf(opProject, err)
	}
	o.logger.Debug("gvf projected (per-subject design)",
		zap.Int("subjects", n), zap.Int("locations", m), zap.Int("nbasis", b.N()),
		zap.Int("missing", missing))

	return fd.New(coef, b)
}

// ProjectSamples fits one coefficient row per sample; each sample carries
// its own locations and may contain NaN values.
func ProjectSamples(ctx context.Context, samples []Sample, b *basis.Basis, opts ...Option) (*fd.FD, error) {
	o := gatherOptions(opts...)
	if len(samples) == 0 {
		return nil, gvfErrorf(opProjectSamples, fmt.Errorf("no samples: %w", funcge.ErrInvalidInput))
	}
	if b == nil {
		return nil, gvfErrorf(opProjectSamples, fmt.Errorf("nil basis: %w", funcge.ErrInvalidInput))
	}
	for i, s := range samples {
		if len(s.Locations) != len(s.Values) {
			return nil, gvfErrorf(opProjectSamples, fmt.Errorf("sample %d: %d locations, %d values: %w",
				i, len(s.Locations), len(s.Values), funcge.ErrInvalidInput))
		}
		if err := validateLocation(s.Locations); err != nil {
			return nil, gvfErrorf(opProjectSamples, fmt.Errorf("sample %d: %w", i, err))
		}
	}

	coef := mat.NewDense(len(samples), b.N(), nil)
	err := forEachSubject(ctx, len(samples), o.workers, func(i int) error {
		rows, vals := observed(samples[i].Values)
		if len(rows) == 0 {
			return fmt.Errorf("sample %d: no observed values: %w", i, funcge.ErrSingularBasis)
		}
		locs := make([]float64, len(rows))
		for k, r := range rows {
			locs[k] = samples[i].Locations[r]
		}
		Bi, err := b.EvalMatrix(locs, 0)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		c, err := solveSubject(Bi, vals)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		coef.SetRow(i, c)

		return nil
	})
	if err != nil {
		return nil, gvfErrorf(opProjectSamples, err)
	}
	o.logger.Debug("gvf projected samples", zap.Int("subjects", len(samples)), zap.Int("nbasis", b.N()))

	return fd.New(coef, b)
}

// ProjectWith builds a kind basis on [min(location), max(location)] and
// projects X onto it.
func ProjectWith(location []float64, X *mat.Dense, kind basis.Kind, nbasis int, p basis.Params, opts ...Option) (*fd.FD, error) {
	if err := validateLocation(location); err != nil {
		return nil, gvfErrorf(opProjectWith, err)
	}
	b, err := basis.New(kind, location[0], location[len(location)-1], nbasis, p)
	if err != nil {
		return nil, gvfErrorf(opProjectWith, err)
	}

	return Project(location, X, b, opts...)
}

// solveNormal solves (BᵀB)C = BᵀY with an LU solve; Y is m×k, C is N×k.
// A singular or numerically singular BᵀB maps to ErrSingularBasis.
func solveNormal(B *mat.Dense, Y *mat.Dense) (*mat.Dense, error) {
	m, nb := B.Dims()
	if m < nb {
		return nil, fmt.Errorf("%d observed locations for %d basis functions: %w", m, nb, funcge.ErrSingularBasis)
	}
	var btb, bty, c mat.Dense
	btb.Mul(B.T(), B)
	bty.Mul(B.T(), Y)
	err := c.Solve(&btb, &bty)
	if err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) || errors.Is(err, mat.ErrSingular) {
			return nil, fmt.Errorf("%d×%d normal equations (%v): %w", nb, nb, err, funcge.ErrSingularBasis)
		}

		return nil, err
	}

	return &c, nil
}

// solveSubject is solveNormal for a single observation vector.
func solveSubject(B *mat.Dense, y []float64) ([]float64, error) {
	c, err := solveNormal(B, mat.NewDense(len(y), 1, y))
	if err != nil {
		return nil, err
	}

	return mat.Col(nil, 0, c), nil
}

// forEachSubject runs fn(i) for i in [0, n) on at most workers goroutines.
// The first error cancels the remaining subjects.
func forEachSubject(ctx context.Context, n, workers int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return fn(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// observed returns the indices and values of non-NaN entries.
func observed(x []float64) ([]int, []float64) {
	rows := make([]int, 0, len(x))
	vals := make([]float64, 0, len(x))
	for j, v := range x {
		if !math.IsNaN(v) {
			rows = append(rows, j)
			vals = append(vals, v)
		}
	}

	return rows, vals
}

// selectRows copies rows of B into a new len(rows)×N matrix; rows must be
// non-empty.
func selectRows(B *mat.Dense, rows []int) *mat.Dense {
	_, c := B.Dims()
	out := mat.NewDense(len(rows), c, nil)
	for k, r := range rows {
		out.SetRow(k, B.RawRowView(r))
	}

	return out
}

func countMissing(X *mat.Dense) int {
	n, m := X.Dims()
	var cnt int
	for i := 0; i < n; i++ {
		for _, v := range X.RawRowView(i)[:m] {
			if math.IsNaN(v) {
				cnt++
			}
		}
	}

	return cnt
}

func gvfErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
