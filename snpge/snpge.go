// SPDX-License-Identifier: MIT

package snpge

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/decode"
	"github.com/katalvlaran/funcge/design"
	"github.com/katalvlaran/funcge/estimator"
	"github.com/katalvlaran/funcge/fd"
	"github.com/katalvlaran/funcge/gvf"
)

const (
	opSNPGE     = "snpge.SNPGE"
	opGridSNPGE = "snpge.GridSNPGE"
)

// Output bundles the fitted model with its coefficient functions.
type Output struct {
	// Result is the estimator outcome (metrics, weights, model, history).
	Result *estimator.Result
	// B maps "b{i}" to the coefficient vector of β_i on Target.
	B map[string][]float64
	// Beta maps "beta{i}(t)" to β_i.
	Beta map[string]*fd.FD
	// Curves is (dE+1)×m, row i = β_i(location); nil when disabled.
	Curves *mat.Dense
	// Target is the B-spline basis of the coefficient functions.
	Target *basis.Basis
	// Design is the assembled design the network was trained on.
	Design *design.Matrix
}

// SNPGE runs the pipeline for one hyperparameter point.
// Uses context.Background; see SNPGECtx.
func SNPGE(y, z *mat.Dense, location []float64, X *mat.Dense, p Params, opts ...Option) (*Output, error) {
	return SNPGECtx(context.Background(), y, z, location, X, p, opts...)
}

// SNPGECtx is SNPGE with cancellation between subjects and epochs.
func SNPGECtx(ctx context.Context, y, z *mat.Dense, location []float64, X *mat.Dense, p Params, opts ...Option) (*Output, error) {
	o := gatherOptions(opts...)
	st, err := prepare(ctx, y, z, location, X, p.Common, o)
	if err != nil {
		return nil, snpgeErrorf(opSNPGE, err)
	}
	res, err := estimator.Fit(ctx, st.data, p.Hyper, st.cfg,
		estimator.WithLogger(o.logger), estimator.WithWorkers(o.workers))
	if err != nil {
		return nil, snpgeErrorf(opSNPGE, err)
	}
	out, err := finish(st, res, location, o)
	if err != nil {
		return nil, snpgeErrorf(opSNPGE, err)
	}

	return out, nil
}

// GridSNPGE runs the pipeline over every grid point and keeps the best.
// Uses context.Background; see GridSNPGECtx.
func GridSNPGE(y, z *mat.Dense, location []float64, X *mat.Dense, p GridParams, opts ...Option) (*Output, error) {
	return GridSNPGECtx(context.Background(), y, z, location, X, p, opts...)
}

// GridSNPGECtx is GridSNPGE with cancellation between subjects, runs and
// epochs.
func GridSNPGECtx(ctx context.Context, y, z *mat.Dense, location []float64, X *mat.Dense, p GridParams, opts ...Option) (*Output, error) {
	o := gatherOptions(opts...)
	st, err := prepare(ctx, y, z, location, X, p.Common, o)
	if err != nil {
		return nil, snpgeErrorf(opGridSNPGE, err)
	}
	res, err := estimator.GridSearch(ctx, st.data, p.Grid, st.cfg,
		estimator.WithLogger(o.logger), estimator.WithWorkers(o.workers))
	if err != nil {
		return nil, snpgeErrorf(opGridSNPGE, err)
	}
	out, err := finish(st, res, location, o)
	if err != nil {
		return nil, snpgeErrorf(opGridSNPGE, err)
	}

	return out, nil
}

// stage carries what prepare built for the estimator and the decoder.
type stage struct {
	data   estimator.Data
	cfg    estimator.Config
	target *basis.Basis
}

// prepare runs every stage up to the estimator.
//
// Implementation:
//   - Stage 1: shape checks on y, z, X and location.
//   - Stage 2: source basis (Basis/NBasis1/Params1) and target B-spline
//     basis (Bsplines/NOrder1) over [location[0], location[m-1]].
//   - Stage 3: gvf projection, cross-basis map, encoding, assembly.
//   - Stage 4: least-squares baseline on the first response column.
func prepare(ctx context.Context, y, z *mat.Dense, location []float64, X *mat.Dense, c Common, o options) (*stage, error) {
	if err := validateInputs(y, z, location, X); err != nil {
		return nil, err
	}
	lo, hi := location[0], location[len(location)-1]
	src, err := basis.New(c.Basis, lo, hi, c.NBasis1, c.Params1)
	if err != nil {
		return nil, err
	}
	target, err := basis.NewBspline(lo, hi, c.bsplines(), c.norder())
	if err != nil {
		return nil, err
	}

	curves, err := gvf.ProjectContext(ctx, location, X, src,
		gvf.WithLogger(o.logger), gvf.WithWorkers(o.workers))
	if err != nil {
		return nil, err
	}
	M, err := basis.InnerProduct(src, target, 0, 0, o.quad...)
	if err != nil {
		return nil, err
	}
	U, err := design.Encode(curves.Coef(), M)
	if err != nil {
		return nil, err
	}
	dm, err := design.Assemble(U, z)
	if err != nil {
		return nil, err
	}
	n, m := X.Dims()
	o.logger.Info("design assembled",
		zap.Int("n", n), zap.Int("m", m), zap.Stringer("basis", c.Basis),
		zap.Int("nbasis1", src.N()), zap.Int("dim_g", dm.DimG), zap.Int("dim_e", dm.DimE))

	base, err := estimator.FitLinear(dm.Data, estimator.BaselineResponse(y))
	if err != nil {
		return nil, err
	}

	return &stage{
		data: estimator.Data{Design: dm, Y: y},
		cfg: estimator.Config{
			Outcome:       c.Outcome,
			NumHidden:     c.NumHidden,
			Hidden:        c.Hidden,
			Epochs:        c.Epochs,
			Split:         c.Split,
			Ratio:         c.Ratio,
			Seed:          o.seed,
			Horizon:       c.T,
			Baseline:      base,
			Model:         o.model,
			RecordHistory: o.recordHistory,
		},
		target: target,
	}, nil
}

// finish decodes the sparse weights into coefficient functions.
func finish(st *stage, res *estimator.Result, location []float64, o options) (*Output, error) {
	dec, err := decode.Decode(res.Weights, st.data.Design.DimE, st.target)
	if err != nil {
		return nil, err
	}
	out := &Output{
		Result: res,
		B:      dec.Coefficients,
		Beta:   dec.Functions,
		Target: st.target,
		Design: st.data.Design,
	}
	if o.betaCurves {
		if out.Curves, err = dec.Curves(location); err != nil {
			return nil, err
		}
	}
	o.logger.Info("coefficient functions decoded",
		zap.Int("functions", dec.Len()), zap.Float64("test_loss", res.Test.Loss))

	return out, nil
}

// validateInputs checks row agreement between y, z and X and the location
// length. Deeper checks (finiteness, ordering, outcome domain) belong to the
// stage that consumes each input.
func validateInputs(y, z *mat.Dense, location []float64, X *mat.Dense) error {
	if y == nil || z == nil || X == nil {
		return fmt.Errorf("nil y, z or X: %w", funcge.ErrInvalidInput)
	}
	if len(location) == 0 {
		return fmt.Errorf("empty location vector: %w", funcge.ErrInvalidInput)
	}
	n, m := X.Dims()
	if m != len(location) {
		return fmt.Errorf("X has %d columns, location has %d entries: %w", m, len(location), funcge.ErrInvalidInput)
	}
	if r, _ := y.Dims(); r != n {
		return fmt.Errorf("y has %d rows, X has %d: %w", r, n, funcge.ErrInvalidInput)
	}
	if r, _ := z.Dims(); r != n {
		return fmt.Errorf("z has %d rows, X has %d: %w", r, n, funcge.ErrInvalidInput)
	}

	return nil
}

func snpgeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
