package basis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
)

// grid returns n equally spaced points on [lo, hi] including both ends.
func grid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	out[n-1] = hi

	return out
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]basis.Kind{
		"Bspline":     basis.Bspline,
		"bspline":     basis.Bspline,
		"Exponential": basis.Exponential,
		"FOURIER":     basis.Fourier,
		"Monomial":    basis.Monomial,
		"Power":       basis.Power,
	} {
		got, err := basis.ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
		assert.True(t, got.String() != "" && got.String()[0] != 'K', "String of a valid kind is its name")
	}

	_, err := basis.ParseKind("Wavelet")
	assert.ErrorIs(t, err, funcge.ErrUnsupportedBasisType)
}

// TestNew_UnknownKindFailsFast replaces the silent fall-through of string
// dispatch: an unknown Kind never yields a nil basis without an error.
func TestNew_UnknownKindFailsFast(t *testing.T) {
	t.Parallel()
	for _, k := range []basis.Kind{0, basis.Power + 1, -3} {
		b, err := basis.New(k, 0, 1, 5, basis.Params{Order: 4})
		assert.Nil(t, b)
		assert.ErrorIs(t, err, funcge.ErrUnsupportedBasisType, "kind %v", k)
	}
}

func TestNew_Dispatch(t *testing.T) {
	t.Parallel()
	cases := []struct {
		kind basis.Kind
		n    int
		p    basis.Params
		want int
	}{
		{basis.Bspline, 5, basis.Params{Order: 4}, 5},
		{basis.Exponential, 3, basis.Params{Rates: []float64{0, -1, 1}}, 3},
		{basis.Fourier, 4, basis.Params{Period: 1}, 5},
		{basis.Monomial, 3, basis.Params{}, 3},
		{basis.Power, 2, basis.Params{Exponents: []float64{0.5, 1.5}}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			b, err := basis.New(tc.kind, 0, 1, tc.n, tc.p)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, b.Kind())
			assert.Equal(t, tc.want, b.N())
			lo, hi := b.Interval()
			assert.Equal(t, 0.0, lo)
			assert.Equal(t, 1.0, hi)
		})
	}
}

func TestConstructors_InvalidInput(t *testing.T) {
	t.Parallel()
	cases := map[string]func() error{
		"interval reversed": func() error { _, err := basis.NewBspline(1, 0, 5, 4); return err },
		"interval NaN":      func() error { _, err := basis.NewBspline(math.NaN(), 1, 5, 4); return err },
		"order zero":        func() error { _, err := basis.NewBspline(0, 1, 5, 0); return err },
		"nbasis < order":    func() error { _, err := basis.NewBspline(0, 1, 3, 4); return err },
		"rates length":      func() error { _, err := basis.NewExponential(0, 1, 3, []float64{1, 2}); return err },
		"rates duplicate":   func() error { _, err := basis.NewExponential(0, 1, 2, []float64{1, 1}); return err },
		"fourier period":    func() error { _, err := basis.NewFourier(0, 1, 3, math.Inf(1)); return err },
		"monomial fraction": func() error { _, err := basis.NewMonomial(0, 1, 2, []float64{0, 0.5}); return err },
		"monomial negative": func() error { _, err := basis.NewMonomial(0, 1, 2, []float64{0, -1}); return err },
		"power negative@0":  func() error { _, err := basis.NewPower(0, 1, 2, []float64{-1, 1}); return err },
		"power fraction<0":  func() error { _, err := basis.NewPower(-1, 1, 2, []float64{0.5, 1}); return err },
		"zero count":        func() error { _, err := basis.NewMonomial(0, 1, 0, nil); return err },
	}
	for name, fn := range cases {
		assert.ErrorIs(t, fn(), funcge.ErrInvalidInput, name)
	}
}

func TestBspline_BreaksAndOrder(t *testing.T) {
	t.Parallel()
	b, err := basis.NewBspline(0, 10, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Order())
	assert.Equal(t, []float64{0, 5, 10}, b.Breaks(), "nbasis-norder+2 equally spaced breaks")

	br := b.Breaks()
	br[1] = 99
	assert.Equal(t, 5.0, b.Breaks()[1], "Breaks returns a copy")
}

// TestBspline_PartitionOfUnity checks Σ_k B_k(t) = 1 on the whole interval,
// both end points included.
func TestBspline_PartitionOfUnity(t *testing.T) {
	t.Parallel()
	for _, order := range []int{1, 2, 3, 4, 6} {
		b, err := basis.NewBspline(-2, 3, 9, order)
		require.NoError(t, err)
		x := grid(-2, 3, 41)
		B, err := b.EvalMatrix(x, 0)
		require.NoError(t, err)
		r, c := B.Dims()
		require.Equal(t, len(x), r)
		require.Equal(t, 9, c)
		for i := 0; i < r; i++ {
			var s float64
			for k := 0; k < c; k++ {
				v := B.At(i, k)
				assert.GreaterOrEqual(t, v, -1e-14, "B-splines are non-negative")
				s += v
			}
			assert.InDelta(t, 1.0, s, 1e-12, "order %d, t=%g", order, x[i])
		}
	}
}

func TestBspline_EndpointInterpolation(t *testing.T) {
	t.Parallel()
	b, err := basis.NewBspline(0, 1, 6, 4)
	require.NoError(t, err)
	B, err := b.EvalMatrix([]float64{0, 1}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, B.At(0, 0), 1e-14)
	assert.InDelta(t, 1.0, B.At(1, 5), 1e-14)
}

// TestEvalMatrix_DerivativeMatchesFiniteDifference validates every family's
// first derivative against a central difference.
func TestEvalMatrix_DerivativeMatchesFiniteDifference(t *testing.T) {
	t.Parallel()
	const h = 1e-6
	bs := map[string]func() (*basis.Basis, error){
		"bspline":     func() (*basis.Basis, error) { return basis.NewBspline(0, 1, 7, 4) },
		"exponential": func() (*basis.Basis, error) { return basis.NewExponential(0, 1, 3, []float64{-1, 0.5, 2}) },
		"fourier":     func() (*basis.Basis, error) { return basis.NewFourier(0, 1, 5, 1) },
		"monomial":    func() (*basis.Basis, error) { return basis.NewMonomial(0, 1, 4, nil) },
		"power":       func() (*basis.Basis, error) { return basis.NewPower(0.1, 1, 3, []float64{0.5, 1.5, -1}) },
	}
	pts := []float64{0.23, 0.41, 0.77}
	for name, mk := range bs {
		t.Run(name, func(t *testing.T) {
			b, err := mk()
			require.NoError(t, err)
			D, err := b.EvalMatrix(pts, 1)
			require.NoError(t, err)
			for i, x := range pts {
				up, err := b.EvalMatrix([]float64{x + h}, 0)
				require.NoError(t, err)
				dn, err := b.EvalMatrix([]float64{x - h}, 0)
				require.NoError(t, err)
				for k := 0; k < b.N(); k++ {
					fd := (up.At(0, k) - dn.At(0, k)) / (2 * h)
					assert.InDelta(t, fd, D.At(i, k), 1e-5, "k=%d x=%g", k, x)
				}
			}
		})
	}
}

func TestEvalMatrix_HighDerivativeOfSplineVanishes(t *testing.T) {
	t.Parallel()
	b, err := basis.NewBspline(0, 1, 5, 3)
	require.NoError(t, err)
	D, err := b.EvalMatrix([]float64{0.3, 0.6}, 3)
	require.NoError(t, err)
	r, c := D.Dims()
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			assert.Equal(t, 0.0, D.At(i, k))
		}
	}
}

func TestEvalMatrix_InvalidInput(t *testing.T) {
	t.Parallel()
	b, err := basis.NewBspline(0, 1, 5, 4)
	require.NoError(t, err)

	_, err = b.EvalMatrix(nil, 0)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "empty locations")
	_, err = b.EvalMatrix([]float64{0.5, 1.5}, 0)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "outside interval")
	_, err = b.EvalMatrix([]float64{math.NaN()}, 0)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "NaN location")
	_, err = b.EvalMatrix([]float64{0.5}, -1)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "negative derivative")
}

func TestParams_ReturnsCopy(t *testing.T) {
	t.Parallel()
	rates := []float64{1, 2}
	b, err := basis.NewExponential(0, 1, 2, rates)
	require.NoError(t, err)
	rates[0] = 42
	p := b.Params()
	assert.Equal(t, []float64{1, 2}, p.Rates, "constructor copies caller slice")
	p.Rates[1] = 7
	assert.Equal(t, []float64{1, 2}, b.Params().Rates, "Params returns a copy")
}
