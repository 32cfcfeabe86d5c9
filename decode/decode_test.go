package decode_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/decode"
	"github.com/katalvlaran/funcge/estimator"
)

func mustBspline(t *testing.T, n int) *basis.Basis {
	t.Helper()
	b, err := basis.NewBspline(0, 1, n, 4)
	require.NoError(t, err)

	return b
}

func TestDecode_LabelsAndRows(t *testing.T) {
	t.Parallel()
	b := mustBspline(t, 5)
	w := estimator.Weights{
		Sparse1: []float64{1, 2, 3, 4, 5},
		Sparse2: []float64{6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	}

	d, err := decode.Decode(w, 2, b)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	labels := func(m map[string][]float64) []string {
		var out []string
		for k := range m {
			out = append(out, k)
		}
		return out
	}
	if diff := cmp.Diff([]string{"b0", "b1", "b2"}, labels(d.Coefficients), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("coefficient labels (-want +got):\n%s", diff)
	}
	for _, name := range []string{"beta0(t)", "beta1(t)", "beta2(t)"} {
		assert.Contains(t, d.Functions, name)
	}

	assert.Equal(t, []float64{1, 2, 3, 4, 5}, d.Coefficients["b0"])
	assert.Equal(t, []float64{6, 7, 8, 9, 10}, d.Coefficients["b1"])
	assert.Equal(t, []float64{11, 12, 13, 14, 15}, d.Coefficients["b2"])
}

// TestDecode_RoundTrip: β_i evaluated on a grid equals B·b_i.
func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()
	b := mustBspline(t, 4)
	w := estimator.Weights{
		Sparse1: []float64{0.5, -1, 2, 0},
		Sparse2: []float64{1, 1, 1, 1},
	}
	d, err := decode.Decode(w, 1, b)
	require.NoError(t, err)

	x := []float64{0, 0.2, 0.5, 0.9, 1}
	B, err := b.EvalMatrix(x, 0)
	require.NoError(t, err)
	curves, err := d.Curves(x)
	require.NoError(t, err)

	var want mat.Dense
	want.Mul(d.Tensor, B.T())
	assert.True(t, mat.EqualApprox(&want, curves, 1e-14))
	for j := range x {
		assert.InDelta(t, 1, curves.At(1, j), 1e-12, "unit coefficients sum to one (partition of unity)")
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	t.Parallel()
	b := mustBspline(t, 5)
	_, err := decode.Decode(estimator.Weights{Sparse1: make([]float64, 5), Sparse2: make([]float64, 9)}, 2, b)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "length mismatch")
	_, err = decode.Decode(estimator.Weights{Sparse1: make([]float64, 5)}, 0, nil)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "nil basis")
	_, err = decode.Decode(estimator.Weights{Sparse1: []float64{1, 2, 3, 4, math.NaN()}}, 0, b)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "non-finite weight")
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "b3", decode.CoefficientName(3))
	assert.Equal(t, "beta0(t)", decode.FunctionName(0))
}
