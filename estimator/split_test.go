package estimator_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/estimator"
)

func TestSplit_TrainTestSizes(t *testing.T) {
	p, err := estimator.Split(10, estimator.TrainTest, nil, 1)
	require.NoError(t, err)
	assert.Len(t, p.Train, 7)
	assert.Len(t, p.Test, 3)
	assert.Empty(t, p.Validation)
	assertPartition(t, 10, p)
}

func TestSplit_TrainValidationTestSizes(t *testing.T) {
	p, err := estimator.Split(10, estimator.TrainValidationTest, nil, 1)
	require.NoError(t, err)
	assert.Len(t, p.Train, 6)
	assert.Len(t, p.Validation, 2)
	assert.Len(t, p.Test, 2)
	assertPartition(t, 10, p)

	p, err = estimator.Split(100, estimator.TrainValidationTest, []float64{8, 1, 1}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{80, 10, 10}, []int{len(p.Train), len(p.Validation), len(p.Test)})
}

func TestSplit_Deterministic(t *testing.T) {
	a, err := estimator.Split(50, estimator.TrainTest, nil, 42)
	require.NoError(t, err)
	b, err := estimator.Split(50, estimator.TrainTest, nil, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := estimator.Split(50, estimator.TrainTest, nil, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a.Test, c.Test, "another seed permutes differently")
}

func TestSplit_InvalidInput(t *testing.T) {
	_, err := estimator.Split(2, estimator.TrainValidationTest, nil, 1)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "a part would be empty")
	_, err = estimator.Split(10, estimator.TrainTest, []float64{1, 1, 1}, 1)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "ratio length")
	_, err = estimator.Split(10, estimator.TrainTest, []float64{1, -1}, 1)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "negative ratio")
	_, err = estimator.Split(10, estimator.SplitType(7), nil, 1)
	assert.ErrorIs(t, err, funcge.ErrInvalidInput, "unknown split type")
}

// assertPartition checks the parts are sorted, disjoint and cover 0..n-1.
func assertPartition(t *testing.T, n int, p estimator.Parts) {
	t.Helper()
	var all []int
	for _, part := range [][]int{p.Train, p.Validation, p.Test} {
		assert.True(t, slices.IsSorted(part))
		all = append(all, part...)
	}
	slices.Sort(all)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, all)
}
