// SPDX-License-Identifier: MIT

// Package decode turns trained sparse-layer weights back into coefficient
// functions β_i(t) on the target basis.
//
// The sparse weights are laid out [genotype (N) | interaction (dE·N)] with
// the interaction block environment-major, so reshaping the concatenation
// to (dE+1)×N gives one row per coefficient function: row 0 is the main
// genotype effect β0(t), row i ≥ 1 the interaction with environment i.
package decode

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/estimator"
	"github.com/katalvlaran/funcge/fd"
)

const opDecode = "decode.Decode"

// Decoded holds the coefficient functions of a fitted model.
type Decoded struct {
	// Tensor is the (dE+1)×N coefficient matrix.
	Tensor *mat.Dense
	// Coefficients maps "b{i}" to row i of Tensor.
	Coefficients map[string][]float64
	// Functions maps "beta{i}(t)" to the function with row i's coefficients.
	Functions map[string]*fd.FD
}

// CoefficientName is the label of row i in Coefficients.
func CoefficientName(i int) string { return "b" + strconv.Itoa(i) }

// FunctionName is the label of row i in Functions.
func FunctionName(i int) string { return "beta" + strconv.Itoa(i) + "(t)" }

// Decode reshapes w into dimE+1 coefficient functions on target.
//
// Errors:
//   - ErrInvalidInput when target is nil, dimE < 0 or
//     len(Sparse1)+len(Sparse2) != (dimE+1)·target.N().
func Decode(w estimator.Weights, dimE int, target *basis.Basis) (*Decoded, error) {
	if target == nil {
		return nil, fmt.Errorf("%s: nil target basis: %w", opDecode, funcge.ErrInvalidInput)
	}
	if dimE < 0 {
		return nil, fmt.Errorf("%s: dimE = %d: %w", opDecode, dimE, funcge.ErrInvalidInput)
	}
	n := target.N()
	got := len(w.Sparse1) + len(w.Sparse2)
	if got != (dimE+1)*n {
		return nil, fmt.Errorf("%s: %d weights, want (%d+1)·%d = %d: %w",
			opDecode, got, dimE, n, (dimE+1)*n, funcge.ErrInvalidInput)
	}

	flat := make([]float64, 0, got)
	flat = append(flat, w.Sparse1...)
	flat = append(flat, w.Sparse2...)
	tensor := mat.NewDense(dimE+1, n, flat)

	out := &Decoded{
		Tensor:       tensor,
		Coefficients: make(map[string][]float64, dimE+1),
		Functions:    make(map[string]*fd.FD, dimE+1),
	}
	for i := 0; i <= dimE; i++ {
		row := mat.Row(nil, i, tensor)
		f, err := fd.NewVec(row, target)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", opDecode, i, err)
		}
		out.Coefficients[CoefficientName(i)] = row
		out.Functions[FunctionName(i)] = f
	}

	return out, nil
}

// Curves evaluates every β_i(t) at locations; row i of the result is
// β_i(locations).
func (d *Decoded) Curves(locations []float64) (*mat.Dense, error) {
	r, _ := d.Tensor.Dims()
	out := mat.NewDense(r, len(locations), nil)
	for i := 0; i < r; i++ {
		v, err := d.Functions[FunctionName(i)].Eval(locations)
		if err != nil {
			return nil, fmt.Errorf("decode.Curves: %s: %w", FunctionName(i), err)
		}
		out.SetRow(i, v.RawRowView(0))
	}

	return out, nil
}

// Len returns the number of coefficient functions (dE+1).
func (d *Decoded) Len() int {
	r, _ := d.Tensor.Dims()

	return r
}
