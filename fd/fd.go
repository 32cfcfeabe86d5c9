// SPDX-License-Identifier: MIT

// Package fd represents functions as coefficients against a basis.
//
// An FD holds an R×N coefficient matrix (R replicates: subjects or
// covariates; N basis functions) and the basis it refers to. Replicate r is
// the function f_r(t) = Σ_k C[r,k]·φ_k(t).
//
// FD values are immutable: New copies its input and Coef returns a copy.
package fd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/basis"
)

const (
	opNew  = "fd.New"
	opEval = "fd.Eval"
)

// FD is a set of functions sharing one basis.
type FD struct {
	coef  *mat.Dense
	basis *basis.Basis
}

// New builds an FD from an R×N coefficient matrix, N = b.N().
// Coefficients must be finite.
func New(coef mat.Matrix, b *basis.Basis) (*FD, error) {
	if coef == nil || b == nil {
		return nil, fdErrorf(opNew, fmt.Errorf("nil coefficients or basis: %w", funcge.ErrInvalidInput))
	}
	r, c := coef.Dims()
	if c != b.N() {
		return nil, fdErrorf(opNew, fmt.Errorf("coefficient columns %d != nbasis %d: %w", c, b.N(), funcge.ErrInvalidInput))
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := coef.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fdErrorf(opNew, fmt.Errorf("coef[%d,%d] = %g: %w", i, j, v, funcge.ErrInvalidInput))
			}
		}
	}

	return &FD{coef: mat.DenseCopyOf(coef), basis: b}, nil
}

// NewVec builds a single-replicate FD from a coefficient vector.
func NewVec(coef []float64, b *basis.Basis) (*FD, error) {
	if len(coef) == 0 {
		return nil, fdErrorf(opNew, fmt.Errorf("empty coefficient vector: %w", funcge.ErrInvalidInput))
	}

	return New(mat.NewDense(1, len(coef), append([]float64(nil), coef...)), b)
}

// Basis returns the basis the coefficients refer to.
func (f *FD) Basis() *basis.Basis { return f.basis }

// Replicates returns the number of functions R.
func (f *FD) Replicates() int {
	r, _ := f.coef.Dims()

	return r
}

// Coef returns a copy of the R×N coefficient matrix.
func (f *FD) Coef() *mat.Dense { return mat.DenseCopyOf(f.coef) }

// Row returns a copy of replicate r's coefficient vector.
func (f *FD) Row(r int) []float64 { return mat.Row(nil, r, f.coef) }

// Eval evaluates every replicate at locations.
// Returns an R×L matrix, row r = f_r(locations).
func (f *FD) Eval(locations []float64) (*mat.Dense, error) { return f.EvalDeriv(locations, 0) }

// EvalDeriv evaluates the deriv-th derivative of every replicate.
//
// Implementation:
//   - Stage 1: B = basis.EvalMatrix(locations, deriv), L×N.
//   - Stage 2: out = C·Bᵀ, R×L.
//
// Complexity: O(R·N·L) plus basis evaluation.
func (f *FD) EvalDeriv(locations []float64, deriv int) (*mat.Dense, error) {
	B, err := f.basis.EvalMatrix(locations, deriv)
	if err != nil {
		return nil, fdErrorf(opEval, err)
	}
	var out mat.Dense
	out.Mul(f.coef, B.T())

	return &out, nil
}

// Eval is the free-function form of (*FD).Eval.
func Eval(locations []float64, f *FD) (*mat.Dense, error) {
	if f == nil {
		return nil, fdErrorf(opEval, fmt.Errorf("nil functional object: %w", funcge.ErrInvalidInput))
	}

	return f.Eval(locations)
}

func fdErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
