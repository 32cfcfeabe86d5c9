// SPDX-License-Identifier: MIT

// Package design: encoding and interaction assembly.
//
// Purpose:
//   - Encode: U = C·M (projected coefficients into target-basis scores).
//   - Interaction: column-wise products of every environment with every
//     genotype column.
//   - Assemble: the full design matrix with its block layout.

package design

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/funcge"
)

const (
	opEncode      = "design.Encode"
	opInteraction = "design.Interaction"
	opAssemble    = "design.Assemble"
)

// Matrix is an assembled design [U | GE | z] together with its block sizes.
type Matrix struct {
	// Data is the n×Cols() design, row per subject.
	Data *mat.Dense
	// DimG is the genotype block width (target basis size).
	DimG int
	// DimE is the number of environment covariates.
	DimE int
}

// Rows returns the number of subjects.
func (m *Matrix) Rows() int {
	r, _ := m.Data.Dims()

	return r
}

// Cols returns DimG + DimG·DimE + DimE.
func (m *Matrix) Cols() int { return m.DimG + m.DimG*m.DimE + m.DimE }

// InteractionOffset is the first column of the interaction block.
func (m *Matrix) InteractionOffset() int { return m.DimG }

// EnvironmentOffset is the first column of the environment block.
func (m *Matrix) EnvironmentOffset() int { return m.DimG + m.DimG*m.DimE }

// Genotype returns a view of the n×DimG genotype block.
func (m *Matrix) Genotype() mat.Matrix {
	return m.Data.Slice(0, m.Rows(), 0, m.DimG)
}

// GxE returns a view of the n×(DimG·DimE) interaction block.
func (m *Matrix) GxE() mat.Matrix {
	return m.Data.Slice(0, m.Rows(), m.InteractionOffset(), m.EnvironmentOffset())
}

// Environment returns a view of the n×DimE environment block.
func (m *Matrix) Environment() mat.Matrix {
	return m.Data.Slice(0, m.Rows(), m.EnvironmentOffset(), m.Cols())
}

// Encode returns U = coef·M.
//
// coef is n×N1 (one row of projected coefficients per subject) and M is the
// N1×N2 cross-basis inner-product matrix. Row i of U depends only on row i
// of coef.
func Encode(coef, M mat.Matrix) (*mat.Dense, error) {
	if coef == nil || M == nil {
		return nil, designErrorf(opEncode, fmt.Errorf("nil operand: %w", funcge.ErrInvalidInput))
	}
	n, c := coef.Dims()
	r, k := M.Dims()
	if n == 0 || c == 0 || k == 0 {
		return nil, designErrorf(opEncode, fmt.Errorf("empty operand: %w", funcge.ErrInvalidInput))
	}
	if c != r {
		return nil, designErrorf(opEncode, fmt.Errorf("coef has %d columns, M has %d rows: %w", c, r, funcge.ErrInvalidInput))
	}
	var U mat.Dense
	U.Mul(coef, M)

	return &U, nil
}

// Interaction returns the n×(dG·dE) matrix whose column i·dG+j is the
// element-wise product z[:, i] ⊙ U[:, j].
//
// Complexity: O(n·dG·dE).
func Interaction(U, z mat.Matrix) (*mat.Dense, error) {
	if err := validatePair(U, z); err != nil {
		return nil, designErrorf(opInteraction, err)
	}

	return interaction(U, z), nil
}

// Assemble concatenates [U | Interaction(U, z) | z].
//
// Implementation:
//   - Stage 1: validate row agreement and finiteness.
//   - Stage 2: write the three blocks into one preallocated n×Cols matrix.
func Assemble(U, z mat.Matrix) (*Matrix, error) {
	if err := validatePair(U, z); err != nil {
		return nil, designErrorf(opAssemble, err)
	}
	n, dG := U.Dims()
	_, dE := z.Dims()
	out := &Matrix{DimG: dG, DimE: dE}
	out.Data = mat.NewDense(n, out.Cols(), nil)

	out.Data.Slice(0, n, 0, dG).(*mat.Dense).Copy(U)
	out.Data.Slice(0, n, out.InteractionOffset(), out.EnvironmentOffset()).(*mat.Dense).Copy(interaction(U, z))
	out.Data.Slice(0, n, out.EnvironmentOffset(), out.Cols()).(*mat.Dense).Copy(z)

	return out, nil
}

func interaction(U, z mat.Matrix) *mat.Dense {
	n, dG := U.Dims()
	_, dE := z.Dims()
	ge := mat.NewDense(n, dG*dE, nil)
	for r := 0; r < n; r++ {
		row := ge.RawRowView(r)
		for i := 0; i < dE; i++ {
			zi := z.At(r, i)
			for j := 0; j < dG; j++ {
				row[i*dG+j] = zi * U.At(r, j)
			}
		}
	}

	return ge
}

// validatePair requires non-empty U and z with equal row counts and finite
// entries.
func validatePair(U, z mat.Matrix) error {
	if U == nil || z == nil {
		return fmt.Errorf("nil operand: %w", funcge.ErrInvalidInput)
	}
	nu, dG := U.Dims()
	nz, dE := z.Dims()
	if nu == 0 || dG == 0 || dE == 0 {
		return fmt.Errorf("empty operand (U %d×%d, z %d×%d): %w", nu, dG, nz, dE, funcge.ErrInvalidInput)
	}
	if nu != nz {
		return fmt.Errorf("U has %d rows, z has %d: %w", nu, nz, funcge.ErrInvalidInput)
	}
	if err := finite("U", U); err != nil {
		return err
	}

	return finite("z", z)
}

func finite(name string, m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%s[%d,%d] = %g: %w", name, i, j, v, funcge.ErrInvalidInput)
			}
		}
	}

	return nil
}

func designErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
