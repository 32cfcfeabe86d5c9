// SPDX-License-Identifier: MIT

// Package basis: domain types. Kind is the tagged variant of basis families,
// Params carries the family-specific parameters, Basis is the immutable value.
package basis

import (
	"strconv"
	"strings"
)

// Kind identifies a basis family. The zero value is not a valid family.
type Kind int

const (
	// Bspline: piecewise polynomials; Params.Order (spline order = degree+1).
	Bspline Kind = iota + 1
	// Exponential: exp(rate_k·t); Params.Rates.
	Exponential
	// Fourier: constant + sin/cos pairs; Params.Period.
	Fourier
	// Monomial: t^e, non-negative integer exponents; Params.Exponents.
	Monomial
	// Power: t^e, real exponents; Params.Exponents.
	Power
)

// kindNames is indexed by Kind; slot 0 is the invalid zero Kind.
var kindNames = [...]string{"", "Bspline", "Exponential", "Fourier", "Monomial", "Power"}

// String returns the family name used by ParseKind.
func (k Kind) String() string {
	if k < Bspline || k > Power {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// ParseKind maps a family name (case-insensitive) to its Kind.
// Unknown names fail with ErrUnsupportedBasisType.
func ParseKind(name string) (Kind, error) {
	for k := Bspline; k <= Power; k++ {
		if strings.EqualFold(name, kindNames[k]) {
			return k, nil
		}
	}

	return 0, basisErrorf(opParseKind, unsupported(name))
}

// Params holds the type-specific parameters of a basis family.
// Only the fields relevant to the chosen Kind are read:
//   - Bspline:     Order (≥1, ≤ nbasis)
//   - Exponential: Rates (len == nbasis, distinct)
//   - Fourier:     Period (≤0 selects Hi-Lo)
//   - Monomial:    Exponents (distinct non-negative integers; nil ⇒ 0..nbasis-1)
//   - Power:       Exponents (distinct reals; nil ⇒ 0..nbasis-1)
type Params struct {
	Order     int
	Rates     []float64
	Period    float64
	Exponents []float64
}

// Basis is an immutable function basis on [lo, hi].
// Slices are owned by the Basis and never handed out without copying.
type Basis struct {
	kind   Kind
	lo, hi float64
	n      int

	order  int       // Bspline order
	breaks []float64 // Bspline breakpoints, breaks[0]=lo, breaks[last]=hi
	knots  []float64 // Bspline knot vector, len = n + order

	rates  []float64 // Exponential
	period float64   // Fourier
	exps   []float64 // Monomial / Power
}

// Kind returns the basis family.
func (b *Basis) Kind() Kind { return b.kind }

// N returns the number of basis functions.
func (b *Basis) N() int { return b.n }

// Interval returns the interval bounds.
func (b *Basis) Interval() (lo, hi float64) { return b.lo, b.hi }

// Order returns the B-spline order (0 for other families).
func (b *Basis) Order() int { return b.order }

// Period returns the Fourier period (0 for other families).
func (b *Basis) Period() float64 { return b.period }

// Breaks returns a copy of the points where the basis is not smooth.
// Non-spline families report only the interval ends.
func (b *Basis) Breaks() []float64 {
	if b.kind == Bspline {
		return append([]float64(nil), b.breaks...)
	}

	return []float64{b.lo, b.hi}
}

// Params returns a copy of the family parameters.
func (b *Basis) Params() Params {
	return Params{
		Order:     b.order,
		Rates:     append([]float64(nil), b.rates...),
		Period:    b.period,
		Exponents: append([]float64(nil), b.exps...),
	}
}

// Covers reports whether [lo, hi] ⊆ [b.lo, b.hi].
func (b *Basis) Covers(lo, hi float64) bool { return lo >= b.lo && hi <= b.hi }
