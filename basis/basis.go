// SPDX-License-Identifier: MIT

// Package basis - constructors.
//
// Purpose:
//   - One validated constructor per family, plus New for Kind dispatch.
//   - Constructors copy caller slices; a Basis never aliases user memory.

package basis

import "math"

// New builds a basis of the given kind over [lo, hi] with nbasis functions.
// The switch is exhaustive over Kind; anything else fails with
// ErrUnsupportedBasisType instead of falling through with no basis.
//
// Inputs:
//   - kind: one of Bspline, Exponential, Fourier, Monomial, Power.
//   - lo, hi: finite interval, lo < hi.
//   - nbasis: number of basis functions (Fourier may round up to odd).
//   - p: family parameters (see Params).
//
// Errors:
//   - ErrUnsupportedBasisType, ErrInvalidInput.
func New(kind Kind, lo, hi float64, nbasis int, p Params) (*Basis, error) {
	switch kind {
	case Bspline:
		return NewBspline(lo, hi, nbasis, p.Order)
	case Exponential:
		return NewExponential(lo, hi, nbasis, p.Rates)
	case Fourier:
		return NewFourier(lo, hi, nbasis, p.Period)
	case Monomial:
		return NewMonomial(lo, hi, nbasis, p.Exponents)
	case Power:
		return NewPower(lo, hi, nbasis, p.Exponents)
	default:
		return nil, basisErrorf(opNew, unsupported(kind.String()))
	}
}

// NewBspline builds an order-`norder` B-spline basis with nbasis functions.
//
// Implementation:
//   - Stage 1: nbreaks = nbasis - norder + 2 equally spaced breaks on [lo, hi].
//   - Stage 2: knot vector = lo repeated norder times, interior breaks, hi repeated norder times.
//
// Errors:
//   - ErrInvalidInput if norder < 1 or nbasis < norder.
//
// Complexity:
//   - Time O(nbasis + norder), Space O(nbasis + norder).
func NewBspline(lo, hi float64, nbasis, norder int) (*Basis, error) {
	if err := validateInterval(lo, hi); err != nil {
		return nil, basisErrorf(opBspline, err)
	}
	if err := validateCount(nbasis); err != nil {
		return nil, basisErrorf(opBspline, err)
	}
	if norder < 1 {
		return nil, basisErrorf(opBspline, invalid("norder %d must be ≥ 1", norder))
	}
	if nbasis < norder {
		return nil, basisErrorf(opBspline, invalid("nbasis %d must be ≥ norder %d", nbasis, norder))
	}

	nbreaks := nbasis - norder + 2
	breaks := make([]float64, nbreaks)
	step := (hi - lo) / float64(nbreaks-1)
	for i := range breaks {
		breaks[i] = lo + float64(i)*step
	}
	breaks[nbreaks-1] = hi // exact right end, no accumulated rounding

	knots := make([]float64, 0, nbasis+norder)
	for i := 0; i < norder-1; i++ {
		knots = append(knots, lo)
	}
	knots = append(knots, breaks...)
	for i := 0; i < norder-1; i++ {
		knots = append(knots, hi)
	}

	return &Basis{
		kind:   Bspline,
		lo:     lo,
		hi:     hi,
		n:      nbasis,
		order:  norder,
		breaks: breaks,
		knots:  knots,
	}, nil
}

// NewExponential builds φ_k(t) = exp(rates[k]·t), k = 0..nbasis-1.
// rates must have exactly nbasis distinct finite entries.
func NewExponential(lo, hi float64, nbasis int, rates []float64) (*Basis, error) {
	if err := validateInterval(lo, hi); err != nil {
		return nil, basisErrorf(opExponential, err)
	}
	if err := validateCount(nbasis); err != nil {
		return nil, basisErrorf(opExponential, err)
	}
	if len(rates) != nbasis {
		return nil, basisErrorf(opExponential, invalid("len(rates) %d != nbasis %d", len(rates), nbasis))
	}
	if err := validateDistinctFinite("rates", rates); err != nil {
		return nil, basisErrorf(opExponential, err)
	}

	return &Basis{
		kind:  Exponential,
		lo:    lo,
		hi:    hi,
		n:     nbasis,
		rates: append([]float64(nil), rates...),
	}, nil
}

// NewFourier builds the constant + sine/cosine basis with the given period.
// A non-positive period selects hi-lo. An even nbasis is raised to the next
// odd count so every frequency carries both its sine and cosine.
func NewFourier(lo, hi float64, nbasis int, period float64) (*Basis, error) {
	if err := validateInterval(lo, hi); err != nil {
		return nil, basisErrorf(opFourier, err)
	}
	if err := validateCount(nbasis); err != nil {
		return nil, basisErrorf(opFourier, err)
	}
	if math.IsNaN(period) || math.IsInf(period, 0) {
		return nil, basisErrorf(opFourier, invalid("period %g is not finite", period))
	}
	if period <= 0 {
		period = hi - lo
	}
	if nbasis%2 == 0 {
		nbasis++
	}

	return &Basis{
		kind:   Fourier,
		lo:     lo,
		hi:     hi,
		n:      nbasis,
		period: period,
	}, nil
}

// NewMonomial builds φ_k(t) = t^exponents[k] for distinct non-negative integers.
// nil exponents select 0..nbasis-1.
func NewMonomial(lo, hi float64, nbasis int, exponents []float64) (*Basis, error) {
	if err := validateInterval(lo, hi); err != nil {
		return nil, basisErrorf(opMonomial, err)
	}
	exps, err := resolveExponents(nbasis, exponents)
	if err != nil {
		return nil, basisErrorf(opMonomial, err)
	}
	for i, e := range exps {
		if e < 0 || e != math.Trunc(e) {
			return nil, basisErrorf(opMonomial, invalid("exponents[%d] = %g must be a non-negative integer", i, e))
		}
	}

	return &Basis{kind: Monomial, lo: lo, hi: hi, n: nbasis, exps: exps}, nil
}

// NewPower builds φ_k(t) = t^exponents[k] for distinct real exponents.
// Non-integer exponents need lo ≥ 0; negative exponents need lo > 0.
// nil exponents select 0..nbasis-1.
func NewPower(lo, hi float64, nbasis int, exponents []float64) (*Basis, error) {
	if err := validateInterval(lo, hi); err != nil {
		return nil, basisErrorf(opPower, err)
	}
	exps, err := resolveExponents(nbasis, exponents)
	if err != nil {
		return nil, basisErrorf(opPower, err)
	}
	for i, e := range exps {
		if e != math.Trunc(e) && lo < 0 {
			return nil, basisErrorf(opPower, invalid("exponents[%d] = %g is fractional on interval starting at %g", i, e, lo))
		}
		if e < 0 && lo <= 0 {
			return nil, basisErrorf(opPower, invalid("exponents[%d] = %g is negative on interval starting at %g", i, e, lo))
		}
	}

	return &Basis{kind: Power, lo: lo, hi: hi, n: nbasis, exps: exps}, nil
}

// resolveExponents applies the 0..nbasis-1 default and validates the vector.
func resolveExponents(nbasis int, exponents []float64) ([]float64, error) {
	if err := validateCount(nbasis); err != nil {
		return nil, err
	}
	if exponents == nil {
		exps := make([]float64, nbasis)
		for i := range exps {
			exps[i] = float64(i)
		}

		return exps, nil
	}
	if len(exponents) != nbasis {
		return nil, invalid("len(exponents) %d != nbasis %d", len(exponents), nbasis)
	}
	if err := validateDistinctFinite("exponents", exponents); err != nil {
		return nil, err
	}

	return append([]float64(nil), exponents...), nil
}
