// SPDX-License-Identifier: MIT

// Package simulate generates synthetic functional G×E data sets with known
// coefficient functions, for tests, examples and benchmarks.
//
// Model (t ∈ [0, 1], m equally spaced locations, dE = 2):
//
//	X_i(t) = Σ_{k=1..3} a_ik·sin(kπt) + ε_ij          a_ik ~ N(0, 1), ε ~ N(0, 0.1²)
//	z_i1 ~ N(0, 1), z_i2 ~ Bernoulli(0.5)
//	η_i = ∫X_iβ0 + z_i1·∫X_iβ1 + z_i2·∫X_iβ2 + 0.5·z_i1
//	β0(t) = sin(2πt), β1(t) = t, β2(t) = 0
//
// Responses: Continuous y = η + N(0, Noise²); Binary y ~ Bernoulli(σ(η));
// Survival T ~ Exp(e^η) censored by C ~ Exp(CensorRate), y = (min(T, C), T ≤ C).
package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/funcge"
	"github.com/katalvlaran/funcge/estimator"
)

const opGenerate = "simulate.Generate"

// Defaults for the zero Config values.
const (
	DefaultNoise      = 0.5
	DefaultCensorRate = 0.3
)

// DimE is the number of environment covariates generated.
const DimE = 2

// Config selects the size, response type and seed.
type Config struct {
	N, M    int
	Outcome estimator.Outcome
	Seed    uint64
	// Noise is the standard deviation of the continuous response noise.
	Noise float64
	// CensorRate is the rate of the exponential censoring time.
	CensorRate float64
}

// Dataset is one generated sample.
type Dataset struct {
	// Y is N×1 (Continuous, Binary) or N×2 (time, status).
	Y *mat.Dense
	// Z is N×DimE.
	Z *mat.Dense
	// Location holds the M sampling points on [0, 1].
	Location []float64
	// X is N×M.
	X *mat.Dense
	// Beta is (DimE+1)×M: the true β_i at Location.
	Beta *mat.Dense
}

// Beta0, Beta1 and Beta2 are the true coefficient functions.
func Beta0(t float64) float64 { return math.Sin(2 * math.Pi * t) }
func Beta1(t float64) float64 { return t }
func Beta2(float64) float64   { return 0 }

// Generate draws a data set. The same Config always yields the same data.
func Generate(cfg Config) (*Dataset, error) {
	if cfg.N < 1 || cfg.M < 2 {
		return nil, fmt.Errorf("%s: need N ≥ 1 and M ≥ 2, got %d, %d: %w", opGenerate, cfg.N, cfg.M, funcge.ErrInvalidInput)
	}
	switch cfg.Outcome {
	case estimator.Continuous, estimator.Binary, estimator.Survival:
	default:
		return nil, fmt.Errorf("%s: outcome %v: %w", opGenerate, cfg.Outcome, funcge.ErrInvalidInput)
	}
	if cfg.Noise == 0 {
		cfg.Noise = DefaultNoise
	}
	if cfg.CensorRate == 0 {
		cfg.CensorRate = DefaultCensorRate
	}

	src := rand.NewPCG(cfg.Seed, 0x5eed)
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	jitter := distuv.Normal{Mu: 0, Sigma: 0.1, Src: src}

	ds := &Dataset{
		Location: make([]float64, cfg.M),
		X:        mat.NewDense(cfg.N, cfg.M, nil),
		Z:        mat.NewDense(cfg.N, DimE, nil),
		Y:        mat.NewDense(cfg.N, cfg.Outcome.Columns(), nil),
		Beta:     mat.NewDense(DimE+1, cfg.M, nil),
	}
	for j := range ds.Location {
		t := float64(j) / float64(cfg.M-1)
		ds.Location[j] = t
		ds.Beta.Set(0, j, Beta0(t))
		ds.Beta.Set(1, j, Beta1(t))
		ds.Beta.Set(2, j, Beta2(t))
	}

	coin := distuv.Bernoulli{P: 0.5, Src: src}
	prod := make([]float64, cfg.M)
	for i := 0; i < cfg.N; i++ {
		a := [3]float64{stdNormal.Rand(), stdNormal.Rand(), stdNormal.Rand()}
		row := ds.X.RawRowView(i)
		for j, t := range ds.Location {
			for k, ak := range a {
				row[j] += ak * math.Sin(float64(k+1)*math.Pi*t)
			}
			row[j] += jitter.Rand()
		}
		z1, z2 := stdNormal.Rand(), coin.Rand()
		ds.Z.Set(i, 0, z1)
		ds.Z.Set(i, 1, z2)

		eta := 0.5 * z1
		for k, zk := range []float64{1, z1, z2} {
			for j := range prod {
				prod[j] = row[j] * ds.Beta.At(k, j)
			}
			eta += zk * integrate.Trapezoidal(ds.Location, prod)
		}

		switch cfg.Outcome {
		case estimator.Continuous:
			ds.Y.Set(i, 0, eta+cfg.Noise*stdNormal.Rand())
		case estimator.Binary:
			ds.Y.Set(i, 0, distuv.Bernoulli{P: 1 / (1 + math.Exp(-eta)), Src: src}.Rand())
		case estimator.Survival:
			event := distuv.Exponential{Rate: math.Exp(eta), Src: src}.Rand()
			censor := distuv.Exponential{Rate: cfg.CensorRate, Src: src}.Rand()
			if event <= censor {
				ds.Y.Set(i, 0, event)
				ds.Y.Set(i, 1, 1)
			} else {
				ds.Y.Set(i, 0, censor)
			}
		}
	}

	return ds, nil
}
