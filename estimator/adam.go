// SPDX-License-Identifier: MIT

package estimator

import "math"

// adam keeps first and second moment estimates for one parameter slice.
type adam struct {
	m, v         []float64
	lr           float64
	beta1, beta2 float64
	eps          float64
	t            int
}

func newAdam(numParams int, lr float64) *adam {
	return &adam{
		m:     make([]float64, numParams),
		v:     make([]float64, numParams),
		lr:    lr,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
	}
}

// step applies one bias-corrected Adam update to params in place.
func (opt *adam) step(params, grads []float64) {
	opt.t++
	bc1 := 1.0 - math.Pow(opt.beta1, float64(opt.t))
	bc2 := 1.0 - math.Pow(opt.beta2, float64(opt.t))

	for i := range params {
		g := grads[i]
		opt.m[i] = opt.beta1*opt.m[i] + (1-opt.beta1)*g
		opt.v[i] = opt.beta2*opt.v[i] + (1-opt.beta2)*g*g

		mHat := opt.m[i] / bc1
		vHat := opt.v[i] / bc2
		params[i] -= opt.lr * mHat / (math.Sqrt(vHat) + opt.eps)
	}
}

// softThreshold is the L1 proximal map with threshold th, in place.
func softThreshold(w []float64, th float64) {
	if th <= 0 {
		return
	}
	for i, v := range w {
		switch {
		case v > th:
			w[i] = v - th
		case v < -th:
			w[i] = v + th
		default:
			w[i] = 0
		}
	}
}
