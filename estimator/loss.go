// SPDX-License-Identifier: MIT

// Package estimator: outcome losses.
//
// Every loss returns the mean loss over the rows it is given and the
// gradient with respect to each score.

package estimator

import (
	"math"
	"sort"
)

// target is the response of a subset of rows, split by outcome.
type target struct {
	y      []float64 // Continuous, Binary
	time   []float64 // Survival
	status []float64 // Survival, 1 = event
}

// lossGrad dispatches on the outcome.
func lossGrad(o Outcome, score []float64, t target) (float64, []float64) {
	switch o {
	case Binary:
		return logisticLoss(score, t.y)
	case Survival:
		return coxLoss(score, t.time, t.status)
	default:
		return squaredLoss(score, t.y)
	}
}

// squaredLoss is the mean squared error.
func squaredLoss(score, y []float64) (float64, []float64) {
	n := float64(len(score))
	grad := make([]float64, len(score))
	var sum float64
	for i, s := range score {
		d := s - y[i]
		sum += d * d
		grad[i] = 2 * d / n
	}

	return sum / n, grad
}

// logisticLoss is the mean binary cross-entropy on logits,
// softplus(s) − y·s, evaluated without overflow.
func logisticLoss(score, y []float64) (float64, []float64) {
	n := float64(len(score))
	grad := make([]float64, len(score))
	var sum float64
	for i, s := range score {
		sum += softplus(s) - y[i]*s
		grad[i] = (sigmoid(s) - y[i]) / n
	}

	return sum / n, grad
}

// coxLoss is the negative Cox partial log-likelihood with Breslow ties,
// averaged over events:
//
//	−(1/E) Σ_{i: event} [ s_i − log Σ_{j: t_j ≥ t_i} exp(s_j) ]
//
// Without events the partial likelihood is undefined: the loss is NaN and
// the gradient zero, so an event-free part never wins a comparison.
//
// Complexity: O(n log n).
func coxLoss(score, time, status []float64) (float64, []float64) {
	n := len(score)
	grad := make([]float64, n)
	var events float64
	for _, st := range status {
		events += st
	}
	if events == 0 {
		return math.NaN(), grad
	}

	shift := math.Inf(-1)
	for _, s := range score {
		shift = math.Max(shift, s)
	}

	// Descending time; tied times share one risk set.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return time[order[a]] > time[order[b]] })

	risk := make([]float64, n) // Σ exp(s_j − shift) over t_j ≥ t_i
	var acc float64
	for lo := 0; lo < n; {
		hi := lo
		for hi < n && time[order[hi]] == time[order[lo]] {
			acc += math.Exp(score[order[hi]] - shift)
			hi++
		}
		for k := lo; k < hi; k++ {
			risk[order[k]] = acc
		}
		lo = hi
	}

	var loss float64
	for i := 0; i < n; i++ {
		if status[i] == 1 {
			loss -= score[i] - shift - math.Log(risk[i])
		}
	}

	// ∂/∂s_k = −(1/E)[δ_k − exp(s_k)·Σ_{i: event, t_i ≤ t_k} 1/R_i].
	// Walk ascending time; ties contribute before any member is read.
	var inv float64
	for hi := n; hi > 0; {
		lo := hi
		for lo > 0 && time[order[lo-1]] == time[order[hi-1]] {
			lo--
			if i := order[lo]; status[i] == 1 {
				inv += 1 / risk[i]
			}
		}
		for k := lo; k < hi; k++ {
			i := order[k]
			grad[i] = -(status[i] - math.Exp(score[i]-shift)*inv) / events
		}
		hi = lo
	}

	return loss / events, grad
}

func sigmoid(s float64) float64 {
	if s >= 0 {
		return 1 / (1 + math.Exp(-s))
	}
	e := math.Exp(s)

	return e / (1 + e)
}

func softplus(s float64) float64 {
	if s > 0 {
		return s + math.Log1p(math.Exp(-s))
	}

	return math.Log1p(math.Exp(s))
}
