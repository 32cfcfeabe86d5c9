// SPDX-License-Identifier: MIT

// Package estimator: evaluation metrics.
package estimator

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Metrics summarise a model on one part. Fields that do not apply to the
// outcome are zero.
type Metrics struct {
	N    int
	Loss float64
	// R2 is the coefficient of determination (Continuous).
	R2 float64
	// AUC is the area under the ROC curve (Binary).
	AUC float64
	// Accuracy uses the 0.5 probability cut (Binary).
	Accuracy float64
	// CIndex is Harrell's concordance index (Survival).
	CIndex float64
}

// HorizonMetrics is the time-dependent evaluation on the test part.
type HorizonMetrics struct {
	Time float64
	// AUC is the cumulative/dynamic AUC: events with time ≤ Time against
	// subjects still at risk after Time. NaN when either group is empty.
	AUC float64
	// Cases and Controls are the group sizes.
	Cases, Controls int
}

func evaluate(o Outcome, score []float64, t target) Metrics {
	loss, _ := lossGrad(o, score, t)
	m := Metrics{N: len(score), Loss: loss}
	switch o {
	case Continuous:
		m.R2 = stat.RSquaredFrom(score, t.y, nil)
	case Binary:
		classes := make([]bool, len(t.y))
		var hit int
		for i, y := range t.y {
			classes[i] = y == 1
			if (score[i] >= 0) == classes[i] {
				hit++
			}
		}
		m.AUC = auc(score, classes)
		m.Accuracy = float64(hit) / float64(len(score))
	case Survival:
		m.CIndex = concordance(score, t.time, t.status)
	}

	return m
}

// auc is the area under the ROC curve of scores against classes (true =
// positive), via gonum's ROC and the trapezoid rule. NaN when a class is
// missing.
func auc(score []float64, classes []bool) float64 {
	var pos int
	for _, c := range classes {
		if c {
			pos++
		}
	}
	if pos == 0 || pos == len(classes) {
		return math.NaN()
	}
	y := slices.Clone(score)
	c := slices.Clone(classes)
	stat.SortWeightedLabeled(y, c, nil)
	tpr, fpr, _ := stat.ROC(nil, y, c, nil)

	return integrate.Trapezoidal(fpr, tpr)
}

// concordance is Harrell's C: over pairs with t_i < t_j and an event at
// t_i, the share where the earlier subject has the higher risk score (ties
// in score count half). NaN when no pair is comparable.
//
// Complexity: O(n²).
func concordance(score, time, status []float64) float64 {
	var num, den float64
	for i := range score {
		if status[i] != 1 {
			continue
		}
		for j := range score {
			if time[i] >= time[j] {
				continue
			}
			den++
			switch {
			case score[i] > score[j]:
				num++
			case score[i] == score[j]:
				num += 0.5
			}
		}
	}
	if den == 0 {
		return math.NaN()
	}

	return num / den
}

// horizonAUC evaluates the cumulative/dynamic AUC at time h.
func horizonAUC(score, time, status []float64, h float64) HorizonMetrics {
	out := HorizonMetrics{Time: h}
	var s []float64
	var cls []bool
	for i := range score {
		switch {
		case time[i] <= h && status[i] == 1:
			out.Cases++
			s = append(s, score[i])
			cls = append(cls, true)
		case time[i] > h:
			out.Controls++
			s = append(s, score[i])
			cls = append(cls, false)
		}
	}
	if out.Cases == 0 || out.Controls == 0 {
		out.AUC = math.NaN()
		return out
	}
	out.AUC = auc(s, cls)

	return out
}
