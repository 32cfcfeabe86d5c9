// SPDX-License-Identifier: MIT

// Package estimator: training loop.
package estimator

import (
	"context"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// rows copies the given rows of X.
func rows(X *mat.Dense, idx []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for k, i := range idx {
		out.SetRow(k, X.RawRowView(i))
	}

	return out
}

// targetOf extracts the response of idx for outcome o.
func targetOf(Y *mat.Dense, o Outcome, idx []int) target {
	var t target
	for _, i := range idx {
		if o == Survival {
			t.time = append(t.time, Y.At(i, 0))
			t.status = append(t.status, Y.At(i, 1))
			continue
		}
		t.y = append(t.y, Y.At(i, 0))
	}

	return t
}

// optimisers holds one Adam state per parameter slice.
type optimisers struct {
	sparse1, sparse2 *adam
	weights, biases  []*adam
}

func newOptimisers(net *Network, h Hyper) *optimisers {
	o := &optimisers{
		sparse1: newAdam(len(net.sparse1), h.LearningRate1),
		sparse2: newAdam(len(net.sparse2), h.LearningRate1),
	}
	for _, l := range net.layers {
		o.weights = append(o.weights, newAdam(len(l.weight.RawMatrix().Data), h.LearningRate2))
		o.biases = append(o.biases, newAdam(len(l.bias), h.LearningRate2))
	}

	return o
}

// run trains one network for one hyperparameter point and evaluates it.
//
// Implementation:
//   - Stage 1: network from cfg.Model (cloned) or fresh from base and Seed.
//   - Stage 2: Epochs full-batch steps on the train part: forward, loss,
//     backward, L2 decay on dense weights, Adam, L1 proximal step on the
//     sparse weights. ctx is checked before every epoch.
//   - Stage 3: metrics on every part, plus the horizon AUC when requested.
func run(ctx context.Context, d Data, parts Parts, h Hyper, cfg Config, base *Linear, log *zap.Logger) (*Result, error) {
	dG, dE := d.Design.DimG, d.Design.DimE
	var net *Network
	if cfg.Model != nil {
		if !cfg.Model.matches(dG, dE, cfg.Hidden) {
			return nil, invalid("warm-start model shape (dG %d, dE %d, hidden %v) does not match (dG %d, dE %d, hidden %v)",
				cfg.Model.dimG, cfg.Model.dimE, cfg.Model.hidden, dG, dE, cfg.Hidden)
		}
		net = cfg.Model.Clone()
	} else {
		net = newNetwork(dG, dE, cfg.Hidden, base, cfg.Seed)
	}

	X := d.Design.Data
	xTrain, tTrain := rows(X, parts.Train), targetOf(d.Y, cfg.Outcome, parts.Train)
	sel := parts.selection()
	xSel, tSel := rows(X, sel), targetOf(d.Y, cfg.Outcome, sel)

	opt := newOptimisers(net, h)
	var history []Epoch
	for ep := 1; ep <= cfg.Epochs; ep++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := net.forward(xTrain)
		loss, dScore := lossGrad(cfg.Outcome, p.score, tTrain)
		g := net.backward(p, dScore)

		for l, layer := range net.layers {
			w := layer.weight.RawMatrix().Data
			for k := range g.weights[l] {
				g.weights[l][k] += h.L2 * w[k]
			}
			opt.weights[l].step(w, g.weights[l])
			opt.biases[l].step(layer.bias, g.biases[l])
		}
		opt.sparse1.step(net.sparse1, g.sparse1)
		opt.sparse2.step(net.sparse2, g.sparse2)
		softThreshold(net.sparse1, h.LearningRate1*h.L)
		softThreshold(net.sparse2, h.LearningRate1*h.L)

		if cfg.RecordHistory {
			selLoss, _ := lossGrad(cfg.Outcome, net.forward(xSel).score, tSel)
			history = append(history, Epoch{Epoch: ep, TrainLoss: loss, SelectionLoss: selLoss})
		}
		log.Debug("epoch", zap.Int("epoch", ep), zap.Float64("train_loss", loss))
	}

	res := &Result{
		Outcome:  cfg.Outcome,
		Hyper:    h,
		Weights:  Weights{Sparse1: net.Sparse1(), Sparse2: net.Sparse2()},
		Model:    net,
		Baseline: base,
		Parts:    parts,
		History:  history,
	}
	res.Train = evaluate(cfg.Outcome, net.forward(xTrain).score, tTrain)
	if len(parts.Validation) > 0 {
		res.Validation = evaluate(cfg.Outcome, net.forward(xSel).score, tSel)
	}
	xTest, tTest := rows(X, parts.Test), targetOf(d.Y, cfg.Outcome, parts.Test)
	testScore := net.forward(xTest).score
	res.Test = evaluate(cfg.Outcome, testScore, tTest)
	if cfg.Horizon != nil {
		hm := horizonAUC(testScore, tTest.time, tTest.status, *cfg.Horizon)
		res.Horizon = &hm
	}

	return res, nil
}
