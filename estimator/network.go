// SPDX-License-Identifier: MIT

// Package estimator: sparse G×E network.
//
// Layout (input is one design row [G | GE | z]):
//
//	h0 = [G∘w1 | GE∘w2 | z]                    w1 ∈ ℝ^dG, w2 ∈ ℝ^(dG·dE)
//	h_l = ReLU(h_{l-1}·W_lᵀ + b_l)             l = 1..len(Hidden)
//	score = h_L·W_outᵀ + b_out                   one unit
//
// Binary scores are logits, Survival scores are log-risks.

package estimator

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// dense is a fully connected layer; weight is out×in.
type dense struct {
	weight *mat.Dense
	bias   []float64
}

// Network is the sparse-input feed-forward model.
type Network struct {
	dimG, dimE int
	hidden     []int
	sparse1    []float64
	sparse2    []float64
	layers     []dense // hidden layers followed by the output layer
}

// pass caches forward activations for backprop.
type pass struct {
	input *mat.Dense   // design rows
	pre   []*mat.Dense // pre-activations per dense layer
	act   []*mat.Dense // activations; act[0] = h0
	score []float64
}

// newNetwork builds a network with sparse weights from the baseline
// coefficients and He-uniform dense weights drawn from seed.
func newNetwork(dimG, dimE int, hidden []int, base *Linear, seed uint64) *Network {
	net := &Network{
		dimG:    dimG,
		dimE:    dimE,
		hidden:  slices.Clone(hidden),
		sparse1: make([]float64, dimG),
		sparse2: make([]float64, dimG*dimE),
	}
	if base != nil && len(base.Coef) >= dimG+dimG*dimE {
		copy(net.sparse1, base.Coef[:dimG])
		copy(net.sparse2, base.Coef[dimG:dimG+dimG*dimE])
	} else {
		for i := range net.sparse1 {
			net.sparse1[i] = 1
		}
		for i := range net.sparse2 {
			net.sparse2[i] = 1
		}
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	in := net.inputWidth()
	for _, out := range append(slices.Clone(hidden), 1) {
		limit := math.Sqrt(6 / float64(in))
		u := distuv.Uniform{Min: -limit, Max: limit, Src: src}
		w := mat.NewDense(out, in, nil)
		raw := w.RawMatrix().Data
		for i := range raw {
			raw[i] = u.Rand()
		}
		net.layers = append(net.layers, dense{weight: w, bias: make([]float64, out)})
		in = out
	}

	return net
}

func (net *Network) inputWidth() int { return net.dimG + net.dimG*net.dimE + net.dimE }

// DimG returns the genotype block width.
func (net *Network) DimG() int { return net.dimG }

// DimE returns the number of environment covariates.
func (net *Network) DimE() int { return net.dimE }

// Hidden returns a copy of the hidden layer widths.
func (net *Network) Hidden() []int { return slices.Clone(net.hidden) }

// Sparse1 returns a copy of the genotype weights (length DimG).
func (net *Network) Sparse1() []float64 { return slices.Clone(net.sparse1) }

// Sparse2 returns a copy of the interaction weights (length DimG·DimE).
func (net *Network) Sparse2() []float64 { return slices.Clone(net.sparse2) }

// Clone returns a deep copy.
func (net *Network) Clone() *Network {
	c := &Network{
		dimG:    net.dimG,
		dimE:    net.dimE,
		hidden:  slices.Clone(net.hidden),
		sparse1: slices.Clone(net.sparse1),
		sparse2: slices.Clone(net.sparse2),
	}
	for _, l := range net.layers {
		c.layers = append(c.layers, dense{weight: mat.DenseCopyOf(l.weight), bias: slices.Clone(l.bias)})
	}

	return c
}

// matches reports whether net has the given shape.
func (net *Network) matches(dimG, dimE int, hidden []int) bool {
	return net.dimG == dimG && net.dimE == dimE && slices.Equal(net.hidden, hidden)
}

// Predict returns one score per design row (logit for Binary, log-risk for
// Survival).
func (net *Network) Predict(X mat.Matrix) ([]float64, error) {
	if X == nil {
		return nil, estimatorErrorf(opPredict, invalid("nil design"))
	}
	n, c := X.Dims()
	if c != net.inputWidth() || n == 0 {
		return nil, estimatorErrorf(opPredict, invalid("design is %d×%d, network expects %d columns", n, c, net.inputWidth()))
	}

	return net.forward(mat.DenseCopyOf(X)).score, nil
}

// forward runs the network on X and keeps every intermediate.
func (net *Network) forward(X *mat.Dense) *pass {
	n, _ := X.Dims()
	h0 := mat.DenseCopyOf(X)
	for i := 0; i < n; i++ {
		row := h0.RawRowView(i)
		for j, w := range net.sparse1 {
			row[j] *= w
		}
		for j, w := range net.sparse2 {
			row[net.dimG+j] *= w
		}
	}

	p := &pass{input: X, act: []*mat.Dense{h0}}
	a := h0
	last := len(net.layers) - 1
	for l, layer := range net.layers {
		var z mat.Dense
		z.Mul(a, layer.weight.T())
		for i := 0; i < n; i++ {
			row := z.RawRowView(i)
			for k, b := range layer.bias {
				row[k] += b
			}
		}
		p.pre = append(p.pre, &z)
		if l == last {
			p.score = mat.Col(nil, 0, &z)
			break
		}
		act := mat.DenseCopyOf(&z)
		act.Apply(func(_, _ int, v float64) float64 { return math.Max(v, 0) }, act)
		p.act = append(p.act, act)
		a = act
	}

	return p
}

// gradients mirrors the network's parameters.
type gradients struct {
	sparse1, sparse2 []float64
	weights          [][]float64
	biases           [][]float64
}

// backward returns the gradients of the loss given dScore = ∂loss/∂score.
func (net *Network) backward(p *pass, dScore []float64) *gradients {
	n := len(dScore)
	g := &gradients{}
	dZ := mat.NewDense(n, 1, slices.Clone(dScore))
	var dA *mat.Dense
	for l := len(net.layers) - 1; l >= 0; l-- {
		layer := net.layers[l]
		prev := p.act[l]

		var dW mat.Dense
		dW.Mul(dZ.T(), prev)
		out, _ := layer.weight.Dims()
		db := make([]float64, out)
		for i := 0; i < n; i++ {
			for k, v := range dZ.RawRowView(i) {
				db[k] += v
			}
		}
		g.weights = append(g.weights, dW.RawMatrix().Data)
		g.biases = append(g.biases, db)

		var next mat.Dense
		next.Mul(dZ, layer.weight)
		if l > 0 {
			pre := p.pre[l-1]
			next.Apply(func(i, j int, v float64) float64 {
				if pre.At(i, j) > 0 {
					return v
				}
				return 0
			}, &next)
			dZ = &next
			continue
		}
		dA = &next
	}
	slices.Reverse(g.weights)
	slices.Reverse(g.biases)

	g.sparse1 = make([]float64, net.dimG)
	g.sparse2 = make([]float64, net.dimG*net.dimE)
	for i := 0; i < n; i++ {
		dRow := dA.RawRowView(i)
		xRow := p.input.RawRowView(i)
		for j := range g.sparse1 {
			g.sparse1[j] += dRow[j] * xRow[j]
		}
		for j := range g.sparse2 {
			g.sparse2[j] += dRow[net.dimG+j] * xRow[net.dimG+j]
		}
	}

	return g
}
