// SPDX-License-Identifier: MIT

// Package snpge: functional options for the orchestrators.
package snpge

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/funcge/basis"
	"github.com/katalvlaran/funcge/estimator"
)

const panicWorkersInvalid = "snpge: WithWorkers: n must be ≥ 0"

// Option configures SNPGE / GridSNPGE.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	seed          uint64
	workers       int
	model         *estimator.Network
	recordHistory bool
	betaCurves    bool
	quad          []basis.Option
}

// WithLogger sets the structured logger (default: no-op). Stage boundaries
// log at Info.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSeed sets the seed of the split permutation and network
// initialisation (default estimator.DefaultSeed).
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithWorkers bounds the projection and grid-search pools (0 = GOMAXPROCS).
// Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithModel warm-starts training from a previously fitted network.
func WithModel(m *estimator.Network) Option { return func(o *options) { o.model = m } }

// WithRecordHistory toggles the per-epoch loss history (default on).
func WithRecordHistory(on bool) Option { return func(o *options) { o.recordHistory = on } }

// WithBetaCurves toggles evaluating β_i(t) at the input locations into
// Output.Curves (default on).
func WithBetaCurves(on bool) Option { return func(o *options) { o.betaCurves = on } }

// WithQuadrature passes options to the cross-basis inner product.
func WithQuadrature(opts ...basis.Option) Option {
	return func(o *options) { o.quad = append(o.quad, opts...) }
}

func gatherOptions(user ...Option) options {
	o := options{
		logger:        zap.NewNop(),
		seed:          estimator.DefaultSeed,
		recordHistory: true,
		betaCurves:    true,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
