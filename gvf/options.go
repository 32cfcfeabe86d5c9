// SPDX-License-Identifier: MIT

// Package gvf: functional options for the projector.
package gvf

import (
	"runtime"

	"go.uber.org/zap"
)

const panicWorkersInvalid = "gvf: WithWorkers: n must be ≥ 0"

// Option configures Project / ProjectSamples.
type Option func(*options)

type options struct {
	workers int
	logger  *zap.Logger
}

// WithWorkers bounds the per-subject worker pool of the missing-data path.
// 0 selects GOMAXPROCS; 1 solves subjects sequentially. Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, set := range user {
		set(&o)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
