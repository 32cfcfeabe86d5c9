// SPDX-License-Identifier: MIT

// Package estimator: functional options shared by Fit and GridSearch.
package estimator

import (
	"runtime"

	"go.uber.org/zap"
)

const panicWorkersInvalid = "estimator: WithWorkers: n must be ≥ 0"

// Option configures Fit / GridSearch.
type Option func(*options)

type options struct {
	workers int
	logger  *zap.Logger
}

// WithWorkers bounds the number of grid points trained concurrently.
// 0 selects GOMAXPROCS. Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the structured logger (default: no-op). Epochs and grid
// runs log at Debug.
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
