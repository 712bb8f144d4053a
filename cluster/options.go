// SPDX-License-Identifier: MIT

package cluster

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/telemetry"
)

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("cluster: invalid option supplied")

// Option configures a Clusterer.
type Option func(*Options)

// Options holds the collaborators of a run.
type Options struct {
	Sink    diag.Sink
	Metrics *telemetry.Metrics
	// Workers overrides config.Params.Workers when positive.
	Workers int

	err error
}

// WithSink routes diagnostics to s.
func WithSink(s diag.Sink) Option {
	return func(o *Options) {
		if s != nil {
			o.Sink = s
		}
	}
}

// WithMetrics records pipeline metrics on m.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithWorkers bounds parallelism (n ≥ 0, 0 keeps the configured value).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: workers %d", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}
