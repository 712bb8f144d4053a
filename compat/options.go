// SPDX-License-Identifier: MIT

package compat

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/reindex"
	"github.com/katalvlaran/xtalgraph/telemetry"
)

// Sentinel errors for graph construction.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("compat: invalid option supplied")

	// ErrLengthMismatch is returned when ids and cells differ in length.
	ErrLengthMismatch = errors.New("compat: ids and cells differ in length")

	// ErrDuplicateID is returned when two observations share an identity.
	ErrDuplicateID = errors.New("compat: duplicate observation id")

	// ErrEmptyID is returned for an empty observation identity.
	ErrEmptyID = errors.New("compat: empty observation id")

	// ErrTolerance is returned for tolerances outside their ranges.
	ErrTolerance = errors.New("compat: tolerance out of range")
)

// Option configures Build.
type Option func(*Options)

// Options holds the build parameters.
type Options struct {
	// Workers bounds concurrent row evaluations; 0 means GOMAXPROCS.
	Workers int

	// Reindex is passed through to every reindex.FindCosets call.
	Reindex []reindex.Option

	// Sink receives per-pair diagnostics.
	Sink diag.Sink

	// Metrics, when non-nil, counts pair outcomes.
	Metrics *telemetry.Metrics

	err error
}

// DefaultOptions returns GOMAXPROCS workers, default reindex bounds and a
// discarding sink.
func DefaultOptions() Options {
	return Options{Sink: diag.Discard()}
}

// WithWorkers bounds the worker pool (n ≥ 0).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: workers %d", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithReindexOptions appends options for the operator search.
func WithReindexOptions(opts ...reindex.Option) Option {
	return func(o *Options) {
		o.Reindex = append(o.Reindex, opts...)
	}
}

// WithSink sets the diagnostic sink; nil keeps the current one.
func WithSink(s diag.Sink) Option {
	return func(o *Options) {
		if s != nil {
			o.Sink = s
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.GOMAXPROCS(0)
}
