// SPDX-License-Identifier: MIT

package reindex

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operator search.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reindex: invalid option supplied")

	// ErrTolerance is returned for negative or non-finite tolerances.
	ErrTolerance = errors.New("reindex: tolerances must be finite and non-negative")
)

// Defaults for Options.
const (
	DefaultMaxDeterminant = 1
	DefaultMaxCoefficient = 2
	DefaultMaxOperators   = 512

	maxCoefficientLimit = 4
)

// Option configures FindCosets.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the search bounds.
type Options struct {
	// MaxDeterminant bounds det N of the integer operator over reduced bases.
	// 1 restricts the search to equal-volume relations.
	MaxDeterminant int64

	// MaxCoefficient bounds |coefficient| of each operator row over the
	// reduced basis.
	MaxCoefficient int64

	// MaxOperators caps the number of operators collected.
	MaxOperators int

	err error
}

// DefaultOptions returns MaxDeterminant 1, MaxCoefficient 2, MaxOperators 512.
func DefaultOptions() Options {
	return Options{
		MaxDeterminant: DefaultMaxDeterminant,
		MaxCoefficient: DefaultMaxCoefficient,
		MaxOperators:   DefaultMaxOperators,
	}
}

// WithMaxDeterminant sets the supercell bound (n ≥ 1).
func WithMaxDeterminant(n int64) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MaxDeterminant must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxDeterminant = n
	}
}

// WithMaxCoefficient sets the coefficient bound (1 ≤ k ≤ 4).
func WithMaxCoefficient(k int64) Option {
	return func(o *Options) {
		if k < 1 || k > maxCoefficientLimit {
			o.err = fmt.Errorf("%w: MaxCoefficient must be in [1,%d] (%d)", ErrOptionViolation, maxCoefficientLimit, k)
			return
		}
		o.MaxCoefficient = k
	}
}

// WithMaxOperators caps the collected operators (n ≥ 1).
func WithMaxOperators(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MaxOperators must be ≥ 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxOperators = n
	}
}

// WithOptions copies a whole Options value, e.g. one derived from config.
func WithOptions(src Options) Option {
	return func(o *Options) {
		for _, opt := range []Option{
			WithMaxDeterminant(src.MaxDeterminant),
			WithMaxCoefficient(src.MaxCoefficient),
			WithMaxOperators(src.MaxOperators),
		} {
			opt(o)
		}
	}
}
