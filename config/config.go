// SPDX-License-Identifier: MIT

// Package config holds the tunable parameters of a grouping run.
//
// Params are read from YAML (Load, Parse), optionally overridden from
// XTALGRAPH_* environment variables (ApplyEnv) and checked with
// struct-tag validation (Validate). Missing keys keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/xtalgraph/reindex"
)

// Sentinel errors for configuration.
var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid parameters")

	// ErrParse wraps YAML and environment parse failures.
	ErrParse = errors.New("config: parse error")
)

// Defaults.
const (
	DefaultTolLength      = 0.1
	DefaultTolAngle       = 5.0
	DefaultMaxDelta       = 10.0
	DefaultMaxDeterminant = reindex.DefaultMaxDeterminant
	DefaultMaxCoefficient = reindex.DefaultMaxCoefficient
)

// envPrefix prefixes every environment override.
const envPrefix = "XTALGRAPH_"

var validate = validator.New()

// Params are the run parameters.
type Params struct {
	// TolLength is the relative length tolerance of cell similarity.
	TolLength float64 `yaml:"tol_length" json:"tol_length" validate:"gt=0,lt=1"`
	// TolAngle is the absolute angle tolerance in degrees.
	TolAngle float64 `yaml:"tol_angle" json:"tol_angle" validate:"gt=0,lt=90"`
	// MaxDelta is the Le Page distortion limit in degrees.
	MaxDelta float64 `yaml:"max_delta" json:"max_delta" validate:"gte=0,lte=45"`
	// MaxDeterminant bounds the supercell index of reindex operators.
	MaxDeterminant int64 `yaml:"max_determinant" json:"max_determinant" validate:"gte=1,lte=8"`
	// MaxCoefficient bounds reindex operator coefficients.
	MaxCoefficient int64 `yaml:"max_coefficient" json:"max_coefficient" validate:"gte=1,lte=4"`
	// Workers bounds parallelism; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers" validate:"gte=0"`
}

// Default returns tol_length 0.1, tol_angle 5, max_delta 10 and the
// default reindex bounds.
func Default() Params {
	return Params{
		TolLength:      DefaultTolLength,
		TolAngle:       DefaultTolAngle,
		MaxDelta:       DefaultMaxDelta,
		MaxDeterminant: DefaultMaxDeterminant,
		MaxCoefficient: DefaultMaxCoefficient,
	}
}

// Validate checks every field against its range.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// ReindexOptions returns the operator search bounds of p.
func (p Params) ReindexOptions() []reindex.Option {
	return []reindex.Option{
		reindex.WithMaxDeterminant(p.MaxDeterminant),
		reindex.WithMaxCoefficient(p.MaxCoefficient),
	}
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Params, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// ApplyEnv overrides p from XTALGRAPH_TOL_LENGTH, XTALGRAPH_TOL_ANGLE,
// XTALGRAPH_MAX_DELTA, XTALGRAPH_MAX_DETERMINANT, XTALGRAPH_MAX_COEFFICIENT
// and XTALGRAPH_WORKERS as found by lookup (os.LookupEnv in production),
// then validates. p is left unchanged on error.
func ApplyEnv(p *Params, lookup func(string) (string, bool)) error {
	q := *p
	floats := []struct {
		key string
		dst *float64
	}{
		{"TOL_LENGTH", &q.TolLength},
		{"TOL_ANGLE", &q.TolAngle},
		{"MAX_DELTA", &q.MaxDelta},
	}
	for _, f := range floats {
		if v, ok := lookup(envPrefix + f.key); ok {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrParse, envPrefix, f.key, err)
			}
			*f.dst = x
		}
	}
	ints := []struct {
		key string
		dst *int64
	}{
		{"MAX_DETERMINANT", &q.MaxDeterminant},
		{"MAX_COEFFICIENT", &q.MaxCoefficient},
	}
	for _, f := range ints {
		if v, ok := lookup(envPrefix + f.key); ok {
			x, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrParse, envPrefix, f.key, err)
			}
			*f.dst = x
		}
	}
	if v, ok := lookup(envPrefix + "WORKERS"); ok {
		x, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS: %v", ErrParse, envPrefix, err)
		}
		q.Workers = x
	}
	if err := q.Validate(); err != nil {
		return err
	}
	*p = q

	return nil
}
