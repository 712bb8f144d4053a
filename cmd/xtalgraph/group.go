// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/xtalgraph/cluster"
	"github.com/katalvlaran/xtalgraph/config"
	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

var errFormat = errors.New("unsupported output format")

// input is the observations file layout.
type input struct {
	Observations []cluster.Observation `yaml:"observations" json:"observations"`
}

type groupFlags struct {
	input     string
	config    string
	tolLength float64
	tolAngle  float64
	maxDelta  float64
	maxDet    int64
	maxCoef   int64
	workers   int
	reference string
	refCell   []float64
	format    string
	logLevel  string
}

func newGroupCmd() *cobra.Command {
	f := &groupFlags{}
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group observations and print groups with candidate symmetries",
		Long: `Reads observations (id, p1_cell, space_group, cell) from a YAML or JSON
file, groups compatible cells, averages each group and lists the point
groups its lattice admits with the number of observations agreeing.

Parameters come from defaults, then --config, then XTALGRAPH_* variables,
then explicit flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroup(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "-", "observations file (YAML or JSON), - for stdin")
	fl.StringVarP(&f.config, "config", "c", "", "parameters file (YAML)")
	fl.Float64Var(&f.tolLength, "tol-length", config.DefaultTolLength, "relative length tolerance")
	fl.Float64Var(&f.tolAngle, "tol-angle", config.DefaultTolAngle, "angle tolerance in degrees")
	fl.Float64Var(&f.maxDelta, "max-delta", config.DefaultMaxDelta, "lattice distortion limit in degrees")
	fl.Int64Var(&f.maxDet, "max-det", config.DefaultMaxDeterminant, "largest supercell index considered when reindexing")
	fl.Int64Var(&f.maxCoef, "max-coefficient", config.DefaultMaxCoefficient, "largest absolute reindex operator coefficient")
	fl.IntVar(&f.workers, "workers", 0, "parallel workers, 0 for one per CPU")
	fl.StringVar(&f.reference, "reference", "", "reference space group; recommend its point group instead of the most frequent")
	fl.Float64SliceVar(&f.refCell, "reference-cell", nil, "reference cell a,b,c,alpha,beta,gamma")
	fl.StringVarP(&f.format, "format", "o", "yaml", "output format: yaml or json")
	fl.StringVar(&f.logLevel, "log-level", "warn", "diagnostic level: debug, info, warn, error")

	return cmd
}

func runGroup(cmd *cobra.Command, f *groupFlags) error {
	if f.format != "yaml" && f.format != "json" {
		return fmt.Errorf("%w: %q", errFormat, f.format)
	}
	params, err := resolveParams(cmd, f)
	if err != nil {
		return err
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(f.logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	obs, err := readObservations(cmd.InOrStdin(), f.input)
	if err != nil {
		return err
	}
	ref, err := reference(f)
	if err != nil {
		return err
	}

	c, err := cluster.New(params, cluster.WithSink(diag.FromLogger(logger)))
	if err != nil {
		return err
	}
	res, err := c.Run(cmd.Context(), obs)
	if err != nil {
		return err
	}

	var recommended *symmetry.Symmetry
	if ref != nil {
		s, ok := res.RecommendFor(*ref)
		if !ok {
			logger.Warn("no candidate matches the reference", slog.String("reference", ref.PointGroup.Short))
		} else {
			recommended = &s
		}
	}
	rep := res.Report(recommended)
	if ref != nil && recommended == nil {
		rep.Recommended = nil
	}

	return write(cmd.OutOrStdout(), f.format, rep)
}

// resolveParams layers defaults, the config file, the environment and the
// flags the user set explicitly.
func resolveParams(cmd *cobra.Command, f *groupFlags) (config.Params, error) {
	p := config.Default()
	if f.config != "" {
		var err error
		if p, err = config.Load(f.config); err != nil {
			return config.Params{}, err
		}
	}
	if err := config.ApplyEnv(&p, os.LookupEnv); err != nil {
		return config.Params{}, err
	}
	fl := cmd.Flags()
	if fl.Changed("tol-length") {
		p.TolLength = f.tolLength
	}
	if fl.Changed("tol-angle") {
		p.TolAngle = f.tolAngle
	}
	if fl.Changed("max-delta") {
		p.MaxDelta = f.maxDelta
	}
	if fl.Changed("max-det") {
		p.MaxDeterminant = f.maxDet
	}
	if fl.Changed("max-coefficient") {
		p.MaxCoefficient = f.maxCoef
	}
	if fl.Changed("workers") {
		p.Workers = f.workers
	}

	return p, p.Validate()
}

func readObservations(stdin io.Reader, path string) ([]cluster.Observation, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}
	// JSON is a subset of YAML
	var in input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse observations: %w", err)
	}

	return in.Observations, nil
}

func reference(f *groupFlags) (*symmetry.Symmetry, error) {
	if strings.TrimSpace(f.reference) == "" {
		return nil, nil
	}
	sg, err := symmetry.ParseSpaceGroup(f.reference)
	if err != nil {
		return nil, err
	}
	ref := symmetry.FromSpaceGroup(sg, unitcell.Cell{})
	if len(f.refCell) > 0 {
		if len(f.refCell) != 6 {
			return nil, fmt.Errorf("reference cell needs 6 values, got %d", len(f.refCell))
		}
		var p [6]float64
		copy(p[:], f.refCell)
		if ref.Cell, err = unitcell.FromParameters(p); err != nil {
			return nil, fmt.Errorf("reference cell: %w", err)
		}
	}

	return &ref, nil
}

func write(w io.Writer, format string, rep cluster.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}

	return enc.Close()
}
