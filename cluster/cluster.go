// SPDX-License-Identifier: MIT

package cluster

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/xtalgraph/average"
	"github.com/katalvlaran/xtalgraph/compat"
	"github.com/katalvlaran/xtalgraph/config"
	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/explore"
	"github.com/katalvlaran/xtalgraph/store"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/telemetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Clusterer runs the pipeline with fixed parameters.
type Clusterer struct {
	params config.Params
	opts   Options
}

// New validates params and returns a Clusterer.
func New(params config.Params, opts ...Option) (*Clusterer, error) {
	o := Options{Sink: diag.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if o.Workers > 0 {
		params.Workers = o.Workers
	}

	return &Clusterer{params: params, opts: o}, nil
}

// Params returns the parameters in effect.
func (c *Clusterer) Params() config.Params {
	return c.params
}

// Group is one compatible group of accepted observations.
type Group struct {
	// Members index Result.Observations, ascending.
	Members []int
	// IDs are the member identities in the same order.
	IDs []string
	// Reference is the member whose basis Average is expressed in.
	Reference int
	Average   unitcell.Cell
	// Candidates are ordered by point-group number.
	Candidates []explore.Candidate
	// Err is set when averaging or exploration failed for this group.
	Err error
}

// Result is the outcome of one Run.
type Result struct {
	// Observations are the accepted observations in input order.
	Observations []Observation
	// Groups are ordered by size descending, then by first member.
	Groups   []Group
	Excluded []Exclusion
	Stats    compat.Stats
	Store    *store.Store
}

// Recommend returns the most frequent symmetry of the largest group.
func (r *Result) Recommend() (symmetry.Symmetry, bool) {
	return r.Store.MostFrequent(0)
}

// RecommendFor returns the candidate of the largest group matching ref's
// point group, nearest to ref's cell.
func (r *Result) RecommendFor(ref symmetry.Symmetry) (symmetry.Symmetry, bool) {
	return r.Store.MatchingReference(0, ref)
}

// Run groups obs. Only cancellation and internal inconsistencies are
// returned as errors; bad observations and failing groups are reported in
// the Result and to the sink.
func (c *Clusterer) Run(ctx context.Context, obs []Observation) (res *Result, err error) {
	ctx, span := telemetry.StartSpan(ctx, "cluster.run", attribute.Int("observations", len(obs)))
	defer func() { telemetry.EndSpan(span, err) }()

	res = &Result{}

	// 1) ingestion
	start := time.Now()
	acc := c.ingestAll(obs, res)
	c.opts.Metrics.ObserveStage(telemetry.StageIngest, start)

	// 2) compatibility graph
	start = time.Now()
	ids := make([]string, len(acc))
	cells := make([]unitcell.Cell, len(acc))
	for i, a := range acc {
		ids[i] = a.obs.ID
		cells[i] = a.p1
		res.Observations = append(res.Observations, a.obs)
	}
	gctx, gspan := telemetry.StartSpan(ctx, "cluster.graph")
	g, err := compat.Build(gctx, ids, cells, c.params.TolLength, c.params.TolAngle,
		compat.WithWorkers(c.params.Workers),
		compat.WithReindexOptions(c.params.ReindexOptions()...),
		compat.WithSink(c.opts.Sink),
		compat.WithMetrics(c.opts.Metrics),
	)
	telemetry.EndSpan(gspan, err)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	res.Stats = g.Stats()
	comps, err := g.Groups(ctx)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	c.opts.Metrics.ObserveStage(telemetry.StageGraph, start)

	// 3) per group average and explore
	start = time.Now()
	res.Groups = make([]Group, len(comps))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers())
	for k, members := range comps {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res.Groups[k] = c.group(egCtx, k, members, ids, cells, acc, g)

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	c.opts.Metrics.ObserveStage(telemetry.StageGroups, start)
	c.opts.Metrics.AddGroups(len(res.Groups))

	// 4) query surface
	sg := make([]store.Group, len(res.Groups))
	for k, grp := range res.Groups {
		sg[k] = store.Group{Members: grp.IDs, Average: grp.Average, Candidates: grp.Candidates}
	}
	res.Store = store.New(sg)

	return res, nil
}

// ingestAll returns the accepted observations and records exclusions.
func (c *Clusterer) ingestAll(obs []Observation, res *Result) []accepted {
	seen := make(map[string]int, len(obs))
	acc := make([]accepted, 0, len(obs))
	for i, o := range obs {
		a, reason, err := ingest(o)
		if err == nil {
			if first, dup := seen[o.ID]; dup {
				reason = ReasonDuplicate
				err = fmt.Errorf("%w: %q first seen at %d", ErrDuplicateID, o.ID, first)
			}
		}
		if err != nil {
			res.Excluded = append(res.Excluded, Exclusion{Index: i, ID: o.ID, Reason: reason, Err: err})
			c.opts.Metrics.ObserveExcluded(reason)
			code := diag.CodeObservationExcluded
			if reason == ReasonDuplicate {
				code = diag.CodeDuplicateID
			}
			diag.Warnf(c.opts.Sink, code, subjectOf(i, o.ID), "excluded: %v", err)
			continue
		}
		seen[o.ID] = i
		acc = append(acc, a)
	}

	return acc
}

// group averages and explores one component. Failures stay on the Group.
func (c *Clusterer) group(ctx context.Context, k int, members []int, ids []string, cells []unitcell.Cell, acc []accepted, lookup average.CosetLookup) Group {
	_, span := telemetry.StartSpan(ctx, "cluster.group",
		attribute.Int("group", k), attribute.Int("members", len(members)))
	grp := Group{Members: members, Reference: members[0], IDs: make([]string, len(members))}
	for i, m := range members {
		grp.IDs[i] = ids[m]
	}
	sink := diag.WithSubject(c.opts.Sink, fmt.Sprintf("group-%d", k))

	grp.Average, grp.Err = average.Average(members, cells, lookup, grp.Reference)
	if grp.Err == nil {
		ms := make([]explore.Member, len(members))
		for i, m := range members {
			ms[i] = acc[m].member
		}
		grp.Candidates, grp.Err = explore.Explore(grp.Average, ms, c.params.MaxDelta, sink)
	}
	if grp.Err != nil {
		diag.Warnf(sink, diag.CodeGroupFailed, "", "%v", grp.Err)
	}
	telemetry.EndSpan(span, grp.Err)

	return grp
}

func (c *Clusterer) workers() int {
	if c.params.Workers > 0 {
		return c.params.Workers
	}

	return runtime.GOMAXPROCS(0)
}

func subjectOf(i int, id string) string {
	if id == "" {
		return fmt.Sprintf("#%d", i)
	}

	return id
}
