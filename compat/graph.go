// SPDX-License-Identifier: MIT

package compat

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/xtalgraph/bfs"
	"github.com/katalvlaran/xtalgraph/core"
	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/reindex"
	"github.com/katalvlaran/xtalgraph/telemetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

// Relation is how two cells were found compatible.
type Relation int

const (
	// RelationNone: no edge.
	RelationNone Relation = iota
	// RelationSimilar: the cells agree as given.
	RelationSimilar
	// RelationReindexed: the cells agree after a change of basis.
	RelationReindexed
)

// String returns "none", "similar" or "reindexed".
func (r Relation) String() string {
	switch r {
	case RelationSimilar:
		return telemetry.RelationSimilar
	case RelationReindexed:
		return telemetry.RelationReindexed
	default:
		return telemetry.RelationNone
	}
}

// Stats summarises a build.
type Stats struct {
	Vertices  int
	Pairs     int
	Edges     int
	Similar   int
	Reindexed int
	Searches  int
}

// pair is an unordered pair stored as (lo, hi).
type pair struct{ lo, hi int }

func newPair(i, j int) pair {
	if i > j {
		i, j = j, i
	}

	return pair{i, j}
}

// Graph is the compatibility graph of one build. It is immutable.
type Graph struct {
	ids       []string
	index     map[string]int
	g         *core.Graph
	relations map[pair]Relation
	cosets    map[pair]reindex.CosetSet
	stats     Stats
}

// evaluation is the outcome of one pair, written by the row's worker only.
type evaluation struct {
	j        int
	relation Relation
	searched bool
	cosets   reindex.CosetSet
}

// Build evaluates every unordered pair of cells and returns the graph.
// ids[i] identifies cells[i] and must be unique and non-empty.
// tolLength is relative and must lie in [0, 1); tolAngle is in degrees and
// must lie in [0, 90).
func Build(ctx context.Context, ids []string, cells []unitcell.Cell, tolLength, tolAngle float64, opts ...Option) (*Graph, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(ids) != len(cells) {
		return nil, fmt.Errorf("%w: %d ids, %d cells", ErrLengthMismatch, len(ids), len(cells))
	}
	if !inRange(tolLength, 1) || !inRange(tolAngle, 90) {
		return nil, fmt.Errorf("%w: length %v angle %v", ErrTolerance, tolLength, tolAngle)
	}

	// 1) vertices
	gr := &Graph{
		ids:       append([]string(nil), ids...),
		index:     make(map[string]int, len(ids)),
		g:         core.NewGraph(),
		relations: make(map[pair]Relation),
		cosets:    make(map[pair]reindex.CosetSet),
	}
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: index %d", ErrEmptyID, i)
		}
		if _, dup := gr.index[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		gr.index[id] = i
		if err := gr.g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("compat: %w", err)
		}
	}

	// 2) evaluate rows concurrently; row i owns rows[i]
	n := len(cells)
	rows := make([][]evaluation, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers())
	for i := 0; i+1 < n; i++ {
		eg.Go(func() error {
			row := make([]evaluation, 0, n-i-1)
			for j := i + 1; j < n; j++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				ev, err := evaluate(cells[i], cells[j], tolLength, tolAngle, o)
				if err != nil {
					return fmt.Errorf("compat: pair %q~%q: %w", ids[i], ids[j], err)
				}
				ev.j = j
				row = append(row, ev)
				report(o, ids[i], ids[j], ev)
			}
			rows[i] = row

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 3) merge in row order
	gr.stats.Vertices = gr.g.VertexCount()
	for i, row := range rows {
		for _, ev := range row {
			gr.stats.Pairs++
			if ev.searched {
				gr.stats.Searches++
				gr.cosets[pair{i, ev.j}] = ev.cosets
			}
			if ev.relation == RelationNone {
				continue
			}
			switch ev.relation {
			case RelationSimilar:
				gr.stats.Similar++
			case RelationReindexed:
				gr.stats.Reindexed++
			}
			gr.relations[pair{i, ev.j}] = ev.relation
			if err := gr.g.AddEdge(ids[i], ids[ev.j]); err != nil {
				return nil, fmt.Errorf("compat: %w", err)
			}
		}
	}
	gr.stats.Edges = gr.g.EdgeCount()

	return gr, nil
}

// evaluate decides one pair: similar as given, else search for operators.
func evaluate(a, b unitcell.Cell, tolLength, tolAngle float64, o Options) (evaluation, error) {
	if unitcell.Similar(a, b, tolLength, tolAngle) {
		return evaluation{relation: RelationSimilar}, nil
	}
	set, err := reindex.FindCosets(a, b, tolLength, tolAngle, o.Reindex...)
	if err != nil {
		return evaluation{}, err
	}
	ev := evaluation{searched: true, cosets: set}
	if !set.Empty() {
		ev.relation = RelationReindexed
	}

	return ev, nil
}

func report(o Options, a, b string, ev evaluation) {
	o.Metrics.ObservePair(ev.relation.String())
	if ev.searched {
		o.Metrics.ObserveSearch(!ev.cosets.Empty())
	}
	subject := a + "~" + b
	switch {
	case ev.relation == RelationReindexed:
		op, _ := ev.cosets.Canonical()
		diag.Infof(o.Sink, diag.CodePairReindexed, subject, "related by %s (%d cosets)", op, ev.cosets.Len())
	case ev.searched:
		diag.Debugf(o.Sink, diag.CodePairUnrelated, subject, "no operator within search bounds")
	}
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < limit
}

// Len returns the number of observations.
func (gr *Graph) Len() int {
	return len(gr.ids)
}

// ID returns the identity of observation i.
func (gr *Graph) ID(i int) string {
	return gr.ids[i]
}

// Index returns the position of id, or false.
func (gr *Graph) Index(id string) (int, bool) {
	i, ok := gr.index[id]

	return i, ok
}

// HasEdge reports whether observations i and j are compatible.
func (gr *Graph) HasEdge(i, j int) bool {
	if i < 0 || j < 0 || i >= len(gr.ids) || j >= len(gr.ids) {
		return false
	}

	return gr.g.HasEdge(gr.ids[i], gr.ids[j])
}

// Relation returns how i and j are related.
func (gr *Graph) Relation(i, j int) Relation {
	return gr.relations[newPair(i, j)]
}

// Cosets returns the set recorded for the pair when a search ran for it.
// Its operators map cells[min(i, j)] onto cells[max(i, j)]. Similar pairs
// are never searched and report false.
func (gr *Graph) Cosets(i, j int) (reindex.CosetSet, bool) {
	s, ok := gr.cosets[newPair(i, j)]

	return s, ok
}

// Stats returns the build counters.
func (gr *Graph) Stats() Stats {
	return gr.stats
}

// Groups returns the connected components as observation indices. Members
// are ascending; groups are ordered by size descending, then by their
// smallest member. Every observation appears in exactly one group.
// Enumeration stops with ctx.Err() once ctx is done.
func (gr *Graph) Groups(ctx context.Context) ([][]int, error) {
	comps, err := bfs.Components(gr.g, bfs.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("compat: %w", err)
	}
	groups := make([][]int, 0, len(comps))
	for _, comp := range comps {
		members := make([]int, len(comp))
		for k, id := range comp {
			members[k] = gr.index[id]
		}
		sort.Ints(members)
		groups = append(groups, members)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if len(groups[a]) != len(groups[b]) {
			return len(groups[a]) > len(groups[b])
		}

		return groups[a][0] < groups[b][0]
	})

	return groups, nil
}
