// SPDX-License-Identifier: MIT

// Package xtalgraph groups independently measured crystal unit cells into
// sets that plausibly come from one crystal form, and proposes a point
// group for each set.
//
// 🚀 What does it do?
//
//	Given observations (identity, primitive P1 cell, reported space group
//	and conventional cell) it:
//		• relates every pair of cells, directly or through a change of basis
//		• groups related observations (connected components, largest first)
//		• averages each group in a common basis
//		• lists the point groups the averaged lattice admits within a
//		  distortion limit, with the number of observations agreeing
//
// ✨ Packages, leaf first:
//
//	matrix/    3×3 float and integer linear algebra
//	unitcell/  cell parameters, metric tensor, similarity, reduction
//	cbop/      exact rational change-of-basis operators
//	reindex/   bounded operator search between two lattices
//	symmetry/  point-group catalogue, space-group symbols, Symmetry values
//	lattice/   twofold search, holohedry, subgroups, conventional settings
//	core/      thread-safe undirected graph
//	bfs/       connected components by breadth-first search
//	compat/    parallel compatibility graph with coset cache
//	average/   reference-basis cell averaging
//	explore/   candidate symmetries and frequency voting
//	store/     query surface over grouped candidates
//	cluster/   the pipeline: ingestion, grouping, exploration
//	config/    parameters: YAML, environment, validation
//	diag/      injected diagnostic sinks
//	telemetry/ Prometheus collectors and OpenTelemetry spans
//
// The xtalgraph command (cmd/xtalgraph) reads observations from YAML or
// JSON and prints the grouping result.
//
// Quick start:
//
//	c, _ := cluster.New(config.Default())
//	res, _ := c.Run(ctx, observations)
//	if s, ok := res.Recommend(); ok {
//		fmt.Println(s) // e.g. "P422 (50.00 50.00 70.00 90.00 90.00 90.00)"
//	}
package xtalgraph
