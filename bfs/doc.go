// SPDX-License-Identifier: MIT

// Package bfs partitions a core.Graph into connected components by
// breadth-first search.
//
// Determinism
//
//	core.Graph.NeighborIDs and core.Graph.Vertices return sorted IDs, so the
//	visit sequence and the component order are fully reproducible.
//
// Cancellation
//
//	WithContext is checked once per dequeued vertex; a cancelled context
//	aborts with ctx.Err() and no partial components.
//
// Complexity: O(V + E) time, O(V) memory.
package bfs
