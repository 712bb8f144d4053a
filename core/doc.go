// SPDX-License-Identifier: MIT

// Package core provides a thread-safe, undirected, simple in-memory Graph
// keyed by string vertex IDs.
//
// The Graph G = (V,E) has:
//
//   - undirected edges, mirrored in adjacency[from][to] and adjacency[to][from]
//   - no self-loops (ErrLoopNotAllowed) and no parallel edges (ErrMultiEdgeNotAllowed)
//   - separate sync.RWMutex locks for vertices (muVert) and adjacency
//     (muEdgeAdj) so concurrent readers do not block each other
//
// Vertices() and NeighborIDs() return sorted results, so traversals built
// on top of them (see package bfs) are reproducible run to run.
//
// Core Methods:
//
//	AddVertex(id string) error               // O(1)
//	HasVertex(id string) bool                // O(1)
//	AddEdge(from, to string) error           // O(1), adds missing endpoints
//	HasEdge(from, to string) bool            // O(1)
//	NeighborIDs(id string) ([]string, error) // O(d log d)
//	Vertices() []string                      // O(V log V)
//	VertexCount(), EdgeCount() int           // O(1)
package core
