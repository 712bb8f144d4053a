// SPDX-License-Identifier: MIT

// Package compat builds the compatibility graph of a set of P1 cells.
//
// Vertices are observation identities; an undirected edge joins two
// observations whose cells are Similar directly or are related by a
// change-of-basis operator found by reindex.FindCosets. Every unordered
// pair is evaluated exactly once. Work is split by row (pair (i, j) with
// i < j belongs to row i) over an errgroup worker pool and each row writes
// only its own result slot, so no locking is needed until the rows are
// merged into a core.Graph.
//
// Coset sets found during the build are kept on the Graph and reused by
// averaging; nothing is searched twice.
//
// Cancelling the context aborts the build: a partial graph would yield
// wrong components, so Build returns the context error and no Graph.
//
// Complexity: O(n²) pair checks, each reindex search bounded by the
// reindex.Options in effect.
package compat
