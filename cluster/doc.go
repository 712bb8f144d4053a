// SPDX-License-Identifier: MIT

// Package cluster runs the whole grouping pipeline over a batch of
// observations:
//
//  1. ingestion: each observation is validated and parsed; failures are
//     excluded with a diagnostic and never abort the batch;
//  2. compat.Build relates every pair of P1 cells;
//  3. every connected group is averaged in the basis of its first member
//     and explored for candidate symmetries, groups in parallel; a group
//     that fails keeps its error and the rest of the batch continues;
//  4. the groups are indexed by a store.Store, largest first.
//
// A Clusterer carries no state between runs and is safe for concurrent use.
package cluster
