// File: doc.go
// Role: package overview for groupdag.
//
// Package groupdag is the thread-safe directed-acyclic substrate the Group
// DAG is built on: vertices are Group IDs, edges mirror data dependencies
// at the group level. It is adapted from lvlath/core's Graph/Vertex/Edge
// model, trimmed to what the Group DAG actually needs: always directed,
// no self-loops, no parallel edges (mirroring an edge twice is a no-op),
// no edge weights (there is no cost model at this layer). Topological
// ordering and reachability — used throughout the pass pipeline for sweep
// order and for the acyclicity checks that guard fuseRemnants, fuseInputs
// and mergeUniques merges — are adapted from lvlath/dfs's three-color
// traversal.
//
// Determinism:
//   - Vertices() and Successors()/Predecessors() return IDs sorted
//     lexicographically ascending, so every pass that iterates "all
//     groups" or "all producers of g" does so in a reproducible order.
//
// Concurrency:
//   - A single RWMutex guards the whole adjacency structure. The
//     partitioning core runs its pipeline single-threaded and
//     synchronously, so this is conservatively safe rather than a
//     performance-critical design; it mirrors lvlath/core's locking
//     discipline without lvlath's
//     finer-grained two-mutex split, which existed there to let
//     independent vertex/edge readers proceed concurrently — a case that
//     does not arise in this single-threaded core.
package groupdag
