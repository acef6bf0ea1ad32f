// Package partitioncore is the online partitioning core of a neural-network
// compiler targeting a specialized accelerator.
//
// Given a frozen operation graph it produces a partitioning: a partition of
// the graph's operation nodes into connected groups (subgraphs), together
// with an identification of groups that are structural repeats of one
// another, so the compiler can emit one kernel body and invoke it many
// times.
//
// Under the hood, everything is organized into:
//
//	opgraph/   — the source-operation model: nodes, ports, meta-descriptors
//	groupdag/  — a thread-safe directed-acyclic substrate for Group vertices
//	directive/ — user directives (AVOID/ISOLATE/NOFOLD) and PassContext config
//	rewriter/  — the external pattern-matcher collaborator interface
//	group/     — Group, Repeated token, Meta-Interconnect (MIC), merge primitives
//	passes/    — the rewrite-pass pipeline (build, annotate, structural, repeats)
//	snapshot/  — the Snapshot facade that owns and runs the whole pipeline
//	telemetry/ — structured logging, tracing, and metrics (ambient, observability-only)
//	cmd/partition/ — a thin CLI driving a Snapshot over a JSON graph fixture
//
// The core is single-threaded and synchronous: one Snapshot runs its pass
// pipeline to completion with no cancellation and no cost modeling behind
// any decision. See DESIGN.md for the grounding behind each package.
package partitioncore
