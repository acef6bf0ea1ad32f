// Package group implements Group, the vertex type of the Group DAG, the
// Repeated shared-identity token, the Meta-Interconnect (MIC)
// canonicalization used to decide whether two group-boundary edges are
// interchangeable, and the merge primitives (fuse, fuseWith, fuseInputs,
// hasCycle) every rewrite pass builds on.
//
// Repeat-class membership is a back-pointer from each Group to a shared
// *Repeated token: tokens are never embedded by value, only compared by
// pointer identity, until cleanup populates the archetype table.
package group
