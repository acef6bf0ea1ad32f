// Package opgraph models the source-model collaborator this core reads
// its input from: an iterable, topologically-sortable sequence of
// operation nodes with input/output port connectivity, a per-node
// meta-descriptor, and a mutable metadata channel the external pattern
// rewriter can tag.
//
// partition-core never loads a model itself; it only consumes Node values
// already produced by that external loader. The Node interface and the
// in-memory Builder in this package exist so the rest of partition-core
// (and its tests) have something concrete to iterate over.
//
// Grounded in lvlath/core's Vertex/Edge split (stable IDs, ordered,
// deterministic iteration) and lvlath/dfs's topologically-driven traversal
// style, adapted from a generic graph substrate to an immutable,
// externally-produced operation graph.
package opgraph
