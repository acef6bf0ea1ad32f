// Package passes implements the ordered pipeline that turns an indexed
// operation graph into a final set of Groups: build the singleton
// Group-per-op DAG, apply AVOID/ISOLATE annotations, collapse structural
// remnants toward a target Group count, then discover and clean up
// repeated blocks.
//
// Every pass takes a *group.Registry, plus whichever settings of the
// directive.PassContext it uses, and mutates the Registry in place;
// Pipeline runs them in the fixed order the algorithm requires.
package passes
