// Package rewriter defines the operation-pattern-matching collaborator: a
// callable that tags nodes matching a named pattern with an isolation tag
// or a device-avoidance tag. partition-core only invokes it and consumes
// its side effects on node metadata — the matching logic itself belongs
// to a downstream compiler component and is out of scope here.
//
// Only "RMSNorm" is recognized; any other pattern name is a
// warned-and-skipped unknown pattern.
package rewriter

import (
	"errors"

	"github.com/katalvlaran/partition-core/opgraph"
)

// ErrUnknownPattern indicates a pattern name with no registered matcher.
// Callers should log this at WARN and continue.
var ErrUnknownPattern = errors.New("rewriter: unknown pattern")

// Matcher finds every occurrence of a named pattern in a node set and
// applies tag to the metadata of every node it matches.
type Matcher interface {
	// Match scans nodes for pattern and, for each match, sets
	// n.Meta()[metaKey] = tag on every node in the match. It returns the
	// matched node IDs (for callers that need to know which Groups to
	// re-tag).
	Match(nodes []opgraph.Node, pattern, metaKey, tag string) ([]string, error)
}

// Keys used in Node.Meta() to stash rewriter output. passes.EarlyAvoids/
// EarlyRegroup pass them to Match and tag Groups from the node IDs it
// returns; they do not read these keys back.
const (
	MetaKeyAvoidDevice = "avoid_device"
	MetaKeyIsolateTag  = "isolate_tag"
)

// KnownPatterns lists the pattern names recognized by Registry's default
// matcher ("currently only RMSNorm is supported").
var KnownPatterns = map[string]struct{}{
	"RMSNorm": {},
}

// Registry is the default Matcher: it recognizes patterns in
// KnownPatterns via a simple per-node Description() match (a stand-in for
// the real multi-node subgraph matcher, which lives downstream and is
// entirely out of scope here) and reports ErrUnknownPattern for anything
// else.
type Registry struct{}

var _ Matcher = Registry{}

// Match implements Matcher. For the supported "RMSNorm" pattern, it tags
// every node whose Description() equals the pattern name; this mirrors
// the structure of a real rewriter invocation without attempting to
// reimplement subgraph matching.
func (Registry) Match(nodes []opgraph.Node, pattern, metaKey, tag string) ([]string, error) {
	if _, ok := KnownPatterns[pattern]; !ok {
		return nil, ErrUnknownPattern
	}
	var matched []string
	for _, n := range nodes {
		if n.Description() != pattern {
			continue
		}
		n.Meta()[metaKey] = tag
		matched = append(matched, n.ID())
	}
	return matched, nil
}
