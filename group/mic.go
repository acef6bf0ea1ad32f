package group

import (
	"sort"
	"strings"

	"github.com/katalvlaran/partition-core/opgraph"
)

// MICEntry is one (source port meta, destination port meta) pair
// contributed by a single OpNode-level edge crossing a group boundary.
type MICEntry struct {
	Src opgraph.PortMeta
	Dst opgraph.PortMeta
}

// Key renders e as a canonical, comparable string.
func (e MICEntry) Key() string { return e.Src.Key() + "->" + e.Dst.Key() }

// MIC (Meta-Interconnect) is the canonicalized multiset of port-metadata
// pairs describing an edge between two groups. Two adjacent group-pairs
// have an identical MIC iff their boundary "looks the same" at the
// port-metadata level; MICs are the canonical key behind every
// interchangeable-merge decision in the repeated-block passes.
type MIC []MICEntry

// Key renders m, already sorted, as a single comparable string — the
// canonical bucket key used by tryGrowRepeatingGroups and mergeTriangles.
func (m MIC) Key() string {
	parts := make([]string, len(m))
	for i, e := range m {
		parts[i] = e.Key()
	}
	return strings.Join(parts, ";")
}

// Compute builds the MIC of the edge from producer group p to consumer
// group c: every OpNode-level edge whose source is in p.Content and whose
// destination is in c.Content, each rendered as a (src port meta, dst port
// meta) pair, sorted canonically by Key().
func Compute(p, c *Group, ports *opgraph.PortMap) MIC {
	var entries []MICEntry
	for _, srcID := range p.ContentIDs() {
		srcNode := p.Content[srcID]
		for _, dstID := range c.ContentIDs() {
			dstNode := c.Content[dstID]
			for _, e := range ports.Between(srcID, dstID) {
				srcMeta := portMeta(srcNode.MetaDescriptor().Outputs, e.SrcPort)
				dstMeta := portMeta(dstNode.MetaDescriptor().Inputs, e.DstPort)
				entries = append(entries, MICEntry{Src: srcMeta, Dst: dstMeta})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key() < entries[j].Key() })
	return entries
}

func portMeta(metas []opgraph.PortMeta, idx int) opgraph.PortMeta {
	if idx < 0 || idx >= len(metas) {
		return opgraph.PortMeta{}
	}
	return metas[idx]
}
