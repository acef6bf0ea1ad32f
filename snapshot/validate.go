package snapshot

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/katalvlaran/partition-core/group"
	"github.com/katalvlaran/partition-core/opgraph"
	"github.com/katalvlaran/partition-core/passes"
)

// Validate checks every structural invariant a finished Export must hold
// and returns every violation found, combined into one error. A clean
// run returns nil.
func Validate(exp *passes.Export, idx *opgraph.Index) error {
	var err error
	err = multierr.Append(err, checkCoverageAndDisjoint(exp, idx))
	err = multierr.Append(err, checkAcyclic(exp))
	err = multierr.Append(err, checkEdgesBackedByOps(exp))
	err = multierr.Append(err, checkNodeToGroupConsistency(exp))
	err = multierr.Append(err, checkRepeatCompatibility(exp))
	return err
}

// checkCoverageAndDisjoint verifies the union of every Group's content
// equals the operational node set, and no node appears in two Groups.
func checkCoverageAndDisjoint(exp *passes.Export, idx *opgraph.Index) error {
	seen := make(map[string]string, len(idx.Operational))
	for _, gid := range exp.Registry.SortedIDs() {
		g := exp.Registry.Groups[gid]
		for _, id := range g.ContentIDs() {
			if owner, dup := seen[id]; dup {
				return fmt.Errorf("coverage: node %s owned by both group %s and %s", id, owner, gid)
			}
			seen[id] = gid
		}
	}
	if len(seen) != len(idx.Operational) {
		return fmt.Errorf("coverage: %d nodes covered by groups, want %d operational nodes", len(seen), len(idx.Operational))
	}
	for id := range idx.Operational {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("coverage: operational node %s not covered by any group", id)
		}
	}
	return nil
}

// checkAcyclic verifies the Group DAG is acyclic.
func checkAcyclic(exp *passes.Export) error {
	if _, err := exp.Registry.DAG.TopologicalSort(); err != nil {
		return fmt.Errorf("acyclic: %w", err)
	}
	return nil
}

// checkEdgesBackedByOps verifies every Group DAG edge u->v is backed by
// at least one OpNode-level edge from u's content to v's content.
func checkEdgesBackedByOps(exp *passes.Export) error {
	for _, gid := range exp.Registry.SortedIDs() {
		u := exp.Registry.Groups[gid]
		for _, vid := range exp.Registry.DAG.Successors(gid) {
			v := exp.Registry.Groups[vid]
			if !anyPortEdgeBetween(exp.Ports, u, v) {
				return fmt.Errorf("edge-backing: group edge %s->%s has no backing OpNode edge", gid, vid)
			}
		}
	}
	return nil
}

func anyPortEdgeBetween(ports *opgraph.PortMap, u, v *group.Group) bool {
	for _, srcID := range u.ContentIDs() {
		for _, dstID := range v.ContentIDs() {
			if len(ports.Between(srcID, dstID)) > 0 {
				return true
			}
		}
	}
	return false
}

// checkNodeToGroupConsistency verifies node_to_group[n] contains n, for
// every operational n.
func checkNodeToGroupConsistency(exp *passes.Export) error {
	for id, g := range exp.NodeToGroup {
		if _, ok := g.Content[id]; !ok {
			return fmt.Errorf("node-group: node_to_group[%s] points to group %s which does not contain it", id, g.ID)
		}
	}
	return nil
}

// checkRepeatCompatibility verifies Groups sharing a repeat token have
// identical meta-descriptor multisets, avoided_devices, and special_tags.
func checkRepeatCompatibility(exp *passes.Export) error {
	type seen struct {
		metaKey  string
		avoidKey string
		tagKey   string
	}
	byToken := make(map[*group.Repeated]seen)
	for _, gid := range exp.Registry.SortedIDs() {
		g := exp.Registry.Groups[gid]
		if g.RepeatTag == nil {
			continue
		}
		cur := seen{metaKey: g.MetaMultisetKey(), avoidKey: g.AvoidedDevicesKey(), tagKey: g.SpecialTagsKey()}
		if prev, ok := byToken[g.RepeatTag]; ok {
			if prev != cur {
				return fmt.Errorf("repeat-compat: group %s diverges from its repeat cohort", gid)
			}
			continue
		}
		byToken[g.RepeatTag] = cur
	}
	return nil
}
