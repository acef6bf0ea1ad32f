package passes

import (
	"sort"
	"strings"

	"github.com/katalvlaran/partition-core/directive"
	"github.com/katalvlaran/partition-core/group"
)

// CleanUpUniques decides, per repeat token, whether its cohort survives:
// any Group with a non-empty avoided-devices set or NoFold keeps the
// whole cohort (frozen); otherwise it is kept only if the cohort meets
// both pc.KeepBlocks and pc.KeepBlockSize, and dropped (repeat_tag
// cleared on every member) otherwise. Every kept cohort is run through
// completeRepeating to build its archetype layer sets, returned keyed by
// a human-readable repeat id. afterUniques then applies NoFold from
// pc.NoFolds to every Group whose isolated tag names it.
func CleanUpUniques(r *group.Registry, pc directive.PassContext) (map[string][][]string, error) {
	tokens := distinctTokens(r)
	matches := make(map[string][][]string, len(tokens))
	for _, t := range tokens {
		s := cohortOf(r, t)
		keep := false
		for _, g := range s {
			if len(g.AvoidedDevices) > 0 || g.NoFold {
				keep = true
				break
			}
		}
		if keep {
			freezeAll(s)
		} else if len(s) >= pc.KeepBlocks && allAtLeast(s, pc.KeepBlockSize) {
			keep = true
			freezeAll(s)
		}
		if !keep {
			for _, g := range s {
				g.RepeatTag = nil
			}
			continue
		}
		layers, err := completeRepeating(s)
		if err != nil {
			return nil, err
		}
		matches[repeatedID(t)] = layers
	}
	afterUniques(r, pc)
	return matches, nil
}

func distinctTokens(r *group.Registry) []*group.Repeated {
	var out []*group.Repeated
	seen := make(map[*group.Repeated]struct{})
	for _, gid := range r.SortedIDs() {
		t := r.Groups[gid].RepeatTag
		if t == nil {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func freezeAll(s []*group.Group) {
	for _, g := range s {
		g.Frozen = true
	}
}

func allAtLeast(s []*group.Group, size int) bool {
	for _, g := range s {
		if g.Size() < size {
			return false
		}
	}
	return true
}

func repeatedID(t *group.Repeated) string {
	return "repeat-" + t.ID.String()
}

// completeRepeating builds, for every OpNode in every Group of s, the
// composite key (meta-descriptor, reptrack), inverse-indexes it into a
// layer-matches table, and sanity-checks that every key occurs exactly
// len(s) times and that the number of distinct keys equals every Group's
// content size. Each emitted set holds one friendly name (OpNode id) per
// repeat instance, and is also recorded under its key in the cohort
// token's Archetype table.
func completeRepeating(s []*group.Group) ([][]string, error) {
	if len(s) == 0 {
		return nil, nil
	}
	expectedSize := s[0].Size()
	for _, g := range s {
		if g.Size() != expectedSize {
			return nil, fatalf("completeRepeating", "group %s has size %d, cohort expects %d", g.ID, g.Size(), expectedSize)
		}
	}

	index := make(map[string][]string)
	keyOrder := make([]string, 0)
	for _, g := range s {
		for _, opID := range g.ContentIDs() {
			n := g.Content[opID]
			track := append([]string(nil), g.ReptrackOf(opID)...)
			sort.Strings(track)
			key := n.MetaDescriptor().Key() + "|" + strings.Join(track, ",")
			if _, seen := index[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			index[key] = append(index[key], opID)
		}
	}
	if len(index) != expectedSize {
		return nil, fatalf("completeRepeating", "archetype key count %d != group content size %d", len(index), expectedSize)
	}
	sort.Strings(keyOrder)

	layers := make([][]string, 0, len(keyOrder))
	for _, key := range keyOrder {
		names := index[key]
		if len(names) != len(s) {
			return nil, fatalf("completeRepeating", "archetype key %q occurs %d times, want %d", key, len(names), len(s))
		}
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		layers = append(layers, sorted)
		if t := s[0].RepeatTag; t != nil && t.Archetype != nil {
			t.Archetype[key] = sorted
		}
	}
	return layers, nil
}

// afterUniques sets NoFold on every Group whose IsolatedTag is listed in
// pc.NoFolds.
func afterUniques(r *group.Registry, pc directive.PassContext) {
	nofolds := make(map[string]struct{}, len(pc.NoFolds))
	for _, tag := range pc.NoFolds {
		nofolds[tag] = struct{}{}
	}
	for _, gid := range r.SortedIDs() {
		g := r.Groups[gid]
		if g.IsolatedTag == "" {
			continue
		}
		if _, ok := nofolds[g.IsolatedTag]; ok {
			g.NoFold = true
		}
	}
}
