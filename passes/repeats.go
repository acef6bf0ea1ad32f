package passes

import (
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/partition-core/group"
)

// IdentifyUniques computes, for every Group, the composite key (initial
// meta-descriptor, avoided devices, special tags) and allocates one fresh
// Repeated token per key whose bucket holds at least two Groups, stamping
// every Group in the bucket with it. Runs exactly once, before any
// mergeUniques sweep.
func IdentifyUniques(r *group.Registry) {
	buckets := make(map[string][]*group.Group)
	order := make([]string, 0)
	for _, gid := range r.SortedIDs() {
		g := r.Groups[gid]
		key := g.InitialMetaDescriptor().Key() + "|" + g.AvoidedDevicesKey() + "|" + g.SpecialTagsKey()
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], g)
	}
	for _, key := range order {
		bucket := buckets[key]
		if len(bucket) < 2 {
			continue
		}
		tok := group.NewRepeated()
		for _, g := range bucket {
			g.RepeatTag = tok
		}
	}
}

// MergeUniques sweeps the Group DAG topologically to fixed point: for each
// Group with an open repeat token, the full cohort sharing that token is
// grown via tryGrowRepeatingGroups; a token that fails to grow is closed
// (open_for_merge = false) and never revisited. The whole sweep repeats
// until a pass over every live token produces zero growth.
func MergeUniques(r *group.Registry, log *zap.Logger) error {
	for {
		order, err := r.DAG.TopologicalSort()
		if err != nil {
			return err
		}
		grownAny := false
		touched := make(map[*group.Repeated]struct{})
		for _, gid := range order {
			g, ok := r.Groups[gid]
			if !ok || g.RepeatTag == nil || !g.RepeatTag.OpenForMerge {
				continue
			}
			t := g.RepeatTag
			if _, done := touched[t]; done {
				continue
			}
			cohort := cohortOf(r, t)
			newTok, err := tryGrowRepeatingGroups(r, cohort, t)
			if err != nil {
				return err
			}
			touched[t] = struct{}{}
			if newTok != nil {
				touched[newTok] = struct{}{}
				grownAny = true
			} else {
				t.Exclude()
			}
		}
		if !grownAny {
			return nil
		}
	}
}

func cohortOf(r *group.Registry, t *group.Repeated) []*group.Group {
	var out []*group.Group
	for _, gid := range r.SortedIDs() {
		g := r.Groups[gid]
		if g.RepeatTag == t {
			out = append(out, g)
		}
	}
	return out
}

type repeatCandidate struct {
	p, g *group.Group
}

// tryGrowRepeatingGroups is the centerpiece of repeated-block discovery:
// given a cohort all sharing token t, it looks for a set of producer→Group
// edges whose Meta-Interconnect is identical across ≥2 members of the
// cohort, and grows the repeat class by merging the matching producers in.
// Returns the new token on success, nil if the cohort could not grow this
// round (MergeUniques then closes t).
func tryGrowRepeatingGroups(r *group.Registry, cohort []*group.Group, t *group.Repeated) (*group.Repeated, error) {
	if len(cohort) == 0 {
		return nil, nil
	}
	sortedCohort := group.SortedByIDDesc(cohort)
	avoidKey := sortedCohort[0].AvoidedDevicesKey()
	tagKey := sortedCohort[0].SpecialTagsKey()

	buckets := make(map[string][]repeatCandidate)
	bucketOrder := make([]string, 0)
	for _, g := range sortedCohort {
		for _, p := range r.Producers(g) {
			if p.RepeatTag == nil || p.RepeatTag == t {
				continue
			}
			if r.WouldCreateCycle(p, g) {
				continue
			}
			if p.AvoidedDevicesKey() != avoidKey || p.SpecialTagsKey() != tagKey {
				continue
			}
			key := group.Compute(p, g, r.Ports).Key()
			if _, seen := buckets[key]; !seen {
				bucketOrder = append(bucketOrder, key)
			}
			buckets[key] = append(buckets[key], repeatCandidate{p: p, g: g})
		}
	}

	for _, cands := range buckets {
		sort.Slice(cands, func(i, j int) bool { return cands[i].p.ID < cands[j].p.ID })
	}
	sort.Slice(bucketOrder, func(i, j int) bool {
		bi, bj := buckets[bucketOrder[i]], buckets[bucketOrder[j]]
		if len(bi) != len(bj) {
			return len(bi) > len(bj)
		}
		return bi[0].p.ID > bj[0].p.ID
	})

	for _, key := range bucketOrder {
		cands := buckets[key]
		prods := make([]*group.Group, len(cands))
		conss := make([]*group.Group, len(cands))
		for i, c := range cands {
			prods[i] = c.p
			conss[i] = c.g
		}
		newTok, err := tryMergeRepeating(r, prods, conss)
		if err != nil {
			return nil, err
		}
		if newTok != nil {
			return newTok, nil
		}
	}
	return nil, nil
}

// tryMergeRepeating accepts equal-length producer/consumer lists (one
// producer per consumer, parallel positions). It declines (nil, nil) when
// there are fewer than two pairs, or when some producer recurs across
// pairs (a triangle shape left for mergeTriangles). It is fatal if any
// producer and consumer overlap. Otherwise each producer is merged into
// its consumer (consumer absorbs producer) and every surviving consumer is
// stamped with a fresh Repeated token, which is returned.
func tryMergeRepeating(r *group.Registry, prods, conss []*group.Group) (*group.Repeated, error) {
	if len(prods) != len(conss) {
		return nil, fatalf("tryMergeRepeating", "producer/consumer count mismatch: %d vs %d", len(prods), len(conss))
	}
	if len(prods) < 2 {
		return nil, nil
	}
	uniqueProds := make(map[string]struct{}, len(prods))
	for _, p := range prods {
		uniqueProds[p.ID] = struct{}{}
	}
	if len(uniqueProds) < len(conss) {
		return nil, nil
	}
	for i, p := range prods {
		for _, c := range conss {
			if p.ID == c.ID {
				return nil, fatalf("tryMergeRepeating", "producer %s overlaps consumer %s", p.ID, c.ID)
			}
		}
		_ = i
	}

	survivors := make(map[string]*group.Group, len(conss))
	for i, p := range prods {
		c := conss[i]
		r.FuseWith(p, c)
		survivors[c.ID] = c
	}
	t := group.NewRepeated()
	for _, c := range survivors {
		if r.DAG.HasEdge(c.ID, c.ID) {
			return nil, fatalf("tryMergeRepeating", "group %s became its own producer", c.ID)
		}
		c.RepeatTag = t
	}
	return t, nil
}
