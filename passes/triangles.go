package passes

import (
	"sort"

	"github.com/katalvlaran/partition-core/group"
)

// triangleBucket accumulates, for one Meta-Interconnect key, every apex
// Group paired with the base Groups it feeds under that MIC.
type triangleBucket struct {
	apexOrder   []*group.Group
	basesByApex map[string][]*group.Group
}

// MergeTriangles runs once, after mergeUniques has reached fixed point. It
// handles the "one repeat-instance producer feeds several repeat-instance
// consumers" shape that tryMergeRepeating declines: for each not-yet-
// handled repeat token, it buckets candidate apex→base edges by MIC and
// calls tryMergeTriangles per bucket.
func MergeTriangles(r *group.Registry) error {
	order, err := r.DAG.TopologicalSort()
	if err != nil {
		return err
	}
	handled := make(map[*group.Repeated]struct{})
	for _, gid := range order {
		g, ok := r.Groups[gid]
		if !ok || g.RepeatTag == nil {
			continue
		}
		t := g.RepeatTag
		if _, done := handled[t]; done {
			continue
		}
		handled[t] = struct{}{}
		cohort := group.SortedByIDDesc(cohortOf(r, t))
		if err := mergeTrianglesForCohort(r, cohort, t); err != nil {
			return err
		}
	}
	return nil
}

func mergeTrianglesForCohort(r *group.Registry, cohort []*group.Group, t *group.Repeated) error {
	buckets := make(map[string]*triangleBucket)
	bucketOrder := make([]string, 0)
	for _, g := range cohort {
		for _, c := range r.Consumers(g) {
			if c.RepeatTag == nil || c.RepeatTag == t {
				continue
			}
			if c.AvoidedDevicesKey() != g.AvoidedDevicesKey() || c.SpecialTagsKey() != g.SpecialTagsKey() {
				continue
			}
			key := group.Compute(g, c, r.Ports).Key()
			b, ok := buckets[key]
			if !ok {
				b = &triangleBucket{basesByApex: make(map[string][]*group.Group)}
				buckets[key] = b
				bucketOrder = append(bucketOrder, key)
			}
			if _, seen := b.basesByApex[g.ID]; !seen {
				b.apexOrder = append(b.apexOrder, g)
			}
			b.basesByApex[g.ID] = append(b.basesByApex[g.ID], c)
		}
	}

	sort.Slice(bucketOrder, func(i, j int) bool {
		bi, bj := buckets[bucketOrder[i]], buckets[bucketOrder[j]]
		if len(bi.apexOrder) != len(bj.apexOrder) {
			return len(bi.apexOrder) > len(bj.apexOrder)
		}
		return maxApexID(bi.apexOrder) > maxApexID(bj.apexOrder)
	})

	for _, key := range bucketOrder {
		b := buckets[key]
		apexes := group.SortedByIDDesc(b.apexOrder)
		bases := make([][]*group.Group, len(apexes))
		for i, apex := range apexes {
			bases[i] = b.basesByApex[apex.ID]
		}
		if _, err := tryMergeTriangles(r, apexes, bases); err != nil {
			return err
		}
	}
	return nil
}

func maxApexID(apexes []*group.Group) string {
	max := ""
	for _, a := range apexes {
		if a.ID > max {
			max = a.ID
		}
	}
	return max
}

// tryMergeTriangles requires every base row to have equal width and every
// base to have exactly one producer and one consumer (a leaf triangle
// edge). It distinguishes base positions by the second-order MIC of
// base→(base's sole consumer): bases sharing that key are merged into
// their recorded apex (apex absorbs base) under one fresh Repeated token
// per key. Returns the last token minted, or nil if the shape doesn't
// apply.
func tryMergeTriangles(r *group.Registry, apexes []*group.Group, bases [][]*group.Group) (*group.Repeated, error) {
	if len(apexes) != len(bases) {
		return nil, fatalf("tryMergeTriangles", "apex/base count mismatch: %d vs %d", len(apexes), len(bases))
	}
	if len(apexes) < 2 {
		return nil, nil
	}
	baseWidth := len(bases[0])
	for _, row := range bases {
		if len(row) != baseWidth {
			return nil, nil
		}
		for _, b := range row {
			if len(r.Consumers(b)) != 1 || len(r.Producers(b)) != 1 {
				return nil, nil
			}
		}
	}

	type placed struct {
		apexIdx int
		base    *group.Group
	}
	byKey := make(map[string][]placed)
	keyOrder := make([]string, 0)
	for i, row := range bases {
		for _, b := range row {
			sole := r.Consumers(b)[0]
			key := group.Compute(b, sole, r.Ports).Key()
			if _, seen := byKey[key]; !seen {
				keyOrder = append(keyOrder, key)
			}
			byKey[key] = append(byKey[key], placed{apexIdx: i, base: b})
		}
	}
	if len(byKey) != baseWidth {
		return nil, fatalf("tryMergeTriangles", "second-order MIC key count %d != base width %d", len(byKey), baseWidth)
	}
	sort.Strings(keyOrder)

	var last *group.Repeated
	for _, key := range keyOrder {
		t := group.NewRepeated()
		for _, pl := range byKey[key] {
			apex := apexes[pl.apexIdx]
			r.FuseWith(pl.base, apex)
			apex.RepeatTag = t
		}
		last = t
	}
	return last, nil
}
