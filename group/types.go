package group

import (
	"sort"

	"github.com/google/uuid"

	"github.com/katalvlaran/partition-core/opgraph"
)

// Repeated is a shared identity token linking Groups that are instances of
// one repeat class. Distinct tokens compare unequal by pointer identity;
// multiple Groups reference the same class by sharing a *Repeated.
type Repeated struct {
	// ID is a stable, loggable identity for this token, rendered wherever
	// a human-readable tag for the repeat class is needed.
	ID uuid.UUID
	// OpenForMerge is true until a cohort's growth attempt fails
	// completely, at which point it is flipped to
	// false and never reconsidered.
	OpenForMerge bool
	// Archetype maps an archetype key (meta-descriptor + reptrack) to the
	// friendly names of the OpNodes sharing it, one name per repeat
	// instance. Populated only at cleanup.
	Archetype map[string][]string
}

// NewRepeated allocates a fresh, open token.
func NewRepeated() *Repeated {
	return &Repeated{ID: uuid.New(), OpenForMerge: true, Archetype: make(map[string][]string)}
}

// Exclude flips OpenForMerge to false; a cohort that has exhausted upward
// growth never grows again.
func (t *Repeated) Exclude() { t.OpenForMerge = false }

// Group owns a set of OpNodes that will become one subgraph.
type Group struct {
	// ID is assigned monotonically at build time and preserved across
	// merges by convention: the surviving Group keeps its id. Used only
	// for deterministic tiebreaking.
	ID string

	// initialNodeID is the single OpNode this Group wrapped at build time,
	// before any merge. It never changes, so annotation and
	// repeat-identity passes can always ask "what did this Group
	// originally wrap" even after it has absorbed others.
	initialNodeID string
	// initialMeta is initialNodeID's meta-descriptor, cached at build time.
	initialMeta opgraph.MetaDescriptor
	// initialDesc is initialNodeID's operation-kind description string,
	// cached at build time — what earlyAvoids matches an AVOID OP directive
	// against.
	initialDesc string

	// Content is the non-empty set of OpNodes this Group currently owns,
	// keyed by OpNode ID.
	Content map[string]opgraph.Node

	// Frozen groups refuse all further merges.
	Frozen bool
	// NoFold marks that this group's repeat class, if any, must not be
	// folded into a shared function.
	NoFold bool

	// AvoidedDevices is the unordered set of device identifiers this
	// Group must not be placed on.
	AvoidedDevices map[string]struct{}
	// IsolatedTag is the user-isolation directive tag that produced this
	// Group, if any.
	IsolatedTag string
	// SpecialTags is a small ordered, deduplicated set of additional
	// opaque tags influencing repeat-equivalence.
	SpecialTags []string

	// RepeatTag is the shared Repeated token this Group belongs to, or nil.
	RepeatTag *Repeated

	// Reptrack records, for each OpNode ID in Content, an archetype path —
	// a breadcrumb of how this node was fused in — used at cleanup to
	// match layers across repeat instances.
	Reptrack map[string][]string
}

// New wraps a single OpNode in a fresh, singleton Group.
func New(id string, n opgraph.Node) *Group {
	return &Group{
		ID:             id,
		initialNodeID:  n.ID(),
		initialMeta:    n.MetaDescriptor(),
		initialDesc:    n.Description(),
		Content:        map[string]opgraph.Node{n.ID(): n},
		AvoidedDevices: make(map[string]struct{}),
		Reptrack:       map[string][]string{n.ID(): {"build"}},
	}
}

// Size returns the number of OpNodes in Content.
func (g *Group) Size() int { return len(g.Content) }

// InitialNodeID returns the OpNode ID this Group was built from.
func (g *Group) InitialNodeID() string { return g.initialNodeID }

// InitialMetaDescriptor returns the meta-descriptor of InitialNodeID.
func (g *Group) InitialMetaDescriptor() opgraph.MetaDescriptor { return g.initialMeta }

// InitialDescription returns the operation-kind description of
// InitialNodeID, as it was at build time.
func (g *Group) InitialDescription() string { return g.initialDesc }

// ContentIDs returns the OpNode IDs in Content, sorted ascending.
func (g *Group) ContentIDs() []string {
	ids := make([]string, 0, len(g.Content))
	for id := range g.Content {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MetaMultisetKey renders the multiset of meta-descriptors across Content
// as a canonical, comparable string — part of the compatibility check
// between Groups sharing a repeat token.
func (g *Group) MetaMultisetKey() string {
	keys := make([]string, 0, len(g.Content))
	for _, n := range g.Content {
		keys = append(keys, n.MetaDescriptor().Key())
	}
	sort.Strings(keys)
	var out string
	for i, k := range keys {
		if i > 0 {
			out += "|"
		}
		out += k
	}
	return out
}

// AvoidedDevicesKey renders AvoidedDevices as a canonical, comparable
// string, sorted.
func (g *Group) AvoidedDevicesKey() string {
	ds := make([]string, 0, len(g.AvoidedDevices))
	for d := range g.AvoidedDevices {
		ds = append(ds, d)
	}
	sort.Strings(ds)
	return joinSorted(ds)
}

// SpecialTagsKey renders SpecialTags as a canonical, comparable string.
func (g *Group) SpecialTagsKey() string {
	ds := append([]string(nil), g.SpecialTags...)
	sort.Strings(ds)
	return joinSorted(ds)
}

// AddSpecialTag inserts tag into SpecialTags if absent, keeping the set
// sorted for deterministic iteration.
func (g *Group) AddSpecialTag(tag string) {
	for _, t := range g.SpecialTags {
		if t == tag {
			return
		}
	}
	g.SpecialTags = append(g.SpecialTags, tag)
	sort.Strings(g.SpecialTags)
}

// ReptrackOf returns the archetype path of an OpNode currently in Content.
func (g *Group) ReptrackOf(opID string) []string { return g.Reptrack[opID] }

func joinSorted(ss []string) string {
	var out string
	for i, s := range ss {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

// CompatibleWith reports whether g and other could share a repeat token:
// same AvoidedDevices and same SpecialTags, checked before a candidate
// merge is even considered.
func (g *Group) CompatibleWith(other *Group) bool {
	return g.AvoidedDevicesKey() == other.AvoidedDevicesKey() && g.SpecialTagsKey() == other.SpecialTagsKey()
}
