// Package directive holds the user-facing configuration consumed by the
// partitioning pipeline: AVOID/ISOLATE/NOFOLD directives and the
// PassContext that carries them plus the structural thresholds
// (min_graph_size, keep_blocks, keep_block_size) and the opaque
// pmm_dims passthrough.
//
// Parsing these from a file is an external collaborator's job; this
// package only defines the shapes. cmd/partition shows one way to
// assemble a PassContext from YAML using viper, but partition-core itself
// never touches the filesystem.
package directive

// AvoidKind distinguishes the two AVOID directive forms.
type AvoidKind int

const (
	// AvoidOp matches a Group whose initial OpNode's description equals
	// Pattern exactly.
	AvoidOp AvoidKind = iota
	// AvoidPattern enqueues Pattern into the external rewriter; matched
	// nodes' hosting Groups are tagged the same as AvoidOp.
	AvoidPattern
)

// Avoid is one AVOID directive: keep whatever matches Pattern off Device.
type Avoid struct {
	Kind    AvoidKind
	Pattern string
	Device  string
}

// Isolate is one ISOLATE directive: enqueue Pattern into the external
// rewriter, and tag every Group hosting a match with Tag.
type Isolate struct {
	Pattern string
	Tag     string
}

// PassContext is the full configuration recognized by the pass pipeline.
type PassContext struct {
	// MinGraphSize is the target lower bound on Group count; structural
	// passes stop merging once reached.
	MinGraphSize int
	// KeepBlocks is the minimum cohort size to retain a repeat class that
	// has no special flags.
	KeepBlocks int
	// KeepBlockSize is the minimum per-Group content size to retain such a
	// repeat class.
	KeepBlockSize int
	// Avoids lists every AVOID directive, applied in order.
	Avoids []Avoid
	// Isolates lists every ISOLATE directive, applied in order.
	Isolates []Isolate
	// NoFolds lists isolation tags whose Groups must be marked NoFold
	// during cleanup.
	NoFolds []string
	// PMMDims is the set of tensor axes downstream parallel-matmul fusion
	// may use. partition-core stores it opaquely and never reads it.
	PMMDims map[int]struct{}
}

// Default returns a PassContext with the zero-value structural thresholds
// (MinGraphSize=0, KeepBlocks=0, KeepBlockSize=0) and no directives.
func Default() PassContext {
	return PassContext{PMMDims: make(map[int]struct{})}
}
