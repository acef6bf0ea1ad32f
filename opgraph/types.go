package opgraph

import (
	"sort"
	"strings"
)

// PortMeta captures the element type and shape of a single input or output
// port. It is part of a Node's meta-descriptor and is the atomic unit a
// Meta-Interconnect (MIC) compares across a group boundary.
type PortMeta struct {
	// ElemType is the tensor element type, e.g. "f32", "i8", "bf16".
	ElemType string
	// Shape is the port's tensor shape; a nil/empty Shape means scalar.
	Shape []int64
}

// Key renders p as a canonical, comparable string. Two PortMeta values are
// structurally equal iff their Key()s are equal.
func (p PortMeta) Key() string {
	var b strings.Builder
	b.WriteString(p.ElemType)
	b.WriteByte('[')
	for i, d := range p.Shape {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(itoa(d))
	}
	b.WriteByte(']')
	return b.String()
}

// MetaDescriptor is the structural-equality fingerprint of one operation
// node: its kind plus the element type/shape of every input and output
// port, in port order.
type MetaDescriptor struct {
	Kind    string
	Inputs  []PortMeta
	Outputs []PortMeta
}

// Key renders d as a canonical, comparable string, used as a map key by
// identifyUniques and as one half of a repeat-class compatibility key.
func (d MetaDescriptor) Key() string {
	var b strings.Builder
	b.WriteString(d.Kind)
	b.WriteString("|in:")
	for i, p := range d.Inputs {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Key())
	}
	b.WriteString("|out:")
	for i, p := range d.Outputs {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.Key())
	}
	return b.String()
}

// Input is one ordered input port of a Node: the Node that produces the
// value, and the index of the port on that producer the value comes from.
type Input struct {
	Producer   Node
	SourcePort int
}

// Consumer is one fan-out edge leaving an output port: the consuming Node
// and the index of the port on that consumer the value lands on.
type Consumer struct {
	Node     Node
	DestPort int
}

// Node is one operation node from the source model. It is opaque identity:
// partition-core never constructs or mutates the underlying model, it only
// reads through this interface.
type Node interface {
	// ID uniquely identifies this node within its source model.
	ID() string
	// Description is the operation-kind string (e.g. "MatMul", "Convert").
	Description() string
	// Inputs lists this node's ordered input ports.
	Inputs() []Input
	// Outputs lists this node's ordered output ports, each with its fan-out
	// consumer set.
	Outputs() [][]Consumer
	// MetaDescriptor returns the structural fingerprint of this node.
	MetaDescriptor() MetaDescriptor
	// Meta is the mutable metadata channel the external pattern rewriter
	// uses to tag matched nodes (isolation tags, device-avoidance tags).
	Meta() map[string]interface{}
}

// Kind markers recognized by the isOp predicate. The source model is the
// external authority on which nodes are Constant/Parameter/Output;
// partition-core only consults it through Node.Meta()["kind"].
const (
	KindConstant  = "constant"
	KindParameter = "parameter"
	KindOutput    = "output"
	KindConvert   = "Convert"
)

// nodeKind reads the classification the source-model loader stamped onto
// n.Meta()["kind"]. An absent or unrecognized value means "operational".
func nodeKind(n Node) string {
	if v, ok := n.Meta()["kind"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsOp reports whether n is operational and should receive its own
// Group: every node that is not a constant, parameter, or output is
// operational, except a Convert with exactly one input whose sole
// producer is a constant — that Convert is itself treated as a constant
// and skipped. All other Converts (zero or ≥2 inputs) are operational.
func IsOp(n Node) bool {
	switch nodeKind(n) {
	case KindConstant, KindParameter, KindOutput:
		return false
	}
	if n.Description() == KindConvert && len(n.Inputs()) == 1 {
		producer := n.Inputs()[0].Producer
		if producer != nil && nodeKind(producer) == KindConstant {
			return false
		}
	}
	return true
}

// SortedIDs returns the IDs of nodes, sorted ascending, for deterministic
// iteration downstream.
func SortedIDs(nodes []Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID())
	}
	sort.Strings(ids)
	return ids
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
