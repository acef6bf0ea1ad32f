package opgraph

// SimpleNode is an in-memory Node implementation for tests, fixtures, and
// the cmd/partition CLI's JSON-fixture loader. Real deployments receive
// Node values from the source-model loader collaborator instead.
//
// Grounded in lvlath/builder's functional-options pattern: a graph is
// assembled incrementally via Builder.AddNode/Builder.Connect rather than
// constructed as a single literal, which keeps fixtures readable and lets
// callers wire producer/consumer links before Outputs() can be computed.
type SimpleNode struct {
	id   string
	desc string
	meta map[string]interface{}
	desc2 MetaDescriptor

	inputs  []Input
	outputs [][]Consumer // one slice per output port index
}

var _ Node = (*SimpleNode)(nil)

func (n *SimpleNode) ID() string                    { return n.id }
func (n *SimpleNode) Description() string           { return n.desc }
func (n *SimpleNode) Inputs() []Input               { return n.inputs }
func (n *SimpleNode) Outputs() [][]Consumer          { return n.outputs }
func (n *SimpleNode) MetaDescriptor() MetaDescriptor { return n.desc2 }
func (n *SimpleNode) Meta() map[string]interface{}   { return n.meta }

// Builder assembles a small fixture graph of SimpleNodes for tests and the
// CLI. It is not safe for concurrent use; build a graph, then hand its
// topologically-sorted node list to opgraph.Build and passes.Build.
type Builder struct {
	nodes map[string]*SimpleNode
	order []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*SimpleNode)}
}

// AddNode registers a new node with the given ID, operation description,
// and meta-descriptor (element types/shapes of its ports). kind, if
// non-empty, is one of KindConstant/KindParameter/KindOutput and marks the
// node non-operational for opgraph.IsOp; an empty kind means operational.
func (b *Builder) AddNode(id, desc string, md MetaDescriptor, kind string) *SimpleNode {
	n := &SimpleNode{
		id:    id,
		desc:  desc,
		desc2: md,
		meta:  make(map[string]interface{}),
	}
	if kind != "" {
		n.meta["kind"] = kind
	}
	n.outputs = make([][]Consumer, len(md.Outputs))
	b.nodes[id] = n
	b.order = append(b.order, id)
	return n
}

// Connect wires srcID's output port srcPort as dstID's input port dstPort.
// Nodes must already have been added via AddNode, in an order such that
// Connect is called only after both endpoints exist.
func (b *Builder) Connect(srcID string, srcPort int, dstID string, dstPort int) {
	src := b.nodes[srcID]
	dst := b.nodes[dstID]
	if src == nil || dst == nil {
		return
	}
	for len(dst.inputs) <= dstPort {
		dst.inputs = append(dst.inputs, Input{})
	}
	dst.inputs[dstPort] = Input{Producer: src, SourcePort: srcPort}
	for len(src.outputs) <= srcPort {
		src.outputs = append(src.outputs, nil)
	}
	src.outputs[srcPort] = append(src.outputs[srcPort], Consumer{Node: dst, DestPort: dstPort})
}

// Nodes returns the nodes in the order they were added via AddNode. The
// Builder is used only for fixtures whose construction order is already
// topological (producers added before consumers), so this order doubles
// as a valid topological order.
func (b *Builder) Nodes() []Node {
	out := make([]Node, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.nodes[id])
	}
	return out
}
