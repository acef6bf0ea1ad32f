package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/partition-core/opgraph"
)

// fixturePort mirrors opgraph.PortMeta in a JSON-friendly shape.
type fixturePort struct {
	ElemType string  `json:"elem_type"`
	Shape    []int64 `json:"shape"`
}

func (p fixturePort) toPortMeta() opgraph.PortMeta {
	return opgraph.PortMeta{ElemType: p.ElemType, Shape: p.Shape}
}

// fixtureNode is one entry in a graph fixture's "nodes" array. Nodes must
// be listed in topological order: a node's producers must appear before
// it, since LoadFixture returns nodes in listing order and the pipeline
// treats that order as topological.
type fixtureNode struct {
	ID      string        `json:"id"`
	Desc    string        `json:"desc"`
	Kind    string        `json:"kind"`
	Inputs  []fixturePort `json:"inputs"`
	Outputs []fixturePort `json:"outputs"`
}

// fixtureEdge wires one producer output port to one consumer input port.
type fixtureEdge struct {
	Src     string `json:"src"`
	SrcPort int    `json:"src_port"`
	Dst     string `json:"dst"`
	DstPort int    `json:"dst_port"`
}

// graphFixture is the top-level shape of a --graph JSON file.
type graphFixture struct {
	Nodes []fixtureNode `json:"nodes"`
	Edges []fixtureEdge `json:"edges"`
}

// LoadFixture reads a JSON operation-graph fixture from path and returns
// its nodes in the topological order the file lists them in.
func LoadFixture(path string) ([]opgraph.Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph fixture: %w", err)
	}

	var f graphFixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse graph fixture: %w", err)
	}

	b := opgraph.NewBuilder()
	for _, n := range f.Nodes {
		md := opgraph.MetaDescriptor{Kind: n.Desc}
		for _, p := range n.Inputs {
			md.Inputs = append(md.Inputs, p.toPortMeta())
		}
		for _, p := range n.Outputs {
			md.Outputs = append(md.Outputs, p.toPortMeta())
		}
		b.AddNode(n.ID, n.Desc, md, n.Kind)
	}
	for _, e := range f.Edges {
		b.Connect(e.Src, e.SrcPort, e.Dst, e.DstPort)
	}

	return b.Nodes(), nil
}
