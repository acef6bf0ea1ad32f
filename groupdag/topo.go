package groupdag

import "errors"

// Vertex visitation states, adapted from lvlath/dfs's three-color scheme.
const (
	white = iota
	gray
	black
)

// ErrCycleDetected indicates TopologicalSort found a cycle, which can only
// happen if a merge primitive failed to keep the Group DAG acyclic — a
// programmer error, not a condition callers should expect to hit.
var ErrCycleDetected = errors.New("groupdag: cycle detected")

// TopologicalSort computes a linear ordering of vertices such that for
// every edge u→v, u precedes v. Ties among roots are broken by iterating
// Vertices() in sorted order, and recursion explores Successors() in
// sorted order, so the result is fully deterministic for a given DAG
// state.
func (d *DAG) TopologicalSort() ([]string, error) {
	verts := d.Vertices()
	state := make(map[string]int, len(verts))
	order := make([]string, 0, len(verts))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case gray:
			return ErrCycleDetected
		case black:
			return nil
		}
		state[id] = gray
		for _, next := range d.Successors(id) {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[id] = black
		order = append(order, id)
		return nil
	}

	for _, v := range verts {
		if state[v] == white {
			if err := visit(v); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}
