package groupdag

// Reachable reports whether to is reachable from from by following
// successor edges, optionally ignoring one direct edge (skipFrom→skipTo)
// along the way. Passing skipFrom=="" disables the exclusion.
//
// This is the primitive behind hasCycle: "would merging this edge create a
// cycle" is answered by asking whether the producer can already reach the
// consumer through some other path, i.e. reachability ignoring the direct
// edge about to be collapsed. A naive per-call BFS is acceptable at the
// graph sizes this core targets (thousands of groups); results are never
// cached across merges, since every merge invalidates reachability.
func (d *DAG) Reachable(from, to, skipFrom, skipTo string) bool {
	if from == to {
		return true
	}
	visited := map[string]struct{}{from: {}}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range d.Successors(cur) {
			if cur == skipFrom && next == skipTo {
				continue
			}
			if next == to {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false
}

// WouldCreateCycle reports whether merging the edge producer→consumer
// (i.e. collapsing the two vertices into one) would create a cycle: true
// iff producer can already reach consumer through some path other than
// the direct producer→consumer edge, since every vertex on that path would
// end up both downstream and upstream of the merged vertex.
func (d *DAG) WouldCreateCycle(producer, consumer string) bool {
	return d.Reachable(producer, consumer, producer, consumer)
}
