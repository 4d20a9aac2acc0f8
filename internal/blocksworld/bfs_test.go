package blocksworld

// bfsShortestPlanLength is a brute-force breadth-first reference planner
// used only by tests, to check A*'s optimality against an implementation
// that can't get the distance wrong by construction: plain level-order
// expansion over Successor's edges, stopping at the first goal hit.
func bfsShortestPlanLength(start *WorldState, goal DNFGoal, successor *Successor) (int, bool) {
	if goal.IsTrue(start) {
		return 0, true
	}

	type queued struct {
		state *WorldState
		depth int
	}

	visited := map[string]bool{start.Key(): true}
	queue := []queued{{state: start, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, edge := range successor.Expand(cur.state) {
			if visited[edge.Next.Key()] {
				continue
			}
			visited[edge.Next.Key()] = true
			depth := cur.depth + 1
			if goal.IsTrue(edge.Next) {
				return depth, true
			}
			queue = append(queue, queued{state: edge.Next, depth: depth})
		}
	}
	return 0, false
}
