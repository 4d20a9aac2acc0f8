package blocksworld

import (
	"container/heap"
	"time"
)

// Plan is the result of a successful A* search: the ordered primitive
// actions from start to goal, plus the search statistics §D of SPEC_FULL.md
// layers on top of the core contract for the CLI's status line and for
// regression-testing the heuristic.
type Plan struct {
	Actions       []ActionToken
	NodesExpanded int
	Elapsed       time.Duration
}

// searchNode is one entry in A*'s frontier: a world state reached at cost g
// with heuristic estimate h, reached via action from parent. Equality for
// the closed set and best-g map is structural (state.Key()), not pointer
// identity (§3 Search Node, §9).
type searchNode struct {
	state  *WorldState
	g, h, f int
	action ActionToken
	parent *searchNode
	seq    int // insertion order, used only to break f-score ties
}

// frontier is a min-heap on (f, seq) — insertion order breaks ties so two
// runs over the same input produce the same plan (§4.7: "Tie-breaking is
// insertion-order; reproducibility requires deterministic queue ordering on
// equal keys.").
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) {
	*f = append(*f, x.(*searchNode))
}
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// AStar is the best-first search of §4.7, driven by Heuristic and expanding
// via Successor.
type AStar struct {
	successor *Successor
	heuristic *Heuristic
}

// NewAStar binds an AStar search to a session's Successor and Heuristic.
func NewAStar(successor *Successor, heuristic *Heuristic) *AStar {
	return &AStar{successor: successor, heuristic: heuristic}
}

// Search finds a shortest action sequence from start to a state satisfying
// goal, or reports ErrNoPlan if the frontier empties or budget elapses
// first (§4.7). If goal already holds in start, it returns an empty plan
// immediately (§8 Idempotence).
func (a *AStar) Search(start *WorldState, goal DNFGoal, budget time.Duration) (*Plan, *PlanError) {
	startTime := time.Now()
	deadline := startTime.Add(budget)

	if goal.IsTrue(start) {
		return &Plan{Elapsed: time.Since(startTime)}, nil
	}

	startNode := &searchNode{state: start, g: 0, h: a.heuristic.GoalCost(goal, start)}
	startNode.f = startNode.g + startNode.h

	pq := &frontier{startNode}
	heap.Init(pq)

	seq := 1
	bestG := map[string]int{start.Key(): 0}
	visited := map[string]bool{}
	nodesExpanded := 0

	for pq.Len() > 0 {
		if time.Now().After(deadline) {
			return nil, ErrNoPlan()
		}
		cur := heap.Pop(pq).(*searchNode)

		if goal.IsTrue(cur.state) {
			return &Plan{
				Actions:       reconstructPath(cur),
				NodesExpanded: nodesExpanded,
				Elapsed:       time.Since(startTime),
			}, nil
		}

		key := cur.state.Key()
		if visited[key] {
			continue
		}
		visited[key] = true
		nodesExpanded++

		for _, edge := range a.successor.Expand(cur.state) {
			nextKey := edge.Next.Key()
			tentativeG := cur.g + 1
			if bg, ok := bestG[nextKey]; ok && bg <= tentativeG {
				continue
			}
			bestG[nextKey] = tentativeG
			h := a.heuristic.GoalCost(goal, edge.Next)
			node := &searchNode{
				state:  edge.Next,
				g:      tentativeG,
				h:      h,
				f:      tentativeG + h,
				action: edge.Action,
				parent: cur,
				seq:    seq,
			}
			seq++
			heap.Push(pq, node)
		}
	}
	return nil, ErrNoPlan()
}

// reconstructPath walks parent pointers from the goal node back to the
// start, then reverses (§9: standard came-from mapping via parent pointers,
// not a parallel edge list).
func reconstructPath(goal *searchNode) []ActionToken {
	var reversed []ActionToken
	for n := goal; n.parent != nil; n = n.parent {
		reversed = append(reversed, n.action)
	}
	actions := make([]ActionToken, len(reversed))
	for i, a := range reversed {
		actions[len(reversed)-1-i] = a
	}
	return actions
}
