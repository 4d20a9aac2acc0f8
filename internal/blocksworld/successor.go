package blocksworld

// ActionToken is one of the four primitive arm actions of §6's action token
// alphabet.
type ActionToken byte

const (
	ActionLeft  ActionToken = 'l'
	ActionRight ActionToken = 'r'
	ActionPick  ActionToken = 'p'
	ActionDrop  ActionToken = 'd'
)

func (a ActionToken) String() string {
	return string(rune(a))
}

// Successor enumerates the legal outgoing edges of a world state (§4.5) and
// produces the resulting clones.
type Successor struct {
	oracle *Oracle
}

// NewSuccessor binds a Successor to a session's Physics Oracle.
func NewSuccessor(oracle *Oracle) *Successor {
	return &Successor{oracle: oracle}
}

// Edge is one outgoing edge from a search node: the action taken and the
// resulting world state, always at cost 1.
type Edge struct {
	Action ActionToken
	Next   *WorldState
}

// Expand returns every legal edge out of state, in the fixed order l, r, p,
// d — search reproducibility (§4.7) depends on this order being stable when
// two edges tie on f-score.
func (s *Successor) Expand(state *WorldState) []Edge {
	var edges []Edge

	if state.Arm > 0 {
		next := state.Clone()
		next.Arm--
		edges = append(edges, Edge{Action: ActionLeft, Next: next})
	}
	if state.Arm < state.NumColumns()-1 {
		next := state.Clone()
		next.Arm++
		edges = append(edges, Edge{Action: ActionRight, Next: next})
	}
	if state.Holding == "" {
		if top, ok := state.Stacks[state.Arm].Top(); ok {
			next := state.Clone()
			next.Stacks[next.Arm] = next.Stacks[next.Arm][:len(next.Stacks[next.Arm])-1]
			next.Holding = top
			edges = append(edges, Edge{Action: ActionPick, Next: next})
		}
	}
	if state.Holding != "" && s.dropPermitted(state) {
		next := state.Clone()
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
		edges = append(edges, Edge{Action: ActionDrop, Next: next})
	}
	return edges
}

// dropPermitted reports whether dropping the held object onto the arm's
// current column is physically legal: either resting on the column's top
// object (or the floor, if the column is empty) via "ontop", or nesting
// inside the top object via "inside".
func (s *Successor) dropPermitted(state *WorldState) bool {
	top, ok := state.Stacks[state.Arm].Top()
	target := Floor
	if ok {
		target = top
	}
	if s.oracle.Permits(state.Holding, target, RelationOnTop, state) {
		return true
	}
	if ok && s.oracle.Permits(state.Holding, target, RelationInside, state) {
		return true
	}
	return false
}
