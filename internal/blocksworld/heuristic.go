package blocksworld

// Heuristic is the admissible estimator of §4.6: h(literal, state) never
// overestimates the true number of primitive actions needed to make the
// literal true, so A* driven by it returns an optimal plan (§4.7, §8).
type Heuristic struct{}

// NewHeuristic constructs a Heuristic. It carries no state of its own — all
// inputs are the literal and the world state passed to LiteralCost.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// LiteralCost computes h(literal, state) per the per-relation table of
// §4.6. A literal already true in state costs 0, overriding every formula
// below (§4.6, §8).
func (h *Heuristic) LiteralCost(lit Literal, state *WorldState) int {
	if lit.IsTrue(state) {
		return 0
	}
	if lit.Relation == RelationHolding {
		x := lit.Args[0]
		return h.expose(x, state) + h.moveTo(x, state) + 1
	}
	x, y := lit.Args[0], lit.Args[1]
	switch lit.Relation {
	case RelationLeftOf, RelationRightOf:
		return h.stepsBetween(x, y, state) + 1 + min(
			h.expose(x, state)+h.moveTo(x, state),
			h.expose(y, state)+h.moveTo(y, state))
	case RelationInside, RelationOnTop:
		sameCol := h.colOf(x, state) == h.colOf(y, state)
		var exposeSum int
		if sameCol {
			exposeSum = max(h.expose(x, state), h.expose(y, state))
		} else {
			exposeSum = h.expose(x, state) + h.expose(y, state)
		}
		return min(h.moveTo(x, state), h.moveTo(y, state)) + h.stepsBetween(x, y, state) + 1 + exposeSum
	case RelationBeside:
		return min(h.moveTo(x, state)+h.expose(x, state), h.moveTo(y, state)+h.expose(y, state)) +
			h.stepsBetween(x, y, state) - 1
	case RelationUnder:
		return h.moveTo(y, state) + h.expose(y, state) + h.stepsBetween(y, x, state)
	case RelationAbove:
		return h.moveTo(x, state) + h.expose(x, state) + h.stepsBetween(x, y, state)
	default:
		return 0
	}
}

// ConjunctionCost is the max over the conjunction's literals — admissible
// because each literal's cost lower-bounds the moves needed to satisfy all
// of them simultaneously (§4.6).
func (h *Heuristic) ConjunctionCost(conj Conjunction, state *WorldState) int {
	best := 0
	for _, lit := range conj {
		if c := h.LiteralCost(lit, state); c > best {
			best = c
		}
	}
	return best
}

// GoalCost is the min over the goal's conjunctions — the planner only needs
// to satisfy the cheapest disjunct (§4.6).
func (h *Heuristic) GoalCost(goal DNFGoal, state *WorldState) int {
	if len(goal) == 0 {
		return 0
	}
	best := -1
	for _, conj := range goal {
		c := h.ConjunctionCost(conj, state)
		if best == -1 || c < best {
			best = c
		}
	}
	return best
}

// moveTo is |arm - col(x)|, 0 if x is currently held.
func (h *Heuristic) moveTo(x Label, state *WorldState) int {
	if x == state.Holding {
		return 0
	}
	return abs(state.Arm - h.colOf(x, state))
}

// expose is the number of objects above x in its column, times 4, minus 1
// (the last trip need not return), or 0 if nothing is above; if the arm is
// currently holding something, add 1 for setting it down first. For
// x == Floor, the "column" is the best-scoring column per floorCol, and the
// resolved form (§9 Open Questions) is 4*height - (holding ? 0 : 1),
// clamped at 0 rather than the generic count-based formula, since an empty
// floor column costs nothing to expose regardless of what the arm holds.
func (h *Heuristic) expose(x Label, state *WorldState) int {
	holding := state.Holding != ""
	if x == Floor {
		col := h.floorCol(state)
		length := len(state.Stacks[col])
		sub := 1
		if holding {
			sub = 0
		}
		raw := 4*length - sub
		if raw < 0 {
			raw = 0
		}
		return raw
	}
	col, height, ok := state.ColumnOf(x)
	if !ok {
		return 0
	}
	above := len(state.Stacks[col]) - height - 1
	base := 0
	if above > 0 {
		base = above*4 - 1
	}
	if holding {
		base++
	}
	return base
}

// floorCol is the easiest column to clear to the floor: the argmin over
// columns i of |arm - i| + 4*height(i) - 1.
func (h *Heuristic) floorCol(state *WorldState) int {
	best := 0
	bestScore := 0
	for i := range state.Stacks {
		score := abs(state.Arm-i) + 4*len(state.Stacks[i]) - 1
		if i == 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// colOf resolves a label's column, substituting floorCol for Floor.
func (h *Heuristic) colOf(label Label, state *WorldState) int {
	if label == Floor {
		return h.floorCol(state)
	}
	col, _, ok := state.ColumnOf(label)
	if !ok {
		return state.Arm
	}
	return col
}

// stepsBetween is |col(x) - col(y)|, using floorCol for either argument that
// is Floor.
func (h *Heuristic) stepsBetween(x, y Label, state *WorldState) int {
	return abs(h.colOf(x, state) - h.colOf(y, state))
}

// abs is a small local helper; min/max come from the language builtins
// (Go 1.21+).
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
