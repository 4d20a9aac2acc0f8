package blocksworld

import "fmt"

// Literal is the tuple §3 defines: a polarity (always true in this system —
// the Goal Compiler never emits negated literals), a relation name, and its
// arguments. Unary "holding" carries one label; every other relation
// carries two.
type Literal struct {
	Polarity bool
	Relation Relation
	Args     []Label
}

// NewBinaryLiteral builds a two-argument literal (m, r) with positive
// polarity, the only kind the Goal Compiler ever produces for relations
// other than holding.
func NewBinaryLiteral(relation Relation, m, r Label) Literal {
	return Literal{Polarity: true, Relation: relation, Args: []Label{m, r}}
}

// NewHoldingLiteral builds the unary holding(m) literal.
func NewHoldingLiteral(m Label) Literal {
	return Literal{Polarity: true, Relation: RelationHolding, Args: []Label{m}}
}

func (l Literal) String() string {
	return fmt.Sprintf("%s(%v)", l.Relation, l.Args)
}

// IsTrue evaluates the literal against a concrete world state.
func (l Literal) IsTrue(state *WorldState) bool {
	if l.Relation == RelationHolding {
		return state.Holding == l.Args[0]
	}
	m, r := l.Args[0], l.Args[1]
	switch l.Relation {
	case RelationOnTop:
		return isOnTop(m, r, state)
	case RelationInside:
		// Containment is modeled as ontop-permissibility per §3's invariant
		// note; truth of "inside" at a given state is the same structural
		// check as "ontop" (m directly above r in the same column).
		return isOnTop(m, r, state)
	case RelationAbove:
		cm, hm, okm := state.ColumnOf(m)
		cr, hr, okr := state.ColumnOf(r)
		if !okm || !okr {
			return false
		}
		return cm == cr && hm > hr
	case RelationUnder:
		cm, hm, okm := state.ColumnOf(m)
		cr, hr, okr := state.ColumnOf(r)
		if !okm || !okr {
			return false
		}
		return cm == cr && hm < hr
	case RelationLeftOf:
		cm, col := columnOfOrFloor(m, state)
		cr, colR := columnOfOrFloor(r, state)
		if !col || !colR {
			return false
		}
		return cm < cr
	case RelationRightOf:
		cm, col := columnOfOrFloor(m, state)
		cr, colR := columnOfOrFloor(r, state)
		if !col || !colR {
			return false
		}
		return cm > cr
	case RelationBeside:
		cm, col := columnOfOrFloor(m, state)
		cr, colR := columnOfOrFloor(r, state)
		if !col || !colR {
			return false
		}
		d := cm - cr
		return d == 1 || d == -1
	default:
		return false
	}
}

// isOnTop reports whether m sits directly atop r: either r is the label
// immediately below m in a stack, or r is Floor and m is at height 0.
func isOnTop(m, r Label, state *WorldState) bool {
	cm, hm, okm := state.ColumnOf(m)
	if !okm {
		return false
	}
	if r == Floor {
		return hm == 0
	}
	cr, hr, okr := state.ColumnOf(r)
	if !okr {
		return false
	}
	return cm == cr && hm == hr+1
}

// columnOfOrFloor resolves a label's column, treating Floor as "every
// column" is wrong for leftof/rightof/beside — those relations are
// undefined against the Floor sentinel in practice, since Floor has no
// single column. Non-floor labels resolve normally.
func columnOfOrFloor(label Label, state *WorldState) (int, bool) {
	if label == Floor {
		return 0, false
	}
	c, _, ok := state.ColumnOf(label)
	return c, ok
}

// Conjunction is a conjunction of literals: all must hold simultaneously.
type Conjunction []Literal

// IsTrue reports whether every literal in the conjunction holds.
func (c Conjunction) IsTrue(state *WorldState) bool {
	for _, lit := range c {
		if !lit.IsTrue(state) {
			return false
		}
	}
	return true
}

// DNFGoal is a disjunction of conjunctions: the goal is satisfied when any
// one conjunction is entirely true. A single empty conjunction represents
// "universally true"; an empty disjunction is never constructed by the Goal
// Compiler (§3: not representable — empty output raises an error instead).
type DNFGoal []Conjunction

// IsTrue reports whether the goal already holds in state.
func (g DNFGoal) IsTrue(state *WorldState) bool {
	for _, conj := range g {
		if conj.IsTrue(state) {
			return true
		}
	}
	return false
}

// Empty reports whether the goal has no disjuncts at all — the Goal
// Compiler's "I cannot do that." case (§4.4).
func (g DNFGoal) Empty() bool {
	return len(g) == 0
}
