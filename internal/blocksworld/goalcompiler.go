package blocksworld

// GoalRequest bundles the Goal Compiler's inputs (§4.4): the movable and
// relatable label sets already produced by the Reference Resolver, their
// quantifiers, the relation, and — for the self-relation pre-filter — the
// original descriptor nodes the sets were resolved from.
type GoalRequest struct {
	Movable        []Label
	MovableDesc    *Object
	MovableQuant   Quantifier
	Relatable      []Label // empty for Relation == RelationHolding
	RelatableDesc  *Object
	RelatableQuant Quantifier
	Relation       Relation
}

// GoalCompiler builds a DNFGoal from a GoalRequest, applying the pre-filters
// and construction rules of §4.4.
type GoalCompiler struct {
	oracle *Oracle
}

// NewGoalCompiler binds a GoalCompiler to a session's Physics Oracle.
func NewGoalCompiler(oracle *Oracle) *GoalCompiler {
	return &GoalCompiler{oracle: oracle}
}

// Compile applies the §4.4 pre-filters, then constructs the DNF goal per the
// quantifier-combination table.
func (g *GoalCompiler) Compile(req GoalRequest, state *WorldState) (DNFGoal, *PlanError) {
	if err := g.preFilter(&req, state); err != nil {
		return nil, err
	}

	if req.Relation == RelationHolding {
		return g.compileHolding(req)
	}
	return g.compileBinary(req, state)
}

func (g *GoalCompiler) preFilter(req *GoalRequest, state *WorldState) *PlanError {
	if req.Relation == RelationInside {
		if form := leafForm(req.RelatableDesc); form != FormAny && form != "" && form != FormBox {
			return ErrPhysicsViolation(ViolationMessage(RelationInside))
		}
	}

	mAll := req.MovableQuant == QuantifierAll
	rAll := req.RelatableQuant == QuantifierAll
	mThe := req.MovableQuant == QuantifierThe
	rThe := req.RelatableQuant == QuantifierThe

	if (mAll && rAll) || (mAll && rThe) || (mThe && rAll) {
		if sharesAttribute(req.MovableDesc, req.RelatableDesc) {
			return ErrSelfRelation()
		}
	}

	destIsFloor := len(req.Relatable) == 1 && req.Relatable[0] == Floor
	stackingRelation := req.Relation == RelationOnTop || req.Relation == RelationInside

	if mAll && stackingRelation && !destIsFloor {
		switch {
		case rAll:
			return ErrCannotDoThat()
		case rThe:
			return ErrOnlyOneFits()
		case len(req.Relatable) < len(req.Movable):
			return ErrInsufficientTargets()
		}
	}
	if rAll && stackingRelation && len(req.Movable) < len(req.Relatable) {
		return ErrInsufficientTargets()
	}
	if mAll && req.Relation == RelationHolding && len(req.Movable) > 1 {
		return ErrOnlyHoldOne()
	}

	g.filterSelfPairs(req)
	return nil
}

// filterSelfPairs implements §4.4's last pre-filter: when the quantifiers
// differ and the movable/relatable sets overlap, a label cannot be related
// to itself, so it is dropped from whichever side is quantified "any" (when
// neither side is "any", from the side that is not "all"). Equal quantifiers,
// any/any included, leave both sides untouched. If that side empties out, the
// caller's subsequent
// construction step naturally yields an empty goal, which Compile reports
// as ErrCannotDoThat via the empty-DNF check.
func (g *GoalCompiler) filterSelfPairs(req *GoalRequest) {
	if req.MovableQuant == req.RelatableQuant {
		return
	}
	overlap := false
	relSet := toSet(req.Relatable)
	for _, m := range req.Movable {
		if _, ok := relSet[m]; ok {
			overlap = true
			break
		}
	}
	if !overlap {
		return
	}
	anySideIsMovable := req.MovableQuant == QuantifierAny || (req.MovableQuant != QuantifierAll && req.RelatableQuant == QuantifierAll)
	if anySideIsMovable {
		req.Movable = subtractOverlap(req.Movable, relSet)
	} else {
		movSet := toSet(req.Movable)
		req.Relatable = subtractOverlap(req.Relatable, movSet)
	}
}

func subtractOverlap(labels []Label, other map[Label]struct{}) []Label {
	out := make([]Label, 0, len(labels))
	for _, l := range labels {
		if _, ok := other[l]; !ok {
			out = append(out, l)
		}
	}
	return out
}

func (g *GoalCompiler) compileHolding(req GoalRequest) (DNFGoal, *PlanError) {
	if req.MovableQuant == QuantifierAll {
		if len(req.Movable) == 0 {
			return nil, ErrCannotDoThat()
		}
		return DNFGoal{Conjunction{NewHoldingLiteral(req.Movable[0])}}, nil
	}
	if len(req.Movable) == 0 {
		return nil, ErrCannotDoThat()
	}
	goal := make(DNFGoal, 0, len(req.Movable))
	for _, m := range req.Movable {
		goal = append(goal, Conjunction{NewHoldingLiteral(m)})
	}
	return goal, nil
}

func (g *GoalCompiler) compileBinary(req GoalRequest, state *WorldState) (DNFGoal, *PlanError) {
	mAll := req.MovableQuant == QuantifierAll
	rAll := req.RelatableQuant == QuantifierAll

	switch {
	case mAll && (rAll || req.RelatableQuant == QuantifierThe):
		conj := g.allPermittedPairs(req.Movable, req.Relatable, req.Relation, state)
		if len(conj) == 0 {
			return nil, ErrCannotDoThat()
		}
		return DNFGoal{conj}, nil

	case mAll:
		// mAll && qR == any: one conjunct per movable, disjunction over
		// relatables.
		conjuncts := make([][]Literal, 0, len(req.Movable))
		for _, m := range req.Movable {
			var disjunct []Literal
			for _, r := range req.Relatable {
				if g.oracle.Permits(m, r, req.Relation, state) {
					disjunct = append(disjunct, NewBinaryLiteral(req.Relation, m, r))
				}
			}
			if len(disjunct) == 0 {
				return nil, ErrCannotDoThat()
			}
			conjuncts = append(conjuncts, disjunct)
		}
		goal := expandDNF(conjuncts, req.Relation)
		if goal.Empty() {
			return nil, ErrCannotDoThat()
		}
		return goal, nil

	case rAll:
		// dual form: one conjunct per relatable, disjunction over movables.
		conjuncts := make([][]Literal, 0, len(req.Relatable))
		for _, r := range req.Relatable {
			var disjunct []Literal
			for _, m := range req.Movable {
				if g.oracle.Permits(m, r, req.Relation, state) {
					disjunct = append(disjunct, NewBinaryLiteral(req.Relation, m, r))
				}
			}
			if len(disjunct) == 0 {
				return nil, ErrCannotDoThat()
			}
			conjuncts = append(conjuncts, disjunct)
		}
		goal := expandDNF(conjuncts, req.Relation)
		if goal.Empty() {
			return nil, ErrCannotDoThat()
		}
		return goal, nil

	default:
		// any/any, the/any, any/the, the/the: flat disjunction of singleton
		// conjunctions.
		var goal DNFGoal
		for _, m := range req.Movable {
			for _, r := range req.Relatable {
				if g.oracle.Permits(m, r, req.Relation, state) {
					goal = append(goal, Conjunction{NewBinaryLiteral(req.Relation, m, r)})
				}
			}
		}
		if goal.Empty() {
			return nil, ErrCannotDoThat()
		}
		return goal, nil
	}
}

func (g *GoalCompiler) allPermittedPairs(movable, relatable []Label, relation Relation, state *WorldState) Conjunction {
	var conj Conjunction
	for _, m := range movable {
		for _, r := range relatable {
			if g.oracle.Permits(m, r, relation, state) {
				conj = append(conj, NewBinaryLiteral(relation, m, r))
			}
		}
	}
	return conj
}

// expandDNF is the depth-first enumeration of §4.4's DNF expansion
// algorithm: materialize every complete assignment across the conjuncts'
// disjuncts, discarding any assignment where two literals target the same
// second argument under ontop/inside (two different objects cannot occupy
// the same resting place at once).
func expandDNF(conjuncts [][]Literal, relation Relation) DNFGoal {
	if len(conjuncts) == 0 {
		return nil
	}
	guardTargets := relation == RelationOnTop || relation == RelationInside

	var goal DNFGoal
	var recurse func(idx int, acc Conjunction)
	recurse = func(idx int, acc Conjunction) {
		if idx == len(conjuncts) {
			cp := make(Conjunction, len(acc))
			copy(cp, acc)
			goal = append(goal, cp)
			return
		}
		for _, lit := range conjuncts[idx] {
			if guardTargets && targetCollides(acc, lit) {
				continue
			}
			recurse(idx+1, append(acc, lit))
		}
	}
	recurse(0, make(Conjunction, 0, len(conjuncts)))
	return goal
}

func targetCollides(acc Conjunction, lit Literal) bool {
	if len(lit.Args) != 2 {
		return false
	}
	target := lit.Args[1]
	for _, existing := range acc {
		if len(existing.Args) == 2 && existing.Args[1] == target {
			return true
		}
	}
	return false
}

// sharesAttribute reports whether two Object descriptors name the same
// defined form, size, or color — used by the all/all, all/the, the/all
// self-relation pre-filter (§4.4).
func sharesAttribute(a, b *Object) bool {
	la, lb := leafOf(a), leafOf(b)
	if la == nil || lb == nil {
		return false
	}
	if la.Form != "" && la.Form != FormAny && la.Form == lb.Form {
		return true
	}
	if la.Size != "" && la.Size != SizeUnspecified && la.Size == lb.Size {
		return true
	}
	if la.Color != "" && la.Color != ColorUnspecified && la.Color == lb.Color {
		return true
	}
	return false
}

func leafOf(obj *Object) *Object {
	for obj != nil && obj.Kind == ObjectRelative {
		obj = obj.Inner
	}
	return obj
}

func leafForm(obj *Object) Form {
	leaf := leafOf(obj)
	if leaf == nil {
		return FormAny
	}
	return leaf.Form
}
