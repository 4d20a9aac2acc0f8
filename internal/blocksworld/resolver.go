package blocksworld

// Resolver is the Reference Resolver of §4.2: it turns a (possibly nested)
// Object parse node into the set of labels matching it in a world state.
type Resolver struct {
	state *WorldState
}

// NewResolver binds a Resolver to one world state snapshot.
func NewResolver(state *WorldState) *Resolver {
	return &Resolver{state: state}
}

// Resolve returns the subset of candidates matching obj. candidates is
// typically every label in play plus the literal Floor. Result-set order is
// irrelevant (§8: resolver commutativity) — callers must not depend on it.
func (r *Resolver) Resolve(candidates []Label, obj *Object) ([]Label, *PlanError) {
	if obj == nil {
		return candidates, nil
	}
	switch obj.Kind {
	case ObjectLeaf:
		return r.resolveLeaf(candidates, obj), nil
	case ObjectRelative:
		return r.resolveRelative(candidates, obj)
	default:
		return nil, ErrResolutionEmpty(describeObject(obj))
	}
}

func (r *Resolver) resolveLeaf(candidates []Label, obj *Object) []Label {
	out := make([]Label, 0, len(candidates))
	for _, c := range candidates {
		def, ok := r.state.Objects.Lookup(c)
		if !ok {
			continue
		}
		if c == Floor && obj.Form != FormFloor {
			continue
		}
		if obj.Form != FormAny && obj.Form != "" && obj.Form != def.Form {
			continue
		}
		if obj.Size != "" && obj.Size != SizeUnspecified && obj.Size != def.Size {
			continue
		}
		if obj.Color != "" && obj.Color != ColorUnspecified && obj.Color != def.Color {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *Resolver) resolveRelative(candidates []Label, obj *Object) ([]Label, *PlanError) {
	innerCandidates, err := r.Resolve(candidates, obj.Inner)
	if err != nil {
		return nil, err
	}
	if len(innerCandidates) == 0 {
		return nil, ErrResolutionEmpty(describeObject(obj.Inner))
	}

	clause := obj.Clause
	referentCandidates, err := r.Resolve(candidates, clause.Entity.Object)
	if err != nil {
		return nil, err
	}
	if len(referentCandidates) == 0 {
		return nil, ErrResolutionEmpty(describeObject(clause.Entity.Object))
	}
	referentSet := toSet(referentCandidates)

	out := make([]Label, 0, len(innerCandidates))
	for _, c := range innerCandidates {
		neighborhood, hasExclusion, exclusion := r.neighborhoodAndExclusion(c, clause.Relation)
		if !anyIn(neighborhood, referentSet, clause.Relation, c, r.state) {
			continue
		}
		if clause.Entity.Quantifier == QuantifierAll && hasExclusion {
			if !allIn(exclusion, referentSet) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// neighborhoodAndExclusion computes, for candidate c under relation, the set
// of labels that could satisfy the relation (the "neighborhood") and — for
// the relations §4.2 defines one for — the exclusion region used by the
// "all" quantifier's stricter check.
func (r *Resolver) neighborhoodAndExclusion(c Label, relation Relation) (neighborhood []Label, hasExclusion bool, exclusion []Label) {
	col, height, ok := r.state.ColumnOf(c)
	if !ok {
		// c is held or is Floor; only "ontop"/"inside" neighborhoods make
		// sense for Floor (height 0 semantics), handled by anyIn below.
		return nil, false, nil
	}
	switch relation {
	case RelationLeftOf:
		for cc := col + 1; cc < len(r.state.Stacks); cc++ {
			neighborhood = append(neighborhood, r.state.Stacks[cc]...)
		}
		for cc := 0; cc <= col; cc++ {
			exclusion = append(exclusion, r.state.Stacks[cc]...)
		}
		return neighborhood, true, exclusion
	case RelationRightOf:
		for cc := 0; cc < col; cc++ {
			neighborhood = append(neighborhood, r.state.Stacks[cc]...)
		}
		for cc := col; cc < len(r.state.Stacks); cc++ {
			exclusion = append(exclusion, r.state.Stacks[cc]...)
		}
		return neighborhood, true, exclusion
	case RelationBeside:
		if col-1 >= 0 {
			neighborhood = append(neighborhood, r.state.Stacks[col-1]...)
		}
		if col+1 < len(r.state.Stacks) {
			neighborhood = append(neighborhood, r.state.Stacks[col+1]...)
		}
		return neighborhood, false, nil
	case RelationAbove:
		stack := r.state.Stacks[col]
		for h := height + 1; h < len(stack); h++ {
			neighborhood = append(neighborhood, stack[h])
		}
		for h := 0; h <= height; h++ {
			exclusion = append(exclusion, stack[h])
		}
		return neighborhood, true, exclusion
	case RelationUnder:
		stack := r.state.Stacks[col]
		for h := 0; h < height; h++ {
			neighborhood = append(neighborhood, stack[h])
		}
		for h := height; h < len(stack); h++ {
			exclusion = append(exclusion, stack[h])
		}
		return neighborhood, true, exclusion
	case RelationInside:
		if height > 0 {
			below := r.state.Stacks[col][height-1]
			if def, ok := r.state.Objects.Lookup(below); ok && def.Form == FormBox {
				neighborhood = append(neighborhood, below)
			}
		}
		return neighborhood, false, nil
	case RelationOnTop:
		if height > 0 {
			neighborhood = append(neighborhood, r.state.Stacks[col][height-1])
		}
		return neighborhood, false, nil
	default:
		return nil, false, nil
	}
}

// anyIn reports whether any label of neighborhood is in referentSet. For
// "ontop" it additionally matches the Floor sentinel when c sits at height
// 0 and Floor itself is one of the referent candidates.
func anyIn(neighborhood []Label, referentSet map[Label]struct{}, relation Relation, c Label, state *WorldState) bool {
	for _, n := range neighborhood {
		if _, ok := referentSet[n]; ok {
			return true
		}
	}
	if relation == RelationOnTop {
		if _, ok := referentSet[Floor]; ok {
			_, height, ok2 := state.ColumnOf(c)
			if ok2 && height == 0 {
				return true
			}
		}
	}
	return false
}

func allIn(labels []Label, set map[Label]struct{}) bool {
	for _, l := range labels {
		if _, ok := set[l]; !ok {
			return false
		}
	}
	return true
}

func toSet(labels []Label) map[Label]struct{} {
	set := make(map[Label]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
