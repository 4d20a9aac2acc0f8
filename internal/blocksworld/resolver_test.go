package blocksworld

import (
	"reflect"
	"sort"
	"testing"
)

func sortedLabels(labels []Label) []Label {
	out := append([]Label{}, labels...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestResolverResolveLeafByForm(t *testing.T) {
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	got, err := r.Resolve(universe, &Object{Kind: ObjectLeaf, Form: FormBall})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(sortedLabels(got), []Label{"a"}) {
		t.Fatalf("Resolve(ball) = %v, want [a]", got)
	}
}

func TestResolverResolveLeafFloorOnlyMatchesFloorForm(t *testing.T) {
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	got, err := r.Resolve(universe, &Object{Kind: ObjectLeaf, Form: FormAny})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	for _, l := range got {
		if l == Floor {
			t.Fatalf("Resolve(any form) incorrectly included Floor: %v", got)
		}
	}
}

func TestResolverResolveLeafBySizeAndColor(t *testing.T) {
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	got, err := r.Resolve(universe, &Object{Kind: ObjectLeaf, Form: FormAny, Size: SizeLarge, Color: "yellow"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(sortedLabels(got), []Label{"e"}) {
		t.Fatalf("Resolve(large yellow) = %v, want [e]", got)
	}
}

func TestResolverResolveRelativeOnTop(t *testing.T) {
	// a ball directly on the floor; box e also directly on the floor.
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	obj := &Object{
		Kind:  ObjectRelative,
		Inner: &Object{Kind: ObjectLeaf, Form: FormAny},
		Clause: &Location{
			Relation: RelationOnTop,
			Entity:   &Entity{Quantifier: QuantifierThe, Object: &Object{Kind: ObjectLeaf, Form: FormFloor}},
		},
	}
	got, err := r.Resolve(universe, obj)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(sortedLabels(got), []Label{"a", "e"}) {
		t.Fatalf("Resolve(object on floor) = %v, want [a e]", got)
	}
}

func TestResolverResolveEmptyInnerErrors(t *testing.T) {
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	obj := &Object{
		Kind:  ObjectRelative,
		Inner: &Object{Kind: ObjectLeaf, Form: FormPyramid},
		Clause: &Location{
			Relation: RelationOnTop,
			Entity:   &Entity{Quantifier: QuantifierThe, Object: &Object{Kind: ObjectLeaf, Form: FormFloor}},
		},
	}
	_, err := r.Resolve(universe, obj)
	if err == nil || err.Kind != KindResolutionEmpty {
		t.Fatalf("Resolve() error = %v, want KindResolutionEmpty", err)
	}
}

func TestResolverCommutativity(t *testing.T) {
	// §8: resolving the same descriptor against candidates in different
	// orders must produce the same set.
	w := testWorld()
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	reversed := make([]Label, len(universe))
	for i, l := range universe {
		reversed[len(universe)-1-i] = l
	}
	obj := &Object{Kind: ObjectLeaf, Form: FormAny, Size: SizeLarge}
	got1, err1 := r.Resolve(universe, obj)
	got2, err2 := r.Resolve(reversed, obj)
	if err1 != nil || err2 != nil {
		t.Fatalf("Resolve() errors = %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(sortedLabels(got1), sortedLabels(got2)) {
		t.Fatalf("Resolve() not commutative over candidate order: %v vs %v", got1, got2)
	}
}

func TestResolverNeighborhoodUnderExclusion(t *testing.T) {
	// Column, bottom to top: y (box), c (box, the candidate), z (ball).
	// "c is under the box" should match weakly (y is below c and is a box),
	// but "c is under all boxes" must reject c since z, which sits above c
	// in the same column, is not a box.
	w := &WorldState{
		Stacks: []Stack{{"y", "c", "z"}},
		Arm:    0,
		Objects: Objects{
			"y": {Form: FormBox},
			"c": {Form: FormBox},
			"z": {Form: FormBall},
		},
	}
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)

	weak := &Object{
		Kind:  ObjectRelative,
		Inner: &Object{Kind: ObjectLeaf, Form: FormBox},
		Clause: &Location{
			Relation: RelationUnder,
			Entity:   &Entity{Quantifier: QuantifierThe, Object: &Object{Kind: ObjectLeaf, Form: FormBox}},
		},
	}
	got, err := r.Resolve(universe, weak)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(sortedLabels(got), []Label{"c"}) {
		t.Fatalf("Resolve(under the box) = %v, want [c]", got)
	}

	strict := &Object{
		Kind:  ObjectRelative,
		Inner: &Object{Kind: ObjectLeaf, Form: FormBox},
		Clause: &Location{
			Relation: RelationUnder,
			Entity:   &Entity{Quantifier: QuantifierAll, Object: &Object{Kind: ObjectLeaf, Form: FormBox}},
		},
	}
	got, err = r.Resolve(universe, strict)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Resolve(under all boxes) = %v, want empty — z above c is not a box", got)
	}
}

func TestResolverNeighborhoodLeftOf(t *testing.T) {
	w := &WorldState{
		Stacks: []Stack{{"a"}, {}, {"b"}},
		Arm:    0,
		Objects: Objects{
			"a": {Form: FormBall},
			"b": {Form: FormBox},
		},
	}
	r := NewResolver(w)
	universe := append(w.AllLabels(), Floor)
	got, err := r.Resolve(universe, &Object{
		Kind:  ObjectRelative,
		Inner: &Object{Kind: ObjectLeaf, Form: FormAny},
		Clause: &Location{
			Relation: RelationLeftOf,
			Entity:   &Entity{Quantifier: QuantifierThe, Object: &Object{Kind: ObjectLeaf, Form: FormBox}},
		},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(sortedLabels(got), []Label{"a"}) {
		t.Fatalf("Resolve(left of box) = %v, want [a]", got)
	}
}
