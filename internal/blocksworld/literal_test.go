package blocksworld

import "testing"

func TestLiteralHoldingIsTrue(t *testing.T) {
	w := testWorld()
	w.Holding = "a"
	lit := NewHoldingLiteral("a")
	if !lit.IsTrue(w) {
		t.Fatalf("holding(a).IsTrue() = false, want true")
	}
	if NewHoldingLiteral("e").IsTrue(w) {
		t.Fatalf("holding(e).IsTrue() = true, want false")
	}
}

func TestLiteralOnTopFloor(t *testing.T) {
	w := testWorld()
	lit := NewBinaryLiteral(RelationOnTop, "a", Floor)
	if !lit.IsTrue(w) {
		t.Fatalf("ontop(a, floor).IsTrue() = false, want true")
	}
}

func TestLiteralOnTopStacked(t *testing.T) {
	w := &WorldState{
		Stacks:  []Stack{{"e", "a"}},
		Objects: Objects{"a": {Form: FormBall}, "e": {Form: FormBox}},
	}
	lit := NewBinaryLiteral(RelationOnTop, "a", "e")
	if !lit.IsTrue(w) {
		t.Fatalf("ontop(a, e).IsTrue() = false, want true")
	}
}

func TestLiteralAboveUnder(t *testing.T) {
	w := &WorldState{
		Stacks:  []Stack{{"e", "a"}},
		Objects: Objects{"a": {Form: FormBall}, "e": {Form: FormBox}},
	}
	if !NewBinaryLiteral(RelationAbove, "a", "e").IsTrue(w) {
		t.Fatalf("above(a, e).IsTrue() = false, want true")
	}
	if !NewBinaryLiteral(RelationUnder, "e", "a").IsTrue(w) {
		t.Fatalf("under(e, a).IsTrue() = false, want true")
	}
}

func TestLiteralLeftOfRightOfBeside(t *testing.T) {
	w := testWorld() // e at col0, a at col2
	if !NewBinaryLiteral(RelationLeftOf, "e", "a").IsTrue(w) {
		t.Fatalf("leftof(e, a).IsTrue() = false, want true")
	}
	if !NewBinaryLiteral(RelationRightOf, "a", "e").IsTrue(w) {
		t.Fatalf("rightof(a, e).IsTrue() = false, want true")
	}
	if NewBinaryLiteral(RelationBeside, "a", "e").IsTrue(w) {
		t.Fatalf("beside(a, e).IsTrue() = true, want false (two columns apart)")
	}
}

func TestLiteralBesideAdjacent(t *testing.T) {
	w := &WorldState{
		Stacks:  []Stack{{}, {"a"}, {"e"}},
		Objects: Objects{"a": {Form: FormBall}, "e": {Form: FormBox}},
	}
	if !NewBinaryLiteral(RelationBeside, "a", "e").IsTrue(w) {
		t.Fatalf("beside(a, e).IsTrue() = false, want true for adjacent columns")
	}
}

func TestConjunctionIsTrue(t *testing.T) {
	w := testWorld()
	conj := Conjunction{NewBinaryLiteral(RelationOnTop, "a", Floor), NewBinaryLiteral(RelationOnTop, "e", Floor)}
	if !conj.IsTrue(w) {
		t.Fatalf("Conjunction.IsTrue() = false, want true")
	}
	conj = append(conj, NewHoldingLiteral("a"))
	if conj.IsTrue(w) {
		t.Fatalf("Conjunction.IsTrue() = true after adding a false literal, want false")
	}
}

func TestDNFGoalIsTrueAndEmpty(t *testing.T) {
	var empty DNFGoal
	if !empty.Empty() {
		t.Fatalf("Empty() = false for nil goal, want true")
	}
	w := testWorld()
	goal := DNFGoal{
		Conjunction{NewHoldingLiteral("a")},
		Conjunction{NewBinaryLiteral(RelationOnTop, "a", Floor)},
	}
	if !goal.IsTrue(w) {
		t.Fatalf("DNFGoal.IsTrue() = false, want true (second disjunct holds)")
	}
}
