package blocksworld

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testWorld builds the three-column world used throughout spec scenario 8:
// a small white ball on the floor in column 2, a large yellow box alone in
// column 0, column 1 empty, arm at column 0.
func testWorld() *WorldState {
	return &WorldState{
		Stacks: []Stack{{"e"}, {}, {"a"}},
		Arm:    0,
		Objects: Objects{
			"a": {Form: FormBall, Size: SizeSmall, Color: "white"},
			"e": {Form: FormBox, Size: SizeLarge, Color: "yellow"},
		},
	}
}

func TestObjectsLookupFloor(t *testing.T) {
	objs := Objects{}
	def, ok := objs.Lookup(Floor)
	if !ok || def != FloorDef {
		t.Fatalf("Lookup(Floor) = %v, %v; want %v, true", def, ok, FloorDef)
	}
}

func TestObjectsLookupMissing(t *testing.T) {
	objs := Objects{}
	if _, ok := objs.Lookup("nope"); ok {
		t.Fatalf("Lookup(missing) ok = true, want false")
	}
}

func TestStackTop(t *testing.T) {
	s := Stack{"a", "b"}
	top, ok := s.Top()
	if !ok || top != "b" {
		t.Fatalf("Top() = %v, %v; want b, true", top, ok)
	}
	if _, ok := (Stack{}).Top(); ok {
		t.Fatalf("Top() on empty stack ok = true, want false")
	}
}

func TestWorldStateColumnOf(t *testing.T) {
	w := testWorld()
	col, height, ok := w.ColumnOf("a")
	if !ok || col != 2 || height != 0 {
		t.Fatalf("ColumnOf(a) = %d, %d, %v; want 2, 0, true", col, height, ok)
	}
	if _, _, ok := w.ColumnOf("zzz"); ok {
		t.Fatalf("ColumnOf(unknown) ok = true, want false")
	}
}

func TestWorldStateAllLabels(t *testing.T) {
	w := testWorld()
	labels := w.AllLabels()
	if len(labels) != 2 {
		t.Fatalf("AllLabels() = %v, want 2 entries", labels)
	}
	w.Holding = "z"
	labels = w.AllLabels()
	if len(labels) != 3 {
		t.Fatalf("AllLabels() with Holding set = %v, want 3 entries", labels)
	}
}

func TestWorldStateCloneIndependence(t *testing.T) {
	w := testWorld()
	clone := w.Clone()
	clone.Stacks[0] = append(clone.Stacks[0], "new")
	if len(w.Stacks[0]) != 1 {
		t.Fatalf("mutating clone affected original stack: %v", w.Stacks[0])
	}
	clone.Arm = 2
	if w.Arm != 0 {
		t.Fatalf("mutating clone affected original arm")
	}
}

func TestWorldStateCloneDeepEqualToOriginal(t *testing.T) {
	want := testWorld()
	got := want.Clone()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}
}

func TestWorldStateKeyAndEqual(t *testing.T) {
	w1 := testWorld()
	w2 := testWorld()
	if w1.Key() != w2.Key() {
		t.Fatalf("Key() differs for structurally identical states: %q vs %q", w1.Key(), w2.Key())
	}
	if !w1.Equal(w2) {
		t.Fatalf("Equal() = false for structurally identical states")
	}
	w2.Arm = 1
	if w1.Equal(w2) {
		t.Fatalf("Equal() = true after changing arm column")
	}
}
