package blocksworld

import (
	"context"
	_ "embed"
	"fmt"

	"blocksplanner/internal/mangle"
)

//go:embed rules/physics.mg
var physicsSchema string

// MangleOracle is the declarative sibling of Oracle: the same §4.1 rulebook,
// expressed as Mangle Datalog and evaluated through internal/mangle.Engine.
// It is used once per utterance by Session.auditPhysics, which checks the
// request's first (movable, relatable) pair against it and logs any
// disagreement with Oracle — a cost the engine's parse-and-evaluate overhead
// easily absorbs. It is never called from the Goal Compiler, World Successor
// or the Heuristic; those call Oracle.Permits directly. DESIGN.md records why the two aren't unified.
type MangleOracle struct {
	engine  *mangle.Engine
	objects Objects
}

// NewMangleOracle loads the physics rulebook into a fresh Mangle engine.
func NewMangleOracle(objects Objects) (*MangleOracle, error) {
	engine, err := mangle.NewEngine(mangle.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("blocksworld: creating mangle engine: %w", err)
	}
	if err := engine.LoadSchemaString(physicsSchema); err != nil {
		return nil, fmt.Errorf("blocksworld: loading physics rulebook: %w", err)
	}
	return &MangleOracle{engine: engine, objects: objects}, nil
}

// Permits asserts the two labels' object_form/object_size facts and checks
// whether the derived <relation>_permitted predicate holds for the pair.
// leftof/rightof/beside have no physics constraint (§4.1) and are always
// permitted without consulting the engine.
func (m *MangleOracle) Permits(ctx context.Context, upper, lower Label, relation Relation) (bool, error) {
	if upper == lower {
		return false, nil
	}
	switch relation {
	case RelationLeftOf, RelationRightOf, RelationBeside:
		return true, nil
	}
	predicate := relationPredicate(relation)
	if predicate == "" {
		return false, fmt.Errorf("blocksworld: no physics predicate for relation %q", relation)
	}

	defU, ok := m.objects.Lookup(upper)
	if !ok {
		return false, fmt.Errorf("blocksworld: unknown label %q", upper)
	}
	defL, ok := m.objects.Lookup(lower)
	if !ok {
		return false, fmt.Errorf("blocksworld: unknown label %q", lower)
	}

	if err := m.engine.AddFact("object_form", string(upper), mangleSymbol(string(defU.Form))); err != nil {
		return false, err
	}
	if err := m.engine.AddFact("object_size", string(upper), mangleSymbol(string(defU.Size))); err != nil {
		return false, err
	}
	if err := m.engine.AddFact("object_form", string(lower), mangleSymbol(string(defL.Form))); err != nil {
		return false, err
	}
	if err := m.engine.AddFact("object_size", string(lower), mangleSymbol(string(defL.Size))); err != nil {
		return false, err
	}

	facts, err := m.engine.GetFacts(predicate)
	if err != nil {
		return false, fmt.Errorf("blocksworld: evaluating %s: %w", predicate, err)
	}
	// Identifier-shaped labels are stored as Name constants ("/a"), others
	// as String constants ("a"), so an argument may come back in either form.
	argIs := func(arg interface{}, label Label) bool {
		s := fmt.Sprintf("%v", arg)
		return s == string(label) || s == mangleSymbol(string(label))
	}
	for _, f := range facts {
		if len(f.Args) != 2 {
			continue
		}
		if argIs(f.Args[0], upper) && argIs(f.Args[1], lower) {
			return true, nil
		}
	}
	return false, nil
}

// Close releases the underlying engine's resources.
func (m *MangleOracle) Close() error {
	return m.engine.Close()
}

func relationPredicate(relation Relation) string {
	switch relation {
	case RelationInside:
		return "inside_permitted"
	case RelationOnTop:
		return "ontop_permitted"
	case RelationAbove:
		return "above_permitted"
	case RelationUnder:
		return "under_permitted"
	default:
		return ""
	}
}

// mangleSymbol renders a Go string as a Mangle name constant (a leading '/'),
// matching how physics.mg's rules compare forms and sizes against /box,
// /ball, /small, /large, and so on.
func mangleSymbol(s string) string {
	return "/" + s
}
