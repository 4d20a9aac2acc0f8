package blocksworld

import (
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// stubParser returns a fixed set of parses regardless of the utterance,
// letting session tests drive Handle without depending on any real English
// grammar (that lives in internal/parser, outside this package).
type stubParser struct {
	parses []*ParseTree
	err    error
}

func (s stubParser) Parse(string) ([]*ParseTree, error) {
	return s.parses, s.err
}

func takeCommand(form Form, quant Quantifier) *ParseTree {
	return &ParseTree{Command: &Command{
		Verb:   VerbTake,
		Entity: &Entity{Quantifier: quant, Object: &Object{Kind: ObjectLeaf, Form: form}},
	}}
}

func testBudget() SearchBudget {
	return SearchBudget{TimeBudget: time.Second, MaxNodes: 100000}
}

func TestSessionHandleSimpleTake(t *testing.T) {
	defer goleak.VerifyNone(t)
	sess := NewSession(testWorld(), nil, testBudget(), zap.NewNop())
	result, prompt, err := sess.Handle(stubParser{parses: []*ParseTree{takeCommand(FormBox, QuantifierAny)}}, "take the box")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if prompt != "" {
		t.Fatalf("Handle() prompt = %q, want none", prompt)
	}
	if result == nil || len(result.Narrated.Lines) == 0 {
		t.Fatalf("Handle() result = %v, want a narrated plan", result)
	}
	if sess.State().Holding != "e" {
		t.Fatalf("session state Holding = %q, want e after taking the box", sess.State().Holding)
	}
}

func TestSessionHandleParseEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)
	sess := NewSession(testWorld(), nil, testBudget(), zap.NewNop())
	_, _, err := sess.Handle(stubParser{}, "gibberish")
	if err == nil || err.Kind != KindParseEmpty {
		t.Fatalf("Handle(no parses) error = %v, want KindParseEmpty", err)
	}
}

func TestSessionHandleParseAmbiguitySuspendsThenResumes(t *testing.T) {
	defer goleak.VerifyNone(t)
	sess := NewSession(testWorld(), nil, testBudget(), zap.NewNop())
	parses := []*ParseTree{
		takeCommand(FormBox, QuantifierAny),
		takeCommand(FormBall, QuantifierAny),
	}
	_, prompt, err := sess.Handle(stubParser{parses: parses}, "put the thing somewhere ambiguous")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if prompt == "" {
		t.Fatalf("Handle(ambiguous parse) prompt = empty, want a clarification question")
	}

	result, prompt2, err2 := sess.Handle(stubParser{parses: parses}, "2")
	if err2 != nil {
		t.Fatalf("Handle(resume) error = %v", err2)
	}
	if prompt2 != "" {
		t.Fatalf("Handle(resume) prompt = %q, want none", prompt2)
	}
	if sess.State().Holding != "a" {
		t.Fatalf("session state Holding = %q, want a (second reading picked); plan = %v", sess.State().Holding, result.Narrated.Lines)
	}
}

func TestSessionHandleReferentAmbiguitySuspendsThenResolves(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := &WorldState{
		Stacks: []Stack{{"a"}, {"b"}},
		Objects: Objects{
			"a": {Form: FormBall, Color: "white"},
			"b": {Form: FormBall, Color: "black"},
		},
	}
	sess := NewSession(w, nil, testBudget(), zap.NewNop())
	ambiguous := takeCommand(FormBall, QuantifierThe)
	_, prompt, err := sess.Handle(stubParser{parses: []*ParseTree{ambiguous}}, "take the ball")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if prompt == "" {
		t.Fatalf("Handle(the ball, 2 candidates) prompt = empty, want a clarification question")
	}

	clarify := &ParseTree{Command: &Command{Entity: &Entity{
		Quantifier: QuantifierThe,
		Object:     &Object{Kind: ObjectLeaf, Form: FormAny, Color: "black"},
	}}}
	_, prompt2, err2 := sess.Handle(stubParser{parses: []*ParseTree{clarify}}, "the black one")
	if err2 != nil {
		t.Fatalf("Handle(clarification) error = %v", err2)
	}
	if prompt2 != "" {
		t.Fatalf("Handle(clarification) prompt = %q, want plan to complete", prompt2)
	}
	if sess.State().Holding != "b" {
		t.Fatalf("session state Holding = %q, want b (black ball)", sess.State().Holding)
	}
}

func TestSessionHandleReferentAmbiguityClearedOnFailedReply(t *testing.T) {
	defer goleak.VerifyNone(t)
	w := &WorldState{
		Stacks: []Stack{{"a"}, {"b"}},
		Objects: Objects{
			"a": {Form: FormBall, Color: "white"},
			"b": {Form: FormBall, Color: "black"},
		},
	}
	sess := NewSession(w, nil, testBudget(), zap.NewNop())
	ambiguous := takeCommand(FormBall, QuantifierThe)
	_, prompt, err := sess.Handle(stubParser{parses: []*ParseTree{ambiguous}}, "take the ball")
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if prompt == "" {
		t.Fatalf("Handle(the ball, 2 candidates) prompt = empty, want a clarification question")
	}
	if !sess.ambiguity.HasPending() {
		t.Fatalf("expected a pending referent ambiguity before the failed reply")
	}

	// A reply that itself fails to parse must not leave the stale referent
	// ambiguity live for the *next* utterance to trip over.
	_, _, err2 := sess.Handle(stubParser{err: nil}, "")
	if err2 == nil || err2.Kind != KindParseEmpty {
		t.Fatalf("Handle(unparseable reply) error = %v, want KindParseEmpty", err2)
	}
	if sess.ambiguity.HasPending() {
		t.Fatalf("pending referent ambiguity leaked past a failed clarification reply")
	}
}

func TestSessionHandleResolutionEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)
	sess := NewSession(testWorld(), nil, testBudget(), zap.NewNop())
	_, _, err := sess.Handle(stubParser{parses: []*ParseTree{takeCommand(FormPyramid, QuantifierAny)}}, "take the pyramid")
	if err == nil || err.Kind != KindResolutionEmpty {
		t.Fatalf("Handle(no such object) error = %v, want KindResolutionEmpty", err)
	}
}
