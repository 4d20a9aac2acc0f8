package blocksworld

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmbiguity is the pending state for regime 1 of §4.3: the grammar
// returned multiple parses and the user must pick one.
type ParseAmbiguity struct {
	Parses []*ParseTree
	Prompt string
}

// ReferentAmbiguity is the pending state for regime 2 of §4.3: a "the"
// noun phrase matched more than one label, so planning suspended with a
// preselected context that the next utterance is interpreted against.
type ReferentAmbiguity struct {
	Request GoalRequest
	// Side is "movable" or "relatable" — which side of Request was
	// ambiguous and needs narrowing from the clarification reply.
	Side       string
	Candidates []Label
	Prompt     string
}

// Manager is the Ambiguity Manager of §4.3: exactly three persistent state
// slots between utterances (pending_parses, pending_resolution, and the
// last prompt text, folded here into the two typed pending-* fields plus
// each one's own Prompt). A successful plan clears both.
type Manager struct {
	pendingParse    *ParseAmbiguity
	pendingReferent *ReferentAmbiguity
}

// NewManager constructs an empty Ambiguity Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Clear drops both pending slots, called after a plan completes (§4.3).
func (m *Manager) Clear() {
	m.pendingParse = nil
	m.pendingReferent = nil
}

// ClearReferent drops only the pending referent-ambiguity slot, leaving any
// pending parse ambiguity untouched. Callers use this when a clarification
// reply for a pending referent ambiguity fails before ResolveReferent is
// ever reached, so the stale preselected candidate set can't leak into the
// utterance that follows (§4.3 Lifecycle: cleared on either a consumed
// clarifying answer or a discarded fresh command).
func (m *Manager) ClearReferent() {
	m.pendingReferent = nil
}

// HasPending reports whether either regime is currently suspended.
func (m *Manager) HasPending() bool {
	return m.pendingParse != nil || m.pendingReferent != nil
}

// PendingParse returns the pending parse-ambiguity context, if any.
func (m *Manager) PendingParse() (*ParseAmbiguity, bool) {
	return m.pendingParse, m.pendingParse != nil
}

// PendingReferent returns the pending referent-ambiguity context, if any.
func (m *Manager) PendingReferent() (*ReferentAmbiguity, bool) {
	return m.pendingReferent, m.pendingReferent != nil
}

// SuspendForParses stores multiple candidate parses and builds the
// numbered "that is ..." disambiguation prompt (§4.3 regime 1).
func (m *Manager) SuspendForParses(parses []*ParseTree) string {
	var b strings.Builder
	b.WriteString("I am not sure which you mean:")
	for i, p := range parses {
		fmt.Fprintf(&b, "\n%d. %s", i+1, describeParse(p))
	}
	prompt := b.String()
	m.pendingParse = &ParseAmbiguity{Parses: parses, Prompt: prompt}
	return prompt
}

// ResumeParse consumes a reply against a pending parse ambiguity. If the
// first whitespace-delimited token is a positive integer within range, that
// parse is selected and the pending state is cleared. Otherwise the pending
// parses are discarded (§4.3: "any other utterance is treated as a fresh
// command") and ok is false, signalling the caller to treat reply as a new
// utterance.
func (m *Manager) ResumeParse(reply string) (*ParseTree, bool) {
	pending := m.pendingParse
	m.pendingParse = nil
	if pending == nil {
		return nil, false
	}
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return nil, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 || n > len(pending.Parses) {
		return nil, false
	}
	return pending.Parses[n-1], true
}

// SuspendForReferent stores a preselected GoalRequest and builds the
// minimal-distinguishing-attribute prompt of §4.3 regime 2.
func (m *Manager) SuspendForReferent(req GoalRequest, side string, candidates []Label, objects Objects) string {
	prompt := buildReferentPrompt(candidates, objects)
	m.pendingReferent = &ReferentAmbiguity{
		Request:    req,
		Side:       side,
		Candidates: candidates,
		Prompt:     prompt,
	}
	return prompt
}

// ResolveReferent narrows the ambiguous side of the pending request to
// chosen (the labels the clarification reply resolved to, intersected
// against Candidates here). Every chosen label that is one of the original
// candidates is kept; if none is, the reply is unrecognized (§4.3, §7).
func (m *Manager) ResolveReferent(chosen []Label) (GoalRequest, *PlanError) {
	pending := m.pendingReferent
	if pending == nil {
		return GoalRequest{}, ErrUnrecognizedReply("")
	}
	m.pendingReferent = nil

	valid := toSet(pending.Candidates)
	var matched []Label
	for _, c := range chosen {
		if _, ok := valid[c]; ok {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return GoalRequest{}, ErrUnrecognizedReply(pending.Prompt)
	}

	req := pending.Request
	switch pending.Side {
	case "movable":
		req.Movable = matched
	case "relatable":
		req.Relatable = matched
	}
	return req, nil
}

// buildReferentPrompt implements §4.3's minimal-distinguishing-description
// prompt: for two or fewer candidates, "Do you mean the X or the Y?"; for
// more, a grouped "there are N <shared descriptor>s, which one do you
// mean?" naming only the attributes every candidate shares.
func buildReferentPrompt(candidates []Label, objects Objects) string {
	if len(candidates) <= 2 {
		descs := make([]string, len(candidates))
		for i, c := range candidates {
			descs[i] = minimalDescription(c, candidates, objects)
		}
		if len(descs) == 1 {
			return fmt.Sprintf("Do you mean the %s?", descs[0])
		}
		return fmt.Sprintf("Do you mean the %s?", strings.Join(descs, " or the "))
	}

	form, size, color, sizeShared, colorShared := sharedAttributes(candidates, objects)
	parts := make([]string, 0, 3)
	if sizeShared && size != "" && size != SizeUnspecified {
		parts = append(parts, string(size))
	}
	if colorShared && color != "" && color != ColorUnspecified {
		parts = append(parts, string(color))
	}
	parts = append(parts, pluralize(formWord(form)))
	return fmt.Sprintf("There are %d %s, which one do you mean?", len(candidates), joinWords(parts))
}

func pluralize(word string) string {
	if strings.HasSuffix(word, "s") || strings.HasSuffix(word, "x") {
		return word + "es"
	}
	return word + "s"
}

// describeParse renders a single parse tree in the canonical "that is ..."
// form used to disambiguate competing attachments (§4.3, §8 scenario 6).
func describeParse(p *ParseTree) string {
	cmd := p.Command
	var b strings.Builder
	b.WriteString(string(cmd.Verb))
	if cmd.Entity != nil {
		b.WriteByte(' ')
		b.WriteString(describeEntity(cmd.Entity))
	}
	if cmd.Location != nil {
		b.WriteByte(' ')
		b.WriteString(describeLocation(cmd.Location))
	}
	return b.String()
}

func describeEntity(e *Entity) string {
	det := string(e.Quantifier)
	return fmt.Sprintf("%s %s", det, describeObjectFull(e.Object))
}

func describeObjectFull(obj *Object) string {
	if obj == nil {
		return "object"
	}
	if obj.Kind == ObjectLeaf {
		return describeObject(obj)
	}
	return fmt.Sprintf("%s that is %s", describeObjectFull(obj.Inner), describeLocation(obj.Clause))
}

func describeLocation(loc *Location) string {
	return fmt.Sprintf("%s %s", relationPreposition(loc.Relation), describeEntity(loc.Entity))
}

func relationPreposition(r Relation) string {
	switch r {
	case RelationLeftOf:
		return "left of"
	case RelationRightOf:
		return "right of"
	case RelationInside:
		return "inside"
	case RelationOnTop:
		return "on top of"
	case RelationUnder:
		return "under"
	case RelationAbove:
		return "above"
	case RelationBeside:
		return "beside"
	default:
		return string(r)
	}
}
