package blocksworld

import "fmt"

// Narrator annotates an action sequence with the minimally distinguishing
// pickup descriptions of §4.8.
type Narrator struct{}

// NewNarrator constructs a Narrator.
func NewNarrator() *Narrator {
	return &Narrator{}
}

// NarratedPlan is the ordered mix of action tokens and narration lines §6
// allows the executor to interleave: tokens are single ActionToken bytes,
// everything else is free-form English the host should print rather than
// animate.
type NarratedPlan struct {
	Lines []string // action tokens rendered as single characters, or English narration
}

// Narrate walks plan.Actions, inserting "Moving the <description>" just
// before every pickup (§4.8). The description is the minimal attribute
// combination that uniquely identifies the picked-up label among every
// label present in the starting state — including whatever the arm is
// already holding at that point, per §9's resolution: descriptions are
// computed against the starting-state label set, not the label set at the
// moment of the pickup.
func (n *Narrator) Narrate(start *WorldState, plan *Plan) NarratedPlan {
	if len(plan.Actions) == 0 {
		return NarratedPlan{Lines: []string{"That is already true!"}}
	}

	allLabels := start.AllLabels()
	state := start.Clone()

	var lines []string
	for _, action := range plan.Actions {
		if action == ActionPick {
			top, ok := state.Stacks[state.Arm].Top()
			if ok {
				desc := minimalDescription(top, allLabels, start.Objects)
				lines = append(lines, fmt.Sprintf("Moving the %s", desc))
			}
		}
		lines = append(lines, action.String())
		state = applyAction(state, action)
	}
	return NarratedPlan{Lines: lines}
}

// applyAction mutates a working clone forward one action, mirroring
// Successor's edge semantics without re-checking legality (the plan was
// already validated by A* against the live Physics Oracle).
func applyAction(state *WorldState, action ActionToken) *WorldState {
	next := state.Clone()
	switch action {
	case ActionLeft:
		next.Arm--
	case ActionRight:
		next.Arm++
	case ActionPick:
		top, ok := next.Stacks[next.Arm].Top()
		if ok {
			next.Stacks[next.Arm] = next.Stacks[next.Arm][:len(next.Stacks[next.Arm])-1]
			next.Holding = top
		}
	case ActionDrop:
		next.Stacks[next.Arm] = append(next.Stacks[next.Arm], next.Holding)
		next.Holding = ""
	}
	return next
}
