package blocksworld

import "fmt"

// ErrorKind names one entry of the error taxonomy in spec.md §7. The host
// never needs to distinguish these by string matching — PlanError.Kind is
// the stable identity, PlanError.Message is the stable user-visible wording.
type ErrorKind string

const (
	KindParseEmpty          ErrorKind = "parse_empty"
	KindResolutionEmpty     ErrorKind = "resolution_empty"
	KindQuantifierInfeasible ErrorKind = "quantifier_infeasible"
	KindPhysicsViolation    ErrorKind = "physics_violation"
	KindNoPlan              ErrorKind = "no_plan"
	KindUnrecognizedReply   ErrorKind = "unrecognized_clarification"
)

// PlanError is the single error type every pipeline stage surfaces through.
// It carries both a machine-stable Kind and the exact user-visible wording
// spec.md §7 specifies, so cmd/nerdblocks never has to re-derive text.
type PlanError struct {
	Kind    ErrorKind
	Message string
}

func (e *PlanError) Error() string {
	return e.Message
}

func newPlanError(kind ErrorKind, format string, args ...interface{}) *PlanError {
	return &PlanError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrParseEmpty is returned when the host parser returns an error or yields
// zero parses (§7).
func ErrParseEmpty() *PlanError {
	return newPlanError(KindParseEmpty, "Sorry I cannot understand this, please try again.")
}

// ErrResolutionEmpty is raised when a Reference Resolver sub-clause matches
// no labels. description is the minimal distinguishing description of the
// missing referent (§4.2, §7).
func ErrResolutionEmpty(description string) *PlanError {
	return newPlanError(KindResolutionEmpty, "There is no %s.", description)
}

// ErrQuantifierInfeasible wraps one of the Goal Compiler's named
// pre-filter rejections (§4.4).
func ErrQuantifierInfeasible(message string) *PlanError {
	return newPlanError(KindQuantifierInfeasible, "%s", message)
}

// Named quantifier-infeasibility messages, per §4.4's pre-filter rules.
var (
	ErrSelfRelation      = func() *PlanError { return ErrQuantifierInfeasible("An object cannot be related to itself.") }
	ErrOnlyOneFits       = func() *PlanError { return ErrQuantifierInfeasible("A box can only fit one object.") }
	ErrInsufficientTargets = func() *PlanError {
		return ErrQuantifierInfeasible("There are not enough places to put all of them.")
	}
	ErrOnlyHoldOne       = func() *PlanError { return ErrQuantifierInfeasible("I can only hold one object at a time.") }
	ErrCannotDoThat      = func() *PlanError { return ErrQuantifierInfeasible("I cannot do that.") }
)

// ErrPhysicsViolation wraps one of the Physics Oracle's named rejections
// (§4.1, §7) — e.g. "Objects can only be inside of boxes.",
// "Balls cannot support other objects.".
func ErrPhysicsViolation(message string) *PlanError {
	return newPlanError(KindPhysicsViolation, "%s", message)
}

// ErrNoPlan is returned when A* exhausts its frontier or its time budget
// without reaching a goal state (§4.7, §7).
func ErrNoPlan() *PlanError {
	return newPlanError(KindNoPlan, "I cannot figure this out in the time I have.")
}

// ErrUnrecognizedReply is returned when a clarification reply does not
// resolve against the Ambiguity Manager's preselected set (§4.3, §7).
// originalPrompt is the question that was asked, echoed back verbatim.
func ErrUnrecognizedReply(originalPrompt string) *PlanError {
	return newPlanError(KindUnrecognizedReply,
		"That was not one of the options I asked for. %s", originalPrompt)
}
