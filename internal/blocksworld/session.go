package blocksworld

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Parser is the host contract for turning raw English into candidate parse
// trees. A session never constructs one of these itself — cmd/nerdblocks
// wires a concrete implementation in. Returning more than one ParseTree
// signals a genuine grammar ambiguity (§4.3 regime 1); returning none
// signals the utterance didn't parse at all (§7 ErrParseEmpty).
type Parser interface {
	Parse(utterance string) ([]*ParseTree, error)
}

// Renderer is the host contract for presenting a finished plan or prompt
// back to the user. Sessions never print anything themselves.
type Renderer interface {
	RenderPlan(NarratedPlan)
	RenderPrompt(question string)
	RenderError(*PlanError)
}

// PlanResult is everything a successful Session.Handle call produces: the
// narrated plan plus the raw search telemetry the CLI's status line and
// --dry-run surface want (SPEC_FULL.md Part D).
type PlanResult struct {
	Narrated      NarratedPlan
	NodesExpanded int
	Elapsed       time.Duration
}

// SearchBudget bounds how long Session.Handle lets A* run before it gives up
// with ErrNoPlan (§4.7). Only TimeBudget is passed to the search; MaxNodes
// is carried from config but no node-count cap is enforced.
type SearchBudget struct {
	TimeBudget time.Duration
	MaxNodes   int
}

// Session ties the eight §4 components into the single synchronous
// pipeline of §5: parse, resolve referents, compile the goal, search,
// narrate — with the Ambiguity Manager able to suspend the pipeline between
// any two utterances and resume it on the next one.
type Session struct {
	ID uuid.UUID

	state *WorldState

	oracle       *Oracle
	mangleOracle *MangleOracle
	compiler     *GoalCompiler
	successor    *Successor
	heuristic    *Heuristic
	search       *AStar
	narrator     *Narrator
	ambiguity    *Manager

	budget SearchBudget
	log    *zap.Logger
}

// NewSession builds a Session bound to one live world state. The Mangle
// oracle is optional — pass nil to skip the per-utterance Mangle audit
// (auditPhysics); the pure-Go Oracle is used for planning either way, so
// this never changes plan outcomes (see DESIGN.md).
func NewSession(state *WorldState, mangleOracle *MangleOracle, budget SearchBudget, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	oracle := NewOracle(state.Objects)
	successor := NewSuccessor(oracle)
	heuristic := NewHeuristic()
	id := uuid.New()
	return &Session{
		ID:           id,
		state:        state,
		oracle:       oracle,
		mangleOracle: mangleOracle,
		compiler:     NewGoalCompiler(oracle),
		successor:    successor,
		heuristic:    heuristic,
		search:       NewAStar(successor, heuristic),
		narrator:     NewNarrator(),
		ambiguity:    NewManager(),
		budget:       budget,
		log:          log.With(zap.String("category", "session"), zap.String("session_id", id.String())),
	}
}

// State returns the session's live world state, for host-side rendering
// between commands. Callers must not mutate it directly; only Handle does.
func (s *Session) State() *WorldState {
	return s.state
}

// Handle runs one utterance through the full pipeline. If the Ambiguity
// Manager has a pending regime, utterance is first offered to it as a
// clarification reply; only if neither regime claims it does Handle treat
// it as a fresh command.
func (s *Session) Handle(parser Parser, utterance string) (*PlanResult, string, *PlanError) {
	if _, ok := s.ambiguity.PendingParse(); ok {
		if chosen, matched := s.ambiguity.ResumeParse(utterance); matched {
			return s.runParseTree(chosen)
		}
		// ResumeParse already cleared the pending parses; fall through and
		// treat utterance as a fresh command.
	}

	if referentAmb, ok := s.ambiguity.PendingReferent(); ok {
		candidates, err := s.resolveClarificationReply(parser, utterance, referentAmb.Candidates)
		if err != nil {
			// The reply didn't resolve against the preselected candidates at
			// all: discard the pending referent ambiguity (§4.3 Lifecycle)
			// and fall through to treat utterance as a fresh command.
			s.ambiguity.ClearReferent()
		} else {
			req, rerr := s.ambiguity.ResolveReferent(candidates)
			if rerr == nil {
				return s.finishFromRequest(req)
			}
			if rerr.Kind == KindUnrecognizedReply {
				return nil, "", rerr
			}
			// Any other resolution failure: ResolveReferent already cleared
			// the pending referent ambiguity; fall through as a fresh command.
		}
	}

	parses, err := parser.Parse(utterance)
	if err != nil || len(parses) == 0 {
		return nil, "", ErrParseEmpty()
	}
	if len(parses) > 1 {
		prompt := s.ambiguity.SuspendForParses(parses)
		return nil, prompt, nil
	}
	return s.runParseTree(parses[0])
}

// resolveClarificationReply parses a clarification reply as a standalone
// noun phrase (no verb) and resolves it against the preselected candidate
// set, so "the black one" narrows correctly regardless of quantifier.
func (s *Session) resolveClarificationReply(parser Parser, reply string, preselected []Label) ([]Label, *PlanError) {
	parses, err := parser.Parse(reply)
	if err != nil || len(parses) == 0 {
		return nil, ErrParseEmpty()
	}
	cmd := parses[0].Command
	var obj *Object
	if cmd.Entity != nil {
		obj = cmd.Entity.Object
	}
	resolver := NewResolver(s.state)
	return resolver.Resolve(preselected, obj)
}

// runParseTree drives one resolved ParseTree through reference resolution,
// goal compilation, search, and narration, suspending into referent
// ambiguity if either noun phrase resolves to more than one candidate.
func (s *Session) runParseTree(tree *ParseTree) (*PlanResult, string, *PlanError) {
	cmd := tree.Command
	universe := append(append([]Label{}, s.state.AllLabels()...), Floor)
	resolver := NewResolver(s.state)

	var movable, relatable []Label
	var movableDesc, relatableDesc *Object
	var movableQuant, relatableQuant Quantifier
	relation := RelationHolding

	if cmd.Entity != nil {
		movableDesc = cmd.Entity.Object
		movableQuant = cmd.Entity.Quantifier
		labels, perr := resolver.Resolve(universe, movableDesc)
		if perr != nil {
			return nil, "", perr
		}
		if len(labels) == 0 {
			return nil, "", ErrResolutionEmpty(describeObject(movableDesc))
		}
		if len(labels) > 1 && movableQuant == QuantifierThe {
			req := GoalRequest{
				Movable: labels, MovableDesc: movableDesc, MovableQuant: movableQuant,
				Relatable: relatable, RelatableDesc: relatableDesc, RelatableQuant: relatableQuant,
				Relation: relation,
			}
			if cmd.Location != nil {
				req.Relation = cmd.Location.Relation
			}
			prompt := s.ambiguity.SuspendForReferent(req, "movable", labels, s.state.Objects)
			return nil, prompt, nil
		}
		movable = labels
	}

	if cmd.Location != nil {
		relation = cmd.Location.Relation
		relatableDesc = cmd.Location.Entity.Object
		relatableQuant = cmd.Location.Entity.Quantifier
		labels, perr := resolver.Resolve(universe, relatableDesc)
		if perr != nil {
			return nil, "", perr
		}
		if len(labels) == 0 {
			return nil, "", ErrResolutionEmpty(describeObject(relatableDesc))
		}
		if len(labels) > 1 && relatableQuant == QuantifierThe {
			req := GoalRequest{
				Movable: movable, MovableDesc: movableDesc, MovableQuant: movableQuant,
				Relatable: labels, RelatableDesc: relatableDesc, RelatableQuant: relatableQuant,
				Relation: relation,
			}
			prompt := s.ambiguity.SuspendForReferent(req, "relatable", labels, s.state.Objects)
			return nil, prompt, nil
		}
		relatable = labels
	}

	req := GoalRequest{
		Movable: movable, MovableDesc: movableDesc, MovableQuant: movableQuant,
		Relatable: relatable, RelatableDesc: relatableDesc, RelatableQuant: relatableQuant,
		Relation: relation,
	}
	return s.finishFromRequest(req)
}

// finishFromRequest compiles, searches, narrates, and — on success — mutates
// the session's live world state and clears the Ambiguity Manager (§4.3:
// "a successful plan clears both pending slots").
func (s *Session) finishFromRequest(req GoalRequest) (*PlanResult, string, *PlanError) {
	s.auditPhysics(req)

	goal, err := s.compiler.Compile(req, s.state)
	if err != nil {
		return nil, "", err
	}

	plan, err := s.search.Search(s.state, goal, s.budget.TimeBudget)
	if err != nil {
		return nil, "", err
	}

	narrated := s.narrator.Narrate(s.state, plan)
	s.applyPlan(plan)
	s.ambiguity.Clear()

	s.log.Debug("plan computed",
		zap.Int("nodes_expanded", plan.NodesExpanded),
		zap.Duration("elapsed", plan.Elapsed))

	return &PlanResult{
		Narrated:      narrated,
		NodesExpanded: plan.NodesExpanded,
		Elapsed:       plan.Elapsed,
	}, "", nil
}

// auditPhysics cross-checks the request's first candidate pair against the
// declarative Mangle rulebook when one is configured, logging any
// disagreement with the hot-path Oracle rather than failing the request —
// the Mangle engine is a one-shot utterance-boundary sanity check (§4.1),
// never the source of truth A* relies on.
func (s *Session) auditPhysics(req GoalRequest) {
	if s.mangleOracle == nil || req.Relation == RelationHolding {
		return
	}
	if len(req.Movable) == 0 || len(req.Relatable) == 0 {
		return
	}
	m, r := req.Movable[0], req.Relatable[0]
	want := s.oracle.Permits(m, r, req.Relation, s.state)
	got, err := s.mangleOracle.Permits(context.Background(), m, r, req.Relation)
	if err != nil {
		s.log.Debug("mangle physics audit failed", zap.Error(err))
		return
	}
	if got != want {
		s.log.Warn("mangle oracle disagrees with hot-path oracle",
			zap.String("movable", string(m)), zap.String("relatable", string(r)),
			zap.String("relation", string(req.Relation)),
			zap.Bool("oracle", want), zap.Bool("mangle", got))
	}
}

// applyPlan advances the session's live state by every action in plan, in
// order — the same transition function the Narrator uses to walk its own
// working clone, applied here to the state future utterances will see.
func (s *Session) applyPlan(plan *Plan) {
	for _, action := range plan.Actions {
		s.state = applyAction(s.state, action)
	}
}
