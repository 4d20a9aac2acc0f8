// Package parser is a small hand-rolled English parser that implements
// blocksworld.Parser. It lives outside internal/blocksworld, as the host
// contract requires: blocksworld never imports it, it only imports
// blocksworld's parse-tree types.
package parser

import (
	"regexp"
	"strings"

	"blocksplanner/internal/blocksworld"
)

var punctuation = regexp.MustCompile(`[.,!?]`)

// Parser turns raw English utterances into candidate ParseTrees. A bare noun
// phrase with no recognized verb (used for clarification replies like "the
// black one") parses to a single Command with Verb left empty and Entity
// set.
type Parser struct{}

// New constructs a Parser. It carries no configuration or state.
func New() *Parser {
	return &Parser{}
}

// Parse tokenizes utterance and attempts one or two readings, returning
// more than one *blocksworld.ParseTree only for the genuine PP-attachment
// ambiguity described below.
func (p *Parser) Parse(utterance string) ([]*blocksworld.ParseTree, error) {
	tokens := tokenize(utterance)
	if len(tokens) == 0 {
		return nil, nil
	}

	if verb, rest, ok := consumeVerb(tokens); ok {
		return parseCommand(verb, rest)
	}

	// No recognized verb: treat the whole utterance as a bare noun phrase,
	// the shape a clarification reply takes.
	entity, _, err := parseNounPhrase(tokens)
	if err != nil {
		return nil, err
	}
	return []*blocksworld.ParseTree{{Command: &blocksworld.Command{Entity: entity}}}, nil
}

func tokenize(s string) []string {
	s = punctuation.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Fields(s)
}

var verbWords = map[string]blocksworld.Verb{
	"take":   blocksworld.VerbTake,
	"pick":   blocksworld.VerbTake,
	"get":    blocksworld.VerbTake,
	"grab":   blocksworld.VerbTake,
	"put":    blocksworld.VerbPut,
	"place":  blocksworld.VerbPut,
	"move":   blocksworld.VerbMove,
	"set":    blocksworld.VerbPut,
}

func consumeVerb(tokens []string) (blocksworld.Verb, []string, bool) {
	if len(tokens) == 0 {
		return "", tokens, false
	}
	verb, ok := verbWords[tokens[0]]
	if !ok {
		return "", tokens, false
	}
	rest := tokens[1:]
	if verb == blocksworld.VerbTake && len(rest) > 0 && (rest[0] == "up" || rest[0] == "out") {
		rest = rest[1:]
	}
	return verb, rest, true
}

// parseCommand builds the Command for a verb plus its remaining tokens. For
// "take" the remainder is a single noun phrase (possibly with its own
// relative clause). For "put"/"move" the remainder is a noun phrase
// followed by a prepositional location, with the two-location-phrase
// pattern ("put X in Y on Z") producing the genuine PP-attachment
// ambiguity of §4.3 regime 1/§8 scenario 6.
func parseCommand(verb blocksworld.Verb, tokens []string) ([]*blocksworld.ParseTree, error) {
	entity, rest, err := parseNounPhraseBare(tokens)
	if err != nil {
		return nil, err
	}

	if verb == blocksworld.VerbTake {
		// A trailing relative clause on "take" attaches to the entity
		// itself ("take the ball that is on the table").
		if rel, rest2, ok, err := tryParseLocation(rest); err != nil {
			return nil, err
		} else if ok {
			entity.Object = &blocksworld.Object{Kind: blocksworld.ObjectRelative, Inner: entity.Object, Clause: rel}
			rest = rest2
		}
		return []*blocksworld.ParseTree{{Command: &blocksworld.Command{Verb: verb, Entity: entity}}}, nil
	}

	loc, rest, ok, err := tryParseLocation(rest)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*blocksworld.ParseTree{{Command: &blocksworld.Command{Verb: verb, Entity: entity}}}, nil
	}

	// Check for a second trailing prepositional phrase: the PP-attachment
	// ambiguity. loc.Entity.Object is the bare noun phrase just parsed
	// ("a box"); if another preposition follows, it could modify either
	// that noun phrase or the outer entity.
	if rel2, rest2, ok2, err := tryParseLocation(rest); err != nil {
		return nil, err
	} else if ok2 {
		_ = rest2
		innerAttached := &blocksworld.Location{
			Relation: loc.Relation,
			Entity: &blocksworld.Entity{
				Quantifier: loc.Entity.Quantifier,
				Object:     &blocksworld.Object{Kind: blocksworld.ObjectRelative, Inner: loc.Entity.Object, Clause: rel2},
			},
		}
		outerAttached := &blocksworld.Location{Relation: loc.Relation, Entity: loc.Entity}
		outerEntityWithClause := &blocksworld.Entity{
			Quantifier: entity.Quantifier,
			Object:     &blocksworld.Object{Kind: blocksworld.ObjectRelative, Inner: entity.Object, Clause: rel2},
		}

		readingA := &blocksworld.ParseTree{Command: &blocksworld.Command{Verb: verb, Entity: entity, Location: innerAttached}}
		readingB := &blocksworld.ParseTree{Command: &blocksworld.Command{Verb: verb, Entity: outerEntityWithClause, Location: outerAttached}}
		return []*blocksworld.ParseTree{readingA, readingB}, nil
	}

	return []*blocksworld.ParseTree{{Command: &blocksworld.Command{Verb: verb, Entity: entity, Location: loc}}}, nil
}

func tryParseLocation(tokens []string) (*blocksworld.Location, []string, bool, error) {
	relation, rest, ok := consumePreposition(tokens)
	if !ok {
		return nil, tokens, false, nil
	}
	entity, rest, err := parseNounPhraseBare(rest)
	if err != nil {
		return nil, nil, false, err
	}
	return &blocksworld.Location{Relation: relation, Entity: entity}, rest, true, nil
}

var prepositions = []struct {
	words    []string
	relation blocksworld.Relation
}{
	{[]string{"on", "top", "of"}, blocksworld.RelationOnTop},
	{[]string{"inside", "of"}, blocksworld.RelationInside},
	{[]string{"inside"}, blocksworld.RelationInside},
	{[]string{"in"}, blocksworld.RelationInside},
	{[]string{"on"}, blocksworld.RelationOnTop},
	{[]string{"under"}, blocksworld.RelationUnder},
	{[]string{"beneath"}, blocksworld.RelationUnder},
	{[]string{"above"}, blocksworld.RelationAbove},
	{[]string{"over"}, blocksworld.RelationAbove},
	{[]string{"left", "of"}, blocksworld.RelationLeftOf},
	{[]string{"right", "of"}, blocksworld.RelationRightOf},
	{[]string{"next", "to"}, blocksworld.RelationBeside},
	{[]string{"beside"}, blocksworld.RelationBeside},
}

// consumePreposition optionally skips a leading "that is"/"that's" relative
// pronoun, then matches the longest known preposition phrase.
func consumePreposition(tokens []string) (blocksworld.Relation, []string, bool) {
	if len(tokens) >= 2 && tokens[0] == "that" && (tokens[1] == "is" || tokens[1] == "are") {
		tokens = tokens[2:]
	}
	for _, p := range prepositions {
		if matchWords(tokens, p.words) {
			return p.relation, tokens[len(p.words):], true
		}
	}
	return "", tokens, false
}

func matchWords(tokens, words []string) bool {
	if len(tokens) < len(words) {
		return false
	}
	for i, w := range words {
		if tokens[i] != w {
			return false
		}
	}
	return true
}

var determiners = map[string]blocksworld.Quantifier{
	"the":   blocksworld.QuantifierThe,
	"a":     blocksworld.QuantifierAny,
	"an":    blocksworld.QuantifierAny,
	"any":   blocksworld.QuantifierAny,
	"some":  blocksworld.QuantifierAny,
	"all":   blocksworld.QuantifierAll,
	"every": blocksworld.QuantifierAll,
	"each":  blocksworld.QuantifierAll,
}

var sizeWords = map[string]blocksworld.Size{
	"small": blocksworld.SizeSmall,
	"large": blocksworld.SizeLarge,
	"big":   blocksworld.SizeLarge,
}

var formWords = map[string]blocksworld.Form{
	"ball":    blocksworld.FormBall,
	"balls":   blocksworld.FormBall,
	"box":     blocksworld.FormBox,
	"boxes":   blocksworld.FormBox,
	"brick":   blocksworld.FormBrick,
	"bricks":  blocksworld.FormBrick,
	"pyramid": blocksworld.FormPyramid,
	"plank":   blocksworld.FormPlank,
	"planks":  blocksworld.FormPlank,
	"table":   blocksworld.FormTable,
	"floor":   blocksworld.FormFloor,
	"ground":  blocksworld.FormFloor,
	"object":  blocksworld.FormAny,
	"objects": blocksworld.FormAny,
	"one":     blocksworld.FormAny,
	"ones":    blocksworld.FormAny,
}

// parseNounPhraseBare parses a determiner, optional size/color adjectives,
// and a form noun, WITHOUT attempting to attach a trailing relative clause
// — callers decide attachment themselves (needed for the ambiguity case).
func parseNounPhraseBare(tokens []string) (*blocksworld.Entity, []string, error) {
	quant := blocksworld.QuantifierAny
	if len(tokens) > 0 {
		if q, ok := determiners[tokens[0]]; ok {
			quant = q
			tokens = tokens[1:]
		}
	}

	obj := &blocksworld.Object{Kind: blocksworld.ObjectLeaf, Form: blocksworld.FormAny}
	for len(tokens) > 0 {
		word := tokens[0]
		if isStopWord(word) {
			break
		}
		if form, ok := formWords[word]; ok {
			obj.Form = form
			tokens = tokens[1:]
			break
		}
		if size, ok := sizeWords[word]; ok {
			obj.Size = size
			tokens = tokens[1:]
			continue
		}
		// Anything else that isn't a known stop word or preposition is
		// treated as a color — the palette is open-ended (it comes from
		// the world fixture), so the parser can't validate it here.
		if _, _, isPrep := consumePreposition(tokens); isPrep {
			break
		}
		obj.Color = blocksworld.Color(word)
		tokens = tokens[1:]
	}

	return &blocksworld.Entity{Quantifier: quant, Object: obj}, tokens, nil
}

// parseNounPhrase is parseNounPhraseBare plus greedy attachment of any
// trailing relative clause directly onto the noun phrase just parsed — the
// default, non-ambiguous reading used for bare clarification replies.
func parseNounPhrase(tokens []string) (*blocksworld.Entity, []string, error) {
	entity, rest, err := parseNounPhraseBare(tokens)
	if err != nil {
		return nil, nil, err
	}
	if rel, rest2, ok, err := tryParseLocation(rest); err != nil {
		return nil, nil, err
	} else if ok {
		entity.Object = &blocksworld.Object{Kind: blocksworld.ObjectRelative, Inner: entity.Object, Clause: rel}
		rest = rest2
	}
	return entity, rest, nil
}

func isStopWord(word string) bool {
	switch word {
	case "that", "is", "are", "please":
		return true
	}
	return false
}
