package blocksworld

import "fmt"

// describeObject renders a leaf Object parse node into an English noun
// phrase for use in resolution-empty error messages (§4.2, §7). It does not
// attempt to describe relative clauses beyond their innermost leaf, since
// the Resolver only ever fails to find a leaf-level descriptor.
func describeObject(obj *Object) string {
	if obj == nil {
		return "object"
	}
	if obj.Kind == ObjectRelative {
		return describeObject(obj.Inner)
	}
	parts := make([]string, 0, 3)
	if obj.Size != "" && obj.Size != SizeUnspecified {
		parts = append(parts, string(obj.Size))
	}
	if obj.Color != "" && obj.Color != ColorUnspecified {
		parts = append(parts, string(obj.Color))
	}
	parts = append(parts, formWord(obj.Form))
	return joinWords(parts)
}

func formWord(f Form) string {
	if f == "" || f == FormAny {
		return "object"
	}
	return string(f)
}

func joinWords(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// attributeTuple is one candidate combination tried by minimalDescription,
// in the order §4.3 specifies: (form), (color, form), (size, form),
// (size, color, form).
type attributeTuple int

const (
	tupleForm attributeTuple = iota
	tupleColorForm
	tupleSizeForm
	tupleSizeColorForm
)

// minimalDescription finds the shortest attribute tuple that uniquely
// identifies label among candidates, per §4.3's ordering. If no tuple up to
// the full (size, color, form) is unique — which happens when another
// candidate has the same form, size, and color — it falls back to the full
// description.
func minimalDescription(label Label, candidates []Label, objects Objects) string {
	def, ok := objects.Lookup(label)
	if !ok {
		return string(label)
	}
	for _, tuple := range []attributeTuple{tupleForm, tupleColorForm, tupleSizeForm, tupleSizeColorForm} {
		if isUniqueTuple(label, def, tuple, candidates, objects) {
			return renderTuple(def, tuple)
		}
	}
	return renderTuple(def, tupleSizeColorForm)
}

func isUniqueTuple(label Label, def ObjectDef, tuple attributeTuple, candidates []Label, objects Objects) bool {
	for _, other := range candidates {
		if other == label {
			continue
		}
		otherDef, ok := objects.Lookup(other)
		if !ok {
			continue
		}
		if tupleEqual(def, otherDef, tuple) {
			return false
		}
	}
	return true
}

func tupleEqual(a, b ObjectDef, tuple attributeTuple) bool {
	switch tuple {
	case tupleForm:
		return a.Form == b.Form
	case tupleColorForm:
		return a.Form == b.Form && a.Color == b.Color
	case tupleSizeForm:
		return a.Form == b.Form && a.Size == b.Size
	case tupleSizeColorForm:
		return a.Form == b.Form && a.Size == b.Size && a.Color == b.Color
	default:
		return false
	}
}

func renderTuple(def ObjectDef, tuple attributeTuple) string {
	switch tuple {
	case tupleForm:
		return formWord(def.Form)
	case tupleColorForm:
		return fmt.Sprintf("%s %s", def.Color, formWord(def.Form))
	case tupleSizeForm:
		return fmt.Sprintf("%s %s", def.Size, formWord(def.Form))
	default:
		return fmt.Sprintf("%s %s %s", def.Size, def.Color, formWord(def.Form))
	}
}

// sharedAttributes returns the attribute(s) every candidate has in common
// (form always, plus size and/or color when uniform), used by the grouped
// "there are N boxes" ambiguity prompt (§4.3).
func sharedAttributes(candidates []Label, objects Objects) (form Form, size Size, color Color, sizeShared, colorShared bool) {
	if len(candidates) == 0 {
		return "", "", "", false, false
	}
	first, _ := objects.Lookup(candidates[0])
	form = first.Form
	size = first.Size
	color = first.Color
	sizeShared, colorShared = true, true
	for _, c := range candidates[1:] {
		def, ok := objects.Lookup(c)
		if !ok {
			continue
		}
		if def.Size != size {
			sizeShared = false
		}
		if def.Color != color {
			colorShared = false
		}
	}
	return form, size, color, sizeShared, colorShared
}
