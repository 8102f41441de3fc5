package requisites

import (
	"encoding/json"
	"strings"
)

// Connective joins the children of a Group.
type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// Label is the short separator shown between siblings.
func (c Connective) Label() string {
	if c == Or {
		return "O"
	}
	return "Y"
}

// Leaf is the set of values a requisite tree can hold at its leaves.
type Leaf interface {
	CourseRef | RestrictionRule
}

// Group is one node of a requisite tree. Leaves and Groups are siblings
// combined with the same connective.
type Group[L Leaf] struct {
	Type   Connective
	Leaves []L
	Groups []Group[L]
}

// Len is the number of direct children.
func (g Group[L]) Len() int {
	return len(g.Leaves) + len(g.Groups)
}

func leavesKey[L Leaf]() string {
	var zero L
	if _, ok := any(zero).(RestrictionRule); ok {
		return "restrictions"
	}
	return "courses"
}

func (g Group[L]) MarshalJSON() ([]byte, error) {
	leaves := g.Leaves
	if leaves == nil {
		leaves = []L{}
	}

	fields := map[string]interface{}{
		"type":         g.Type,
		leavesKey[L](): leaves,
	}
	if len(g.Groups) > 0 {
		fields["groups"] = g.Groups
	}
	return json.Marshal(fields)
}

// Parsed is the result of parsing one raw requisite text. Present is false
// exactly when the text is absent, in which case Structure is nil.
type Parsed[L Leaf] struct {
	Present   bool
	Structure *Group[L]
}

const absentMarker = "No tiene"

// IsAbsent reports whether text is one of the catalog's "no requisites"
// encodings: empty, whitespace only or the "No tiene" marker.
func IsAbsent(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || trimmed == absentMarker
}

// Sigles returns the distinct course codes of g in depth-first,
// first-seen order.
func Sigles(g Group[CourseRef]) []string {
	seen := make(map[string]bool)
	var sigles []string
	for _, course := range Flatten(g) {
		if seen[course.Sigle] {
			continue
		}
		seen[course.Sigle] = true
		sigles = append(sigles, course.Sigle)
	}
	return sigles
}

// Flatten returns every leaf of g in source order.
func Flatten[L Leaf](g Group[L]) []L {
	leaves := append([]L(nil), g.Leaves...)
	for _, sub := range g.Groups {
		leaves = append(leaves, Flatten(sub)...)
	}
	return leaves
}

// Satisfied evaluates g with ok deciding each leaf. An empty group is
// satisfied.
func Satisfied[L Leaf](g Group[L], ok func(L) bool) bool {
	if g.Len() == 0 {
		return true
	}

	results := make([]bool, 0, g.Len())
	for _, leaf := range g.Leaves {
		results = append(results, ok(leaf))
	}
	for _, sub := range g.Groups {
		results = append(results, Satisfied(sub, ok))
	}

	for _, result := range results {
		if g.Type == Or && result {
			return true
		}
		if g.Type != Or && !result {
			return false
		}
	}
	return g.Type != Or
}
