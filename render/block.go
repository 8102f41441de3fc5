// Package render turns requisite trees into presentation blocks and
// writes them to terminals.
package render

import "github.com/osuc/buscaramos/requisites"

type Kind string

const (
	KindGroup       Kind = "group"
	KindCourse      Kind = "course"
	KindInactive    Kind = "inactive"
	KindRestriction Kind = "restriction"
)

// InactiveLabel is shown for courses whose name could not be resolved.
const InactiveLabel = "Curso no disponible"

// Block mirrors one node of a requisite tree as it should be displayed.
// Separator is set only on the top-level group; Header only on nested
// groups with more than one child.
type Block struct {
	Kind       Kind                  `json:"kind"`
	Sigle      string                `json:"sigle,omitempty"`
	Label      string                `json:"label,omitempty"`
	Href       string                `json:"href,omitempty"`
	Coreq      bool                  `json:"coreq,omitempty"`
	Tag        string                `json:"tag,omitempty"`
	Connective requisites.Connective `json:"connective,omitempty"`
	Header     string                `json:"header,omitempty"`
	Separator  string                `json:"separator,omitempty"`
	Children   []Block               `json:"children,omitempty"`
}

type headers struct {
	all string
	any string
}

var (
	courseHeaders = headers{
		all: "Debes cumplir todos los requisitos de este grupo",
		any: "Debes cumplir al menos uno de los requisitos de este grupo",
	}
	restrictionHeaders = headers{
		all: "Debes cumplir todas las restricciones de este grupo",
		any: "Debes cumplir al menos una de las restricciones de este grupo",
	}
)

// Build lays out an annotated prerequisite or equivalence tree.
func Build(g requisites.Group[requisites.CourseRef]) Block {
	return buildGroup(g, false, courseBlock, courseHeaders)
}

// BuildRestrictions lays out a restrictions tree.
func BuildRestrictions(g requisites.Group[requisites.RestrictionRule]) Block {
	return buildGroup(g, false, restrictionBlock, restrictionHeaders)
}

// BuildList lays out courses as a flat list without separators.
func BuildList(courses []requisites.CourseRef) Block {
	list := Block{Kind: KindGroup, Connective: requisites.Or}
	for _, course := range courses {
		list.Children = append(list.Children, courseBlock(course))
	}
	return list
}

func buildGroup[L requisites.Leaf](g requisites.Group[L], nested bool, leaf func(L) Block, h headers) Block {
	block := Block{Kind: KindGroup, Connective: g.Type}

	if g.Len() > 1 {
		if nested {
			block.Header = h.all
			if g.Type == requisites.Or {
				block.Header = h.any
			}
		} else {
			block.Separator = g.Type.Label()
		}
	}

	for _, l := range g.Leaves {
		block.Children = append(block.Children, leaf(l))
	}
	for _, sub := range g.Groups {
		block.Children = append(block.Children, buildGroup(sub, true, leaf, h))
	}
	return block
}

func courseBlock(course requisites.CourseRef) Block {
	if course.Name == "" {
		return Block{Kind: KindInactive, Sigle: course.Sigle, Label: InactiveLabel, Coreq: course.IsCoreq}
	}
	return Block{
		Kind:  KindCourse,
		Sigle: course.Sigle,
		Label: course.Name,
		Href:  "/" + course.Sigle,
		Coreq: course.IsCoreq,
	}
}

func restrictionBlock(rule requisites.RestrictionRule) Block {
	return Block{Kind: KindRestriction, Tag: rule.Type, Label: rule.Raw}
}
