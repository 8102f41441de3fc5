package api

import (
	"github.com/osuc/buscaramos/render"
	"github.com/osuc/buscaramos/requisites"
	"github.com/osuc/buscaramos/service"
)

type PrerequisitesResponse struct {
	HasPrerequisites bool                                    `json:"hasPrerequisites"`
	Structure        *requisites.Group[requisites.CourseRef] `json:"structure"`
}

type RestrictionsResponse struct {
	HasRestrictions bool                                          `json:"hasRestrictions"`
	Structure       *requisites.Group[requisites.RestrictionRule] `json:"structure"`
}

type EquivalencesResponse struct {
	HasEquivalences bool                                    `json:"hasEquivalences"`
	Structure       *requisites.Group[requisites.CourseRef] `json:"structure"`
	Courses         []requisites.CourseRef                  `json:"courses"`
}

type CourseRequisitesResponse struct {
	Sigle         string                 `json:"sigle"`
	Name          string                 `json:"name"`
	Prerequisites PrerequisitesResponse  `json:"prerequisites"`
	Restrictions  RestrictionsResponse   `json:"restrictions"`
	Equivalences  EquivalencesResponse   `json:"equivalences"`
	Connector     *requisites.Connective `json:"connector"`
}

func newCourseRequisitesResponse(r service.CourseRequisites) CourseRequisitesResponse {
	courses := r.EquivalentCourses()
	if courses == nil {
		courses = []requisites.CourseRef{}
	}
	return CourseRequisitesResponse{
		Sigle: r.Sigle,
		Name:  r.Name,
		Prerequisites: PrerequisitesResponse{
			HasPrerequisites: r.Prerequisites.Present,
			Structure:        r.Prerequisites.Structure,
		},
		Restrictions: RestrictionsResponse{
			HasRestrictions: r.Restrictions.Present,
			Structure:       r.Restrictions.Structure,
		},
		Equivalences: EquivalencesResponse{
			HasEquivalences: r.Equivalences.Present,
			Structure:       r.Equivalences.Structure,
			Courses:         courses,
		},
		Connector: r.Connector,
	}
}

// CourseBlocksResponse is the display form of a course's requisites. Absent
// sections are null.
type CourseBlocksResponse struct {
	Sigle         string                 `json:"sigle"`
	Name          string                 `json:"name"`
	Prerequisites *render.Block          `json:"prerequisites"`
	Restrictions  *render.Block          `json:"restrictions"`
	Equivalences  *render.Block          `json:"equivalences"`
	Connector     *requisites.Connective `json:"connector"`
}

func newCourseBlocksResponse(r service.CourseRequisites) CourseBlocksResponse {
	response := CourseBlocksResponse{Sigle: r.Sigle, Name: r.Name, Connector: r.Connector}
	if r.Prerequisites.Present {
		block := render.Build(*r.Prerequisites.Structure)
		response.Prerequisites = &block
	}
	if r.Restrictions.Present {
		block := render.BuildRestrictions(*r.Restrictions.Structure)
		response.Restrictions = &block
	}
	if r.Equivalences.Present {
		block := render.BuildList(r.EquivalentCourses())
		response.Equivalences = &block
	}
	return response
}

type UnlocksResponse struct {
	Sigle   string                 `json:"sigle"`
	Courses []requisites.CourseRef `json:"courses"`
}

type ParseRequest struct {
	Kind     service.Kind `json:"kind" binding:"required"`
	Text     string       `json:"text"`
	Annotate bool         `json:"annotate"`
}

type ParseResponse struct {
	Kind      service.Kind `json:"kind"`
	Present   bool         `json:"present"`
	Structure any          `json:"structure"`
}

func newParseResponse(r service.ParseResult) ParseResponse {
	response := ParseResponse{Kind: r.Kind, Present: r.Present}
	switch {
	case r.Courses != nil:
		response.Structure = r.Courses
	case r.Rules != nil:
		response.Structure = r.Rules
	}
	return response
}

func newParseBlocksResponse(r service.ParseResult) ParseResponse {
	response := ParseResponse{Kind: r.Kind, Present: r.Present}
	switch {
	case r.Courses != nil && r.Kind == service.KindEquivalences:
		response.Structure = render.BuildList(requisites.Flatten(*r.Courses))
	case r.Courses != nil:
		response.Structure = render.Build(*r.Courses)
	case r.Rules != nil:
		response.Structure = render.BuildRestrictions(*r.Rules)
	}
	return response
}
