package staticdata

import "github.com/osuc/buscaramos/requisites"

// The static data service has used both is_coreq and isCoreq over time.
type wireCourse struct {
	Sigle        string `json:"sigle"`
	IsCoreqSnake *bool  `json:"is_coreq"`
	IsCoreq      *bool  `json:"isCoreq"`
}

func (w wireCourse) coreq() bool {
	switch {
	case w.IsCoreqSnake != nil:
		return *w.IsCoreqSnake
	case w.IsCoreq != nil:
		return *w.IsCoreq
	}
	return false
}

type wireGroup struct {
	Type    string       `json:"type"`
	Courses []wireCourse `json:"courses"`
	Groups  []wireGroup  `json:"groups"`
}

func (w wireGroup) toGroup() requisites.Group[requisites.CourseRef] {
	connective, ok := requisites.ParseConnector(w.Type)
	if !ok {
		connective = requisites.And
	}

	group := requisites.Group[requisites.CourseRef]{Type: connective}
	for _, course := range w.Courses {
		group.Leaves = append(group.Leaves, requisites.CourseRef{
			Sigle:   course.Sigle,
			IsCoreq: course.coreq(),
		})
	}
	for _, sub := range w.Groups {
		group.Groups = append(group.Groups, sub.toGroup())
	}
	return group
}

type wireMetadata struct {
	HasPrerequisites bool       `json:"has_prerequisites"`
	HasRestrictions  bool       `json:"has_restrictions"`
	HasEquivalences  bool       `json:"has_equivalences"`
	UnlocksCourses   bool       `json:"unlocks_courses"`
	Prerequisites    *wireGroup `json:"prerequisites"`
	Connector        string     `json:"connector"`
	Equivalences     []string   `json:"equivalences"`
}

type wireCourseData struct {
	Sigle        string       `json:"sigle"`
	Name         string       `json:"name"`
	Credits      int          `json:"credits"`
	School       string       `json:"school"`
	Area         []string     `json:"area"`
	Categories   []string     `json:"categories"`
	Format       []string     `json:"format"`
	Campus       []string     `json:"campus"`
	Description  string       `json:"description"`
	LastSemester string       `json:"last_semester"`
	Metadata     wireMetadata `json:"parsed_meta_data"`
}

func (w wireCourseData) toCourse() *Course {
	course := &Course{
		Sigle:            w.Sigle,
		Name:             w.Name,
		Credits:          w.Credits,
		School:           w.School,
		Area:             w.Area,
		Categories:       w.Categories,
		Format:           w.Format,
		Campus:           w.Campus,
		Description:      w.Description,
		LastSemester:     w.LastSemester,
		HasPrerequisites: w.Metadata.HasPrerequisites,
		HasRestrictions:  w.Metadata.HasRestrictions,
		HasEquivalences:  w.Metadata.HasEquivalences,
		UnlocksCourses:   w.Metadata.UnlocksCourses,
		Connector:        w.Metadata.Connector,
		Equivalences:     w.Metadata.Equivalences,
	}
	if w.Metadata.Prerequisites != nil {
		tree := w.Metadata.Prerequisites.toGroup()
		course.Prerequisites = &tree
	}
	return course
}
