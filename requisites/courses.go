package requisites

import (
	"regexp"
	"strings"
)

// CourseRef is a course code at a leaf of a prerequisite or equivalence
// tree. An empty Name after annotation means the course could not be found.
type CourseRef struct {
	Sigle   string `json:"sigle"`
	Name    string `json:"name,omitempty"`
	IsCoreq bool   `json:"isCoreq,omitempty"`
}

var (
	courseScan  = regexp.MustCompile(`([A-Z]{2,4}\d{1,4}[A-Z]?)(\([cC]\))?`)
	courseSigle = regexp.MustCompile(`^[A-Z]{2,4}\d{1,4}[A-Z]?$`)
)

// ValidSigle reports whether s is a well-formed course code such as
// MAT1620 or FIS1533A.
func ValidSigle(s string) bool {
	return courseSigle.MatchString(s)
}

// ExtractCourses scans text left to right for course codes. A code directly
// followed by "(c)" is a corequisite.
func ExtractCourses(text string) []CourseRef {
	var courses []CourseRef
	for _, match := range courseScan.FindAllStringSubmatch(text, -1) {
		if !ValidSigle(match[1]) {
			continue
		}
		courses = append(courses, CourseRef{Sigle: match[1], IsCoreq: match[2] != ""})
	}
	return courses
}

// JoinSigles is the inverse of ExtractCourses up to coreq markers.
func JoinSigles(courses []CourseRef) string {
	sigles := make([]string, 0, len(courses))
	for _, course := range courses {
		sigles = append(sigles, course.Sigle)
	}
	return strings.Join(sigles, " ")
}

var Prerequisites = Grammar[CourseRef]{
	Name:    "prerequisites",
	Extract: ExtractCourses,
}

// Equivalences share the prerequisite syntax but have no corequisites.
var Equivalences = Grammar[CourseRef]{
	Name: "equivalences",
	Extract: func(text string) []CourseRef {
		courses := ExtractCourses(text)
		for i := range courses {
			courses[i].IsCoreq = false
		}
		return courses
	},
}

// ParseConnector reads the relation between the prerequisites and the
// restrictions of a course, written either in Spanish or as AND/OR.
func ParseConnector(s string) (Connective, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "AND":
		return And, true
	case "O", "OR":
		return Or, true
	}
	return "", false
}
