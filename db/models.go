package db

import "time"

type Semester struct {
	Code string
	Name string
}

type Course struct {
	Sigle        string
	Name         string
	Credits      int
	School       string
	LastSemester string
}

// CourseRequisites holds the raw requisite texts of a course exactly as the
// catalog publishes them. Trees are derived from these on every read.
type CourseRequisites struct {
	Sigle         string
	Prerequisites string
	Restrictions  string
	Connector     string
	Equivalences  string
	ScrapedAt     time.Time
}
