package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const listSemesters = `SELECT code, name FROM semesters ORDER BY code DESC`
const insertSemester = `INSERT INTO semesters (code, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`

const getCourse = `SELECT sigle, name, credits, school, last_semester FROM courses WHERE sigle = $1`
const getCourseName = `SELECT name FROM courses WHERE sigle = $1`
const upsertCourse = `INSERT INTO courses (sigle, name, credits, school, last_semester) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (sigle) DO UPDATE SET name=EXCLUDED.name, credits=EXCLUDED.credits, school=EXCLUDED.school, last_semester=GREATEST(courses.last_semester, EXCLUDED.last_semester)`

const getRequisites = `SELECT sigle, prerequisites, restrictions, connector, equivalences, scraped_at FROM course_requisites WHERE sigle = $1`
const listRequisites = `SELECT sigle, prerequisites, restrictions, connector, equivalences, scraped_at FROM course_requisites ORDER BY sigle`
const upsertRequisites = `INSERT INTO course_requisites (sigle, prerequisites, restrictions, connector, equivalences, scraped_at) VALUES ($1, $2, $3, $4, $5, now()) ON CONFLICT (sigle) DO UPDATE SET prerequisites=EXCLUDED.prerequisites, restrictions=EXCLUDED.restrictions, connector=EXCLUDED.connector, equivalences=EXCLUDED.equivalences, scraped_at=EXCLUDED.scraped_at`

// clean removes NUL bytes, which Postgres rejects in text columns.
func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

func insertCallback(ct pgconn.CommandTag) error {
	return nil
}

func (d *Database) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if err := d.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return nil
}

func (d *Database) ListSemesters(ctx context.Context) ([]Semester, error) {
	rows, err := d.Pool.Query(ctx, listSemesters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []Semester
	for rows.Next() {
		var semester Semester
		if err := rows.Scan(&semester.Code, &semester.Name); err != nil {
			return nil, err
		}
		semesters = append(semesters, semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

func (d *Database) InsertSemesters(ctx context.Context, semesters []Semester) error {
	if len(semesters) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, semester := range semesters {
		batch.Queue(insertSemester, clean(semester.Code), clean(semester.Name)).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

func (d *Database) GetCourse(ctx context.Context, sigle string) (Course, error) {
	var course Course
	err := d.Pool.QueryRow(ctx, getCourse, sigle).Scan(
		&course.Sigle,
		&course.Name,
		&course.Credits,
		&course.School,
		&course.LastSemester,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, fmt.Errorf("course %s: %w", sigle, ErrNotFound)
	}
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

func (d *Database) UpsertCourses(ctx context.Context, courses []Course) error {
	if len(courses) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, course := range courses {
		batch.Queue(
			upsertCourse,
			clean(course.Sigle),
			clean(course.Name),
			course.Credits,
			clean(course.School),
			clean(course.LastSemester),
		).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

func scanRequisites(row pgx.Row) (CourseRequisites, error) {
	var r CourseRequisites
	err := row.Scan(&r.Sigle, &r.Prerequisites, &r.Restrictions, &r.Connector, &r.Equivalences, &r.ScrapedAt)
	return r, err
}

func (d *Database) GetRequisites(ctx context.Context, sigle string) (CourseRequisites, error) {
	r, err := scanRequisites(d.Pool.QueryRow(ctx, getRequisites, sigle))
	if errors.Is(err, pgx.ErrNoRows) {
		return CourseRequisites{}, fmt.Errorf("requisites of %s: %w", sigle, ErrNotFound)
	}
	if err != nil {
		return CourseRequisites{}, err
	}
	return r, nil
}

func (d *Database) ListRequisites(ctx context.Context) ([]CourseRequisites, error) {
	rows, err := d.Pool.Query(ctx, listRequisites)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []CourseRequisites
	for rows.Next() {
		r, err := scanRequisites(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return all, nil
}

func (d *Database) UpsertRequisites(ctx context.Context, all []CourseRequisites) error {
	if len(all) == 0 {
		return nil
	}

	batch := pgx.Batch{}
	for _, r := range all {
		batch.Queue(
			upsertRequisites,
			clean(r.Sigle),
			clean(r.Prerequisites),
			clean(r.Restrictions),
			clean(r.Connector),
			clean(r.Equivalences),
		).Exec(insertCallback)
	}

	return d.sendBatch(ctx, &batch)
}

// ResolveName returns the stored name of a course, or "" when the course is
// unknown.
func (d *Database) ResolveName(ctx context.Context, sigle string) (string, error) {
	var name string
	err := d.Pool.QueryRow(ctx, getCourseName, sigle).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}
