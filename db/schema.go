package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS semesters (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		sigle TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		credits INTEGER NOT NULL DEFAULT 0,
		school TEXT NOT NULL DEFAULT '',
		last_semester TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS course_requisites (
		sigle TEXT PRIMARY KEY,
		prerequisites TEXT NOT NULL DEFAULT '',
		restrictions TEXT NOT NULL DEFAULT '',
		connector TEXT NOT NULL DEFAULT '',
		equivalences TEXT NOT NULL DEFAULT '',
		scraped_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS course_requisites_prerequisites_idx ON course_requisites (sigle) WHERE prerequisites <> ''`,
}

// Migrate creates any missing tables. It is safe to run repeatedly.
func (d *Database) Migrate(ctx context.Context) error {
	for i, statement := range schema {
		if _, err := d.Pool.Exec(ctx, statement); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
