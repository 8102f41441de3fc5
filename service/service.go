// Package service assembles parsed and annotated requisite trees for courses
// from their stored raw texts.
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/requisites"
)

var ErrUnknownKind = errors.New("unknown requisite kind")

type Store interface {
	GetCourse(ctx context.Context, sigle string) (db.Course, error)
	GetRequisites(ctx context.Context, sigle string) (db.CourseRequisites, error)
	ListRequisites(ctx context.Context) ([]db.CourseRequisites, error)
}

type Service struct {
	store    Store
	resolver requisites.Resolver
}

func New(store Store, resolver requisites.Resolver) *Service {
	return &Service{store: store, resolver: resolver}
}

type CourseRequisites struct {
	Sigle         string
	Name          string
	Prerequisites requisites.Parsed[requisites.CourseRef]
	Restrictions  requisites.Parsed[requisites.RestrictionRule]
	Equivalences  requisites.Parsed[requisites.CourseRef]
	// Connector joins prerequisites and restrictions. Nil when the course
	// has no usable connector.
	Connector *requisites.Connective
}

// EquivalentCourses lists the annotated equivalences in order.
func (r CourseRequisites) EquivalentCourses() []requisites.CourseRef {
	if !r.Equivalences.Present {
		return nil
	}
	return requisites.Flatten(*r.Equivalences.Structure)
}

// CourseRequisites parses the stored requisites of a course and resolves the
// names of every referenced course.
func (s *Service) CourseRequisites(ctx context.Context, sigle string) (CourseRequisites, error) {
	raw, err := s.store.GetRequisites(ctx, sigle)
	if err != nil {
		return CourseRequisites{}, err
	}

	result := CourseRequisites{
		Sigle:         raw.Sigle,
		Prerequisites: requisites.Prerequisites.Parse(raw.Prerequisites),
		Restrictions:  requisites.Restrictions.Parse(raw.Restrictions),
		Equivalences:  requisites.Equivalences.Parse(raw.Equivalences),
	}
	if connective, ok := requisites.ParseConnector(raw.Connector); ok {
		result.Connector = &connective
	}

	course, err := s.store.GetCourse(ctx, sigle)
	switch {
	case err == nil:
		result.Name = course.Name
	case !errors.Is(err, db.ErrNotFound):
		return CourseRequisites{}, err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		result.Prerequisites = s.annotate(ctx, result.Prerequisites)
		return nil
	})
	group.Go(func() error {
		result.Equivalences = s.annotate(ctx, result.Equivalences)
		return nil
	})
	if err := group.Wait(); err != nil {
		return CourseRequisites{}, err
	}

	return result, nil
}

func (s *Service) annotate(ctx context.Context, parsed requisites.Parsed[requisites.CourseRef]) requisites.Parsed[requisites.CourseRef] {
	if !parsed.Present || s.resolver == nil {
		return parsed
	}
	tree := requisites.Annotate(ctx, *parsed.Structure, s.resolver)
	return requisites.Parsed[requisites.CourseRef]{Present: true, Structure: &tree}
}

// Unlocks lists the courses whose prerequisites mention sigle, annotated and
// ordered by sigle.
func (s *Service) Unlocks(ctx context.Context, sigle string) ([]requisites.CourseRef, error) {
	all, err := s.store.ListRequisites(ctx)
	if err != nil {
		return nil, err
	}

	unlocked := requisites.Group[requisites.CourseRef]{Type: requisites.Or}
	for _, raw := range all {
		if raw.Sigle == sigle {
			continue
		}
		parsed := requisites.Prerequisites.Parse(raw.Prerequisites)
		if !parsed.Present {
			continue
		}
		for _, mentioned := range requisites.Sigles(*parsed.Structure) {
			if mentioned == sigle {
				unlocked.Leaves = append(unlocked.Leaves, requisites.CourseRef{Sigle: raw.Sigle})
				break
			}
		}
	}

	if len(unlocked.Leaves) == 0 {
		return []requisites.CourseRef{}, nil
	}
	if s.resolver != nil {
		unlocked = requisites.Annotate(ctx, unlocked, s.resolver)
	}
	return unlocked.Leaves, nil
}

type Kind string

const (
	KindPrerequisites Kind = "prerequisites"
	KindRestrictions  Kind = "restrictions"
	KindEquivalences  Kind = "equivalences"
)

// ParseResult holds the tree of an ad-hoc parse. Exactly one of Courses and
// Rules is set when Present.
type ParseResult struct {
	Kind    Kind
	Present bool
	Courses *requisites.Group[requisites.CourseRef]
	Rules   *requisites.Group[requisites.RestrictionRule]
}

// Parse parses text with the grammar of kind. Course names are resolved only
// when annotate is set.
func (s *Service) Parse(ctx context.Context, kind Kind, text string, annotate bool) (ParseResult, error) {
	result := ParseResult{Kind: kind}

	switch kind {
	case KindPrerequisites, KindEquivalences:
		grammar := requisites.Prerequisites
		if kind == KindEquivalences {
			grammar = requisites.Equivalences
		}
		parsed := grammar.Parse(text)
		if annotate {
			parsed = s.annotate(ctx, parsed)
		}
		result.Present, result.Courses = parsed.Present, parsed.Structure
	case KindRestrictions:
		parsed := requisites.Restrictions.Parse(text)
		result.Present, result.Rules = parsed.Present, parsed.Structure
	default:
		return ParseResult{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return result, nil
}
