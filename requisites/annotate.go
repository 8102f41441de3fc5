package requisites

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/osuc/buscaramos/logger"
)

// Resolver looks up the display name of a course. An empty name with a nil
// error means the course does not exist.
type Resolver interface {
	ResolveName(ctx context.Context, sigle string) (string, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, sigle string) (string, error)

func (f ResolverFunc) ResolveName(ctx context.Context, sigle string) (string, error) {
	return f(ctx, sigle)
}

const maxConcurrentLookups = 16

// Annotate returns a copy of g with every course name filled in. Each
// distinct sigle is resolved once and concurrently; a failed lookup leaves
// that course's name empty and never fails the whole tree.
func Annotate(ctx context.Context, g Group[CourseRef], resolver Resolver) Group[CourseRef] {
	sigles := Sigles(g)
	names := make(map[string]string, len(sigles))
	var namesMutex sync.Mutex

	var eg errgroup.Group
	eg.SetLimit(maxConcurrentLookups)
	for _, sigle := range sigles {
		eg.Go(func() error {
			name := resolve(ctx, resolver, sigle)

			namesMutex.Lock()
			names[sigle] = name
			namesMutex.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	return withNames(g, names)
}

func resolve(ctx context.Context, resolver Resolver, sigle string) (name string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().Str("sigle", sigle).Interface("panic", r).Msg("Course name resolver panicked")
			name = ""
		}
	}()

	resolved, err := resolver.ResolveName(ctx, sigle)
	if err != nil {
		logger.Debug().Err(err).Str("sigle", sigle).Msg("Unable to resolve course name")
		return ""
	}
	return strings.TrimSpace(resolved)
}

func withNames(g Group[CourseRef], names map[string]string) Group[CourseRef] {
	annotated := Group[CourseRef]{Type: g.Type}
	if g.Leaves != nil {
		annotated.Leaves = make([]CourseRef, len(g.Leaves))
		for i, course := range g.Leaves {
			course.Name = names[course.Sigle]
			annotated.Leaves[i] = course
		}
	}
	if g.Groups != nil {
		annotated.Groups = make([]Group[CourseRef], len(g.Groups))
		for i, sub := range g.Groups {
			annotated.Groups[i] = withNames(sub, names)
		}
	}
	return annotated
}
