package requisites

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapResolver struct {
	names map[string]string
	calls sync.Map
}

func (r *mapResolver) ResolveName(ctx context.Context, sigle string) (string, error) {
	count, _ := r.calls.LoadOrStore(sigle, new(int32))
	atomic.AddInt32(count.(*int32), 1)
	return r.names[sigle], nil
}

func (r *mapResolver) callCount(sigle string) int32 {
	count, ok := r.calls.Load(sigle)
	if !ok {
		return 0
	}
	return atomic.LoadInt32(count.(*int32))
}

// sameShape compares connectives, child counts and sigles, ignoring names.
func sameShape(t *testing.T, want, got Group[CourseRef]) {
	t.Helper()
	require.Equal(t, want.Type, got.Type)
	require.Len(t, got.Leaves, len(want.Leaves))
	require.Len(t, got.Groups, len(want.Groups))
	for i := range want.Leaves {
		assert.Equal(t, want.Leaves[i].Sigle, got.Leaves[i].Sigle)
		assert.Equal(t, want.Leaves[i].IsCoreq, got.Leaves[i].IsCoreq)
	}
	for i := range want.Groups {
		sameShape(t, want.Groups[i], got.Groups[i])
	}
}

func TestAnnotateScenario(t *testing.T) {
	tree := *Prerequisites.Parse("(MAT1203 o MAT1212) y (FIS1513 o FIS1533)").Structure
	resolver := &mapResolver{names: map[string]string{"MAT1203": "Cálculo I"}}

	annotated := Annotate(context.Background(), tree, resolver)

	want := groups(And,
		groups(Or,
			Group[CourseRef]{Type: And, Leaves: []CourseRef{{Sigle: "MAT1203", Name: "Cálculo I"}}},
			courses("MAT1212"),
		),
		groups(Or, courses("FIS1513"), courses("FIS1533")),
	)
	assert.Equal(t, want, annotated)
}

func TestAnnotatePreservesShapeAndInput(t *testing.T) {
	for _, text := range []string{
		"MAT1610",
		"MAT1610 o MAT1620(c)",
		"((MAT1610 y MAT1620) o MAT1630) y (FIS1513 o FIS1533A)",
		"IIC1103 IIC2233 IIC2133",
	} {
		tree := *Prerequisites.Parse(text).Structure
		resolver := ResolverFunc(func(ctx context.Context, sigle string) (string, error) {
			return "Curso " + sigle, nil
		})

		annotated := Annotate(context.Background(), tree, resolver)

		sameShape(t, tree, annotated)
		for _, course := range Flatten(annotated) {
			assert.Equal(t, "Curso "+course.Sigle, course.Name)
		}
		for _, course := range Flatten(tree) {
			assert.Empty(t, course.Name, "input tree was mutated")
		}
	}
}

func TestAnnotateIsolatesFailures(t *testing.T) {
	tree := *Prerequisites.Parse("MAT1610 y (FIS1513 o IIC1103) y EYP1025").Structure
	resolver := ResolverFunc(func(ctx context.Context, sigle string) (string, error) {
		switch sigle {
		case "MAT1610":
			return "", errors.New("service unavailable")
		case "FIS1513":
			panic("resolver bug")
		case "IIC1103":
			return "", nil
		}
		return "Probabilidades y Estadística", nil
	})

	var annotated Group[CourseRef]
	require.NotPanics(t, func() {
		annotated = Annotate(context.Background(), tree, resolver)
	})

	names := make(map[string]string)
	for _, course := range Flatten(annotated) {
		names[course.Sigle] = course.Name
	}
	assert.Equal(t, map[string]string{
		"MAT1610": "",
		"FIS1513": "",
		"IIC1103": "",
		"EYP1025": "Probabilidades y Estadística",
	}, names)
}

func TestAnnotateResolvesEachSigleOnce(t *testing.T) {
	tree := *Prerequisites.Parse("(MAT1610 y FIS1513) o (MAT1610 y IIC1103) o MAT1610").Structure
	resolver := &mapResolver{names: map[string]string{"MAT1610": "Cálculo I"}}

	annotated := Annotate(context.Background(), tree, resolver)

	assert.Equal(t, int32(1), resolver.callCount("MAT1610"))
	assert.Equal(t, int32(1), resolver.callCount("FIS1513"))
	assert.Equal(t, int32(1), resolver.callCount("IIC1103"))
	for _, course := range Flatten(annotated) {
		if course.Sigle == "MAT1610" {
			assert.Equal(t, "Cálculo I", course.Name)
		}
	}
}

func TestAnnotateRunsLookupsConcurrently(t *testing.T) {
	tree := *Prerequisites.Parse("MAT1610 y MAT1620 y MAT1630 y MAT1640").Structure

	var inFlight, peak int32
	resolver := ResolverFunc(func(ctx context.Context, sigle string) (string, error) {
		current := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if current <= old || atomic.CompareAndSwapInt32(&peak, old, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return sigle, nil
	})

	Annotate(context.Background(), tree, resolver)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1))
}

func TestAnnotateHonorsCancelledContext(t *testing.T) {
	tree := *Prerequisites.Parse("MAT1610 o FIS1513").Structure
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := ResolverFunc(func(ctx context.Context, sigle string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "never", nil
	})

	annotated := Annotate(ctx, tree, resolver)
	sameShape(t, tree, annotated)
	for _, course := range Flatten(annotated) {
		assert.Empty(t, course.Name)
	}
}
