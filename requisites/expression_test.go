package requisites

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courses(sigles ...string) Group[CourseRef] {
	group := Group[CourseRef]{Type: And}
	for _, sigle := range sigles {
		group.Leaves = append(group.Leaves, CourseRef{Sigle: sigle})
	}
	return group
}

func groups(connective Connective, children ...Group[CourseRef]) Group[CourseRef] {
	return Group[CourseRef]{Type: connective, Groups: children}
}

func TestParseAbsent(t *testing.T) {
	for _, text := range []string{"", "   ", "No tiene", "  No tiene \n"} {
		parsed := Prerequisites.Parse(text)
		assert.False(t, parsed.Present, "text %q", text)
		assert.Nil(t, parsed.Structure, "text %q", text)
	}
}

func TestParsePrerequisites(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Group[CourseRef]
	}{
		{
			name: "single course",
			text: "MAT1610",
			want: courses("MAT1610"),
		},
		{
			name: "alternatives",
			text: "MAT1610 o MAT1620",
			want: groups(Or, courses("MAT1610"), courses("MAT1620")),
		},
		{
			name: "grouped alternative and course",
			text: "(MAT1610 o MAT1620) y FIS1513",
			want: groups(And,
				groups(Or, courses("MAT1610"), courses("MAT1620")),
				courses("FIS1513"),
			),
		},
		{
			name: "two grouped alternatives",
			text: "(MAT1203 o MAT1212) y (FIS1513 o FIS1533)",
			want: groups(And,
				groups(Or, courses("MAT1203"), courses("MAT1212")),
				groups(Or, courses("FIS1513"), courses("FIS1533")),
			),
		},
		{
			name: "or binds looser than and",
			text: "MAT1610 y MAT1620 o FIS1513",
			want: groups(Or,
				groups(And, courses("MAT1610"), courses("MAT1620")),
				courses("FIS1513"),
			),
		},
		{
			name: "redundant outer parentheses",
			text: "  (MAT1610 y FIS1513)  ",
			want: groups(And, courses("MAT1610"), courses("FIS1513")),
		},
		{
			name: "nested groups",
			text: "((MAT1610 y MAT1620) o MAT1630) y FIS1513",
			want: groups(And,
				groups(Or,
					groups(And, courses("MAT1610"), courses("MAT1620")),
					courses("MAT1630"),
				),
				courses("FIS1513"),
			),
		},
		{
			name: "suffix letter",
			text: "FIS1533A o IIC1103",
			want: groups(Or, courses("FIS1533A"), courses("IIC1103")),
		},
		{
			name: "unbalanced open parenthesis",
			text: "(MAT1610 o MAT1620",
			want: courses("MAT1610", "MAT1620"),
		},
		{
			name: "unbalanced close parenthesis",
			text: "MAT1610) o (MAT1620",
			want: courses("MAT1610", "MAT1620"),
		},
		{
			name: "no course codes",
			text: "Aprobación del director",
			want: Group[CourseRef]{Type: And},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Prerequisites.Parse(tt.text)
			require.True(t, parsed.Present)
			require.NotNil(t, parsed.Structure)
			assert.Equal(t, tt.want, *parsed.Structure)
		})
	}
}

func TestParseCorequisites(t *testing.T) {
	parsed := Prerequisites.Parse("(MAT1620 o MAT1630(c)) y FIS1514")
	require.True(t, parsed.Present)

	want := groups(And,
		groups(Or,
			courses("MAT1620"),
			Group[CourseRef]{Type: And, Leaves: []CourseRef{{Sigle: "MAT1630", IsCoreq: true}}},
		),
		courses("FIS1514"),
	)
	assert.Equal(t, want, *parsed.Structure)
}

func TestParseEquivalencesIgnoreCoreq(t *testing.T) {
	parsed := Equivalences.Parse("(MAT1630(c) o MAT1640)")
	require.True(t, parsed.Present)

	for _, course := range Flatten(*parsed.Structure) {
		assert.False(t, course.IsCoreq, course.Sigle)
	}
	assert.Equal(t, []string{"MAT1630", "MAT1640"}, Sigles(*parsed.Structure))
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"(", ")", "((", "))", " o ", " y ", "o", "y", "()", "(( ))", "() o ()",
		"MAT1610 o", "o MAT1610", "MAT1610 o  o MAT1620", ") y (",
		strings.Repeat("(", 64) + "MAT1610" + strings.Repeat(")", 64),
		strings.Repeat("(MAT1610 y ", 32) + "FIS1513" + strings.Repeat(")", 32),
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			Prerequisites.Parse(input)
			Restrictions.Parse(input)
			Equivalences.Parse(input)
		}, "input %q", input)
	}
}

func TestParseRecoversFromPanic(t *testing.T) {
	grammar := Grammar[CourseRef]{
		Name:    "broken",
		Extract: func(string) []CourseRef { panic("boom") },
	}

	parsed := grammar.Parse("MAT1610")
	assert.False(t, parsed.Present)
	assert.Nil(t, parsed.Structure)
}

func TestParseRoundTripsSigles(t *testing.T) {
	for _, text := range []string{
		"MAT1610 o MAT1620",
		"(MAT1610 o MAT1620) y FIS1513",
		"((MAT1610 y MAT1620) o MAT1630) y (FIS1513 o FIS1533A)",
	} {
		parsed := Prerequisites.Parse(text)
		require.True(t, parsed.Present)

		flat := Flatten(*parsed.Structure)
		assert.Equal(t, ExtractCourses(text), flat, text)

		reparsed := Prerequisites.Parse(JoinSigles(flat))
		assert.Equal(t, Sigles(*parsed.Structure), Sigles(*reparsed.Structure), text)
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(MAT1610)", "MAT1610"},
		{"( MAT1610 o MAT1620 )", "MAT1610 o MAT1620"},
		{"(MAT1610 o MAT1620) y (FIS1513 o FIS1533)", "(MAT1610 o MAT1620) y (FIS1513 o FIS1533)"},
		{"((MAT1610))", "(MAT1610)"},
		{"(MAT1610", "(MAT1610"},
		{"()", ""},
		{"(", "("},
	}
	for _, tt := range tests {
		if got := unwrap(tt.in); got != tt.want {
			t.Errorf("unwrap(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in   string
		sep  string
		want []string
	}{
		{"A o B", orSeparator, []string{"A", "B"}},
		{"(A o B) y C", orSeparator, []string{"(A o B) y C"}},
		{"(A o B) y C", andSeparator, []string{"(A o B)", "C"}},
		{"A o  o B", orSeparator, []string{"A", "B"}},
		{"A) o (B", orSeparator, []string{"A) o (B"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTopLevel(tt.in, tt.sep), "splitTopLevel(%q)", tt.in)
	}
}

func TestBalanced(t *testing.T) {
	assert.True(t, balanced(""))
	assert.True(t, balanced("(a)(b)"))
	assert.True(t, balanced("((a) o b)"))
	assert.False(t, balanced("a) o (b"))
	assert.False(t, balanced("(a"))
	assert.False(t, balanced("a)"))
}
