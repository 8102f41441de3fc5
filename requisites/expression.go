package requisites

import (
	"strings"

	"github.com/osuc/buscaramos/logger"
)

const (
	andSeparator = " y "
	orSeparator  = " o "
)

// Grammar parses one kind of requisite text. Extract turns a run of text
// with no connective left into leaves. Atom, when set, may claim a whole
// (possibly parenthesized) string as a single leaf before it is split.
type Grammar[L Leaf] struct {
	Name    string
	Extract func(string) []L
	Atom    func(string) (L, bool)
}

// Parse never fails: absent text and any panic during the descent both
// yield a Parsed with Present set to false.
func (g Grammar[L]) Parse(text string) (parsed Parsed[L]) {
	if IsAbsent(text) {
		return Parsed[L]{}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Warn().
				Str("grammar", g.Name).
				Str("text", text).
				Interface("panic", r).
				Msg("Unable to parse requisite expression")
			parsed = Parsed[L]{}
		}
	}()

	structure := g.parse(text)
	return Parsed[L]{Present: true, Structure: &structure}
}

// OR is split before AND, so "o" groups looser than "y".
func (g Grammar[L]) parse(s string) Group[L] {
	s = strings.TrimSpace(s)
	if leaf, ok := g.atom(s); ok {
		return Group[L]{Type: And, Leaves: []L{leaf}}
	}

	s = unwrap(s)
	if leaf, ok := g.atom(s); ok {
		return Group[L]{Type: And, Leaves: []L{leaf}}
	}

	if !strings.Contains(s, andSeparator) && !strings.Contains(s, orSeparator) && !strings.Contains(s, "(") {
		return Group[L]{Type: And, Leaves: g.Extract(s)}
	}

	if parts := splitTopLevel(s, orSeparator); len(parts) > 1 {
		return g.join(Or, parts)
	}
	if parts := splitTopLevel(s, andSeparator); len(parts) > 1 {
		return g.join(And, parts)
	}

	return Group[L]{Type: And, Leaves: g.Extract(s)}
}

func (g Grammar[L]) join(connective Connective, parts []string) Group[L] {
	group := Group[L]{Type: connective}
	for _, part := range parts {
		group.Groups = append(group.Groups, g.parse(part))
	}
	return group
}

func (g Grammar[L]) atom(s string) (L, bool) {
	if g.Atom == nil {
		var zero L
		return zero, false
	}
	return g.Atom(s)
}

// unwrap strips one outer pair of parentheses when the text inside them
// is still balanced. "(A o B) y (C o D)" is left alone.
func unwrap(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	inner := s[1 : len(s)-1]
	if !balanced(inner) {
		return s
	}
	return strings.TrimSpace(inner)
}

// balanced reports whether the running parenthesis depth of s never drops
// below zero and ends at zero.
func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// splitTopLevel splits s on sep where the parenthesis depth is zero.
// Blank parts are dropped.
func splitTopLevel(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = appendPart(parts, s[start:i])
				start = i + len(sep)
				i += len(sep) - 1
			}
		}
	}
	return appendPart(parts, s[start:])
}

func appendPart(parts []string, part string) []string {
	if strings.TrimSpace(part) == "" {
		return parts
	}
	return append(parts, part)
}
