package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osuc/buscaramos/requisites"
)

// Theme styles each part of a text rendering.
type Theme struct {
	Sigle    func(string) string
	Course   func(string) string
	Inactive func(string) string
	Coreq    func(string) string
	Tag      func(string) string
	Header   func(string) string
	And      func(string) string
	Or       func(string) string
}

func identity(s string) string { return s }

// PlainTheme writes unstyled text.
func PlainTheme() Theme {
	return Theme{
		Sigle:    identity,
		Course:   identity,
		Inactive: identity,
		Coreq:    identity,
		Tag:      identity,
		Header:   identity,
		And:      identity,
		Or:       identity,
	}
}

func styled(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}

// DefaultTheme colors connectives, corequisites and inactive courses for
// terminals.
func DefaultTheme() Theme {
	pill := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Theme{
		Sigle:    styled(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))),
		Course:   identity,
		Inactive: styled(lipgloss.NewStyle().Faint(true).Strikethrough(true)),
		Coreq:    styled(lipgloss.NewStyle().Foreground(lipgloss.Color("208"))),
		Tag:      styled(lipgloss.NewStyle().Foreground(lipgloss.Color("9"))),
		Header:   styled(lipgloss.NewStyle().Faint(true)),
		And:      styled(pill.Foreground(lipgloss.Color("12"))),
		Or:       styled(pill.Foreground(lipgloss.Color("10"))),
	}
}

const coreqLabel = "correquisito"

type textWriter struct {
	w     io.Writer
	theme Theme
	err   error
}

// Text writes b as indented lines.
func Text(w io.Writer, b Block, theme Theme) error {
	tw := &textWriter{w: w, theme: theme}
	tw.block(b, 0)
	return tw.err
}

func (tw *textWriter) line(depth int, text string) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, strings.Repeat("  ", depth)+text)
}

func (tw *textWriter) block(b Block, depth int) {
	switch b.Kind {
	case KindCourse:
		text := tw.theme.Sigle(b.Sigle) + "  " + tw.theme.Course(b.Label)
		if b.Coreq {
			text += " " + tw.theme.Coreq(coreqLabel)
		}
		tw.line(depth, text)
	case KindInactive:
		text := tw.theme.Inactive(b.Sigle + "  " + b.Label)
		if b.Coreq {
			text += " " + tw.theme.Coreq(coreqLabel)
		}
		tw.line(depth, text)
	case KindRestriction:
		tw.line(depth, tw.theme.Tag(b.Tag)+"  "+b.Label)
	case KindGroup:
		childDepth := depth
		if b.Header != "" {
			tw.line(depth, tw.theme.Header("• "+b.Header))
			childDepth++
		}
		for i, child := range b.Children {
			if i > 0 && b.Separator != "" {
				tw.line(childDepth, tw.separator(b.Connective, b.Separator))
			}
			next := childDepth
			if child.Kind == KindGroup && len(child.Children) > 1 {
				next++
			}
			tw.block(child, next)
		}
	}
}

func (tw *textWriter) separator(connective requisites.Connective, label string) string {
	if connective == requisites.Or {
		return tw.theme.Or(label)
	}
	return tw.theme.And(label)
}
