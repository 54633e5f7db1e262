// Package style provides the styled-text contract that the pp layout
// engine's back-ends render against: a small value type with the
// Invisible() and Normal() constants the core engine requires,
// plus concrete styling backed by github.com/charmbracelet/lipgloss so a
// real terminal back-end has colors, bold, and friends to work with.
//
// This mirrors the shape of the Theme/Styles split in
// sam-saffron-jarvis-term-llm's internal/ui/styles.go: a small set of named
// semantic styles built from a theme, rendered through a lipgloss.Renderer
// bound to a particular output.
package style

import "github.com/charmbracelet/lipgloss"

// Style is a value-type styling hint carried on every bounded text run.
// Two Styles built the same way compare equal by value (reflect.DeepEqual,
// as the tests use); Style does not support == or use as a map key, since
// the wrapped lipgloss.Style holds a func-typed field.
type Style struct {
	invisible bool
	lip lipgloss.Style
}

// Invisible returns the Style used for synthetic spaces and break
// substitutes: it renders its text unstyled even when given other
// lipgloss attributes, since invisibility is the one semantic its
// consumers (the line state machine, the speculative buffer) rely on.
func Invisible() Style {
	return Style{invisible: true}
}

// Normal returns the zero styling: no color, no attributes.
func Normal() Style {
	return Style{}
}

// Styled returns a Style wrapping the given lipgloss.Style for rendering.
func Styled(s lipgloss.Style) Style {
	return Style{lip: s}
}

// IsInvisible reports whether s was built with Invisible().
func (s Style) IsInvisible() bool { return s.invisible }

// Render applies the style to text, the way backend.Terminal does for each
// bounded LIR run. Invisible styles render their text unstyled (invisible
// is a layout concept, not a terminal attribute — the back-end still must
// emit the bytes).
func (s Style) Render(text string) string {
	if s.invisible {
		return text
	}
	return s.lip.Render(text)
}

// Bold returns a copy of s with the bold attribute set, convenience used by
// markdown.ToOps for **strong** emphasis.
func (s Style) Bold() Style {
	s.lip = s.lip.Bold(true)
	return s
}

// Italic returns a copy of s with the italic attribute set, used by
// markdown.ToOps for *emphasis*.
func (s Style) Italic() Style {
	s.lip = s.lip.Italic(true)
	return s
}

// Foreground returns a copy of s painted with the given color.
func (s Style) Foreground(c lipgloss.TerminalColor) Style {
	s.lip = s.lip.Foreground(c)
	return s
}

// Underline returns a copy of s with the underline attribute set, used by
// markdown.ToOps for links.
func (s Style) Underline() Style {
	s.lip = s.lip.Underline(true)
	return s
}

// Strikethrough returns a copy of s with the strikethrough attribute set,
// used by markdown.ToOps for ~~deleted~~ text.
func (s Style) Strikethrough() Style {
	s.lip = s.lip.Strikethrough(true)
	return s
}
