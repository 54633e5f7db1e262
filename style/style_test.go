package style_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/pp/style"
)

func TestStyle_invisibleRendersTextUnstyled(t *testing.T) {
	s := style.Invisible().Bold()
	assert.True(t, s.IsInvisible())
	assert.Equal(t, "hi", s.Render("hi"), "invisible styles still emit their bytes, just unstyled")
}

func TestStyle_normalIsZeroValue(t *testing.T) {
	var zero style.Style
	assert.Equal(t, style.Normal(), zero)
	assert.False(t, zero.IsInvisible())
}

func TestStyle_equality(t *testing.T) {
	a := style.Normal().Bold().Italic()
	b := style.Normal().Bold().Italic()
	c := style.Normal().Bold()
	assert.Equal(t, a, b, "two styles built the same way compare equal")
	assert.NotEqual(t, a, c)
}

func TestStyle_compositionIsImmutable(t *testing.T) {
	base := style.Normal()
	bold := base.Bold()
	assert.NotEqual(t, base, bold, "Bold returns a copy, leaving base untouched")
	assert.Equal(t, style.Normal(), base)
}

func TestStyle_attributesCompose(t *testing.T) {
	for _, tc := range []struct {
		name string
		s    style.Style
	}{
		{"bold", style.Normal().Bold()},
		{"italic", style.Normal().Italic()},
		{"underline", style.Normal().Underline()},
		{"strikethrough", style.Normal().Strikethrough()},
		{"foreground", style.Normal().Foreground(lipgloss.Color("5"))},
		{"stacked", style.Normal().Bold().Italic().Underline()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() { tc.s.Render("text") })
		})
	}
}
