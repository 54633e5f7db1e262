// Package backend provides pp.Backend implementations: a plain in-memory
// buffer for tests and non-tty output, and a real terminal renderer.
package backend

import (
	"bytes"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/jcorbin/pp"
	"github.com/jcorbin/pp/style"
)

// String is a plain back-end that buffers rendered text in memory,
// ignoring style entirely: the usual destination for golden-file tests and
// for output piped to something that doesn't want ANSI escapes.
type String struct {
	buf bytes.Buffer
}

// EmitText appends text as-is.
func (s *String) EmitText(text string, _ style.Style) error {
	_, err := s.buf.WriteString(text)
	return err
}

// EmitBreak appends a newline and the given indent.
func (s *String) EmitBreak(ind pp.BreakIndent) error {
	s.buf.WriteByte('\n')
	for i := 0; i < ind.Size; i++ {
		s.buf.WriteString(ind.Chars)
	}
	return nil
}

// String returns everything written so far.
func (s *String) String() string { return s.buf.String() }

// Terminal renders to a real output stream, honoring each run's Style and
// tracking the widest rune-width line actually emitted for diagnostics. The
// first write error sticks, and every subsequent call is a no-op that
// returns it, so callers don't need to check every single Emit call.
type Terminal struct {
	out     io.Writer
	err     error
	profile termenv.Profile

	lineWidth int
	// WidestLine is the widest line emitted so far, measured in terminal
	// columns via go-runewidth rather than bytes, for reporting how the
	// rendered output actually compares to PrintConfig.PageWidth on
	// terminals with wide or zero-width runes.
	WidestLine int
}

// NewTerminal returns a Terminal writing to w, detecting w's color profile
// via termenv so EmitText can skip styling outright on terminals that
// can't render it (e.g. termenv.Ascii).
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{out: w, profile: termenv.EnvColorProfile()}
}

func (t *Terminal) write(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.out, s)
}

// EmitText renders text through s unless the detected profile can't
// support styling, or s is invisible, in which case it writes text
// unstyled.
func (t *Terminal) EmitText(text string, s style.Style) error {
	rendered := text
	if !s.IsInvisible() && t.profile != termenv.Ascii {
		rendered = s.Render(text)
	}
	t.lineWidth += runewidth.StringWidth(text)
	t.write(rendered)
	return t.err
}

// EmitBreak writes a newline followed by ind.Size copies of ind.Chars, and
// records the line just ended against WidestLine.
func (t *Terminal) EmitBreak(ind pp.BreakIndent) error {
	if t.lineWidth > t.WidestLine {
		t.WidestLine = t.lineWidth
	}
	t.lineWidth = 0
	t.write("\n")
	for i := 0; i < ind.Size; i++ {
		t.write(ind.Chars)
	}
	return t.err
}

// Err returns the first write error encountered, if any.
func (t *Terminal) Err() error { return t.err }
