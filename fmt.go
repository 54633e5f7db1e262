package pp

import (
	"fmt"
	"io"

	"github.com/jcorbin/pp/internal/textpool"
)

// Format writes a textual representation of the receiver, providing
// improved fmt.Printf display. Produces a verbose per-run breakdown when
// formatted with "%+v", a terse "N bytes, indent=P/Q" summary otherwise.
func (l Line) Format(f fmt.State, c rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "Line#%d pre=%d post=%d", l.lineno.lineno, l.PreIndent, l.PostIndent)
		for i, h := range l.LIR {
			fmt.Fprintf(f, "\n  %d. len=%d style=%+v", i, h.ByteLen, h.Style)
		}
		return
	}
	width := 0
	for _, h := range l.LIR {
		width += h.ByteLen
	}
	fmt.Fprintf(f, "Line(%d texts, %d bytes, indent=%d/%d)", len(l.LIR), width, l.PreIndent, l.PostIndent)
}

// Printable pairs h with the Resolver that can render its text, returning
// a value that satisfies fmt.Formatter. Useful for trace/log call sites
// that want to print a handle's actual text without threading the pool
// through every intervening function signature.
func Printable(h textpool.Handle, resolver textpool.Resolver) PrintableFormatter {
	return PrintableFormatter{Handle: h, resolver: resolver}
}

// PrintableFormatter is the value Printable returns.
type PrintableFormatter struct {
	Handle   textpool.Handle
	resolver textpool.Resolver
}

// Format writes the resolved text, quoted with its style when formatted
// with "%+v", bare otherwise.
func (p PrintableFormatter) Format(f fmt.State, c rune) {
	text := p.resolver.Resolve(p.Handle.ID)
	if f.Flag('+') {
		fmt.Fprintf(f, "%q style=%+v", text, p.Handle.Style)
		return
	}
	io.WriteString(f, text)
}

// FormatLIR writes a textual representation of an LIR stream: one numbered
// line per LIR op, in stream order, when formatted with "%+v"; otherwise a
// one-line op count.
func FormatLIR(f fmt.State, lir []LIROp) {
	if f.Flag('+') {
		for i, op := range lir {
			if i > 0 {
				io.WriteString(f, "\n")
			}
			fmt.Fprintf(f, "%d. %v", i, op)
		}
		return
	}
	fmt.Fprintf(f, "%d LIR ops", len(lir))
}
