package pp

import (
	"fmt"

	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

// LIROp is a low-level IR op: a bounded text run or an indented break.
type LIROp interface {
	isLIROp()
	String() string
}

// LIRBounded is a styled text run in the output stream.
type LIRBounded struct {
	Handle textpool.Handle
}

func (LIRBounded) isLIROp() {}
func (b LIRBounded) String() string {
	return fmt.Sprintf("Text(len=%d)", b.Handle.ByteLen)
}

// LIRBreak is an indented newline; Indent is the indent level active on the
// line that follows it.
type LIRBreak struct {
	Indent int
}

func (LIRBreak) isLIROp() {}
func (b LIRBreak) String() string {
	return fmt.Sprintf("Break(%d)", b.Indent)
}

// LIRBuilder is a fluent builder for LIR streams that bypasses HIR and
// layout entirely, useful for tests asserting exact LIR and for back-end
// smoke tests. Grounded on
// crates/printer/src/ir/lir/builder.rs's LirBuilder from the original
// wyst source, a feature kept here as a direct LIR-construction escape hatch.
type LIRBuilder struct {
	pool *textpool.Pool
	ops []LIROp
}

// NewLIRBuilder returns an LIRBuilder interning text through pool.
func NewLIRBuilder(pool *textpool.Pool) *LIRBuilder {
	return &LIRBuilder{pool: pool}
}

// Text appends a normal-styled Bounded text run.
func (b *LIRBuilder) Text(text string) *LIRBuilder {
	return b.Styled(text, style.Normal())
}

// Styled appends a styled text run.
func (b *LIRBuilder) Styled(text string, s style.Style) *LIRBuilder {
	b.ops = append(b.ops, LIRBounded{Handle: b.pool.Styled(text, s)})
	return b
}

// Break appends a Break at the given indent level.
func (b *LIRBuilder) Break(indent int) *LIRBuilder {
	b.ops = append(b.ops, LIRBreak{Indent: indent})
	return b
}

// Done returns the built LIR stream.
func (b *LIRBuilder) Done() []LIROp {
	return b.ops
}

// MeasureLIR computes the widest line actually produced by an LIR stream,
// given the per-indent-level width. Grounded on
// crates/printer/src/ir/lir/mod.rs's measure_lir from the original wyst
// source: useful as a post-layout sanity check, e.g. to
// report how close a render came to the configured page width.
func MeasureLIR(ops []LIROp, indentWidth int) int {
	maxWidth, current := 0, 0
	for _, op := range ops {
		switch o := op.(type) {
		case LIRBounded:
			current += o.Handle.ByteLen
		case LIRBreak:
			if current > maxWidth {
				maxWidth = current
			}
			current = o.Indent * indentWidth
		}
	}
	if current > maxWidth {
		maxWidth = current
	}
	return maxWidth
}
