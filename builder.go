package pp

import (
	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

// Builder provides fluent construction of an HIR op stream.
// Grounded on the original wyst source's HirBuilder
// (crates/printer/src/ir/hir/builder.rs), re-expressed as a mutating
// pointer-receiver builder rather than Rust's self-consuming one, the way
// a bufio.Scanner-style state machine mutates in place across Scan calls
// rather than threading a new value through every call.
type Builder struct {
	pool *textpool.Pool
	currentID BreakID
	idStack []BreakID
	ops []Op
	indentDepth int
	err error
}

// NewBuilder returns a Builder interning text through pool. Every program
// starts under a single freshly generated root BreakID, so a bare top-level
// wbr() (outside any explicit Group) still belongs to a well-defined group.
func NewBuilder(pool *textpool.Pool) *Builder {
	return &Builder{pool: pool, currentID: GenerateBreakID()}
}

func (b *Builder) fail(op string, err error) {
	if b.err == nil {
		b.err = &BuildError{Op: op, Err: err}
	}
}

func (b *Builder) add(op Op) *Builder {
	b.ops = append(b.ops, op)
	return b
}

// Text appends a normal-styled, unconditionally-emitted text run.
func (b *Builder) Text(text string) *Builder {
	return b.Styled(text, style.Normal())
}

// TextAt appends a normal-styled text run with an explicit placement.
func (b *Builder) TextAt(text string, placement TextPlacement) *Builder {
	return b.StyledAt(text, style.Normal(), placement)
}

// Styled appends an unconditionally-emitted styled text run.
func (b *Builder) Styled(text string, s style.Style) *Builder {
	return b.StyledAt(text, s, PlacementAnywhere)
}

// StyledAt appends a styled text run with an explicit placement.
func (b *Builder) StyledAt(text string, s style.Style, placement TextPlacement) *Builder {
	h := b.pool.Styled(text, s)
	return b.add(Bounded{Handle: h, Placement: placement})
}

// Space appends an invisible, interior-placed text run: the usual way to
// write "the space in `a b`".
func (b *Builder) Space(text string) *Builder {
	return b.StyledAt(text, style.Invisible(), PlacementInterior)
}

// Wbr appends a conditional break opportunity at the given level, under
// whatever BreakID is current (the innermost open Group, or the program's
// root id if none is open).
func (b *Builder) Wbr(level uint) *Builder {
	return b.add(BreakOpportunity{Level: Level(b.currentID, level)})
}

// Br appends an unconditional break: always taken, never skippable.
func (b *Builder) Br() *Builder {
	return b.add(BreakOpportunity{Level: Unconditional()})
}

// IndentOp appends an Indent op, adjusting the effective indent by +1.
func (b *Builder) IndentOp() *Builder {
	b.indentDepth++
	return b.add(Indent{})
}

// OutdentOp appends an Outdent op, adjusting the effective indent by -1.
func (b *Builder) OutdentOp() *Builder {
	b.indentDepth--
	if b.indentDepth < 0 {
		b.fail("Outdent", ErrUnbalancedIndentation)
	}
	return b.add(Outdent{})
}

// Nest is a group-plus-indent shorthand: indent(); wbr(level); f(); outdent().
func (b *Builder) Nest(level uint, f func(*Builder)) *Builder {
	b.IndentOp()
	b.Wbr(level)
	f(b)
	b.OutdentOp()
	return b
}

// Group pushes a fresh BreakID as current, runs f, and pops it, so every
// wbr() inside f shares a single group id distinct from its surroundings.
func (b *Builder) Group(f func(*Builder)) *Builder {
	b.Start(GenerateBreakID())
	f(b)
	b.End()
	return b
}

// Start pushes id as the current BreakID, to be restored by a matching End.
// Group is implemented in terms of Start/End; both are exported because the
// original wyst source exposes the same two lower-level primitives.
func (b *Builder) Start(id BreakID) *Builder {
	b.idStack = append(b.idStack, b.currentID)
	b.currentID = id
	return b
}

// End pops back to the BreakID active before the matching Start.
func (b *Builder) End() *Builder {
	n := len(b.idStack)
	if n == 0 {
		b.fail("End", ErrUnbalancedGroup)
		return b
	}
	b.currentID = b.idStack[n-1]
	b.idStack = b.idStack[:n-1]
	return b
}

// Done finalizes the op stream, appending the required EOF terminator, and
// checks well-formedness: balanced Start/End, balanced (non-negative)
// indentation, exactly one terminal EOF.
func (b *Builder) Done() ([]Op, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.idStack) != 0 {
		return nil, &BuildError{Op: "Done", Err: ErrUnbalancedGroup}
	}
	if b.indentDepth != 0 {
		return nil, &BuildError{Op: "Done", Err: ErrUnbalancedIndentation}
	}
	ops := make([]Op, len(b.ops)+1)
	copy(ops, b.ops)
	ops[len(b.ops)] = EOF
	return ops, nil
}
