package pp

import (
	"fmt"

	"github.com/jcorbin/pp/internal/textpool"
)

// TextPlacement is a placement rule for a Bounded HIR op.
type TextPlacement int

const (
	// PlacementInterior text is emitted only when the current line has
	// already emitted anchor text and will emit more after it.
	PlacementInterior TextPlacement = iota
	// PlacementExterior text is emitted only at a line edge.
	PlacementExterior
	// PlacementAnywhere text is emitted unconditionally.
	PlacementAnywhere
)

func (p TextPlacement) String() string {
	switch p {
	case PlacementInterior:
		return "interior"
	case PlacementExterior:
		return "exterior"
	case PlacementAnywhere:
		return ""
	default:
		return fmt.Sprintf("TextPlacement(%d)", int(p))
	}
}

// Op is an HIR op: Bounded, Indent, Outdent, BreakOpportunity, or EOF.
// Implemented as a small closed interface rather than virtual dispatch
// every switch over Op in this package is exhaustive over the
// five concrete types below.
type Op interface {
	isOp()
	String() string
}

// Bounded is a styled text run with a placement rule.
type Bounded struct {
	Handle textpool.Handle
	Placement TextPlacement
}

func (Bounded) isOp() {}
func (b Bounded) String() string {
	if b.Placement == PlacementAnywhere {
		return fmt.Sprintf("Text(len=%d)", b.Handle.ByteLen)
	}
	return fmt.Sprintf("Text(len=%d, %v)", b.Handle.ByteLen, b.Placement)
}

// Indent adjusts the current indent level by +1.
type Indent struct{}

func (Indent) isOp() {}
func (Indent) String() string { return "indent" }

// Outdent adjusts the current indent level by -1.
type Outdent struct{}

func (Outdent) isOp() {}
func (Outdent) String() string { return "outdent" }

// BreakOpportunity is a candidate newline, conditional or unconditional.
type BreakOpportunity struct {
	Level BreakLevel
}

func (BreakOpportunity) isOp() {}
func (b BreakOpportunity) String() string {
	if b.Level.IsUnconditional() {
		return "br"
	}
	return fmt.Sprintf("wbr(%v)", b.Level.named)
}

// eofOp is the required terminator of every HIR stream.
type eofOp struct{}

func (eofOp) isOp() {}
func (eofOp) String() string { return "EOF" }

// EOF is the singleton EOF op.
var EOF Op = eofOp{}

// opName returns the HIR op's discriminator name, used for tracing.
func opName(op Op) string {
	switch op.(type) {
	case Bounded:
		return "Bounded"
	case Indent:
		return "Indent"
	case Outdent:
		return "Outdent"
	case BreakOpportunity:
		return "BreakOpportunity"
	case eofOp:
		return "EOF"
	default:
		return fmt.Sprintf("%T", op)
	}
}
