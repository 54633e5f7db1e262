package pp

import (
	"fmt"

	"github.com/jcorbin/pp/internal/textpool"
)

// lineStageKind discriminates the per-line classification states.
type lineStageKind int

const (
	stageStart lineStageKind = iota
	stageIndentation
	stageInterior
	stageBuffering
	stageEOF
)

// lineStage is the line state machine's current state: one of
// Start(indent), Indentation(indent), Interior(indent), Buffering(indent),
// or the terminal EOF. Implemented as a tagged struct rather than an
// interface, the same way BreakLevel avoids virtual dispatch.
type lineStage struct {
	kind lineStageKind
	indent int
}

func startStage(indent int) lineStage { return lineStage{kind: stageStart, indent: indent} }
func indentationStage(indent int) lineStage { return lineStage{kind: stageIndentation, indent: indent} }
func interiorStage(indent int) lineStage { return lineStage{kind: stageInterior, indent: indent} }
func bufferingStage(indent int) lineStage { return lineStage{kind: stageBuffering, indent: indent} }

var eofStage = lineStage{kind: stageEOF}

func (s lineStage) String() string {
	switch s.kind {
	case stageStart:
		return fmt.Sprintf("Start(%d)", s.indent)
	case stageIndentation:
		return fmt.Sprintf("Indentation(%d)", s.indent)
	case stageInterior:
		return fmt.Sprintf("Interior(%d)", s.indent)
	case stageBuffering:
		return fmt.Sprintf("Buffering(%d)", s.indent)
	default:
		return "EOF"
	}
}

// indentLevel returns the indent level carried by this stage; EOF carries 0.
func (s lineStage) indentLevel() int {
	if s.kind == stageEOF {
		return 0
	}
	return s.indent
}

func (s lineStage) withIndent(delta int) lineStage {
	if s.kind == stageEOF {
		return s
	}
	s.indent += delta
	checkIndent(s.indent)
	return s
}

// specKind discriminates SpeculativeHIR: an op parked in the speculative
// buffer whose placement (interior vs exterior) is not yet known.
type specKind int

const (
	specInterior specKind = iota
	specIndent
)

// specOp is a SpeculativeHIR entry: either interior-placed text, or an
// indentation adjustment, queued until the buffer resolves.
type specOp struct {
	kind specKind
	handle textpool.Handle
	delta int // +1 (Indent) or -1 (Outdent); valid when kind == specIndent
}

func (s specOp) String() string {
	if s.kind == specIndent {
		if s.delta > 0 {
			return "indent"
		}
		return "outdent"
	}
	return fmt.Sprintf("Text(len=%d)", s.handle.ByteLen)
}

// initKind discriminates InitializeBuffer: the first entry placed into an
// empty speculative buffer, which for exterior text goes into the
// dedicated exterior slot rather than the queue.
type initKind int

const (
	initExterior initKind = iota
	initInterior
)

type bufferInit struct {
	kind initKind
	handle textpool.Handle
}

// transitionKind discriminates NextStage: what LineBuffer.process should do
// in response to one HIR op, as decided by lineStage.doNext.
type transitionKind int

const (
	tBuffer transitionKind = iota
	tInitBuffer
	tConsume
	tIgnore
	tFlushLine
	tFlushExterior
	tFlushExteriorAndLine
	tPeekedExterior
	tPeekedAnywhere
	tTransitionTo
	tEOF
)

// transition is NextStage: the result of classifying one HIR op against the
// current lineStage, ground-truthed against the original wyst source's
// process.rs for the exact edge-case ordering.
type transition struct {
	kind transitionKind
	next lineStage

	spec specOp // tBuffer
	init bufferInit // tInitBuffer

	handle textpool.Handle // tConsume, tPeekedExterior (exterior text), tPeekedAnywhere (consume)

	hasThenConsume bool
	thenConsume textpool.Handle // tFlushLine, tTransitionTo
}

func (t transition) String() string {
	switch t.kind {
	case tBuffer:
		return fmt.Sprintf("Buffer(%v) -> %v", t.spec, t.next)
	case tInitBuffer:
		return fmt.Sprintf("InitializeBuffer(...) -> %v", t.next)
	case tConsume:
		return fmt.Sprintf("Consume(len=%d)", t.handle.ByteLen)
	case tIgnore:
		return "Ignore"
	case tFlushLine:
		if t.hasThenConsume {
			return fmt.Sprintf("FlushLine(next=%v, then_consume=len=%d)", t.next, t.thenConsume.ByteLen)
		}
		return fmt.Sprintf("FlushLine(next=%v)", t.next)
	case tFlushExterior:
		return fmt.Sprintf("FlushExterior(%v)", t.next)
	case tFlushExteriorAndLine:
		return fmt.Sprintf("FlushExterior(%v) and line", t.next)
	case tPeekedExterior:
		return fmt.Sprintf("PeekedExterior(len=%d, next=%v)", t.handle.ByteLen, t.next)
	case tPeekedAnywhere:
		return fmt.Sprintf("PeekedAnywhere(len=%d, next=%v)", t.handle.ByteLen, t.next)
	case tTransitionTo:
		if t.hasThenConsume {
			return fmt.Sprintf("TransitionTo(%v and consume len=%d)", t.next, t.thenConsume.ByteLen)
		}
		return fmt.Sprintf("TransitionTo(%v)", t.next)
	default:
		return "EOF"
	}
}

// doNext determines what LineBuffer should do next for op, given the
// current stage. The caller must have already filtered out break
// opportunities that the driver decided to skip before calling doNext.
func doNext(stage lineStage, op Op) transition {
	switch stage.kind {
	case stageStart:
		return doNextStartOrIndentation(stage, op, true)
	case stageIndentation:
		return doNextStartOrIndentation(stage, op, false)
	case stageInterior:
		return doNextInterior(stage, op)
	case stageBuffering:
		return doNextBuffering(stage, op)
	default: // stageEOF
		return transition{kind: tEOF}
	}
}

func doNextStartOrIndentation(stage lineStage, op Op, isStart bool) transition {
	indent := stage.indent
	switch o := op.(type) {
	case Bounded:
		switch o.Placement {
		case PlacementInterior:
			return transition{kind: tIgnore}
		default: // Exterior or Anywhere
			next := interiorStage(indent)
			if isStart {
				return transition{kind: tTransitionTo, next: next, hasThenConsume: true, thenConsume: o.Handle}
			}
			return transition{kind: tFlushLine, next: next, hasThenConsume: true, thenConsume: o.Handle}
		}
	case Indent:
		var next lineStage
		if isStart {
			next = startStage(indent + 1)
		} else {
			next = indentationStage(indent + 1)
		}
		return transition{kind: tTransitionTo, next: next}
	case Outdent:
		checkIndent(indent - 1)
		var next lineStage
		if isStart {
			next = startStage(indent - 1)
		} else {
			next = indentationStage(indent - 1)
		}
		return transition{kind: tTransitionTo, next: next}
	case BreakOpportunity:
		return transition{kind: tFlushLine, next: indentationStage(indent)}
	default: // eofOp
		return transition{kind: tFlushLine, next: eofStage}
	}
}

// checkIndent panics with ErrNegativeIndent if n is negative. Builder
// rejects streams whose Outdents outnumber their Indents, but a stream it
// accepts can still reach this: Indent ops parked in a speculative buffer
// that is flushed as interior are dropped, while a later Outdent is
// applied.
func checkIndent(n int) {
	if n < 0 {
		panic(driverError{ErrNegativeIndent})
	}
}

func doNextInterior(stage lineStage, op Op) transition {
	indent := stage.indent
	switch o := op.(type) {
	case Bounded:
		switch o.Placement {
		case PlacementInterior:
			return transition{
				kind: tInitBuffer,
				next: bufferingStage(indent),
				init: bufferInit{kind: initInterior, handle: o.Handle},
			}
		case PlacementExterior:
			return transition{
				kind: tInitBuffer,
				next: bufferingStage(indent),
				init: bufferInit{kind: initExterior, handle: o.Handle},
			}
		default: // Anywhere
			return transition{kind: tConsume, handle: o.Handle}
		}
	case Indent:
		return transition{kind: tBuffer, next: bufferingStage(indent), spec: specOp{kind: specIndent, delta: +1}}
	case Outdent:
		return transition{kind: tBuffer, next: bufferingStage(indent), spec: specOp{kind: specIndent, delta: -1}}
	case BreakOpportunity:
		return transition{kind: tTransitionTo, next: indentationStage(indent)}
	default: // eofOp
		return transition{kind: tFlushLine, next: eofStage}
	}
}

func doNextBuffering(stage lineStage, op Op) transition {
	indent := stage.indent
	switch o := op.(type) {
	case Bounded:
		switch o.Placement {
		case PlacementInterior:
			return transition{
				kind: tBuffer,
				next: bufferingStage(indent),
				spec: specOp{kind: specInterior, handle: o.Handle},
			}
		case PlacementExterior:
			return transition{kind: tPeekedExterior, next: bufferingStage(indent), handle: o.Handle}
		default: // Anywhere
			return transition{kind: tPeekedAnywhere, next: interiorStage(indent), handle: o.Handle}
		}
	case Indent:
		return transition{kind: tBuffer, next: bufferingStage(indent), spec: specOp{kind: specIndent, delta: +1}}
	case Outdent:
		return transition{kind: tBuffer, next: bufferingStage(indent), spec: specOp{kind: specIndent, delta: -1}}
	case BreakOpportunity:
		return transition{kind: tFlushExterior, next: indentationStage(indent)}
	default: // eofOp
		return transition{kind: tFlushExteriorAndLine, next: eofStage}
	}
}
