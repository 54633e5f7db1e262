package pp

import "github.com/jcorbin/pp/internal/textpool"

// rewindableLine identifies a point the lines driver can later return to:
// how many completed Lines existed, which HIR op to resume from, and the
// indent level active at that point.
//
// Grounded on the original wyst source's RewindableLine
// (crates/printer/src/ir/hir/line.rs).
type rewindableLine struct {
	lineno    int
	hirOffset int
	preIndent int
}

func firstRewindableLine() rewindableLine {
	return rewindableLine{}
}

func (r rewindableLine) next(hirOffset, preIndent int) rewindableLine {
	return rewindableLine{lineno: r.lineno + 1, hirOffset: hirOffset, preIndent: preIndent}
}

// startStage returns the stage a freshly started LineBuffer should begin
// in: Start only for the very first line of the whole document, Indentation
// for every other line (including ones reached by rewinding).
func (r rewindableLine) startStage() lineStage {
	if r.lineno == 0 && r.hirOffset == 0 {
		return startStage(r.preIndent)
	}
	return indentationStage(r.preIndent)
}

// Line is one committed stretch of LIR output: the bounded text runs
// accumulated between two flush points, the indent level active at the
// start and the one that will be active on the following line.
type Line struct {
	LIR        []textpool.Handle
	PreIndent  int
	PostIndent int
	lineno     rewindableLine
}

func (l Line) width(cfg PrintConfig) int {
	w := cfg.IndentWidth(l.PreIndent)
	for _, h := range l.LIR {
		w += h.ByteLen
	}
	return w
}

// fits reports whether l's width is within cfg's page width.
func (l Line) fits(cfg PrintConfig) bool {
	return l.width(cfg) <= int(cfg.PageWidth)
}

// intoLIR lowers l into its LIR ops: one LIRBounded per accumulated text
// run, followed by exactly one LIRBreak carrying the post-indent level.
func (l Line) intoLIR() []LIROp {
	ops := make([]LIROp, 0, len(l.LIR)+1)
	for _, h := range l.LIR {
		ops = append(ops, LIRBounded{Handle: h})
	}
	return append(ops, LIRBreak{Indent: l.PostIndent})
}

// lineBreaks tracks, for a single in-progress line, which break
// opportunities were skipped while accumulating it — grouped by level so
// that an overflow can ask "what's the lowest-level break we gave up on in
// this line?"
type lineBreaks struct {
	byLevel map[uint][]BreakID
}

func (lb *lineBreaks) skip(nl NamedBreakLevel) {
	if lb.byLevel == nil {
		lb.byLevel = map[uint][]BreakID{}
	}
	for _, id := range lb.byLevel[nl.Level] {
		if id == nl.ID {
			return
		}
	}
	lb.byLevel[nl.Level] = append(lb.byLevel[nl.Level], nl.ID)
}

// nextBr returns the lowest-level break opportunity skipped in this line,
// if any.
func (lb *lineBreaks) nextBr() (NamedBreakLevel, bool) {
	found := false
	var minLevel uint
	for lvl, ids := range lb.byLevel {
		if len(ids) == 0 {
			continue
		}
		if !found || lvl < minLevel {
			minLevel, found = lvl, true
		}
	}
	if !found {
		return NamedBreakLevel{}, false
	}
	return NamedBreakLevel{Level: minLevel, ID: lb.byLevel[minLevel][0]}, true
}

// flushedLine is the outcome of flushing a lineBuffer: either the resulting
// Line is accepted (fits is set), or it overflows and trySkip names the
// lowest-level break opportunity skipped while building it, which the
// driver should try taking instead. A Line that overflows without having
// skipped any break opportunity of its own is reported with fits set: it
// is accepted as is, and skips recorded on earlier lines are not
// considered for it.
type flushedLine struct {
	fits    bool
	line    Line
	trySkip *NamedBreakLevel
}

// lineBuffer accumulates LIR for one in-progress stretch of output,
// classifying each incoming HIR op against its lineStage.
//
// Grounded on the original wyst source's LineBuffer
// (crates/printer/src/ir/hir/line.rs).
type lineBuffer struct {
	lir    []textpool.Handle
	lineno rewindableLine
	stage  lineStage
	spec   speculativeBuffer
	breaks lineBreaks
}

func startLineBuffer(lineno rewindableLine) *lineBuffer {
	return &lineBuffer{lineno: lineno, stage: lineno.startStage()}
}

// nextLineno computes the rewindableLine the buffer that replaces lb
// (after a flush at hirOffset) should start from.
func (lb *lineBuffer) nextLineno(hirOffset int) rewindableLine {
	return lb.lineno.next(hirOffset, lb.stage.indentLevel())
}

// flush packages lb's accumulated content into a Line ending with the
// given next stage's indent level, and reports whether it fits the page. An
// overflowing Line with no skipped break opportunities of its own is
// reported as fitting.
func (lb *lineBuffer) flush(next lineStage, cfg PrintConfig) flushedLine {
	line := Line{
		LIR:        lb.lir,
		PreIndent:  lb.lineno.preIndent,
		PostIndent: next.indentLevel(),
		lineno:     lb.lineno,
	}
	if line.fits(cfg) {
		return flushedLine{fits: true, line: line}
	}
	trySkip, ok := lb.breaks.nextBr()
	if !ok {
		return flushedLine{fits: true, line: line}
	}
	return flushedLine{line: line, trySkip: &trySkip}
}

func (lb *lineBuffer) skip(nl NamedBreakLevel) {
	lb.breaks.skip(nl)
}

func (lb *lineBuffer) push(h textpool.Handle) {
	lb.lir = append(lb.lir, h)
}

func (lb *lineBuffer) flushExterior(next lineStage) {
	text, delta := lb.spec.flushExterior()
	if text != nil {
		lb.lir = append(lb.lir, *text)
	}
	lb.stage = next.withIndent(delta)
}

// processOutcomeKind discriminates what process should tell its caller to
// do next: keep going, or hand back a pending line-flush.
type processOutcomeKind int

const (
	processContinue processOutcomeKind = iota
	processFlush
)

type processOutcome struct {
	kind        processOutcomeKind
	next        lineStage
	thenConsume *textpool.Handle
}

// process classifies op against lb's current stage and applies the
// resulting transition, mutating lb in place. A processFlush outcome means
// lb's accumulated content (as of this call) is ready to be packaged into
// a Line by the caller; lb itself is not touched further in that case —
// the caller replaces it wholesale with a fresh lineBuffer.
func (lb *lineBuffer) process(op Op) processOutcome {
	t := doNext(lb.stage, op)
	switch t.kind {
	case tBuffer:
		lb.spec.push(t.spec)
		lb.stage = t.next
	case tInitBuffer:
		lb.spec.initialize(t.init)
		lb.stage = t.next
	case tConsume:
		lb.lir = append(lb.lir, t.handle)
	case tIgnore:
		// nothing to do
	case tFlushExterior:
		lb.flushExterior(t.next)
	case tFlushExteriorAndLine:
		flushNext := t.next
		lb.flushExterior(t.next)
		return processOutcome{kind: processFlush, next: flushNext}
	case tFlushLine:
		out := processOutcome{kind: processFlush, next: t.next}
		if t.hasThenConsume {
			h := t.thenConsume
			out.thenConsume = &h
		}
		return out
	case tPeekedExterior:
		lb.lir = append(lb.lir, lb.spec.flushInterior()...)
		lb.stage = t.next
		lb.spec.setExterior(t.handle)
	case tPeekedAnywhere:
		lb.lir = append(lb.lir, lb.spec.flushInterior()...)
		lb.stage = t.next
		lb.lir = append(lb.lir, t.handle)
	case tTransitionTo:
		lb.stage = t.next
		if t.hasThenConsume {
			lb.lir = append(lb.lir, t.thenConsume)
		}
	case tEOF:
		// stage already EOF; nothing further to do
	}
	return processOutcome{kind: processContinue}
}
