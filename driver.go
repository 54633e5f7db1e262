package pp

import "github.com/jcorbin/pp/internal/textpool"

// rewindState remembers where to resume if a later overflow decides to
// take the break opportunity it describes: the break itself, and the line
// that was in progress when it was skipped.
type rewindState struct {
	namedLevel NamedBreakLevel
	line       rewindableLine
}

// globalBreaks remembers every break opportunity skipped anywhere in the
// document so far, keyed by level and then by BreakID, so an overflow can
// look up the skip recorded for a given (level, BreakID) pair, or the
// lowest-level skip on record, and rewind to it. Each pair keeps the first
// skip recorded for it; skips of one BreakID at different levels are filed
// independently of each other.
//
// Grounded on the original wyst source's Breaks (lines.rs).
type globalBreaks struct {
	byLevel map[uint]map[BreakID]rewindState
}

func (g *globalBreaks) skip(rw rewindState) error {
	if g.byLevel == nil {
		g.byLevel = map[uint]map[BreakID]rewindState{}
	}
	lvl := rw.namedLevel.Level
	id := rw.namedLevel.ID
	m, ok := g.byLevel[lvl]
	if !ok {
		m = map[BreakID]rewindState{}
		g.byLevel[lvl] = m
	}
	if existing, ok := m[id]; ok {
		if existing.namedLevel.impliesSkip(rw.namedLevel) {
			return nil
		}
		return ErrCoverageViolation
	}
	m[id] = rw
	return nil
}

func (g *globalBreaks) takeBreak(nl NamedBreakLevel) (rewindState, bool) {
	m, ok := g.byLevel[nl.Level]
	if !ok {
		return rewindState{}, false
	}
	rw, ok := m[nl.ID]
	if !ok {
		return rewindState{}, false
	}
	delete(m, nl.ID)
	return rw, true
}

// takeNext returns the skip with the lowest recorded level across every
// BreakID, for when an overflowing line had no skipped breaks of its own.
func (g *globalBreaks) takeNext() (rewindState, bool) {
	found := false
	var minLevel uint
	for lvl, m := range g.byLevel {
		if len(m) == 0 {
			continue
		}
		if !found || lvl < minLevel {
			minLevel, found = lvl, true
		}
	}
	if !found {
		return rewindState{}, false
	}
	m := g.byLevel[minLevel]
	for id, rw := range m {
		delete(m, id)
		return rw, true
	}
	return rewindState{}, false
}

// breakDecisions is the driver's memory of every break taken or skipped so
// far: the highest level taken per BreakID (a conditional break is taken
// once its id has been taken at an equal or higher level, and skipped
// otherwise), and every skip still available to be taken on a future
// overflow.
//
// Grounded on the original wyst source's BreakDecisions (lines.rs).
type breakDecisions struct {
	skipped globalBreaks
	taken   map[BreakID]uint
}

func (bd *breakDecisions) takeBreak(nl NamedBreakLevel) {
	if bd.taken == nil {
		bd.taken = map[BreakID]uint{}
	}
	bd.taken[nl.ID] = nl.Level
}

// rewindFor selects the rewindState to take: the given skipped break if
// one was named (an overflowing line with skips of its own), otherwise the
// globally lowest-level skip still on record.
func (bd *breakDecisions) rewindFor(skipped *NamedBreakLevel) (rewindState, bool) {
	var (
		next rewindState
		ok   bool
	)
	if skipped != nil {
		next, ok = bd.skipped.takeBreak(*skipped)
	} else {
		next, ok = bd.skipped.takeNext()
	}
	if ok {
		bd.takeBreak(next.namedLevel)
	}
	return next, ok
}

// handleOp decides whether op should be forwarded to the current
// lineBuffer, or is a conditional break we've already decided to skip.
func (bd *breakDecisions) handleOp(op Op) (process bool, skip NamedBreakLevel) {
	bo, ok := op.(BreakOpportunity)
	if !ok || bo.Level.IsUnconditional() {
		return true, NamedBreakLevel{}
	}
	nl := bo.Level.Named()
	if takenLevel, ok := bd.taken[nl.ID]; ok && takenLevel >= nl.Level {
		return true, NamedBreakLevel{}
	}
	return false, nl
}

func (bd *breakDecisions) skip(rw rewindState) error {
	return bd.skipped.skip(rw)
}

// driver is the lines driver: it feeds HIR ops to the current lineBuffer,
// records completed Lines, and rewinds on overflow.
//
// Grounded on the original wyst source's LinesBuffer/ToLines (lines.rs).
type driver struct {
	cfg     PrintConfig
	breaks  breakDecisions
	lines   []Line
	current *lineBuffer
}

func newDriver(cfg PrintConfig) *driver {
	return &driver{cfg: cfg, current: startLineBuffer(firstRewindableLine())}
}

// step processes one HIR op at the given offset, returning the offset to
// rewind iteration to, or -1 if iteration should simply continue forward.
func (d *driver) step(hirOffset int, op Op) int {
	d.cfg.tracer().Tracef("op@%d %v :: stage=%v", hirOffset, opName(op), d.current.stage)

	process, skip := d.breaks.handleOp(op)
	if !process {
		d.skip(skip)
		return -1
	}

	outcome := d.current.process(op)
	if outcome.kind != processFlush {
		return -1
	}
	return d.flush(outcome.next, outcome.thenConsume, hirOffset)
}

func (d *driver) skip(nl NamedBreakLevel) {
	d.cfg.tracer().Tracef("skip %v", nl)
	rw := rewindState{namedLevel: nl, line: d.current.lineno}
	if err := d.breaks.skip(rw); err != nil {
		panic(driverError{err})
	}
	d.current.skip(nl)
}

// flush finalizes the current lineBuffer's accumulated content into a Line
// (or rewinds past an overflow), and starts a fresh lineBuffer for
// whatever comes next.
func (d *driver) flush(next lineStage, thenConsume *textpool.Handle, hirOffset int) int {
	nextLineno := d.current.nextLineno(hirOffset)
	old := d.current
	d.current = startLineBuffer(nextLineno)

	result := old.flush(next, d.cfg)
	if result.fits {
		if thenConsume != nil {
			d.current.push(*thenConsume)
		}
		d.current.stage = next
		d.lines = append(d.lines, result.line)
		return -1
	}

	rw, ok := d.breaks.rewindFor(result.trySkip)
	if !ok {
		// No rewind state is on record for the line's skipped break;
		// accept the overflowing line.
		if thenConsume != nil {
			d.current.push(*thenConsume)
		}
		d.current.stage = next
		d.lines = append(d.lines, result.line)
		return -1
	}

	d.cfg.tracer().Tracef("rewind to line=%d hir=%d", rw.line.lineno, rw.line.hirOffset)
	d.rewind(rw.line)
	return rw.line.hirOffset
}

func (d *driver) rewind(line rewindableLine) {
	d.lines = d.lines[:line.lineno]
	d.current = startLineBuffer(line)
}

func (d *driver) lir() []LIROp {
	var out []LIROp
	for _, line := range d.lines {
		out = append(out, line.intoLIR()...)
	}
	return out
}

// Layout runs the full HIR op stream (as produced by Builder.Done) through
// the line-breaking algorithm, producing the resulting LIR stream. ops
// must end with exactly one EOF op.
func Layout(ops []Op, cfg PrintConfig) (lir []LIROp, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(driverError); ok {
				err = de.err
				return
			}
			panic(r)
		}
	}()

	if len(ops) == 0 || ops[len(ops)-1] != EOF {
		return nil, ErrMissingEOF
	}

	d := newDriver(cfg)
	for i := 0; i < len(ops); {
		hirOffset := i
		op := ops[i]
		i++
		if rewindTo := d.step(hirOffset, op); rewindTo >= 0 {
			i = rewindTo
		}
	}
	return d.lir(), nil
}
