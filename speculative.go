package pp

import "github.com/jcorbin/pp/internal/textpool"

// speculativeBuffer parks ops whose eventual placement on the line is not
// yet known: a single exterior-text slot (the most recent exterior Bounded
// op seen, any earlier one having been superseded), plus a queue of
// interior-text and indentation entries recorded in arrival order.
//
// Grounded on the original wyst source's SpeculativeBuffer
// (crates/printer/src/ir/hir/process.rs).
type speculativeBuffer struct {
	exterior *textpool.Handle
	queue    []specOp
}

// initialize sets the buffer's first entry. An exterior init occupies the
// dedicated slot; an interior init goes straight into the queue.
func (b *speculativeBuffer) initialize(init bufferInit) {
	switch init.kind {
	case initExterior:
		h := init.handle
		b.exterior = &h
	default: // initInterior
		b.queue = append(b.queue, specOp{kind: specInterior, handle: init.handle})
	}
}

// push appends an interior-text or indentation entry to the queue.
func (b *speculativeBuffer) push(op specOp) {
	b.queue = append(b.queue, op)
}

// setExterior overwrites the exterior slot, discarding whatever text
// previously occupied it: two consecutive exterior ops buffered against the
// same break decision means the first is never rendered.
func (b *speculativeBuffer) setExterior(h textpool.Handle) {
	b.exterior = &h
}

// flushInterior resolves the buffer as interior: the exterior slot and any
// queued indentation ops are discarded, and the queued interior text runs
// are returned in order, to be appended directly onto the current line.
func (b *speculativeBuffer) flushInterior() []textpool.Handle {
	b.exterior = nil
	var texts []textpool.Handle
	for _, op := range b.queue {
		if op.kind == specInterior {
			texts = append(texts, op.handle)
		}
	}
	b.queue = nil
	return texts
}

// flushExterior resolves the buffer as exterior: the parked exterior text
// (if any) and the net indentation delta accumulated by the queued
// Indent/Outdent ops are returned; queued interior text is discarded.
func (b *speculativeBuffer) flushExterior() (text *textpool.Handle, indentDelta int) {
	text = b.exterior
	b.exterior = nil
	for _, op := range b.queue {
		if op.kind == specIndent {
			indentDelta += op.delta
		}
	}
	b.queue = nil
	return text, indentDelta
}

// empty reports whether the buffer currently holds nothing at all, which is
// its state immediately after construction and after either flush.
func (b *speculativeBuffer) empty() bool {
	return b.exterior == nil && len(b.queue) == 0
}
