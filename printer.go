package pp

import (
	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

// BreakIndent describes one LIRBreak's indentation: how many levels deep,
// and the literal string rendered once per level.
type BreakIndent struct {
	Size  int
	Chars string
}

// Backend renders a resolved LIR stream. Implementations live in the
// backend package; Print drives whichever one is passed to it.
//
// Grounded on the original wyst source's Print trait
// (crates/style/src/print/mod.rs).
type Backend interface {
	EmitText(text string, s style.Style) error
	EmitBreak(ind BreakIndent) error
}

// Print lowers an LIR stream into calls against back, resolving every
// bounded run's text through pool.
//
// Grounded on the original wyst source's Printer.print_lir
// (crates/printer/src/ir/printer/printer.rs).
func Print(lir []LIROp, pool *textpool.Pool, cfg PrintConfig, back Backend) error {
	for _, op := range lir {
		switch o := op.(type) {
		case LIRBounded:
			cfg.tracer().Tracef("emit %v", Printable(o.Handle, pool))
			text := pool.Resolve(o.Handle.ID)
			if err := back.EmitText(text, o.Handle.Style); err != nil {
				return err
			}
		case LIRBreak:
			if err := back.EmitBreak(BreakIndent{Size: o.Indent, Chars: cfg.Indent}); err != nil {
				return err
			}
		}
	}
	return nil
}
