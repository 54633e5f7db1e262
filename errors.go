package pp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the programmer-error class: builder
// well-formedness violations detected before layout runs, and the two
// layout-time invariant violations that are abort-worthy rather than
// recoverable by rewinding.
var (
	// ErrUnbalancedGroup is returned by Builder.Done when a Group/Start was
	// never matched by a corresponding End.
	ErrUnbalancedGroup = errors.New("pp: unbalanced group (Start without matching End)")
	// ErrUnbalancedIndentation is returned by Builder.Done when
	// Indent/Outdent ops do not balance, or would drive the effective
	// indent below zero. A negative indent met during layout is reported
	// as ErrNegativeIndent instead.
	ErrUnbalancedIndentation = errors.New("pp: unbalanced indentation")
	// ErrMissingEOF is returned by Layout when ops is empty or does not
	// end with the EOF op. Builder.Done always appends EOF, so its output
	// never triggers it.
	ErrMissingEOF = errors.New("pp: missing EOF terminator")
	// ErrNegativeIndent is raised during layout if an Outdent would take
	// the effective indent level below zero.
	ErrNegativeIndent = errors.New("pp: indent would go negative")
	// ErrCoverageViolation is raised when a new skipped break arrives at a
	// level strictly lower than an existing skip for the same BreakID. The
	// original wyst source leaves this case as a bare todo!(); the driver
	// treats it as a hard abort, the same tier as the invariant
	// violations above. globalBreaks.skip files skips per level and
	// compares a new skip only with an existing skip for the same BreakID
	// at the same level, which always covers it, so no layout returns
	// this error.
	ErrCoverageViolation = errors.New("pp: coverage violation: skip at lower level than an existing skip")
)

// BuildError wraps a well-formedness error with the builder operation that
// surfaced it.
type BuildError struct {
	Op string
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("pp: build %s: %v", e.Op, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// driverError marks the small set of layout-time errors that are
// programmer errors: the driver panics with a driverError
// wrapping one of the sentinels above, and Layout recovers it at its
// entry point into a returned error, so callers never observe a raw
// panic from well-formed-looking but internally inconsistent HIR.
type driverError struct {
	err error
}

func (e driverError) Error() string { return e.err.Error() }
