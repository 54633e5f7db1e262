package pp

// Tracer receives a trace of the layout engine's internal decisions:
// per-op state transitions, skipped/taken breaks, and rewinds, since the
// state machine is otherwise hard to debug. Mirrors the functional-adaptor
// idiom used for
// socutil.FlushPolicyFunc and socui.HandlerFunc.
type Tracer interface {
	Tracef(format string, args ...any)
}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(format string, args ...any)

// Tracef calls f.
func (f TracerFunc) Tracef(format string, args ...any) { f(format, args...) }

// NopTracer discards every trace. It is the default when PrintConfig.Tracer
// is nil.
var NopTracer Tracer = TracerFunc(func(string, ...any) {})
