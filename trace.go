package jxsmoln

import "runtime"

// TraceEvent describes one cursor movement inside the decoder or encoder.
type TraceEvent struct {
	Op      string // decoder/encoder step that moved the cursor
	Line    int    // source line of the call site in this package
	Message string
	Path    string // JSON Pointer of the value being processed
	Depth   int
	Node    Node  // XML cursor state (decode side)
	Token   Token // current JSON token (encode side)
	More    bool  // encode side: whether Token is valid
}

// TraceFunc receives trace events. It must not retain the event's slices or
// attempt to drive the traversal.
type TraceFunc func(TraceEvent)

// emit calls fn when set. It is always reached through one tracing helper,
// so the reported line is that helper's caller; it is only computed when a
// sink is installed.
func (fn TraceFunc) emit(ev TraceEvent) {
	if fn == nil {
		return
	}
	if _, _, line, ok := runtime.Caller(2); ok {
		ev.Line = line
	}
	fn(ev)
}
