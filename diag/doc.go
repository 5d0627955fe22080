// Package diag defines the failures surfaced by the tree engine and the
// bridge that turns low level aborts into ordinary error values.
//
// # Taxonomy
//
//   - ErrMalformedInput: source text could not be loaded; carries a Location.
//   - ErrInvalidIndex, ErrIndexOutOfBounds: a node id or child position not
//     valid for the tree at the time of the call.
//   - ErrCyclicMove: a reparent would make a node its own ancestor.
//   - ErrBufferExhausted: a sink could not provide room; carries Attempted.
//   - ErrInvalidOperation: the call violates a node kind rule, such as giving
//     a keyed node to a sequence.
//
// Every failure is a *Error wrapping one of these sentinels, so callers test
// with errors.Is.
//
// # Aborts
//
// Deep inside a parse or an emission walk the engine raises failures with
// Abort rather than threading errors through every frame. What an abort does
// is decided by a process wide handler. Until Init runs the handler
// terminates the process. Init, which every entry point of the parse and
// encode packages calls, installs exactly once the handler that converts an
// abort into a value recovered by Recover at the API boundary.
//
// Broken structural links are reported with Fatal. Those are engine bugs and
// are never converted.
package diag
