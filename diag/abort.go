package diag

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Handler receives every abort.  A handler must not return normally.
type Handler func(*Error)

type abort struct {
	err *Error
}

var (
	handler  atomic.Pointer[Handler]
	initOnce sync.Once
	inited   atomic.Bool
)

func init() {
	h := Handler(terminate)
	handler.Store(&h)
}

func terminate(e *Error) {
	fmt.Fprintf(os.Stderr, "ytree: abort: %s\n", e)
	os.Exit(2)
}

func raise(e *Error) {
	panic(abort{err: e})
}

// Init installs the abort handler that makes aborts recoverable.  It is
// idempotent and safe for concurrent use.
func Init() {
	initOnce.Do(func() {
		h := Handler(raise)
		handler.Store(&h)
		inited.Store(true)
	})
}

// Initialized reports whether Init has run.
func Initialized() bool {
	return inited.Load()
}

// Abort hands e to the installed handler.
func Abort(e *Error) {
	(*handler.Load())(e)
	panic(abort{err: e})
}

// Recover converts an in-flight abort into *errp.  It must be deferred
// directly:
//
//	defer diag.Recover(&err)
//
// Panics that are not aborts, including faults, continue unwinding.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	a, ok := r.(abort)
	if !ok {
		panic(r)
	}
	*errp = a.err
}

// Fault is an internal consistency failure: a broken sibling or parent link.
type Fault struct {
	Msg string
}

func (f *Fault) Error() string {
	return "ytree: internal fault: " + f.Msg
}

// Fatal raises a fault.  Faults are never converted into errors.
func Fatal(format string, args ...any) {
	panic(&Fault{Msg: fmt.Sprintf(format, args...)})
}
