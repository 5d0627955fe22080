package diag

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMalformedInput   = errors.New("malformed input")
	ErrInvalidIndex     = errors.New("invalid node index")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrCyclicMove       = errors.New("cyclic move")
	ErrBufferExhausted  = errors.New("buffer exhausted")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Location identifies where in a source a failure was detected.
type Location struct {
	Name string
	Line int
	Col  int
}

func (l Location) IsZero() bool {
	return l.Name == "" && l.Line == 0 && l.Col == 0
}

func (l Location) String() string {
	name := l.Name
	if name == "" {
		name = "<input>"
	}
	if l.Line == 0 {
		return name
	}
	res := name + ":" + strconv.Itoa(l.Line)
	if l.Col != 0 {
		res += ":" + strconv.Itoa(l.Col)
	}
	return res
}

// Error is the structured failure returned by the engine.
type Error struct {
	Err error
	Msg string
	Loc Location
	// Attempted is the number of output bytes the emission needed or had
	// attempted when it failed.  Only set for ErrBufferExhausted.
	Attempted int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	kind := "error"
	if e.Err != nil {
		kind = e.Err.Error()
	}
	res := kind
	if !e.Loc.IsZero() {
		res += ": " + e.Loc.String()
	}
	if e.Msg != "" {
		res += ": " + e.Msg
	}
	if errors.Is(e.Err, ErrBufferExhausted) {
		res += fmt.Sprintf(" (attempted %d bytes)", e.Attempted)
	}
	return res
}

func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Err: kind, Msg: fmt.Sprintf(format, args...)}
}

func At(loc Location, kind error, format string, args ...any) *Error {
	return &Error{Err: kind, Msg: fmt.Sprintf(format, args...), Loc: loc}
}

func Exhausted(attempted int, format string, args ...any) *Error {
	return &Error{
		Err:       ErrBufferExhausted,
		Msg:       fmt.Sprintf(format, args...),
		Attempted: attempted,
	}
}
