package encode

import (
	"errors"
	"fmt"

	"github.com/signadot/ytree/diag"
)

// out feeds a sink, or only counts when sink is nil.
type out struct {
	sink          Sink
	errorOnExcess bool

	n    int
	room int
	full bool
}

// reserve returns how many of the next k bytes go to the sink.
func (o *out) reserve(k int) int {
	if o.sink == nil || o.full {
		return 0
	}
	if o.room >= k {
		return k
	}
	room, err := o.sink.Acquire(k, o.errorOnExcess)
	if err != nil {
		o.fail(err, k)
	}
	o.room = room
	if room < k {
		o.full = true
		return room
	}
	return k
}

// fail aborts with err from the sink while writing k more bytes.
func (o *out) fail(err error, k int) {
	if errors.Is(err, diag.ErrBufferExhausted) {
		diag.Abort(diag.Exhausted(o.n+k, "sink full after %d bytes", o.n))
	}
	diag.Abort(&diag.Error{Err: err, Msg: fmt.Sprintf("writing after %d bytes", o.n)})
}

func (o *out) write(p []byte) {
	if k := o.reserve(len(p)); k > 0 {
		o.sink.Write(p[:k])
		o.room -= k
	}
	o.n += len(p)
}

func (o *out) str(s string) {
	if o.sink == nil {
		o.n += len(s)
		return
	}
	o.write([]byte(s))
}

func (o *out) byte(c byte) {
	if o.reserve(1) == 1 {
		if err := o.sink.WriteByte(c); err != nil {
			o.fail(err, 1)
		}
		o.room--
	}
	o.n++
}

func (o *out) repeat(c byte, n int) {
	if n <= 0 {
		return
	}
	if k := o.reserve(n); k > 0 {
		o.sink.WriteRepeat(c, k)
		o.room -= k
	}
	o.n += n
}
