package encode

import (
	"io"

	"github.com/signadot/ytree/debug"
	"github.com/signadot/ytree/diag"
	"github.com/signadot/ytree/format"
	"github.com/signadot/ytree/tree"
)

type encState struct {
	format        format.Format
	node          tree.ID
	indent        int
	errorOnExcess bool

	color func(Class, ColorAttr, string) string
}

func newEncState(opts []EncodeOption) *encState {
	es := &encState{
		indent:        2,
		errorOnExcess: true,
	}
	for _, opt := range opts {
		opt(es)
	}
	es.indent = min(max(es.indent, 2), 9)
	return es
}

// Encode writes the tree, or the subtree selected with EncodeNode, into
// sink and returns the length of the output. The length is the full length
// even when a bounded sink received only a prefix or nothing at all.
//
// A bounded sink too small for the output is left untouched and the error
// wraps diag.ErrBufferExhausted with Attempted set to the full length. Any
// other sink failing mid way stops the emission; Attempted is then the
// number of bytes produced so far plus those being written.
func Encode(t *tree.Tree, sink Sink, opts ...EncodeOption) (int, error) {
	diag.Init()
	es := newEncState(opts)
	if !t.Valid(es.node) {
		return 0, diag.Errorf(diag.ErrInvalidIndex, "encode node %d", es.node)
	}
	n, err := es.encode(t, sink)
	if debug.Emit() {
		debug.Logf("encode %s node %d: %d bytes err=%v\n", es.format, es.node, n, err)
	}
	return n, err
}

func (es *encState) encode(t *tree.Tree, sink Sink) (int, error) {
	if b, ok := sink.(Bounded); ok {
		n, err := es.run(t, &out{})
		if err != nil {
			return n, err
		}
		if room := b.Cap(); n > room {
			if es.errorOnExcess {
				return n, diag.Exhausted(n, "output needs %d bytes, sink has %d", n, room)
			}
		}
		m, err := es.run(t, &out{sink: sink})
		if err != nil {
			return m, err
		}
		if m != n {
			diag.Fatal("encode: measured %d bytes, wrote %d", n, m)
		}
		return n, nil
	}
	n, err := es.run(t, &out{sink: sink, errorOnExcess: es.errorOnExcess})
	if err != nil {
		return n, err
	}
	if f, ok := sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return n, &diag.Error{Err: err, Msg: "flush"}
		}
	}
	return n, nil
}

func (es *encState) run(t *tree.Tree, o *out) (n int, err error) {
	defer func() { n = o.n }()
	defer diag.Recover(&err)
	e := &emitter{
		t:      t,
		o:      o,
		indent: es.indent,
		color:  es.color,
	}
	if es.format.IsJSON() {
		e.json(es.node)
	} else {
		e.yaml(es.node)
	}
	return
}

// EncodeBytes encodes t into a new buffer.
func EncodeBytes(t *tree.Tree, opts ...EncodeOption) ([]byte, error) {
	sink := NewBufferSink(t.ArenaSize() + 8*t.Size())
	if _, err := Encode(t, sink, opts...); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// EncodeTo encodes t onto w.
func EncodeTo(t *tree.Tree, w io.Writer, opts ...EncodeOption) (int, error) {
	return Encode(t, NewWriterSink(w), opts...)
}

type emitter struct {
	t      *tree.Tree
	o      *out
	indent int
	color  func(Class, ColorAttr, string) string

	// alias targets and the nodes being written, for JSON expansion
	keyRefs map[tree.ID]target
	valRefs map[tree.ID]target
	open    map[tree.ID]bool
}

func must[T any](v T, err error) T {
	if err != nil {
		diag.Fatal("encode: %v", err)
	}
	return v
}

func (e *emitter) get(id tree.ID) tree.Node {
	return must(e.t.Get(id))
}

func (e *emitter) paint(c Class, a ColorAttr, s string) string {
	if e.color == nil {
		return s
	}
	return e.color(c, a, s)
}

func (e *emitter) put(c Class, a ColorAttr, s string) {
	e.o.str(e.paint(c, a, s))
}

func (e *emitter) nl() { e.o.byte('\n') }

func (e *emitter) untyped(id tree.ID) {
	diag.Abort(diag.Errorf(diag.ErrInvalidOperation, "node %d has no type", id))
}

func (e *emitter) unkeyed(id tree.ID) {
	diag.Abort(diag.Errorf(diag.ErrInvalidOperation, "map member %d has no key", id))
}

// class returns the color class of the value of n.
func (e *emitter) class(id tree.ID, n tree.Node) Class {
	switch {
	case n.Type.IsValRef():
		return AliasClass
	case n.Type.IsMap():
		return MapClass
	case n.Type.IsSeq():
		return SeqClass
	case n.Type.ValIsString() || e.color == nil:
		return StringClass
	}
	return plainClass(must(e.t.Val(id)))
}

// emptyTree reports whether id is the lone untyped root.
func (e *emitter) emptyTree(id tree.ID) bool {
	return id == e.t.Root() && e.t.Empty()
}
