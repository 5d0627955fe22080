package tree

import (
	"github.com/signadot/ytree/diag"
)

func (t *Tree) bytes(x Text) []byte {
	if x.n == 0 {
		return nil
	}
	buf := t.arena
	if x.borrowed {
		buf = t.src
	}
	if x.off < 0 || x.off+x.n > len(buf) {
		diag.Fatal("text [%d:%d] outside of %d bytes (borrowed=%t)", x.off, x.off+x.n, len(buf), x.borrowed)
	}
	return buf[x.off : x.off+x.n : x.off+x.n]
}

func (t *Tree) str(x Text) string {
	return string(t.bytes(x))
}

func (t *Tree) own(s string) Text {
	if s == "" {
		return Text{}
	}
	off := len(t.arena)
	t.arena = append(t.arena, s...)
	return Text{off: off, n: len(s)}
}

func (t *Tree) ownBytes(b []byte) Text {
	if len(b) == 0 {
		return Text{}
	}
	off := len(t.arena)
	t.arena = append(t.arena, b...)
	return Text{off: off, n: len(b)}
}

// CopyToArena copies s into the text arena and returns a reference to the
// copy, for use with [Tree.SetKeyText] and [Tree.SetValText].
func (t *Tree) CopyToArena(s string) Text {
	return t.own(s)
}

// String returns the text x refers to.
func (t *Tree) String(x Text) string {
	return t.str(x)
}

// SetSource attaches the input a tree is loaded from. With borrow, t refers
// to src directly and the caller must keep it alive and unmodified for as
// long as t is used. Otherwise src is copied into the text arena. Scalars
// found verbatim in the input can then be referenced with
// [Tree.SourceText] instead of being copied.
func (t *Tree) SetSource(src []byte, borrow bool) {
	if borrow {
		t.src = src
		t.srcOff = -1
		t.srcLen = len(src)
		if t.src == nil {
			t.src = []byte{}
		}
		return
	}
	t.src = nil
	t.srcOff = len(t.arena)
	t.srcLen = len(src)
	t.arena = append(t.arena, src...)
}

// Source returns the input attached with [Tree.SetSource], if any.
func (t *Tree) Source() []byte {
	switch {
	case t.src != nil:
		return t.src
	case t.srcOff >= 0:
		return t.arena[t.srcOff : t.srcOff+t.srcLen : t.srcOff+t.srcLen]
	default:
		return nil
	}
}

// SourceText returns a reference to the n bytes at off in the attached
// source.
func (t *Tree) SourceText(off, n int) (Text, error) {
	if t.src == nil && t.srcOff < 0 {
		return Text{}, diag.Errorf(diag.ErrInvalidOperation, "tree has no source")
	}
	if off < 0 || n < 0 || off+n > t.srcLen {
		return Text{}, diag.Errorf(diag.ErrIndexOutOfBounds, "source range [%d:%d] outside of %d bytes", off, off+n, t.srcLen)
	}
	if n == 0 {
		return Text{}, nil
	}
	if t.src != nil {
		return Text{off: off, n: n, borrowed: true}, nil
	}
	return Text{off: t.srcOff + off, n: n}, nil
}

func (t *Tree) checkText(x Text) error {
	if x.n == 0 {
		return nil
	}
	size := len(t.arena)
	if x.borrowed {
		size = len(t.src)
	}
	if x.off < 0 || x.n < 0 || x.off+x.n > size {
		return diag.Errorf(diag.ErrIndexOutOfBounds, "text [%d:%d] outside of %d bytes", x.off, x.off+x.n, size)
	}
	return nil
}

// KeyText returns the reference to the key text of id.
func (t *Tree) KeyText(id ID) (Text, error) {
	if err := t.check(id); err != nil {
		return Text{}, err
	}
	return t.nodes[id].key.text, nil
}

// ValText returns the reference to the value text of id.
func (t *Tree) ValText(id ID) (Text, error) {
	if err := t.check(id); err != nil {
		return Text{}, err
	}
	return t.nodes[id].val.text, nil
}

// SetKeyText sets the key of id to text already held by t.
func (t *Tree) SetKeyText(id ID, x Text) error {
	if err := t.check(id); err != nil {
		return err
	}
	if err := t.checkText(x); err != nil {
		return err
	}
	if !t.nodes[id].Type.HasKey() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no key", id)
	}
	t.nodes[id].key.text = x
	return nil
}

// SetValText sets the value of id to text already held by t.
func (t *Tree) SetValText(id ID, x Text) error {
	if err := t.check(id); err != nil {
		return err
	}
	if err := t.checkText(x); err != nil {
		return err
	}
	if !t.nodes[id].Type.HasVal() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no value", id)
	}
	t.nodes[id].val.text = x
	return nil
}
