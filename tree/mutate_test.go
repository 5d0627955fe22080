package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ytree/diag"
)

func TestKindRules(t *testing.T) {
	tr := sample(t)
	tests := []struct {
		name string
		f    func() error
	}{
		{"keyless val in map", func() error { return tr.ToVal(1, "x") }},
		{"keyed val in seq", func() error { return tr.ToKeyVal(3, "k", "v") }},
		{"scalar with children", func() error { return tr.ToKeyVal(5, "c", "v") }},
		{"keyless map in map", func() error { return tr.ToMap(2) }},
		{"map of keyless children", func() error { return tr.ToKeyMap(2, "b") }},
		{"child of scalar", func() error { _, err := tr.AppendChild(1); return err }},
		{"non style flag", func() error { return tr.AddFlags(2, Map) }},
		{"doc in map", func() error { return tr.ToDoc(5) }},
		{"stream below root", func() error { return tr.ToStream(5) }},
		{"key of seq item", func() error { return tr.SetKey(3, "k") }},
		{"remove root", func() error { return tr.Remove(0) }},
		{"insert after non child", func() error { _, err := tr.InsertChild(2, 6); return err }},
	}
	before := tr.DumpString()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wantErr(t, tc.f(), diag.ErrInvalidOperation)
		})
	}
	if diff := cmp.Diff(before, tr.DumpString()); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}
}

func TestInsert(t *testing.T) {
	tr := sample(t)
	first, err := tr.PrependChild(2)
	noErr(t, err)
	noErr(t, tr.ToVal(first, "1"))
	mid, err := tr.InsertChild(2, 3)
	noErr(t, err)
	noErr(t, tr.ToVal(mid, "2.5"))
	chs, _ := tr.Children(2)
	if diff := cmp.Diff([]ID{first, 3, mid, 4}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	noErr(t, tr.Check())
}

func TestRemove(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.Remove(2))
	if tr.Size() != 6 {
		t.Errorf("size %d", tr.Size())
	}
	for _, id := range []ID{2, 3, 4} {
		_, err := tr.Type(id)
		wantErr(t, err, diag.ErrInvalidIndex)
	}
	chs, _ := tr.Children(0)
	if diff := cmp.Diff([]ID{1, 5}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	// freed slots are not reused
	id := add(t, tr, 0)
	if id != 9 {
		t.Errorf("new id %d", id)
	}
	noErr(t, tr.ToKeyVal(id, "z", "26"))
	noErr(t, tr.RemoveChildren(5))
	n, _ := tr.NumChildren(5)
	if n != 0 {
		t.Errorf("%d children left", n)
	}
	noErr(t, tr.Check())
}

func TestRetype(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.RemoveChildren(2))
	noErr(t, tr.ToKeyVal(2, "b", "two"))
	noErr(t, tr.ToKeySeq(1, "a"))
	noErr(t, tr.ToVal(add(t, tr, 1), "x"))
	noErr(t, tr.AddFlags(1, FlowStyle))
	typ, _ := tr.Type(1)
	if typ != Key|Seq|FlowStyle {
		t.Errorf("type %s", typ)
	}
	noErr(t, tr.RemFlags(1, FlowStyle))
	typ, _ = tr.Type(2)
	if typ != Key|Val {
		t.Errorf("type %s", typ)
	}
	noErr(t, tr.Check())
}

func TestStreamDocs(t *testing.T) {
	tr := New()
	noErr(t, tr.ToStream(0))
	for i, v := range []string{"a", "b"} {
		d := add(t, tr, 0)
		noErr(t, tr.ToVal(d, v))
		noErr(t, tr.ToDoc(d))
		typ, _ := tr.Type(d)
		if typ != Val|Doc {
			t.Errorf("doc %d: %s", i, typ)
		}
	}
	noErr(t, tr.Check())
	typ, _ := tr.Type(0)
	if !typ.IsStream() {
		t.Errorf("root %s", typ)
	}
}

func TestRefs(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.SetValAnchor(5, "c"))
	noErr(t, tr.SetValRef(1, "c"))
	name, _ := tr.ValRef(1)
	val, _ := tr.Val(1)
	if name != "c" || val != "*c" {
		t.Errorf("ref %q %q", name, val)
	}
	wantErr(t, tr.SetValAnchor(1, "x"), diag.ErrInvalidOperation)
	wantErr(t, tr.SetValRef(5, "x"), diag.ErrInvalidOperation)
	noErr(t, tr.SetKeyRef(6, "k"))
	typ, _ := tr.Type(6)
	if !typ.IsKeyRef() {
		t.Errorf("type %s", typ)
	}
	noErr(t, tr.SetKey(6, "d"))
	typ, _ = tr.Type(6)
	if typ.IsKeyRef() {
		t.Errorf("type %s", typ)
	}
	noErr(t, tr.SetVal(1, "1"))
	typ, _ = tr.Type(1)
	if typ.IsValRef() {
		t.Errorf("type %s", typ)
	}
	noErr(t, tr.RemAnchors(5))
	a, _ := tr.ValAnchor(5)
	if a != "" {
		t.Errorf("anchor %q", a)
	}
}

func TestInsertSibling(t *testing.T) {
	tr := sample(t)
	last, err := tr.AppendSibling(3)
	noErr(t, err)
	noErr(t, tr.ToVal(last, "9"))
	mid, err := tr.InsertSibling(3, 3)
	noErr(t, err)
	noErr(t, tr.ToVal(mid, "x"))
	chs, _ := tr.Children(2)
	if diff := cmp.Diff([]ID{3, mid, 4, last}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	first, err := tr.PrependSibling(6)
	noErr(t, err)
	noErr(t, tr.ToKeyVal(first, "z", "0"))
	chs, _ = tr.Children(5)
	if diff := cmp.Diff([]ID{first, 6, 7}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	noErr(t, tr.Check())

	_, err = tr.InsertSibling(3, 6)
	wantErr(t, err, diag.ErrInvalidOperation)
	_, err = tr.AppendSibling(0)
	wantErr(t, err, diag.ErrInvalidOperation)
}

func TestChangeType(t *testing.T) {
	tr := sample(t)
	changed, err := tr.ChangeType(5, Seq)
	noErr(t, err)
	if !changed {
		t.Error("c not changed")
	}
	typ, _ := tr.Type(5)
	if !typ.IsSeq() || !typ.HasKey() {
		t.Errorf("c is %s", typ)
	}
	if k, _ := tr.Key(5); k != "c" {
		t.Errorf("key %q", k)
	}
	if n, _ := tr.NumChildren(5); n != 0 || tr.Size() != 6 {
		t.Errorf("%d children, size %d", n, tr.Size())
	}
	changed, err = tr.ChangeType(5, Seq)
	noErr(t, err)
	if changed {
		t.Error("c changed twice")
	}

	noErr(t, tr.SetValTag(2, "!t"))
	changed, err = tr.ChangeType(2, Val)
	noErr(t, err)
	if !changed {
		t.Error("b not changed")
	}
	if v, _ := tr.Val(2); v != "" {
		t.Errorf("val %q", v)
	}
	if tag, _ := tr.ValTag(2); tag != "!t" {
		t.Errorf("tag %q", tag)
	}

	changed, err = tr.ChangeType(1, Map)
	noErr(t, err)
	if v, _ := tr.Val(1); !changed || v != "" {
		t.Errorf("a: changed %t val %q", changed, v)
	}
	noErr(t, tr.Check())

	_, err = tr.ChangeType(1, Doc)
	wantErr(t, err, diag.ErrInvalidOperation)
	_, err = tr.ChangeType(99, Map)
	wantErr(t, err, diag.ErrInvalidIndex)
}

func TestRemRefs(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.SetValRef(6, "x"))
	noErr(t, tr.RemValRef(6))
	typ, _ := tr.Type(6)
	if typ.IsValRef() {
		t.Error("d is still an alias")
	}
	if v, _ := tr.Val(6); v != "*x" {
		t.Errorf("val %q", v)
	}
	if r, _ := tr.ValRef(6); r != "" {
		t.Errorf("ref %q", r)
	}

	noErr(t, tr.SetKeyRef(1, "k"))
	noErr(t, tr.RemKeyRef(1))
	typ, _ = tr.Type(1)
	if typ.IsKeyRef() {
		t.Error("a has an alias key")
	}
	if k, _ := tr.Key(1); k != "*k" {
		t.Errorf("key %q", k)
	}
	noErr(t, tr.RemKeyRef(3))
	noErr(t, tr.Check())
}
