package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ytree/diag"
)

func TestMovePreservesSubtree(t *testing.T) {
	tr := sample(t)
	h, err := tr.Hash(5)
	noErr(t, err)

	noErr(t, tr.MoveTo(5, 0, None))
	chs, _ := tr.Children(0)
	if diff := cmp.Diff([]ID{5, 1, 2}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	h2, _ := tr.Hash(5)
	if h != h2 {
		t.Error("subtree changed by move")
	}
	id, err := tr.Lookup(0, "c.e.f")
	noErr(t, err)
	if id != 8 {
		t.Errorf("ids not stable: %d", id)
	}

	noErr(t, tr.Move(5, 2))
	chs, _ = tr.Children(0)
	if diff := cmp.Diff([]ID{1, 2, 5}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	noErr(t, tr.Move(4, None))
	chs, _ = tr.Children(2)
	if diff := cmp.Diff([]ID{4, 3}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// reparent e under the root map, after a
	noErr(t, tr.MoveTo(7, 0, 1))
	chs, _ = tr.Children(0)
	if diff := cmp.Diff([]ID{1, 7, 2, 5}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	p, _ := tr.Path(8)
	if p != "e.f" {
		t.Errorf("path %q", p)
	}
	noErr(t, tr.Check())
}

func TestMoveRejected(t *testing.T) {
	tests := []struct {
		name                   string
		node, newParent, after ID
		kind                   error
	}{
		{"into own child", 5, 7, None, diag.ErrCyclicMove},
		{"into itself", 5, 5, None, diag.ErrCyclicMove},
		{"root", 0, 5, None, diag.ErrInvalidOperation},
		{"after non child", 1, 5, 3, diag.ErrInvalidOperation},
		{"after itself", 6, 5, 6, diag.ErrInvalidOperation},
		{"keyed into seq", 6, 2, None, diag.ErrInvalidOperation},
		{"keyless into map", 3, 5, None, diag.ErrInvalidOperation},
		{"into scalar", 3, 1, None, diag.ErrInvalidOperation},
		{"bad node", 42, 0, None, diag.ErrInvalidIndex},
		{"bad parent", 1, -3, None, diag.ErrInvalidIndex},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := sample(t)
			before := tr.DumpString()
			wantErr(t, tr.MoveTo(tc.node, tc.newParent, tc.after), tc.kind)
			if diff := cmp.Diff(before, tr.DumpString()); diff != "" {
				t.Errorf("tree changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestMoveFromCopies(t *testing.T) {
	src := sample(t)
	srcBefore := src.DumpString()
	dst := New()
	noErr(t, dst.ToMap(0))
	noErr(t, dst.ToKeyVal(add(t, dst, 0), "z", "0"))

	id, err := dst.MoveFrom(src, 5, 0, None)
	noErr(t, err)
	if id != 2 {
		t.Errorf("copy id %d", id)
	}
	if !Equal(src, 5, dst, id) {
		t.Error("copy differs")
	}
	if diff := cmp.Diff(srcBefore, src.DumpString()); diff != "" {
		t.Errorf("source changed (-before +after):\n%s", diff)
	}
	f, err := dst.Lookup(0, "c.e.f")
	noErr(t, err)
	noErr(t, dst.SetVal(f, "changed"))
	v, _ := src.Val(8)
	if v != "y" {
		t.Errorf("source shares text: %q", v)
	}
	noErr(t, dst.Check())

	// keyed node into a sequence
	seq := New()
	noErr(t, seq.ToSeq(0))
	_, err = seq.MoveFrom(src, 5, 0, None)
	wantErr(t, err, diag.ErrInvalidOperation)
	if seq.Size() != 1 {
		t.Errorf("destination changed: %d nodes", seq.Size())
	}
	_, err = seq.MoveFrom(src, 2, 0, None)
	wantErr(t, err, diag.ErrInvalidOperation)
	id, err = seq.MoveFrom(src, 3, 0, None)
	noErr(t, err)
	v, _ = seq.Val(id)
	if v != "2" {
		t.Errorf("val %q", v)
	}
}

func TestMoveFromBorrowedText(t *testing.T) {
	buf := []byte("hello")
	src := New()
	src.SetSource(buf, true)
	noErr(t, src.ToVal(0, ""))
	x, err := src.SourceText(0, 5)
	noErr(t, err)
	noErr(t, src.SetValText(0, x))

	dst := New()
	noErr(t, dst.ToSeq(0))
	id, err := dst.MoveFrom(src, 0, 0, None)
	noErr(t, err)
	if dst.Borrowed() {
		t.Error("destination borrows")
	}
	x, _ = dst.ValText(id)
	if x.Borrowed() {
		t.Error("copied text is borrowed")
	}
	copy(buf, "HELLO")
	v, _ := dst.Val(id)
	if v != "hello" {
		t.Errorf("copy follows source: %q", v)
	}
	v, _ = src.Val(0)
	if v != "HELLO" {
		t.Errorf("source does not borrow: %q", v)
	}
}

func TestMoveFromSelf(t *testing.T) {
	tr := sample(t)
	id, err := tr.MoveFrom(tr, 3, 2, 4)
	noErr(t, err)
	chs, _ := tr.Children(2)
	if diff := cmp.Diff([]ID{3, 4, id}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	before := tr.DumpString()
	_, err = tr.MoveFrom(tr, 5, 7, None)
	wantErr(t, err, diag.ErrCyclicMove)
	_, err = tr.Duplicate(5, 5, None)
	wantErr(t, err, diag.ErrCyclicMove)
	_, err = tr.DuplicateChildren(2, 2, None)
	wantErr(t, err, diag.ErrCyclicMove)
	if diff := cmp.Diff(before, tr.DumpString()); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}

	dup, err := tr.Duplicate(7, 0, None)
	noErr(t, err)
	if !Equal(tr, 7, tr, dup) {
		t.Error("duplicate differs")
	}
	last, err := tr.DuplicateChildren(7, 5, 6)
	noErr(t, err)
	chs, _ = tr.Children(5)
	if diff := cmp.Diff([]ID{6, last, 7}, chs); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	noErr(t, tr.Check())
}

func TestCompareHash(t *testing.T) {
	a, b := sample(t), sample(t)
	if Compare(a, 0, b, 0) != 0 {
		t.Error("equal trees compare unequal")
	}
	ha, _ := a.Hash(0)
	hb, _ := b.Hash(0)
	if ha != hb {
		t.Error("equal trees hash differently")
	}
	// style does not matter
	noErr(t, b.AddFlags(2, FlowStyle))
	noErr(t, b.AddFlags(1, ValPlain))
	if !Equal(a, 0, b, 0) {
		t.Error("style changes equality")
	}
	// quoting does
	noErr(t, b.AddFlags(1, ValDquo))
	if Equal(a, 1, b, 1) {
		t.Error("quoted equals plain")
	}
	noErr(t, b.SetVal(8, "z"))
	if Compare(a, 8, b, 8) >= 0 {
		t.Error("y >= z")
	}
	hb, _ = b.Hash(0)
	if ha == hb {
		t.Error("different trees hash the same")
	}
	if Compare(a, 1, a, 2) >= 0 {
		t.Error("scalar >= seq")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(tr *Tree)
	}{
		{"wrong parent", func(tr *Tree) { tr.nodes[3].Parent = 5 }},
		{"wrong prev", func(tr *Tree) { tr.nodes[4].PrevSibling = None }},
		{"wrong last", func(tr *Tree) { tr.nodes[2].LastChild = 3 }},
		{"dangling", func(tr *Tree) { tr.nodes[6].NextSibling = 42 }},
		{"keyless map member", func(tr *Tree) { tr.nodes[6].Type = Val }},
		{"scalar with children", func(tr *Tree) { tr.nodes[2].Type = Key | Val }},
		{"detached", func(tr *Tree) { tr.nodes[5].NextSibling = None; tr.nodes[0].LastChild = 2; tr.nodes[2].NextSibling = None }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := sample(t)
			tc.corrupt(tr)
			if err := tr.Check(); !errors.Is(err, ErrInconsistent) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestDuplicateContents(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.DuplicateContents(7, 1))
	typ, _ := tr.Type(1)
	if !typ.IsMap() || !typ.HasKey() {
		t.Errorf("a is %s", typ)
	}
	f, err := tr.Lookup(0, "a.f")
	noErr(t, err)
	if v, _ := tr.Val(f); v != "y" {
		t.Errorf("a.f = %q", v)
	}
	noErr(t, tr.Check())

	wantErr(t, tr.DuplicateContents(5, 8), diag.ErrCyclicMove)
	wantErr(t, tr.DuplicateContents(5, 5), diag.ErrCyclicMove)
	wantErr(t, tr.DuplicateContents(6, 2), diag.ErrInvalidOperation)

	src := sample(t)
	before := src.DumpString()
	noErr(t, tr.DuplicateContentsFrom(src, 2, 6))
	id, err := tr.Lookup(0, "c.d[1]")
	noErr(t, err)
	if v, _ := tr.Val(id); v != "3" {
		t.Errorf("c.d[1] = %q", v)
	}
	if diff := cmp.Diff(before, src.DumpString()); diff != "" {
		t.Errorf("source changed:\n%s", diff)
	}
	noErr(t, tr.Check())
}

// dupTree builds
//
//	a: 1
//	b: 2
//	c: 3
//	m: {b: 20, d: 40}
func dupTree(t *testing.T) *Tree {
	t.Helper()
	tr := New()
	noErr(t, tr.ToMap(0))
	for _, kv := range [][2]string{{"a", "1"}, {"b", "2"}, {"c", "3"}} {
		noErr(t, tr.ToKeyVal(add(t, tr, 0), kv[0], kv[1]))
	}
	m := add(t, tr, 0)
	noErr(t, tr.ToKeyMap(m, "m"))
	noErr(t, tr.ToKeyVal(add(t, tr, m), "b", "20"))
	noErr(t, tr.ToKeyVal(add(t, tr, m), "d", "40"))
	return tr
}

func keysOf(t *testing.T, tr *Tree, id ID) []string {
	t.Helper()
	chs, err := tr.Children(id)
	noErr(t, err)
	var res []string
	for _, ch := range chs {
		k, _ := tr.Key(ch)
		v, _ := tr.Val(ch)
		res = append(res, k+"="+v)
	}
	return res
}

func TestDuplicateChildrenNoRep(t *testing.T) {
	tests := []struct {
		name  string
		after ID
		want  []string
	}{
		// b is after the insertion point and wins
		{"after a", 1, []string{"a=1", "b=2", "d=40", "c=3", "m="}},
		// b is before the insertion point and is replaced
		{"after c", 3, []string{"a=1", "c=3", "b=20", "d=40", "m="}},
		{"first", None, []string{"b=2", "d=40", "a=1", "c=3", "m="}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := dupTree(t)
			_, err := tr.DuplicateChildrenNoRep(4, 0, tc.after)
			noErr(t, err)
			if diff := cmp.Diff(tc.want, keysOf(t, tr, 0)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			noErr(t, tr.Check())
		})
	}

	tr := dupTree(t)
	_, err := tr.DuplicateChildrenNoRep(0, 4, None)
	wantErr(t, err, diag.ErrCyclicMove)
}

func TestReorder(t *testing.T) {
	tr := sample(t)
	noErr(t, tr.Remove(2))
	z := add(t, tr, 0)
	noErr(t, tr.ToKeyVal(z, "z", "9"))
	noErr(t, tr.MoveTo(7, 0, None))
	before := tr.Clone()

	tr.Reorder()
	noErr(t, tr.Check())
	if tr.Size() != tr.Slots() || tr.Size() != 7 {
		t.Errorf("size %d slots %d", tr.Size(), tr.Slots())
	}
	for path, want := range map[string]ID{"e": 1, "e.f": 2, "a": 3, "c": 4, "c.d": 5, "z": 6} {
		id, err := tr.Lookup(0, path)
		noErr(t, err)
		if id != want {
			t.Errorf("%s: id %d, want %d", path, id, want)
		}
	}
	if !Equal(before, 0, tr, 0) {
		t.Errorf("content changed:\n%s", tr.DumpString())
	}
}

func TestClone(t *testing.T) {
	tr := sample(t)
	c := tr.Clone()
	noErr(t, c.SetVal(1, "changed"))
	add(t, c, 0)
	if v, _ := tr.Val(1); v != "1" {
		t.Errorf("original a = %q", v)
	}
	if tr.Size() != 9 || c.Size() != 10 {
		t.Errorf("sizes %d %d", tr.Size(), c.Size())
	}
	noErr(t, tr.Check())
}
