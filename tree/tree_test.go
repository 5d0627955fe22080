package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/ytree/diag"
)

func noErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func wantErr(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("got error %v, want %v", err, kind)
	}
}

func add(t *testing.T, tr *Tree, parent ID) ID {
	t.Helper()
	id, err := tr.AppendChild(parent)
	noErr(t, err)
	return id
}

// sample builds
//
//	a: 1
//	b: [2, 3]
//	c: {d: x, e: {f: y}}
//
// with ids a=1 b=2 b[0]=3 b[1]=4 c=5 d=6 e=7 f=8.
func sample(t *testing.T) *Tree {
	t.Helper()
	tr := New()
	noErr(t, tr.ToMap(0))
	a := add(t, tr, 0)
	noErr(t, tr.ToKeyVal(a, "a", "1"))
	b := add(t, tr, 0)
	noErr(t, tr.ToKeySeq(b, "b"))
	for _, v := range []string{"2", "3"} {
		noErr(t, tr.ToVal(add(t, tr, b), v))
	}
	c := add(t, tr, 0)
	noErr(t, tr.ToKeyMap(c, "c"))
	noErr(t, tr.ToKeyVal(add(t, tr, c), "d", "x"))
	e := add(t, tr, c)
	noErr(t, tr.ToKeyMap(e, "e"))
	noErr(t, tr.ToKeyVal(add(t, tr, e), "f", "y"))
	noErr(t, tr.Check())
	return tr
}

func TestNew(t *testing.T) {
	tr := New()
	if !tr.Empty() {
		t.Error("new tree not empty")
	}
	if tr.Size() != 1 || tr.Root() != 0 {
		t.Errorf("size %d root %d", tr.Size(), tr.Root())
	}
	typ, err := tr.Type(0)
	noErr(t, err)
	if typ != NoType {
		t.Errorf("root type %s", typ)
	}
	noErr(t, tr.Check())
}

func TestReserve(t *testing.T) {
	tr := sample(t)
	tr.Reserve(100)
	if tr.Capacity() < 100 {
		t.Errorf("capacity %d", tr.Capacity())
	}
	if tr.Slack() != tr.Capacity()-tr.Slots() {
		t.Errorf("slack %d", tr.Slack())
	}
	tr.ReserveArena(1000)
	if tr.ArenaCapacity() < 1000 {
		t.Errorf("arena capacity %d", tr.ArenaCapacity())
	}
	v, err := tr.Val(8)
	noErr(t, err)
	if v != "y" {
		t.Errorf("val after reserve %q", v)
	}
}

func TestClear(t *testing.T) {
	tr := sample(t)
	tr.Clear()
	if !tr.Empty() || tr.Size() != 1 || tr.ArenaSize() != 0 {
		t.Errorf("not cleared: size %d arena %d", tr.Size(), tr.ArenaSize())
	}
	_, err := tr.Type(3)
	wantErr(t, err, diag.ErrInvalidIndex)
}

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		typ  NodeType
		want string
	}{
		{NoType, "NOTYPE"},
		{Map | Doc, "MAP|DOC"},
		{Key | Val, "KEY|VAL"},
		{Stream, "STREAM"},
		{Key | Seq | FlowStyle, "KEY|SEQ|FLOW"},
		{Val | ValRef, "VAL|VALREF"},
		{Key | Val | KeyPlain | ValDquo, "KEY|VAL|VAL_DQUO|KEY_PLAIN"},
	}
	for _, tc := range tests {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("%#x: got %q want %q", uint64(tc.typ), got, tc.want)
		}
		var back NodeType
		noErr(t, back.UnmarshalText([]byte(tc.want)))
		if back != tc.typ {
			t.Errorf("%q: round trip gave %s", tc.want, back)
		}
	}
	var x NodeType
	if err := x.UnmarshalText([]byte("MAP|NOPE")); err == nil {
		t.Error("expected error")
	}
}

func TestNodeTypePredicates(t *testing.T) {
	if !Stream.IsSeq() || !Stream.IsStream() || Seq.IsStream() {
		t.Error("stream bits")
	}
	if !(Key | Val).IsKeyVal() || (Key | Val).IsVal() || !Val.IsVal() {
		t.Error("val bits")
	}
	if !(Val | ValSquo).IsQuoted() || (Val | ValPlain).IsQuoted() {
		t.Error("quote bits")
	}
	if !(Val | ValLiteral).ValIsString() || (Val | ValPlain).ValIsString() {
		t.Error("string bits")
	}
}

func TestGet(t *testing.T) {
	tr := sample(t)
	n, err := tr.Get(2)
	noErr(t, err)
	want := Node{
		Type:        Key | Seq,
		Parent:      0,
		FirstChild:  3,
		LastChild:   4,
		PrevSibling: 1,
		NextSibling: 5,
	}
	if diff := cmp.Diff(want, n, cmpopts.IgnoreUnexported(Node{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFaultOnCorruptLink(t *testing.T) {
	tr := sample(t)
	tr.nodes[2].FirstChild = 42
	defer func() {
		r := recover()
		if _, ok := r.(*diag.Fault); !ok {
			t.Fatalf("got %v, want fault", r)
		}
	}()
	tr.NumChildren(2)
	t.Fatal("no fault")
}
