package tree

import (
	"errors"
	"testing"

	"github.com/signadot/ytree/diag"
)

func TestLookupPath(t *testing.T) {
	tr := sample(t)
	odd := add(t, tr, 5)
	noErr(t, tr.ToKeyVal(odd, "x.y", "z"))
	tests := []struct {
		path string
		id   ID
	}{
		{"", 0},
		{"a", 1},
		{"b[1]", 4},
		{"c.e.f", 8},
		{`c."x.y"`, odd},
	}
	for _, tc := range tests {
		id, err := tr.Lookup(0, tc.path)
		if err != nil {
			t.Errorf("%q: %v", tc.path, err)
			continue
		}
		if id != tc.id {
			t.Errorf("%q: got %d want %d", tc.path, id, tc.id)
		}
		p, err := tr.Path(id)
		noErr(t, err)
		if p != tc.path {
			t.Errorf("path of %d: got %q want %q", id, p, tc.path)
		}
	}
}

func TestLookupErrors(t *testing.T) {
	tr := sample(t)
	tests := []struct {
		path string
		kind error
	}{
		{"zz", ErrNoPath},
		{"a[0]", ErrNoPath},
		{"b.x", ErrNoPath},
		{"b[5]", diag.ErrIndexOutOfBounds},
		{"b[", ErrBadPath},
		{"b[x]", ErrBadPath},
		{".a", ErrBadPath},
		{"a.", ErrBadPath},
		{"a..b", ErrBadPath},
		{`"a`, ErrBadPath},
	}
	for _, tc := range tests {
		_, err := tr.Lookup(0, tc.path)
		if !errors.Is(err, tc.kind) {
			t.Errorf("%q: got %v want %v", tc.path, err, tc.kind)
		}
	}
}

func TestLookupStream(t *testing.T) {
	tr := New()
	noErr(t, tr.ToStream(0))
	d := add(t, tr, 0)
	noErr(t, tr.ToMap(d))
	noErr(t, tr.ToDoc(d))
	noErr(t, tr.ToKeyVal(add(t, tr, d), "k", "v"))
	id, err := tr.Lookup(0, "[0].k")
	noErr(t, err)
	p, _ := tr.Path(id)
	if p != "[0].k" {
		t.Errorf("path %q", p)
	}
}
