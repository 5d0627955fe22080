package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/format"
	"github.com/signadot/ytree/parse"
	"github.com/signadot/ytree/tree"
)

func noErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func load(t *testing.T, src string) *tree.Tree {
	t.Helper()
	tr, err := parse.ParseString(src)
	noErr(t, err)
	return tr
}

func yamlOf(t *testing.T, tr *tree.Tree) string {
	t.Helper()
	d, err := encode.EncodeBytes(tr)
	noErr(t, err)
	return string(d)
}

func TestGraftTree(t *testing.T) {
	src := load(t, "x:\n  y: [1, 2]\n")
	dst := load(t, "a: 1\nb:\n  c: 2\n")
	noErr(t, graftTree(dst, src, "x.y", "b"))
	want := "a: 1\nb:\n  c: 2\n  y: [1, 2]\n"
	if diff := cmp.Diff(want, yamlOf(t, dst)); diff != "" {
		t.Error(diff)
	}
	if got := yamlOf(t, src); got != "x:\n  y: [1, 2]\n" {
		t.Errorf("source changed: %q", got)
	}
	if err := graftTree(dst, src, "x.y", "a"); err == nil {
		t.Error("graft under a scalar")
	}
	if err := graftTree(dst, src, "nope", ""); err == nil {
		t.Error("graft of a missing path")
	}
}

func TestMoveNode(t *testing.T) {
	tr := load(t, "a:\n  b: 1\n  c: 2\nd:\n  e: 3\n")
	noErr(t, moveNode(tr, "a.b", "d"))
	want := "a:\n  c: 2\nd:\n  e: 3\n  b: 1\n"
	if diff := cmp.Diff(want, yamlOf(t, tr)); diff != "" {
		t.Error(diff)
	}
	// already last
	noErr(t, moveNode(tr, "d.b", "d"))
	if diff := cmp.Diff(want, yamlOf(t, tr)); diff != "" {
		t.Error(diff)
	}
	if err := moveNode(tr, "d", "d"); err == nil {
		t.Error("moved a node under itself")
	}
}

func TestCheckTree(t *testing.T) {
	tr := load(t, "a: [1, {b: c}]\nd: |\n  text\n")
	diff, err := checkTree(tr)
	noErr(t, err)
	if diff != "" {
		t.Errorf("unexpected diff:\n%s", diff)
	}
	diff, err = checkTree(tr, encode.EncodeJSON())
	noErr(t, err)
	if diff != "" {
		t.Errorf("unexpected json diff:\n%s", diff)
	}
}

func TestLineDiff(t *testing.T) {
	got := lineDiff("a: 1\nb: 2\n", "a: 1\nb: 3\n")
	want := " a: 1\n-b: 2\n+b: 3\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestFindPaths(t *testing.T) {
	tr := load(t, "a: 1\nb:\n  c: x\n  d: [x, y]\n")
	tests := []struct {
		where string
		want  []string
	}{
		{`val == "x"`, []string{"b.c", "b.d[0]"}},
		{`seq`, []string{"b.d"}},
		{`key == "c" || depth > 2`, []string{"b.c", "b.d[0]", "b.d[1]"}},
		{`map && children == 2 && depth == 1`, []string{"b"}},
	}
	for _, test := range tests {
		prg, err := compileWhere(test.where)
		noErr(t, err)
		got, err := findPaths(tr, prg)
		noErr(t, err)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%s:\n%s", test.where, diff)
		}
	}
	if _, err := compileWhere(`key + 1`); err == nil {
		t.Error("non bool predicate compiled")
	}
}

func TestApplyPatch(t *testing.T) {
	tr := load(t, "a: 1\nb: [2, 3]\n")
	p := `[{"op": "replace", "path": "/a", "value": "x"}, {"op": "add", "path": "/b/-", "value": 4}]`
	res, err := applyPatch(tr, []byte(p))
	noErr(t, err)
	d, err := encode.EncodeBytes(res, encode.EncodeJSON())
	noErr(t, err)
	want := load(t, `{"a": "x", "b": [2, 3, 4]}`)
	if !tree.Equal(want, want.Root(), res, res.Root()) {
		t.Errorf("got %s", d)
	}
	if _, err := applyPatch(tr, []byte(`[{"op": "remove", "path": "/nope"}]`)); err == nil {
		t.Error("patch of missing path applied")
	}
}

func TestLoadSettings(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	s, err := loadSettings()
	noErr(t, err)
	if diff := cmp.Diff(&settings{Indent: 2, Color: "auto", Format: format.YAMLFormat}, s); diff != "" {
		t.Error(diff)
	}

	cfgFile := "indent: 4\ncolor: never\nformat: json\n"
	noErr(t, os.WriteFile(filepath.Join(".", ".yt.yaml"), []byte(cfgFile), 0644))
	s, err = loadSettings()
	noErr(t, err)
	if diff := cmp.Diff(&settings{Indent: 4, Color: "never", Format: format.JSONFormat}, s); diff != "" {
		t.Error(diff)
	}

	t.Setenv("YT_INDENT", "3")
	s, err = loadSettings()
	noErr(t, err)
	if s.Indent != 3 {
		t.Errorf("indent %d", s.Indent)
	}

	t.Setenv("YT_COLOR", "sometimes")
	if _, err := loadSettings(); err == nil || !strings.Contains(err.Error(), "sometimes") {
		t.Errorf("got %v", err)
	}
}
