package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/signadot/ytree/debug"
	"github.com/signadot/ytree/diag"
	"github.com/signadot/ytree/tree"
	"gopkg.in/yaml.v3"
)

// Parse parses src into a new tree holding its own copy of the text.
func Parse(src []byte, opts ...ParseOption) (t *tree.Tree, err error) {
	diag.Init()
	defer func() {
		if err != nil {
			t = nil
		}
	}()
	defer diag.Recover(&err)
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	in := src
	if o.format.IsJSON() {
		var raw json.RawMessage
		if err := json.Unmarshal(src, &raw); err != nil {
			return nil, jsonError(o.name, src, err)
		}
		// yaml rejects tabs where JSON allows them; outside of strings they
		// are only whitespace.
		if bytes.IndexByte(src, '\t') != -1 {
			in = bytes.ReplaceAll(src, []byte{'\t'}, []byte{' '})
		}
	}
	docs, err := decode(in, o.name)
	if err != nil {
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parse %q: %d documents, in place %t\n", o.name, len(docs), o.inPlace)
	}
	t = tree.NewCap(len(src)/4+1, 0)
	t.SetName(o.name)
	t.SetSource(src, o.inPlace)
	l := newLoader(t, o)
	l.load(docs)
	if o.resolve {
		if err := t.Resolve(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ParseInPlace is Parse with [InPlace]: the tree refers to scalars inside
// src, which must outlive it and stay unmodified.
func ParseInPlace(src []byte, opts ...ParseOption) (*tree.Tree, error) {
	return Parse(src, append(opts, InPlace())...)
}

// ParseString parses s into a new tree.
func ParseString(s string, opts ...ParseOption) (*tree.Tree, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads r fully and parses it into a new tree.
func ParseReader(r io.Reader, opts ...ParseOption) (*tree.Tree, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

func decode(src []byte, name string) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	var docs []*yaml.Node
	for {
		doc := &yaml.Node{}
		err := dec.Decode(doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, malformed(name, err)
		}
		docs = append(docs, doc)
	}
}
