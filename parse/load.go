package parse

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/signadot/ytree/diag"
	"github.com/signadot/ytree/tree"
	"gopkg.in/yaml.v3"
)

const scalarStyles = yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle

// loader lays out decoded documents in a tree.
type loader struct {
	t     *tree.Tree
	opts  *parseOpts
	src   []byte
	lines []int
}

func newLoader(t *tree.Tree, o *parseOpts) *loader {
	src := t.Source()
	lines := []int{0}
	for i, c := range src {
		if c == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &loader{t: t, opts: o, src: src, lines: lines}
}

func (l *loader) must(err error) {
	if err == nil {
		return
	}
	var de *diag.Error
	if errors.As(err, &de) {
		diag.Abort(de)
	}
	diag.Fatal("load: %v", err)
}

func (l *loader) loc(n *yaml.Node) diag.Location {
	return diag.Location{Name: l.opts.name, Line: n.Line, Col: n.Column}
}

func (l *loader) load(docs []*yaml.Node) {
	root := l.t.Root()
	if len(docs) == 1 {
		l.doc(root, docs[0])
		return
	}
	l.must(l.t.ToStream(root))
	for _, doc := range docs {
		id, err := l.t.AppendChild(root)
		l.must(err)
		l.doc(id, doc)
	}
}

func (l *loader) doc(id tree.ID, doc *yaml.Node) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		diag.Fatal("decoder returned %v with %d nodes, want a document", doc.Kind, len(doc.Content))
	}
	l.node(id, nil, doc.Content[0])
	l.must(l.t.ToDoc(id))
}

// node loads the value n, with key k when id is a map member.
func (l *loader) node(id tree.ID, k, n *yaml.Node) {
	t := l.t
	keyed := k != nil
	if l.opts.positions != nil {
		l.opts.positions[id] = l.loc(n)
	}
	switch n.Kind {
	case yaml.MappingNode:
		if keyed {
			l.must(t.ToKeyMap(id, ""))
		} else {
			l.must(t.ToMap(id))
		}
		l.container(id, n)
		for i := 0; i+1 < len(n.Content); i += 2 {
			ck, cv := n.Content[i], n.Content[i+1]
			if ck.Kind != yaml.ScalarNode && ck.Kind != yaml.AliasNode {
				diag.Abort(diag.At(l.loc(ck), ErrComplexKey, "keys must be scalars"))
			}
			ch, err := t.AppendChild(id)
			l.must(err)
			l.node(ch, ck, cv)
		}
	case yaml.SequenceNode:
		if keyed {
			l.must(t.ToKeySeq(id, ""))
		} else {
			l.must(t.ToSeq(id))
		}
		l.container(id, n)
		for _, item := range n.Content {
			ch, err := t.AppendChild(id)
			l.must(err)
			l.node(ch, nil, item)
		}
	case yaml.ScalarNode:
		if keyed {
			l.must(t.ToKeyVal(id, "", ""))
		} else {
			l.must(t.ToVal(id, ""))
		}
		l.must(t.SetValText(id, l.text(n)))
		l.must(t.AddFlags(id, valStyle(n.Style)))
	case yaml.AliasNode:
		if keyed {
			l.must(t.ToKeyVal(id, "", ""))
		} else {
			l.must(t.ToVal(id, ""))
		}
		l.must(t.SetValRef(id, n.Value))
	default:
		diag.Fatal("unexpected yaml node kind %v", n.Kind)
	}
	if n.Style&yaml.TaggedStyle != 0 {
		l.must(t.SetValTag(id, n.Tag))
	}
	if n.Anchor != "" {
		l.must(t.SetValAnchor(id, n.Anchor))
	}
	if keyed {
		l.key(id, k)
	}
}

func (l *loader) container(id tree.ID, n *yaml.Node) {
	if n.Style&yaml.FlowStyle != 0 {
		l.must(l.t.AddFlags(id, tree.FlowStyle))
		return
	}
	l.must(l.t.AddFlags(id, tree.BlockStyle))
}

func (l *loader) key(id tree.ID, k *yaml.Node) {
	t := l.t
	if k.Kind == yaml.AliasNode {
		l.must(t.SetKeyRef(id, k.Value))
		return
	}
	l.must(t.SetKeyText(id, l.text(k)))
	l.must(t.AddFlags(id, valStyle(k.Style)>>1))
	if k.Style&yaml.TaggedStyle != 0 {
		l.must(t.SetKeyTag(id, k.Tag))
	}
	if k.Anchor != "" {
		l.must(t.SetKeyAnchor(id, k.Anchor))
	}
}

func valStyle(s yaml.Style) tree.NodeType {
	switch {
	case s&yaml.DoubleQuotedStyle != 0:
		return tree.ValDquo
	case s&yaml.SingleQuotedStyle != 0:
		return tree.ValSquo
	case s&yaml.LiteralStyle != 0:
		return tree.ValLiteral
	case s&yaml.FoldedStyle != 0:
		return tree.ValFolded
	}
	return tree.ValPlain
}

// text returns a reference to the value of the scalar n inside the source
// when it appears there verbatim, and a copy otherwise.
func (l *loader) text(n *yaml.Node) tree.Text {
	if n.Value == "" {
		return tree.Text{}
	}
	if off, ok := l.find(n); ok {
		x, err := l.t.SourceText(off, len(n.Value))
		if err == nil {
			return x
		}
	}
	return l.t.CopyToArena(n.Value)
}

// find locates the value of n in the source.
func (l *loader) find(n *yaml.Node) (int, bool) {
	off, ok := l.offset(n.Line, n.Column)
	if !ok {
		return 0, false
	}
	off = skipProps(l.src, off)
	v := n.Value
	var q byte
	switch n.Style & scalarStyles {
	case 0:
	case yaml.DoubleQuotedStyle:
		q = '"'
	case yaml.SingleQuotedStyle:
		q = '\''
	default:
		return 0, false
	}
	if q != 0 {
		if off >= len(l.src) || l.src[off] != q {
			return 0, false
		}
		off++
		end := off + len(v)
		if end >= len(l.src) || l.src[end] != q {
			return 0, false
		}
	}
	if off+len(v) > len(l.src) || !bytes.Equal(l.src[off:off+len(v)], []byte(v)) {
		return 0, false
	}
	return off, true
}

// offset converts a 1-based line and column counted in characters to a
// byte offset.
func (l *loader) offset(line, col int) (int, bool) {
	if line < 1 || line > len(l.lines) || col < 1 {
		return 0, false
	}
	off := l.lines[line-1]
	for i := 1; i < col; i++ {
		if off >= len(l.src) || l.src[off] == '\n' {
			return 0, false
		}
		_, w := utf8.DecodeRune(l.src[off:])
		off += w
	}
	return off, true
}

// skipProps skips anchors and tags preceding a node.
func skipProps(src []byte, off int) int {
	for off < len(src) && (src[off] == '&' || src[off] == '!') {
		for off < len(src) && !isSpace(src[off]) {
			off++
		}
		for off < len(src) && (src[off] == ' ' || src[off] == '\t') {
			off++
		}
	}
	return off
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
