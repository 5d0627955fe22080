package encode

import (
	"strings"

	"github.com/signadot/ytree/tree"
)

func (e *emitter) yaml(id tree.ID) {
	if e.emptyTree(id) {
		return
	}
	n := e.get(id)
	switch {
	case n.Type.IsStream():
		for ch := n.FirstChild; ch != tree.None; ch = e.get(ch).NextSibling {
			e.put(SeqClass, SepColor, "---")
			e.blockValue(ch, 0, true)
		}
	case n.Type.HasKey():
		e.member(id, 0)
	default:
		e.blockValue(id, 0, false)
	}
}

// blockValue writes the value of id and the line end. Nested lines are
// indented depth levels. lead is set when the value follows an indicator
// on the same line.
func (e *emitter) blockValue(id tree.ID, depth int, lead bool) {
	n := e.get(id)
	if n.Type&(tree.Map|tree.Seq|tree.Val) == 0 {
		e.untyped(id)
	}
	props := e.props(id, n)
	space := func() {
		if lead {
			e.o.byte(' ')
		}
	}
	switch {
	case e.block(n):
		if props != "" {
			space()
			e.o.str(props)
		}
		if lead || props != "" {
			e.nl()
		}
		e.children(n, depth, false)
	case e.emptyPlain(id, n):
		switch {
		case props != "":
			space()
			e.o.str(props)
		case !lead:
			e.put(NullClass, ValueColor, "~")
		}
		e.nl()
	case n.Type&(tree.ValLiteral|tree.ValFolded) != 0 && !n.Type.IsValRef() && literalOK(must(e.t.Val(id))):
		space()
		if props != "" {
			e.o.str(props)
			e.o.byte(' ')
		}
		e.literal(must(e.t.Val(id)), max(depth, 1))
	default:
		space()
		if props != "" {
			e.o.str(props)
			e.o.byte(' ')
		}
		e.inline(id, n, false)
		e.nl()
	}
}

// block reports whether n is written as an indented block.
func (e *emitter) block(n tree.Node) bool {
	return n.Type&(tree.Map|tree.Seq) != 0 && !n.Type.IsFlow() && n.FirstChild != tree.None
}

func (e *emitter) emptyPlain(id tree.ID, n tree.Node) bool {
	if !n.Type.HasVal() || n.Type.IsValRef() || n.Type.ValIsString() {
		return false
	}
	return must(e.t.ValText(id)).Len() == 0
}

func (e *emitter) children(n tree.Node, depth int, compact bool) {
	isMap := n.Type.IsMap()
	for ch := n.FirstChild; ch != tree.None; {
		c := e.get(ch)
		if !compact || ch != n.FirstChild {
			e.o.repeat(' ', depth*e.indent)
		}
		if isMap {
			e.member(ch, depth)
		} else {
			e.item(ch, c, depth)
		}
		ch = c.NextSibling
	}
}

func (e *emitter) member(id tree.ID, depth int) {
	n := e.get(id)
	if !n.Type.HasKey() {
		e.unkeyed(id)
	}
	if e.explicitKey(id, n, false) {
		e.put(MapClass, SepColor, "?")
		if ps := e.keyParts(id, n, false, true); len(ps) != 0 {
			e.o.byte(' ')
			e.writeParts(ps)
		}
		e.nl()
		e.o.repeat(' ', depth*e.indent)
	} else {
		e.writeParts(e.keyParts(id, n, false, false))
		if n.Type.IsKeyRef() {
			e.o.byte(' ')
		}
	}
	e.put(MapClass, SepColor, ":")
	e.blockValue(id, depth+1, true)
}

func (e *emitter) item(id tree.ID, n tree.Node, depth int) {
	e.put(SeqClass, SepColor, "-")
	if e.block(n) && e.props(id, n) == "" {
		e.o.repeat(' ', e.indent-1)
		e.children(n, depth+1, true)
		return
	}
	e.blockValue(id, depth+1, true)
}

// maxImplicitKey bounds the length of a key written without "?".
const maxImplicitKey = 1024

type part struct {
	c Class
	a ColorAttr
	s string
}

func (e *emitter) writeParts(ps []part) {
	for i, p := range ps {
		if i > 0 {
			e.o.byte(' ')
		}
		e.put(p.c, p.a, p.s)
	}
}

// keyParts returns the key of id with its properties as written. An empty
// plain key is left out in explicit form.
func (e *emitter) keyParts(id tree.ID, n tree.Node, flow, explicit bool) []part {
	if n.Type.IsKeyRef() {
		return []part{{AliasClass, AnchorColor, "*" + must(e.t.KeyRef(id))}}
	}
	var ps []part
	if a := must(e.t.KeyAnchor(id)); a != "" {
		ps = append(ps, part{MapClass, AnchorColor, "&" + a})
	}
	if tag := must(e.t.KeyTag(id)); tag != "" {
		ps = append(ps, part{MapClass, TagColor, tagText(tag)})
	}
	text := must(e.t.Key(id))
	st := (n.Type & tree.KeyStyle) << 1
	if text == "" && !quotedStyle(st) {
		if explicit {
			return ps
		}
		return append(ps, part{NullClass, KeyColor, "~"})
	}
	return append(ps, part{MapClass, KeyColor, scalarForm(text, st, flow)})
}

// explicitKey reports whether the key of id is written as "? key": when
// it is too long for an implicit key, or, in block style, empty.
func (e *emitter) explicitKey(id tree.ID, n tree.Node, flow bool) bool {
	if n.Type.IsKeyRef() {
		return false
	}
	if !flow && must(e.t.Key(id)) == "" && !quotedStyle((n.Type&tree.KeyStyle)<<1) {
		return true
	}
	size := 0
	for _, p := range e.keyParts(id, n, flow, false) {
		size += len(p.s) + 1
	}
	return size >= maxImplicitKey
}

// props returns the anchor and tag of the value of id as written, or "".
func (e *emitter) props(id tree.ID, n tree.Node) string {
	if !n.Type.HasValAnchor() && !n.Type.HasValTag() {
		return ""
	}
	c := e.class(id, n)
	var parts []string
	if a := must(e.t.ValAnchor(id)); a != "" {
		parts = append(parts, e.paint(c, AnchorColor, "&"+a))
	}
	if tag := must(e.t.ValTag(id)); tag != "" {
		parts = append(parts, e.paint(c, TagColor, tagText(tag)))
	}
	return strings.Join(parts, " ")
}

// inline writes the value of id on the current line, in flow style for
// containers.
func (e *emitter) inline(id tree.ID, n tree.Node, flow bool) {
	switch {
	case n.Type.IsValRef():
		e.put(AliasClass, ValueColor, "*"+must(e.t.ValRef(id)))
	case n.Type.IsMap():
		e.put(MapClass, SepColor, "{")
		for ch := n.FirstChild; ch != tree.None; {
			c := e.get(ch)
			if ch != n.FirstChild {
				e.put(MapClass, SepColor, ",")
				e.o.byte(' ')
			}
			if !c.Type.HasKey() {
				e.unkeyed(ch)
			}
			if e.explicitKey(ch, c, true) {
				e.put(MapClass, SepColor, "?")
				e.o.byte(' ')
			}
			e.writeParts(e.keyParts(ch, c, true, false))
			if c.Type.IsKeyRef() {
				e.o.byte(' ')
			}
			e.put(MapClass, SepColor, ":")
			e.o.byte(' ')
			e.flowValue(ch, c, true)
			ch = c.NextSibling
		}
		e.put(MapClass, SepColor, "}")
	case n.Type.IsSeq():
		e.put(SeqClass, SepColor, "[")
		for ch := n.FirstChild; ch != tree.None; {
			c := e.get(ch)
			if ch != n.FirstChild {
				e.put(SeqClass, SepColor, ",")
				e.o.byte(' ')
			}
			e.flowValue(ch, c, false)
			ch = c.NextSibling
		}
		e.put(SeqClass, SepColor, "]")
	case n.Type.HasVal():
		e.scalar(e.class(id, n), ValueColor, must(e.t.Val(id)), n.Type&tree.ValStyle, flow)
	default:
		e.untyped(id)
	}
}

// flowValue writes the value of id inside a flow container. An empty plain
// value of a map member is written as nothing.
func (e *emitter) flowValue(id tree.ID, n tree.Node, member bool) {
	if n.Type&(tree.Map|tree.Seq|tree.Val) == 0 {
		e.untyped(id)
	}
	props := e.props(id, n)
	if e.emptyPlain(id, n) && (member || props != "") {
		e.o.str(props)
		return
	}
	if props != "" {
		e.o.str(props)
		e.o.byte(' ')
	}
	e.inline(id, n, true)
}

// scalar writes text in the style st asks for when that reads back as the
// same text, double quoted otherwise. st holds value style bits.
func (e *emitter) scalar(c Class, a ColorAttr, text string, st tree.NodeType, flow bool) {
	if text == "" && !quotedStyle(st) {
		c = NullClass
	}
	e.put(c, a, scalarForm(text, st, flow))
}

func quotedStyle(st tree.NodeType) bool {
	return st&(tree.ValSquo|tree.ValDquo|tree.ValLiteral|tree.ValFolded) != 0
}

// scalarForm returns text as written inline with style st.
func scalarForm(text string, st tree.NodeType, flow bool) string {
	switch {
	case text == "" && !quotedStyle(st):
		return "~"
	case st&tree.ValSquo != 0 && squoOK(text):
		return squote(text)
	case !quotedStyle(st) && plainOK(text, flow):
		return text
	}
	return Quote(text)
}

// literal writes text as a literal block scalar with lines at col levels.
func (e *emitter) literal(text string, col int) {
	chomp := ""
	switch {
	case !strings.HasSuffix(text, "\n"):
		chomp = "-"
	case strings.HasSuffix(text, "\n\n"):
		chomp = "+"
	}
	e.put(StringClass, SepColor, "|"+chomp)
	e.nl()
	if chomp != "-" {
		text = text[:len(text)-1]
	}
	for ln := range strings.SplitSeq(text, "\n") {
		if ln != "" {
			e.o.repeat(' ', col*e.indent)
			e.put(StringClass, LiteralColor, ln)
		}
		e.nl()
	}
}
