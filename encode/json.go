package encode

import (
	"github.com/signadot/ytree/tree"
)

// target is an anchored node: its key when key is set, else its value.
type target struct {
	id  tree.ID
	key bool
}

func (e *emitter) json(id tree.ID) {
	if e.emptyTree(id) {
		return
	}
	e.keyRefs = map[tree.ID]target{}
	e.valRefs = map[tree.ID]target{}
	e.open = map[tree.ID]bool{}
	e.collect(e.t.Root(), nil)

	n := e.get(id)
	switch {
	case n.Type.IsStream():
		for ch := n.FirstChild; ch != tree.None; ch = e.get(ch).NextSibling {
			e.jsonValue(ch, e.get(ch))
			e.nl()
		}
	case n.Type.HasKey():
		e.put(MapClass, SepColor, "{")
		e.jsonMember(id, n)
		e.put(MapClass, SepColor, "}")
		e.nl()
	default:
		e.jsonValue(id, n)
		e.nl()
	}
}

// collect records in document order which anchor each alias under id
// refers to.
func (e *emitter) collect(id tree.ID, defs map[string]target) {
	n := e.get(id)
	if n.Type.IsStream() {
		for ch := n.FirstChild; ch != tree.None; ch = e.get(ch).NextSibling {
			e.collect(ch, map[string]target{})
		}
		return
	}
	if defs == nil {
		defs = map[string]target{}
	}
	if a := must(e.t.KeyAnchor(id)); a != "" {
		defs[a] = target{id: id, key: true}
	}
	if r := must(e.t.KeyRef(id)); r != "" {
		if tg, ok := defs[r]; ok {
			e.keyRefs[id] = tg
		}
	}
	if a := must(e.t.ValAnchor(id)); a != "" {
		defs[a] = target{id: id}
	}
	if r := must(e.t.ValRef(id)); r != "" {
		if tg, ok := defs[r]; ok {
			e.valRefs[id] = tg
		}
	}
	for ch := n.FirstChild; ch != tree.None; ch = e.get(ch).NextSibling {
		e.collect(ch, defs)
	}
}

func (e *emitter) jsonValue(id tree.ID, n tree.Node) {
	switch {
	case n.Type.IsValRef():
		e.jsonAlias(id)
	case n.Type.IsMap():
		e.open[id] = true
		e.put(MapClass, SepColor, "{")
		for ch := n.FirstChild; ch != tree.None; {
			c := e.get(ch)
			if ch != n.FirstChild {
				e.put(MapClass, SepColor, ",")
			}
			if !c.Type.HasKey() {
				e.unkeyed(ch)
			}
			e.jsonMember(ch, c)
			ch = c.NextSibling
		}
		e.put(MapClass, SepColor, "}")
		delete(e.open, id)
	case n.Type.IsSeq():
		e.open[id] = true
		e.put(SeqClass, SepColor, "[")
		for ch := n.FirstChild; ch != tree.None; {
			c := e.get(ch)
			if ch != n.FirstChild {
				e.put(SeqClass, SepColor, ",")
			}
			e.jsonValue(ch, c)
			ch = c.NextSibling
		}
		e.put(SeqClass, SepColor, "]")
		delete(e.open, id)
	case n.Type.HasVal():
		e.jsonScalar(must(e.t.Val(id)), n.Type&tree.ValStyle, must(e.t.ValTag(id)))
	default:
		e.untyped(id)
	}
}

func (e *emitter) jsonMember(id tree.ID, n tree.Node) {
	e.put(MapClass, KeyColor, Quote(e.jsonKey(id, n)))
	e.put(MapClass, SepColor, ":")
	e.o.byte(' ')
	e.jsonValue(id, n)
}

func (e *emitter) jsonKey(id tree.ID, n tree.Node) string {
	if !n.Type.IsKeyRef() {
		return must(e.t.Key(id))
	}
	tg, ok := e.keyRefs[id]
	if !ok {
		return "*" + must(e.t.KeyRef(id))
	}
	if tg.key {
		return must(e.t.Key(tg.id))
	}
	if e.get(tg.id).Type&(tree.Map|tree.Seq) != 0 {
		return "*" + must(e.t.KeyRef(id))
	}
	return must(e.t.Val(tg.id))
}

// jsonAlias writes the anchored node in place of the alias at id. An alias
// to a node being written, or to no node, is written as its alias text.
func (e *emitter) jsonAlias(id tree.ID) {
	tg, ok := e.valRefs[id]
	if !ok || e.open[tg.id] {
		e.put(AliasClass, ValueColor, Quote("*"+must(e.t.ValRef(id))))
		return
	}
	if tg.key {
		n := e.get(tg.id)
		e.jsonScalar(must(e.t.Key(tg.id)), (n.Type&tree.KeyStyle)<<1, must(e.t.KeyTag(tg.id)))
		return
	}
	e.open[tg.id] = true
	e.jsonValue(tg.id, e.get(tg.id))
	delete(e.open, tg.id)
}

func (e *emitter) jsonScalar(text string, st tree.NodeType, tag string) {
	if st&(tree.ValSquo|tree.ValDquo|tree.ValLiteral|tree.ValFolded) != 0 || stringTag(tag) {
		e.put(StringClass, ValueColor, Quote(text))
		return
	}
	v, c := plainJSON(text)
	e.put(c, ValueColor, v)
}
