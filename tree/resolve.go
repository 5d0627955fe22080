package tree

import (
	"github.com/signadot/ytree/diag"
)

// MergeKey is the key whose value is merged into the enclosing map by
// [Tree.Resolve].
const MergeKey = "<<"

type anchorDef struct {
	id  ID
	key bool
}

type resolver struct {
	t       *Tree
	dry     bool
	anchors map[string]anchorDef
}

// Resolve replaces every alias with a copy of the node its anchor names,
// merges the maps given under "<<" keys into their enclosing map, and then
// removes all anchors. An alias refers to the closest preceding anchor of
// that name. On error t is unchanged.
func (t *Tree) Resolve() error {
	r := &resolver{t: t, dry: true, anchors: map[string]anchorDef{}}
	if err := r.walk(0); err != nil {
		return err
	}
	r = &resolver{t: t, anchors: map[string]anchorDef{}}
	if err := r.walk(0); err != nil {
		diag.Fatal("resolve failed after check: %v", err)
	}
	t.merge(0)
	for i := range t.nodes {
		if t.nodes[i].Type&freed != 0 {
			continue
		}
		t.remAnchors(ID(i))
	}
	return nil
}

func (r *resolver) walk(id ID) error {
	t := r.t
	n := &t.nodes[id]
	if n.Type.IsKeyRef() {
		if err := r.resolveKey(id); err != nil {
			return err
		}
	}
	if n := &t.nodes[id]; n.Type.HasKeyAnchor() {
		r.anchors[t.str(n.key.anchor)] = anchorDef{id: id, key: true}
	}
	if t.nodes[id].Type.IsValRef() {
		if err := r.resolveVal(id); err != nil {
			return err
		}
	}
	if n := &t.nodes[id]; n.Type.HasValAnchor() {
		r.anchors[t.str(n.val.anchor)] = anchorDef{id: id}
	}
	if r.dry && r.isMergeEntry(id) {
		if err := r.checkMerge(id); err != nil {
			return err
		}
	}
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		if err := r.walk(ch); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) lookup(id ID, name string) (anchorDef, error) {
	def, ok := r.anchors[name]
	if !ok {
		return def, diag.Errorf(diag.ErrInvalidOperation, "node %d: unknown anchor %q", id, name)
	}
	return def, nil
}

func (r *resolver) resolveKey(id ID) error {
	t := r.t
	def, err := r.lookup(id, t.str(t.nodes[id].key.anchor))
	if err != nil {
		return err
	}
	a := t.nodes[def.id]
	if !def.key && !a.Type.HasVal() {
		return diag.Errorf(diag.ErrMalformedInput, "node %d: key alias to non-scalar node %d", id, def.id)
	}
	if r.dry {
		return nil
	}
	n := &t.nodes[id]
	n.Type &^= KeyRef | KeyTag | KeyStyle
	if def.key {
		n.Type |= a.Type & (KeyTag | KeyStyle)
		n.key = scalar{tag: a.key.tag, text: a.key.text}
		return nil
	}
	n.Type |= (a.Type & ValStyle) >> 1
	if a.Type.HasValTag() {
		n.Type |= KeyTag
	}
	n.key = scalar{tag: a.val.tag, text: a.val.text}
	return nil
}

func (r *resolver) resolveVal(id ID) error {
	t := r.t
	def, err := r.lookup(id, t.str(t.nodes[id].val.anchor))
	if err != nil {
		return err
	}
	if !def.key && t.isAncestor(def.id, id) {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: alias to enclosing node %d", id, def.id)
	}
	if r.dry {
		return nil
	}
	a := t.nodes[def.id]
	n := &t.nodes[id]
	keep := n.Type & (keepKey | Doc)
	if def.key {
		n.Type = keep | Val | (a.Type&KeyStyle)<<1
		if a.Type.HasKeyTag() {
			n.Type |= ValTag
		}
		n.val = scalar{tag: a.key.tag, text: a.key.text}
		return nil
	}
	n.Type = keep | a.Type&^(keepKey|Doc|ValAnchor|freed)
	n.val = scalar{tag: a.val.tag, text: a.val.text}
	prev := None
	for ch := t.first(def.id); ch != None; ch = t.next(ch) {
		prev = t.copyFrom(t, ch, id, prev)
	}
	return nil
}

func (r *resolver) isMergeEntry(id ID) bool {
	return r.t.isMergeEntry(id)
}

func (t *Tree) isMergeEntry(id ID) bool {
	n := &t.nodes[id]
	if !n.Type.HasKey() || n.Type.KeyIsString() || n.Type.IsKeyRef() || !t.parentIsMap(id) {
		return false
	}
	return t.str(n.key.text) == MergeKey
}

// checkMerge checks that the value of a merge entry is a map, an alias of
// a map or a sequence of those.
func (r *resolver) checkMerge(id ID) error {
	t := r.t
	isMap := func(x ID) bool {
		n := &t.nodes[x]
		if n.Type.IsValRef() {
			def, ok := r.anchors[t.str(n.val.anchor)]
			return ok && !def.key && t.nodes[def.id].Type.IsMap()
		}
		return n.Type.IsMap()
	}
	if isMap(id) {
		return nil
	}
	if t.nodes[id].Type.IsSeq() {
		for ch := t.first(id); ch != None; ch = t.next(ch) {
			if !isMap(ch) {
				return diag.Errorf(diag.ErrInvalidOperation, "node %d: merge of non-map %d", id, ch)
			}
		}
		return nil
	}
	return diag.Errorf(diag.ErrInvalidOperation, "node %d: merge of non-map", id)
}

// merge expands merge entries bottom up. Keys already in a map win over
// merged ones, and earlier maps in a merged sequence win over later ones.
func (t *Tree) merge(id ID) {
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		t.merge(ch)
	}
	if !t.nodes[id].Type.IsMap() {
		return
	}
	for ch := t.first(id); ch != None; {
		next := t.next(ch)
		if !t.isMergeEntry(ch) {
			ch = next
			continue
		}
		var srcs []ID
		if t.nodes[ch].Type.IsMap() {
			srcs = []ID{ch}
		} else {
			for s := t.first(ch); s != None; s = t.next(s) {
				srcs = append(srcs, s)
			}
		}
		after := t.nodes[ch].PrevSibling
		for _, s := range srcs {
			for e := t.first(s); e != None; e = t.next(e) {
				if t.findChild(id, t.str(t.nodes[e].key.text)) != None {
					continue
				}
				after = t.copyFrom(t, e, id, after)
			}
		}
		t.detach(ch)
		t.release(ch)
		ch = next
	}
}
