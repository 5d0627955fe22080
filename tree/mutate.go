package tree

import (
	"github.com/signadot/ytree/diag"
)

// bits a container or value keeps when a node changes kind.
const (
	keepVal = Doc | ValTag | ValAnchor
	keepKey = KeyTag | KeyAnchor | KeyRef | KeyStyle | Key
)

// accepts reports whether parent may hold child given their kinds.
func (t *Tree) accepts(parent, child ID) error {
	pt, ct := t.nodes[parent].Type, t.nodes[child].Type
	switch {
	case pt.IsStream():
		if !ct.IsDoc() {
			return diag.Errorf(diag.ErrInvalidOperation, "stream %d: child %d is not a document", parent, child)
		}
	case pt.IsMap():
		if !ct.HasKey() {
			return diag.Errorf(diag.ErrInvalidOperation, "map %d: child %d has no key", parent, child)
		}
	case pt.IsSeq():
		if ct.HasKey() {
			return diag.Errorf(diag.ErrInvalidOperation, "seq %d: child %d has a key", parent, child)
		}
	default:
		return diag.Errorf(diag.ErrInvalidOperation, "node %d (%s) is not a container", parent, pt)
	}
	return nil
}

// checkAfter checks that after is None or a child of parent.
func (t *Tree) checkAfter(parent, after ID) error {
	if after == None {
		return nil
	}
	if err := t.check(after); err != nil {
		return err
	}
	if t.nodes[after].Parent != parent {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d is not a child of %d", after, parent)
	}
	return nil
}

func (t *Tree) canHoldChildren(id ID) error {
	if t.nodes[id].Type.HasVal() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d (%s) is a scalar", id, t.nodes[id].Type)
	}
	return nil
}

// AppendChild adds a new untyped node as the last child of parent.
func (t *Tree) AppendChild(parent ID) (ID, error) {
	if err := t.check(parent); err != nil {
		return None, err
	}
	return t.InsertChild(parent, t.nodes[parent].LastChild)
}

// PrependChild adds a new untyped node as the first child of parent.
func (t *Tree) PrependChild(parent ID) (ID, error) {
	return t.InsertChild(parent, None)
}

// InsertChild adds a new untyped node under parent right after the child
// after, or first if after is None.
func (t *Tree) InsertChild(parent, after ID) (ID, error) {
	if err := t.check(parent); err != nil {
		return None, err
	}
	if err := t.checkAfter(parent, after); err != nil {
		return None, err
	}
	if err := t.canHoldChildren(parent); err != nil {
		return None, err
	}
	id := t.alloc()
	t.attach(id, parent, after)
	return id, nil
}

// InsertSibling adds a new untyped node next to node, right after the
// sibling after, or first if after is None.
func (t *Tree) InsertSibling(node, after ID) (ID, error) {
	p, err := t.siblingParent(node)
	if err != nil {
		return None, err
	}
	return t.InsertChild(p, after)
}

// PrependSibling adds a new untyped node as the first sibling of node.
func (t *Tree) PrependSibling(node ID) (ID, error) {
	return t.InsertSibling(node, None)
}

// AppendSibling adds a new untyped node as the last sibling of node.
func (t *Tree) AppendSibling(node ID) (ID, error) {
	p, err := t.siblingParent(node)
	if err != nil {
		return None, err
	}
	return t.InsertChild(p, t.nodes[p].LastChild)
}

func (t *Tree) siblingParent(node ID) (ID, error) {
	if err := t.check(node); err != nil {
		return None, err
	}
	p := t.nodes[node].Parent
	if p == None {
		return None, diag.Errorf(diag.ErrInvalidOperation, "the root has no siblings")
	}
	return p, nil
}

// Remove detaches id and frees its subtree.
func (t *Tree) Remove(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	if t.nodes[id].Parent == None {
		return diag.Errorf(diag.ErrInvalidOperation, "cannot remove the root")
	}
	t.detach(id)
	t.release(id)
	return nil
}

// RemoveChildren frees every child subtree of id.
func (t *Tree) RemoveChildren(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	for ch := t.first(id); ch != None; ch = t.first(id) {
		t.detach(ch)
		t.release(ch)
	}
	return nil
}

func (t *Tree) parentIsMap(id ID) bool {
	p := t.nodes[id].Parent
	return p != None && t.nodes[p].Type.IsMap()
}

func (t *Tree) requireKeyed(id ID, keyed bool) error {
	switch {
	case keyed && !t.parentIsMap(id):
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: keyed node outside of a map", id)
	case !keyed && t.parentIsMap(id):
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: map member needs a key", id)
	}
	return nil
}

func (t *Tree) requireLeaf(id ID) error {
	if t.nodes[id].FirstChild != None {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has children", id)
	}
	return nil
}

// childrenFit checks that the existing children of id fit kind.
func (t *Tree) childrenFit(id ID, kind NodeType) error {
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		ct := t.nodes[ch].Type
		var ok bool
		switch {
		case kind.IsStream():
			ok = ct.IsDoc()
		case kind.IsMap():
			ok = ct.HasKey() || ct == NoType
		default:
			ok = !ct.HasKey()
		}
		if !ok {
			return diag.Errorf(diag.ErrInvalidOperation, "node %d: child %d (%s) does not fit in %s", id, ch, ct, kind)
		}
	}
	return nil
}

func (t *Tree) toContainer(id ID, kind NodeType, key *string) error {
	if err := t.check(id); err != nil {
		return err
	}
	if err := t.requireKeyed(id, key != nil); err != nil {
		return err
	}
	if err := t.childrenFit(id, kind); err != nil {
		return err
	}
	n := &t.nodes[id]
	n.Type = n.Type&keepVal | kind
	n.val.text = Text{}
	if key != nil {
		n.Type |= Key
		n.key = scalar{text: t.own(*key)}
	} else {
		n.key = scalar{}
	}
	return nil
}

// ToMap turns the keyless node id into a map.
func (t *Tree) ToMap(id ID) error { return t.toContainer(id, Map, nil) }

// ToSeq turns the keyless node id into a sequence.
func (t *Tree) ToSeq(id ID) error { return t.toContainer(id, Seq, nil) }

// ToKeyMap turns the map member id into a map with key key.
func (t *Tree) ToKeyMap(id ID, key string) error { return t.toContainer(id, Map, &key) }

// ToKeySeq turns the map member id into a sequence with key key.
func (t *Tree) ToKeySeq(id ID, key string) error { return t.toContainer(id, Seq, &key) }

func (t *Tree) toScalar(id ID, key *string, val string) error {
	if err := t.check(id); err != nil {
		return err
	}
	if err := t.requireKeyed(id, key != nil); err != nil {
		return err
	}
	if err := t.requireLeaf(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	n.Type = n.Type&keepVal | Val
	n.val = scalar{tag: n.val.tag, anchor: n.val.anchor, text: t.own(val)}
	if key != nil {
		n.Type |= Key
		n.key = scalar{text: t.own(*key)}
	} else {
		n.key = scalar{}
	}
	return nil
}

// ToVal turns the keyless leaf id into a scalar holding val.
func (t *Tree) ToVal(id ID, val string) error { return t.toScalar(id, nil, val) }

// ToKeyVal turns the map member id into the pair key: val.
func (t *Tree) ToKeyVal(id ID, key, val string) error { return t.toScalar(id, &key, val) }

// ToDoc marks id as a document. id must be the root or a child of a
// stream.
func (t *Tree) ToDoc(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	p := t.nodes[id].Parent
	if p != None && !t.nodes[p].Type.IsStream() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: documents belong to a stream", id)
	}
	if t.nodes[id].Type.HasKey() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: a document has no key", id)
	}
	t.nodes[id].Type |= Doc
	return nil
}

// ToStream turns the root id into a stream of documents.
func (t *Tree) ToStream(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	if t.nodes[id].Parent != None {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: only the root can be a stream", id)
	}
	if err := t.childrenFit(id, Stream); err != nil {
		return err
	}
	n := &t.nodes[id]
	n.Type = Stream
	n.key, n.val = scalar{}, scalar{}
	return nil
}

// ChangeType turns id into kind, which is one of Map, Seq or Val. The
// children and the value text of id are dropped; its key, tag and anchor
// stay. It reports false and changes nothing if id already is of kind.
func (t *Tree) ChangeType(id ID, kind NodeType) (bool, error) {
	if err := t.check(id); err != nil {
		return false, err
	}
	switch kind {
	case Map, Seq, Val:
	default:
		return false, diag.Errorf(diag.ErrInvalidOperation, "node %d: cannot change type to %s", id, kind)
	}
	n := &t.nodes[id]
	if n.Type.IsStream() {
		return false, diag.Errorf(diag.ErrInvalidOperation, "node %d: cannot change the type of a stream", id)
	}
	if n.Type&(Map|Seq|Val) == kind {
		return false, nil
	}
	if err := t.requireKeyed(id, n.Type.HasKey()); err != nil {
		return false, err
	}
	for ch := t.first(id); ch != None; ch = t.first(id) {
		t.detach(ch)
		t.release(ch)
	}
	n = &t.nodes[id]
	n.Type = n.Type&(keepKey|keepVal) | kind
	n.val = scalar{tag: n.val.tag, anchor: n.val.anchor}
	return true, nil
}

// AddFlags sets the style bits f on id.
func (t *Tree) AddFlags(id ID, f NodeType) error {
	if err := t.checkFlags(id, f); err != nil {
		return err
	}
	t.nodes[id].Type |= f
	return nil
}

// RemFlags clears the style bits f on id.
func (t *Tree) RemFlags(id ID, f NodeType) error {
	if err := t.checkFlags(id, f); err != nil {
		return err
	}
	t.nodes[id].Type &^= f
	return nil
}

func (t *Tree) checkFlags(id ID, f NodeType) error {
	if err := t.check(id); err != nil {
		return err
	}
	if f&^StyleMask != 0 {
		return diag.Errorf(diag.ErrInvalidOperation, "flags %s are not style flags", f&^StyleMask)
	}
	return nil
}

// SetKey replaces the key text of id. A key alias becomes a plain key.
func (t *Tree) SetKey(id ID, key string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if !n.Type.HasKey() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no key", id)
	}
	if n.Type.IsKeyRef() {
		n.Type &^= KeyRef
		n.key.anchor = Text{}
	}
	n.key.text = t.own(key)
	return nil
}

// SetVal replaces the value text of id. A value alias becomes a plain
// value.
func (t *Tree) SetVal(id ID, val string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if !n.Type.HasVal() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no value", id)
	}
	if n.Type.IsValRef() {
		n.Type &^= ValRef
		n.val.anchor = Text{}
	}
	n.val.text = t.own(val)
	return nil
}

// SetKeyTag sets the key tag of id; an empty tag removes it.
func (t *Tree) SetKeyTag(id ID, tag string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if !n.Type.HasKey() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no key", id)
	}
	if tag == "" {
		n.Type &^= KeyTag
		n.key.tag = Text{}
		return nil
	}
	n.Type |= KeyTag
	n.key.tag = t.own(tag)
	return nil
}

// SetValTag sets the tag of the value or container id; an empty tag removes
// it.
func (t *Tree) SetValTag(id ID, tag string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if tag == "" {
		n.Type &^= ValTag
		n.val.tag = Text{}
		return nil
	}
	n.Type |= ValTag
	n.val.tag = t.own(tag)
	return nil
}

// SetKeyAnchor sets the anchor on the key of id; an empty name removes it.
func (t *Tree) SetKeyAnchor(id ID, name string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	switch {
	case !n.Type.HasKey():
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no key", id)
	case n.Type.IsKeyRef():
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: an alias key cannot have an anchor", id)
	}
	if name == "" {
		n.Type &^= KeyAnchor
		n.key.anchor = Text{}
		return nil
	}
	n.Type |= KeyAnchor
	n.key.anchor = t.own(name)
	return nil
}

// SetValAnchor sets the anchor on the value or container id; an empty name
// removes it.
func (t *Tree) SetValAnchor(id ID, name string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if n.Type.IsValRef() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: an alias cannot have an anchor", id)
	}
	if name == "" {
		n.Type &^= ValAnchor
		n.val.anchor = Text{}
		return nil
	}
	n.Type |= ValAnchor
	n.val.anchor = t.own(name)
	return nil
}

// SetKeyRef makes the key of id an alias of the anchor name.
func (t *Tree) SetKeyRef(id ID, name string) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if !n.Type.HasKey() {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d has no key", id)
	}
	if name == "" {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: empty alias", id)
	}
	n.Type = n.Type&^(KeyAnchor|KeyTag|KeyStyle) | KeyRef
	n.key = scalar{anchor: t.own(name), text: t.own("*" + name)}
	return nil
}

// SetValRef makes the leaf id an alias of the anchor name.
func (t *Tree) SetValRef(id ID, name string) error {
	if err := t.check(id); err != nil {
		return err
	}
	if err := t.requireLeaf(id); err != nil {
		return err
	}
	if name == "" {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: empty alias", id)
	}
	n := &t.nodes[id]
	n.Type = n.Type&(keepKey|Doc) | Val | ValRef
	n.val = scalar{anchor: t.own(name), text: t.own("*" + name)}
	return nil
}

// RemKeyRef turns the alias key of id into a plain key holding the alias
// text.
func (t *Tree) RemKeyRef(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if n.Type.IsKeyRef() {
		n.Type &^= KeyRef
		n.key.anchor = Text{}
	}
	return nil
}

// RemValRef turns the alias id into a plain value holding the alias text.
func (t *Tree) RemValRef(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	n := &t.nodes[id]
	if n.Type.IsValRef() {
		n.Type &^= ValRef
		n.val.anchor = Text{}
	}
	return nil
}

// RemAnchors removes the key and value anchors of id.
func (t *Tree) RemAnchors(id ID) error {
	if err := t.check(id); err != nil {
		return err
	}
	t.remAnchors(id)
	return nil
}

func (t *Tree) remAnchors(id ID) {
	n := &t.nodes[id]
	n.key.anchor = Text{}
	n.val.anchor = Text{}
	n.Type &^= KeyAnchor | ValAnchor
}
