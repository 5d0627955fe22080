package tree

import (
	"github.com/signadot/ytree/diag"
)

// Type returns the type bits of id.
func (t *Tree) Type(id ID) (NodeType, error) {
	if err := t.check(id); err != nil {
		return NoType, err
	}
	return t.nodes[id].Type, nil
}

// IsRoot reports whether id is the root.
func (t *Tree) IsRoot(id ID) (bool, error) {
	if err := t.check(id); err != nil {
		return false, err
	}
	return t.nodes[id].Parent == None, nil
}

// Parent returns the parent of id, or None for the root.
func (t *Tree) Parent(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.link(id, t.nodes[id].Parent, "parent"), nil
}

// FirstChild returns the first child of id, or None.
func (t *Tree) FirstChild(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.link(id, t.nodes[id].FirstChild, "first child"), nil
}

// LastChild returns the last child of id, or None.
func (t *Tree) LastChild(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.link(id, t.nodes[id].LastChild, "last child"), nil
}

// NextSibling returns the sibling after id, or None.
func (t *Tree) NextSibling(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.link(id, t.nodes[id].NextSibling, "next sibling"), nil
}

// PrevSibling returns the sibling before id, or None.
func (t *Tree) PrevSibling(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.link(id, t.nodes[id].PrevSibling, "previous sibling"), nil
}

// next is NextSibling for an id known to be valid.
func (t *Tree) next(id ID) ID {
	return t.link(id, t.nodes[id].NextSibling, "next sibling")
}

func (t *Tree) first(id ID) ID {
	return t.link(id, t.nodes[id].FirstChild, "first child")
}

// NumChildren returns the number of children of id.
func (t *Tree) NumChildren(id ID) (int, error) {
	if err := t.check(id); err != nil {
		return 0, err
	}
	return t.numChildren(id), nil
}

func (t *Tree) numChildren(id ID) int {
	n := 0
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		n++
		if n > len(t.nodes) {
			diag.Fatal("node %d: sibling list does not terminate", id)
		}
	}
	return n
}

// Child returns the child of id at position pos.
func (t *Tree) Child(id ID, pos int) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	if pos < 0 {
		return None, diag.Errorf(diag.ErrIndexOutOfBounds, "node %d: child position %d", id, pos)
	}
	i := 0
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		if i == pos {
			return ch, nil
		}
		i++
		if i > len(t.nodes) {
			diag.Fatal("node %d: sibling list does not terminate", id)
		}
	}
	return None, diag.Errorf(diag.ErrIndexOutOfBounds, "node %d: child position %d, have %d children", id, pos, i)
}

// ChildPos returns the position of ch among the children of id, or -1 if ch
// is not a child of id.
func (t *Tree) ChildPos(id, ch ID) (int, error) {
	if err := t.check(id); err != nil {
		return -1, err
	}
	if err := t.check(ch); err != nil {
		return -1, err
	}
	i := 0
	for c := t.first(id); c != None; c = t.next(c) {
		if c == ch {
			return i, nil
		}
		i++
	}
	return -1, nil
}

// Children returns the children of id in order.
func (t *Tree) Children(id ID) ([]ID, error) {
	if err := t.check(id); err != nil {
		return nil, err
	}
	var res []ID
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		res = append(res, ch)
	}
	return res, nil
}

// FindChild returns the child of map id whose key is key, or None.
func (t *Tree) FindChild(id ID, key string) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	return t.findChild(id, key), nil
}

func (t *Tree) findChild(id ID, key string) ID {
	if !t.nodes[id].Type.IsMap() {
		return None
	}
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		n := &t.nodes[ch]
		if n.Type.HasKey() && !n.Type.IsKeyRef() && string(t.bytes(n.key.text)) == key {
			return ch
		}
	}
	return None
}

// HasChild reports whether the map id has a member with key key.
func (t *Tree) HasChild(id ID, key string) (bool, error) {
	if err := t.check(id); err != nil {
		return false, err
	}
	return t.findChild(id, key) != None, nil
}

// HasChildren reports whether id has at least one child.
func (t *Tree) HasChildren(id ID) (bool, error) {
	if err := t.check(id); err != nil {
		return false, err
	}
	return t.first(id) != None, nil
}

// HasSibling reports whether id, or one of its siblings, has key key.
func (t *Tree) HasSibling(id ID, key string) (bool, error) {
	sib, err := t.FindSibling(id, key)
	return sib != None, err
}

// NumSiblings returns the number of children of the parent of id, id
// included. The root counts as its only sibling.
func (t *Tree) NumSiblings(id ID) (int, error) {
	if err := t.check(id); err != nil {
		return 0, err
	}
	p := t.nodes[id].Parent
	if p == None {
		return 1, nil
	}
	return t.numChildren(p), nil
}

// SiblingPos returns the position of sib among the siblings of id, or -1
// if sib is not one of them.
func (t *Tree) SiblingPos(id, sib ID) (int, error) {
	if err := t.check(id); err != nil {
		return -1, err
	}
	p := t.nodes[id].Parent
	if p == None {
		if err := t.check(sib); err != nil {
			return -1, err
		}
		if sib == id {
			return 0, nil
		}
		return -1, nil
	}
	return t.ChildPos(p, sib)
}

// FirstSibling returns the first child of the parent of id; for the root
// it is the root itself.
func (t *Tree) FirstSibling(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	p := t.nodes[id].Parent
	if p == None {
		return id, nil
	}
	return t.first(p), nil
}

// LastSibling returns the last child of the parent of id; for the root it
// is the root itself.
func (t *Tree) LastSibling(id ID) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	p := t.nodes[id].Parent
	if p == None {
		return id, nil
	}
	return t.link(p, t.nodes[p].LastChild, "last child"), nil
}

// Sibling returns the sibling of id at position pos.
func (t *Tree) Sibling(id ID, pos int) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	p := t.nodes[id].Parent
	if p == None {
		if pos != 0 {
			return None, diag.Errorf(diag.ErrIndexOutOfBounds, "root: sibling position %d", pos)
		}
		return id, nil
	}
	return t.Child(p, pos)
}

// FindSibling returns the member with key key of the map holding id, id
// itself included, or None.
func (t *Tree) FindSibling(id ID, key string) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	p := t.nodes[id].Parent
	if p == None {
		return None, nil
	}
	return t.findChild(p, key), nil
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id ID) (int, error) {
	if err := t.check(id); err != nil {
		return 0, err
	}
	d := 0
	for p := t.nodes[id].Parent; p != None; p = t.nodes[p].Parent {
		d++
		if d > len(t.nodes) {
			diag.Fatal("node %d: parent chain does not terminate", id)
		}
	}
	return d, nil
}

func (t *Tree) scalarOf(id ID, key bool) (*scalar, error) {
	if err := t.check(id); err != nil {
		return nil, err
	}
	if key {
		return &t.nodes[id].key, nil
	}
	return &t.nodes[id].val, nil
}

// Key returns the key text of id, or "" if it has none.
func (t *Tree) Key(id ID) (string, error) {
	s, err := t.scalarOf(id, true)
	if err != nil {
		return "", err
	}
	return t.str(s.text), nil
}

// KeyTag returns the key tag of id, or "".
func (t *Tree) KeyTag(id ID) (string, error) {
	s, err := t.scalarOf(id, true)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.HasKeyTag() {
		return "", nil
	}
	return t.str(s.tag), nil
}

// KeyAnchor returns the name of the anchor on the key of id, or "".
func (t *Tree) KeyAnchor(id ID) (string, error) {
	s, err := t.scalarOf(id, true)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.HasKeyAnchor() {
		return "", nil
	}
	return t.str(s.anchor), nil
}

// KeyRef returns the anchor name the key of id refers to, or "".
func (t *Tree) KeyRef(id ID) (string, error) {
	s, err := t.scalarOf(id, true)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.IsKeyRef() {
		return "", nil
	}
	return t.str(s.anchor), nil
}

// Val returns the value text of id, or "" if it has none.
func (t *Tree) Val(id ID) (string, error) {
	s, err := t.scalarOf(id, false)
	if err != nil {
		return "", err
	}
	return t.str(s.text), nil
}

// ValTag returns the tag of the value (or container) of id, or "".
func (t *Tree) ValTag(id ID) (string, error) {
	s, err := t.scalarOf(id, false)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.HasValTag() {
		return "", nil
	}
	return t.str(s.tag), nil
}

// ValAnchor returns the name of the anchor on the value of id, or "".
func (t *Tree) ValAnchor(id ID) (string, error) {
	s, err := t.scalarOf(id, false)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.HasValAnchor() {
		return "", nil
	}
	return t.str(s.anchor), nil
}

// ValRef returns the anchor name the value of id refers to, or "".
func (t *Tree) ValRef(id ID) (string, error) {
	s, err := t.scalarOf(id, false)
	if err != nil {
		return "", err
	}
	if !t.nodes[id].Type.IsValRef() {
		return "", nil
	}
	return t.str(s.anchor), nil
}

// KeyBytes is like Key but returns a view of the stored text that must not
// be modified or retained across mutations of t.
func (t *Tree) KeyBytes(id ID) ([]byte, error) {
	s, err := t.scalarOf(id, true)
	if err != nil {
		return nil, err
	}
	return t.bytes(s.text), nil
}

// ValBytes is the value form of KeyBytes.
func (t *Tree) ValBytes(id ID) ([]byte, error) {
	s, err := t.scalarOf(id, false)
	if err != nil {
		return nil, err
	}
	return t.bytes(s.text), nil
}

// Visit walks the subtree at id depth first, calling f before (isPost false)
// and after (isPost true) the children of each node. Returning false from
// the pre-order call skips the children and the post-order call.
func (t *Tree) Visit(id ID, f func(id ID, isPost bool) (bool, error)) error {
	if err := t.check(id); err != nil {
		return err
	}
	return t.visit(id, f)
}

func (t *Tree) visit(id ID, f func(ID, bool) (bool, error)) error {
	cont, err := f(id, false)
	if err != nil {
		return err
	}
	if !cont {
		return nil
	}
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		if err := t.visit(ch, f); err != nil {
			return err
		}
	}
	_, err = f(id, true)
	return err
}
