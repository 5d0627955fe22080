package tree

import (
	"github.com/signadot/ytree/debug"
	"github.com/signadot/ytree/diag"
)

// isAncestor reports whether a is id or one of its ancestors.
func (t *Tree) isAncestor(a, id ID) bool {
	n := 0
	for p := id; p != None; p = t.nodes[p].Parent {
		if p == a {
			return true
		}
		n++
		if n > len(t.nodes) {
			diag.Fatal("node %d: parent chain does not terminate", id)
		}
	}
	return false
}

// Move repositions node among its siblings, right after after, or first
// if after is None.
func (t *Tree) Move(node, after ID) error {
	if err := t.check(node); err != nil {
		return err
	}
	p := t.nodes[node].Parent
	if p == None {
		return diag.Errorf(diag.ErrInvalidOperation, "cannot move the root")
	}
	return t.MoveTo(node, p, after)
}

// MoveTo detaches node and attaches it under newParent right after after,
// or first if after is None. The subtree travels unchanged and keeps its
// ids. Nothing changes unless every check passes.
func (t *Tree) MoveTo(node, newParent, after ID) error {
	if err := t.checkMove(node, newParent, after); err != nil {
		if debug.Move() {
			debug.Logf("move %d -> %d after %d: %v\n", node, newParent, after, err)
		}
		return err
	}
	if t.nodes[node].Parent == newParent && t.nodes[node].PrevSibling == after {
		return nil
	}
	t.detach(node)
	t.attach(node, newParent, after)
	if debug.Move() {
		debug.Logf("moved %d -> %d after %d\n", node, newParent, after)
	}
	return nil
}

func (t *Tree) checkMove(node, newParent, after ID) error {
	if err := t.check(node); err != nil {
		return err
	}
	if err := t.check(newParent); err != nil {
		return err
	}
	if t.nodes[node].Parent == None {
		return diag.Errorf(diag.ErrInvalidOperation, "cannot move the root")
	}
	if err := t.checkAfter(newParent, after); err != nil {
		return err
	}
	if after == node {
		return diag.Errorf(diag.ErrInvalidOperation, "cannot place node %d after itself", node)
	}
	if err := t.accepts(newParent, node); err != nil {
		return err
	}
	if t.isAncestor(node, newParent) {
		return diag.Errorf(diag.ErrCyclicMove, "node %d is an ancestor of %d", node, newParent)
	}
	return nil
}

// MoveFrom copies the subtree at node of src into t under newParent right
// after after (first if None), and returns the id of the copy. All text is
// copied into the arena of t and src is left untouched. When src is t the
// copy stays in the same tree, and copying a node into its own subtree
// fails with diag.ErrCyclicMove.
func (t *Tree) MoveFrom(src *Tree, node, newParent, after ID) (ID, error) {
	if err := src.check(node); err != nil {
		return None, err
	}
	if err := t.check(newParent); err != nil {
		return None, err
	}
	if err := t.checkAfter(newParent, after); err != nil {
		return None, err
	}
	if err := t.acceptsType(newParent, src.nodes[node].Type); err != nil {
		return None, err
	}
	if src == t && t.isAncestor(node, newParent) {
		return None, diag.Errorf(diag.ErrCyclicMove, "node %d is an ancestor of %d", node, newParent)
	}
	id := t.copyFrom(src, node, newParent, after)
	if debug.Move() {
		debug.Logf("copied %d -> %d under %d after %d\n", node, id, newParent, after)
	}
	return id, nil
}

// acceptsType is accepts for a node of type ct that is not yet in t.
func (t *Tree) acceptsType(parent ID, ct NodeType) error {
	pt := t.nodes[parent].Type
	switch {
	case pt.IsStream():
		if !ct.IsDoc() {
			return diag.Errorf(diag.ErrInvalidOperation, "stream %d: %s is not a document", parent, ct)
		}
	case pt.IsMap():
		if !ct.HasKey() {
			return diag.Errorf(diag.ErrInvalidOperation, "map %d: %s has no key", parent, ct)
		}
	case pt.IsSeq():
		if ct.HasKey() {
			return diag.Errorf(diag.ErrInvalidOperation, "seq %d: %s has a key", parent, ct)
		}
	default:
		return diag.Errorf(diag.ErrInvalidOperation, "node %d (%s) is not a container", parent, pt)
	}
	return nil
}

// copyFrom copies the subtree at sid of src under parent. Ids are used
// throughout since appending to t.nodes may move it.
func (t *Tree) copyFrom(src *Tree, sid, parent, after ID) ID {
	sn := src.nodes[sid]
	id := t.alloc()
	t.nodes[id].Type = sn.Type
	t.nodes[id].key = t.adopt(src, sn.key)
	t.nodes[id].val = t.adopt(src, sn.val)
	t.attach(id, parent, after)
	prev := None
	for ch := src.link(sid, sn.FirstChild, "first child"); ch != None; ch = src.next(ch) {
		prev = t.copyFrom(src, ch, id, prev)
	}
	return id
}

func (t *Tree) adopt(src *Tree, s scalar) scalar {
	if src == t {
		return s
	}
	return scalar{
		tag:    t.ownBytes(src.bytes(s.tag)),
		text:   t.ownBytes(src.bytes(s.text)),
		anchor: t.ownBytes(src.bytes(s.anchor)),
	}
}

// Duplicate copies the subtree at node under parent right after after and
// returns the id of the copy.
func (t *Tree) Duplicate(node, parent, after ID) (ID, error) {
	return t.MoveFrom(t, node, parent, after)
}

// DuplicateChildren copies every child of node, in order, under parent
// starting right after after. It returns the id of the last copy, or after
// if node has no children.
func (t *Tree) DuplicateChildren(node, parent, after ID) (ID, error) {
	if err := t.check(node); err != nil {
		return None, err
	}
	if err := t.check(parent); err != nil {
		return None, err
	}
	if err := t.checkAfter(parent, after); err != nil {
		return None, err
	}
	if t.isAncestor(node, parent) {
		return None, diag.Errorf(diag.ErrCyclicMove, "node %d is an ancestor of %d", node, parent)
	}
	for ch := t.first(node); ch != None; ch = t.next(ch) {
		if err := t.acceptsType(parent, t.nodes[ch].Type); err != nil {
			return None, err
		}
	}
	for ch := t.first(node); ch != None; ch = t.next(ch) {
		after = t.copyFrom(t, ch, parent, after)
	}
	return after, nil
}

// DuplicateContents gives where the value, properties and children of
// node: the value side of where is replaced, its key stays, and copies of
// the children of node are appended to its own.
func (t *Tree) DuplicateContents(node, where ID) error {
	return t.DuplicateContentsFrom(t, node, where)
}

// DuplicateContentsFrom is DuplicateContents for a node of src.
func (t *Tree) DuplicateContentsFrom(src *Tree, node, where ID) error {
	if err := src.check(node); err != nil {
		return err
	}
	if err := t.check(where); err != nil {
		return err
	}
	if src == t && t.isAncestor(node, where) {
		return diag.Errorf(diag.ErrCyclicMove, "node %d is %d or one of its ancestors", node, where)
	}
	sn := src.nodes[node]
	if sn.Type.IsStream() && t.nodes[where].Parent != None {
		return diag.Errorf(diag.ErrInvalidOperation, "node %d: only the root can be a stream", where)
	}
	kind := sn.Type &^ (keepKey | Doc)
	if kind.HasVal() {
		if err := t.requireLeaf(where); err != nil {
			return err
		}
	} else if err := t.childrenFit(where, kind); err != nil {
		return err
	}
	val := t.adopt(src, sn.val)
	n := &t.nodes[where]
	n.Type = n.Type&(keepKey|Doc) | kind
	n.val = val
	after := t.nodes[where].LastChild
	for ch := src.first(node); ch != None; ch = src.next(ch) {
		after = t.copyFrom(src, ch, where, after)
	}
	if debug.Move() {
		debug.Logf("copied contents of %d into %d\n", node, where)
	}
	return nil
}

// DuplicateChildrenNoRep is DuplicateChildren for a map parent which
// already holds some of the keys being copied. Of two members with the
// same key the one placed later wins: a member of parent before the
// insertion point is replaced by the copy, and one after it is moved into
// the place of the copy. Sequences are copied as by DuplicateChildren.
func (t *Tree) DuplicateChildrenNoRep(node, parent, after ID) (ID, error) {
	if err := t.check(parent); err != nil {
		return None, err
	}
	if !t.nodes[parent].Type.IsMap() {
		return t.DuplicateChildren(node, parent, after)
	}
	if err := t.check(node); err != nil {
		return None, err
	}
	if err := t.checkAfter(parent, after); err != nil {
		return None, err
	}
	if t.isAncestor(node, parent) {
		return None, diag.Errorf(diag.ErrCyclicMove, "node %d is an ancestor of %d", node, parent)
	}
	for ch := t.first(node); ch != None; ch = t.next(ch) {
		if err := t.acceptsType(parent, t.nodes[ch].Type); err != nil {
			return None, err
		}
	}
	src := t
	if t.isAncestor(parent, node) {
		// members of parent may be removed below, and node may be inside one
		src, node = t.scratchCopy(node)
	}
	afterPos := -1
	if after != None {
		afterPos, _ = t.ChildPos(parent, after)
	}
	prev := after
	for ch := src.first(node); ch != None; ch = src.next(ch) {
		key := src.str(src.nodes[ch].key.text)
		rep, repPos := None, -1
		i := 0
		for c := t.first(parent); c != None; c = t.next(c) {
			if t.str(t.nodes[c].key.text) == key {
				rep, repPos = c, i
				break
			}
			i++
		}
		switch {
		case rep == None:
			prev = t.copyFrom(src, ch, parent, prev)
		case afterPos >= 0 && repPos < afterPos:
			t.detach(rep)
			t.release(rep)
			afterPos--
			prev = t.copyFrom(src, ch, parent, prev)
		case rep != prev:
			t.detach(rep)
			t.attach(rep, parent, prev)
			prev = rep
		}
	}
	return prev, nil
}

// scratchCopy copies the subtree at node into a new tree and returns it
// with the id of the copy.
func (t *Tree) scratchCopy(node ID) (*Tree, ID) {
	s := New()
	s.nodes[0].Type = Seq
	if t.nodes[node].Type.HasKey() {
		s.nodes[0].Type = Map
	}
	return s, s.copyFrom(t, node, 0, None)
}

// Reorder renumbers the nodes in document order and drops freed slots.
// It is the one mutation besides Clear that changes ids: the root stays 0
// and every other node takes its position in a pre-order walk.
func (t *Tree) Reorder() {
	order := make([]ID, 0, t.Size())
	var walk func(ID)
	walk = func(id ID) {
		order = append(order, id)
		for ch := t.first(id); ch != None; ch = t.next(ch) {
			walk(ch)
		}
	}
	walk(0)
	if len(order) != t.Size() {
		diag.Fatal("reorder: reached %d of %d nodes", len(order), t.Size())
	}
	ids := make([]ID, len(t.nodes))
	for n, old := range order {
		ids[old] = ID(n)
	}
	remap := func(id ID) ID {
		if id == None {
			return None
		}
		return ids[id]
	}
	nodes := make([]Node, len(order), cap(t.nodes))
	for n, old := range order {
		nd := t.nodes[old]
		nd.Parent = remap(nd.Parent)
		nd.FirstChild = remap(nd.FirstChild)
		nd.LastChild = remap(nd.LastChild)
		nd.NextSibling = remap(nd.NextSibling)
		nd.PrevSibling = remap(nd.PrevSibling)
		nodes[n] = nd
	}
	t.nodes = nodes
	t.freed = 0
	if debug.Move() {
		debug.Logf("reordered %d nodes\n", len(nodes))
	}
}
