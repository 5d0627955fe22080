package tree

import (
	"slices"

	"github.com/signadot/ytree/diag"
)

// ID addresses a node in a Tree.
type ID int

// None is the id of no node.
const None ID = -1

// Text refers to bytes held by a tree: a range of its text arena or, for
// trees loaded in place, a range of the borrowed source.
type Text struct {
	off, n   int
	borrowed bool
}

// Len returns the length of the referenced text.
func (x Text) Len() int { return x.n }

// Borrowed reports whether x refers to the borrowed source.
func (x Text) Borrowed() bool { return x.borrowed }

type scalar struct {
	tag, text, anchor Text
}

// Node is a node record. Values returned by [Tree.Get] are copies.
type Node struct {
	Type NodeType

	Parent      ID
	FirstChild  ID
	LastChild   ID
	NextSibling ID
	PrevSibling ID

	key, val scalar
}

func emptyNode() Node {
	return Node{
		Parent:      None,
		FirstChild:  None,
		LastChild:   None,
		NextSibling: None,
		PrevSibling: None,
	}
}

// Tree is an arena of nodes plus the text they refer to.
type Tree struct {
	nodes []Node
	arena []byte

	// src is the borrowed input of an in-place load.
	src []byte
	// srcOff is where a copied input starts in the arena, or -1.
	srcOff int
	srcLen int

	name  string
	freed int
}

// New returns a tree holding only an empty root.
func New() *Tree {
	return NewCap(16, 0)
}

// NewCap is New with room reserved for nodes nodes and arena bytes of text.
func NewCap(nodes, arena int) *Tree {
	if nodes < 1 {
		nodes = 1
	}
	t := &Tree{
		nodes:  make([]Node, 1, nodes),
		srcOff: -1,
	}
	if arena > 0 {
		t.arena = make([]byte, 0, arena)
	}
	t.nodes[0] = emptyNode()
	return t
}

// Name returns the name of the source the tree was loaded from, if any.
func (t *Tree) Name() string { return t.name }

// SetName sets the name used in diagnostics about the tree.
func (t *Tree) SetName(name string) { t.name = name }

// Root returns the id of the root node, which is always 0.
func (t *Tree) Root() ID { return 0 }

// Size returns the number of live nodes.
func (t *Tree) Size() int { return len(t.nodes) - t.freed }

// Slots returns the number of node slots in use, freed ones included. Ids
// range over [0, Slots()).
func (t *Tree) Slots() int { return len(t.nodes) }

// Capacity returns the number of node slots allocated.
func (t *Tree) Capacity() int { return cap(t.nodes) }

// Slack returns how many nodes can be added without growing the arena.
func (t *Tree) Slack() int { return cap(t.nodes) - len(t.nodes) }

// ArenaSize returns the number of bytes of text held in the arena.
func (t *Tree) ArenaSize() int { return len(t.arena) }

// ArenaCapacity returns the allocated size of the text arena.
func (t *Tree) ArenaCapacity() int { return cap(t.arena) }

// Empty reports whether the tree holds nothing but an untyped root.
func (t *Tree) Empty() bool {
	r := &t.nodes[0]
	return len(t.nodes)-t.freed == 1 && r.Type == NoType && r.FirstChild == None
}

// Borrowed reports whether the tree refers to a source buffer it does not
// own.
func (t *Tree) Borrowed() bool { return t.src != nil }

// Reserve grows the node arena so that n nodes fit without reallocation.
func (t *Tree) Reserve(n int) {
	if n <= cap(t.nodes) {
		return
	}
	nodes := make([]Node, len(t.nodes), n)
	copy(nodes, t.nodes)
	t.nodes = nodes
}

// ReserveArena grows the text arena so that n bytes fit without
// reallocation.
func (t *Tree) ReserveArena(n int) {
	if n <= cap(t.arena) {
		return
	}
	arena := make([]byte, len(t.arena), n)
	copy(arena, t.arena)
	t.arena = arena
}

// Clear resets t to a lone empty root, keeping allocated capacity. All
// previously returned ids become invalid.
func (t *Tree) Clear() {
	t.nodes = t.nodes[:1]
	t.nodes[0] = emptyNode()
	t.arena = t.arena[:0]
	t.src = nil
	t.srcOff = -1
	t.srcLen = 0
	t.freed = 0
}

// Clone returns a deep copy of t with the same ids. A tree loaded in place
// shares its borrowed source with the clone.
func (t *Tree) Clone() *Tree {
	c := *t
	c.nodes = slices.Clone(t.nodes)
	c.arena = slices.Clone(t.arena)
	return &c
}

// Get returns a copy of the node record id.
func (t *Tree) Get(id ID) (Node, error) {
	if err := t.check(id); err != nil {
		return Node{}, err
	}
	return t.nodes[id], nil
}

// Valid reports whether id addresses a live node.
func (t *Tree) Valid(id ID) bool {
	return t.check(id) == nil
}

func (t *Tree) check(id ID) error {
	if id < 0 || int(id) >= len(t.nodes) {
		return diag.Errorf(diag.ErrInvalidIndex, "node %d not in [0, %d)", id, len(t.nodes))
	}
	if t.nodes[id].Type&freed != 0 {
		return diag.Errorf(diag.ErrInvalidIndex, "node %d was removed", id)
	}
	return nil
}

// link validates a stored link; a bad one means the arena is corrupt.
func (t *Tree) link(from, to ID, what string) ID {
	if to == None {
		return None
	}
	if to < 0 || int(to) >= len(t.nodes) || t.nodes[to].Type&freed != 0 {
		diag.Fatal("node %d: %s link to bad node %d", from, what, to)
	}
	return to
}

func (t *Tree) alloc() ID {
	t.nodes = append(t.nodes, emptyNode())
	return ID(len(t.nodes) - 1)
}

// attach links the unattached node under parent after sibling after
// (None meaning first).
func (t *Tree) attach(node, parent, after ID) {
	p := &t.nodes[parent]
	n := &t.nodes[node]
	n.Parent = parent
	n.PrevSibling = after
	var next ID
	if after == None {
		next = p.FirstChild
		p.FirstChild = node
	} else {
		a := &t.nodes[after]
		next = a.NextSibling
		a.NextSibling = node
	}
	n.NextSibling = next
	if next == None {
		p.LastChild = node
	} else {
		t.nodes[next].PrevSibling = node
	}
}

// detach unlinks node from its parent and siblings.
func (t *Tree) detach(node ID) {
	n := &t.nodes[node]
	p, prev, next := n.Parent, n.PrevSibling, n.NextSibling
	if prev != None {
		if t.nodes[prev].NextSibling != node {
			diag.Fatal("node %d: previous sibling %d does not lead back", node, prev)
		}
		t.nodes[prev].NextSibling = next
	} else if p != None {
		t.nodes[p].FirstChild = next
	}
	if next != None {
		if t.nodes[next].PrevSibling != node {
			diag.Fatal("node %d: next sibling %d does not lead back", node, next)
		}
		t.nodes[next].PrevSibling = prev
	} else if p != None {
		t.nodes[p].LastChild = prev
	}
	n.Parent, n.PrevSibling, n.NextSibling = None, None, None
}

// release marks the detached subtree at id as freed.
func (t *Tree) release(id ID) {
	for ch := t.nodes[id].FirstChild; ch != None; {
		next := t.nodes[ch].NextSibling
		t.release(ch)
		ch = next
	}
	t.nodes[id] = emptyNode()
	t.nodes[id].Type = freed
	t.freed++
}
