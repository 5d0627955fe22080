package tree

import (
	"errors"
	"fmt"
)

// ErrInconsistent is returned by Check for a tree whose structure breaks
// an invariant.
var ErrInconsistent = errors.New("inconsistent tree")

// Check verifies the structural invariants of t and reports the first
// violation found:
//
//   - the root is id 0, has no parent and no siblings;
//   - every link of a live node refers to a live node;
//   - every child points back to its parent and sibling links agree;
//   - every live node other than the root is reachable from its parent;
//   - map children have keys, sequence children do not, stream children
//     are documents;
//   - scalars have no children and there are no cycles.
func (t *Tree) Check() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: no root", ErrInconsistent)
	}
	r := &t.nodes[0]
	if r.Type&freed != 0 {
		return fmt.Errorf("%w: root was removed", ErrInconsistent)
	}
	if r.Parent != None || r.NextSibling != None || r.PrevSibling != None {
		return fmt.Errorf("%w: root has a parent or siblings", ErrInconsistent)
	}
	if r.Type.HasKey() {
		return fmt.Errorf("%w: root has a key", ErrInconsistent)
	}
	valid := func(id ID) bool {
		return id == None || id >= 0 && int(id) < len(t.nodes) && t.nodes[id].Type&freed == 0
	}
	live := 0
	for i := range t.nodes {
		id := ID(i)
		n := &t.nodes[i]
		if n.Type&freed != 0 {
			continue
		}
		live++
		for _, l := range []ID{n.Parent, n.FirstChild, n.LastChild, n.NextSibling, n.PrevSibling} {
			if !valid(l) {
				return fmt.Errorf("%w: node %d links to bad node %d", ErrInconsistent, id, l)
			}
		}
		if id != 0 && n.Parent == None {
			return fmt.Errorf("%w: node %d is detached", ErrInconsistent, id)
		}
		if (n.FirstChild == None) != (n.LastChild == None) {
			return fmt.Errorf("%w: node %d has first child %d and last child %d", ErrInconsistent, id, n.FirstChild, n.LastChild)
		}
		if n.Type.HasVal() && n.FirstChild != None {
			return fmt.Errorf("%w: scalar %d has children", ErrInconsistent, id)
		}
		prev := None
		count := 0
		for ch := n.FirstChild; ch != None; ch = t.nodes[ch].NextSibling {
			if !valid(ch) {
				return fmt.Errorf("%w: node %d: bad child %d", ErrInconsistent, id, ch)
			}
			c := &t.nodes[ch]
			if c.Parent != id {
				return fmt.Errorf("%w: node %d: child %d has parent %d", ErrInconsistent, id, ch, c.Parent)
			}
			if c.PrevSibling != prev {
				return fmt.Errorf("%w: node %d: previous sibling is %d, want %d", ErrInconsistent, ch, c.PrevSibling, prev)
			}
			if err := t.accepts(id, ch); err != nil && n.Type != NoType {
				return fmt.Errorf("%w: %w", ErrInconsistent, err)
			}
			prev = ch
			count++
			if count > len(t.nodes) {
				return fmt.Errorf("%w: node %d: sibling cycle", ErrInconsistent, id)
			}
		}
		if n.LastChild != prev {
			return fmt.Errorf("%w: node %d: last child is %d, want %d", ErrInconsistent, id, n.LastChild, prev)
		}
	}
	if live != len(t.nodes)-t.freed {
		return fmt.Errorf("%w: %d live nodes, want %d", ErrInconsistent, live, len(t.nodes)-t.freed)
	}
	// every node reachable from the root, and only once
	seen := 0
	var walk func(ID, int) error
	walk = func(id ID, depth int) error {
		if depth > live {
			return fmt.Errorf("%w: cycle through node %d", ErrInconsistent, id)
		}
		seen++
		for ch := t.nodes[id].FirstChild; ch != None; ch = t.nodes[ch].NextSibling {
			if err := walk(ch, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, 0); err != nil {
		return err
	}
	if seen != live {
		return fmt.Errorf("%w: %d nodes reachable from the root, %d live", ErrInconsistent, seen, live)
	}
	return nil
}
