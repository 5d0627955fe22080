package tree

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing the subtree at ai in a with the
// subtree at bi in b. The result will be 0 if they are equal, -1 if a < b,
// and +1 if a > b. Presentation (block or flow, quoting style) is ignored
// except that a quoted scalar never equals a plain one. It panics if ai or
// bi is not a valid id.
func Compare(a *Tree, ai ID, b *Tree, bi ID) int {
	if a == b && ai == bi {
		return 0
	}
	an, bn := a.nodes[ai], b.nodes[bi]
	at, bt := an.Type.semantic(), bn.Type.semantic()
	if c := cmp.Compare(rank(at), rank(bt)); c != 0 {
		return c
	}
	if c := cmp.Compare(at, bt); c != 0 {
		return c
	}
	if c := compareScalar(a, an.key, b, bn.key); c != 0 {
		return c
	}
	if c := compareScalar(a, an.val, b, bn.val); c != 0 {
		return c
	}
	ac, bc := a.first(ai), b.first(bi)
	for ac != None && bc != None {
		if c := Compare(a, ac, b, bc); c != 0 {
			return c
		}
		ac, bc = a.next(ac), b.next(bc)
	}
	switch {
	case ac == None && bc == None:
		return 0
	case ac == None:
		return -1
	default:
		return 1
	}
}

// Equal reports whether Compare(a, ai, b, bi) == 0.
func Equal(a *Tree, ai ID, b *Tree, bi ID) bool {
	return Compare(a, ai, b, bi) == 0
}

// rank orders kinds: stream < doc < val < seq < map.
func rank(t NodeType) int {
	switch {
	case t.IsStream():
		return 0
	case t.IsDoc() && !t.IsContainer() && !t.HasVal():
		return 1
	case t.HasVal():
		return 2
	case t.IsSeq():
		return 3
	case t.IsMap():
		return 4
	}
	return 100
}

func compareScalar(a *Tree, as scalar, b *Tree, bs scalar) int {
	if c := strings.Compare(a.str(as.text), b.str(bs.text)); c != 0 {
		return c
	}
	if c := strings.Compare(a.str(as.tag), b.str(bs.tag)); c != 0 {
		return c
	}
	return strings.Compare(a.str(as.anchor), b.str(bs.anchor))
}
