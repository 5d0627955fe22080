package tree

import (
	"encoding/binary"
	"hash/maphash"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the subtree at id which agrees with
// [Equal]: equal subtrees, in the same or different trees, hash the same
// within one process.
func (t *Tree) Hash(id ID) (uint64, error) {
	if err := t.check(id); err != nil {
		return 0, err
	}
	return t.hash(id), nil
}

func (t *Tree) hash(id ID) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	n := &t.nodes[id]

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n.Type.semantic()))
	h.Write(b[:])

	for _, s := range []scalar{n.key, n.val} {
		h.Write(t.bytes(s.text))
		h.WriteByte(0)
		h.Write(t.bytes(s.tag))
		h.WriteByte(0)
		h.Write(t.bytes(s.anchor))
		h.WriteByte(0)
	}
	for ch := t.first(id); ch != None; ch = t.next(ch) {
		binary.LittleEndian.PutUint64(b[:], t.hash(ch))
		h.Write(b[:])
	}
	return h.Sum64()
}
