package tree

import (
	"fmt"
	"strings"
)

// NodeType is the bitset describing what a node holds.
type NodeType uint64

const (
	NoType NodeType = 0
	// Val marks a leaf with a (possibly empty) value.
	Val NodeType = 1 << 0
	// Key marks a member of a map; it has a key.
	Key NodeType = 1 << 1
	Map NodeType = 1 << 2
	Seq NodeType = 1 << 3
	Doc NodeType = 1 << 4
	// Stream is a sequence of documents.
	Stream NodeType = 1<<5 | Seq

	KeyRef    NodeType = 1 << 6
	ValRef    NodeType = 1 << 7
	KeyAnchor NodeType = 1 << 8
	ValAnchor NodeType = 1 << 9
	KeyTag    NodeType = 1 << 10
	ValTag    NodeType = 1 << 11

	FlowStyle  NodeType = 1 << 14
	BlockStyle NodeType = 1 << 16
	KeyLiteral NodeType = 1 << 17
	ValLiteral NodeType = 1 << 18
	KeyFolded  NodeType = 1 << 19
	ValFolded  NodeType = 1 << 20
	KeySquo    NodeType = 1 << 21
	ValSquo    NodeType = 1 << 22
	KeyDquo    NodeType = 1 << 23
	ValDquo    NodeType = 1 << 24
	KeyPlain   NodeType = 1 << 25
	ValPlain   NodeType = 1 << 26

	KeyStyle = KeyLiteral | KeyFolded | KeySquo | KeyDquo | KeyPlain
	ValStyle = ValLiteral | ValFolded | ValSquo | ValDquo | ValPlain
	// StyleMask holds every presentation bit; none of them change meaning
	// except that quoting makes a scalar a string.
	StyleMask = FlowStyle | BlockStyle | KeyStyle | ValStyle

	// freed marks a removed slot.
	freed NodeType = 1 << 62
)

var typeNames = []struct {
	t    NodeType
	name string
}{
	{Stream, "STREAM"},
	{Key, "KEY"},
	{Val, "VAL"},
	{Map, "MAP"},
	{Seq, "SEQ"},
	{Doc, "DOC"},
	{KeyRef, "KEYREF"},
	{ValRef, "VALREF"},
	{KeyAnchor, "KEYANCH"},
	{ValAnchor, "VALANCH"},
	{KeyTag, "KEYTAG"},
	{ValTag, "VALTAG"},
	{FlowStyle, "FLOW"},
	{BlockStyle, "BLOCK"},
	{KeyLiteral, "KEY_LITERAL"},
	{ValLiteral, "VAL_LITERAL"},
	{KeyFolded, "KEY_FOLDED"},
	{ValFolded, "VAL_FOLDED"},
	{KeySquo, "KEY_SQUO"},
	{ValSquo, "VAL_SQUO"},
	{KeyDquo, "KEY_DQUO"},
	{ValDquo, "VAL_DQUO"},
	{KeyPlain, "KEY_PLAIN"},
	{ValPlain, "VAL_PLAIN"},
}

func (t NodeType) String() string {
	if t == NoType {
		return "NOTYPE"
	}
	if t&freed != 0 {
		return "FREED"
	}
	var parts []string
	rest := t
	for _, tn := range typeNames {
		if rest&tn.t == tn.t {
			parts = append(parts, tn.name)
			rest &^= tn.t
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return strings.Join(parts, "|")
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *NodeType) UnmarshalText(d []byte) error {
	s := string(d)
	if s == "NOTYPE" {
		*t = NoType
		return nil
	}
	var res NodeType
	for _, part := range strings.Split(s, "|") {
		found := false
		for _, tn := range typeNames {
			if tn.name == part {
				res |= tn.t
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unrecognized node type %q", part)
		}
	}
	*t = res
	return nil
}

func (t NodeType) Has(f NodeType) bool { return t&f == f }

func (t NodeType) IsStream() bool    { return t&Stream == Stream }
func (t NodeType) IsDoc() bool       { return t&Doc != 0 }
func (t NodeType) IsContainer() bool { return t&(Map|Seq|Stream) != 0 }
func (t NodeType) IsMap() bool       { return t&Map != 0 }
func (t NodeType) IsSeq() bool       { return t&Seq != 0 }
func (t NodeType) HasVal() bool      { return t&Val != 0 }
func (t NodeType) HasKey() bool      { return t&Key != 0 }
func (t NodeType) IsVal() bool       { return t&(Key|Val) == Val }
func (t NodeType) IsKeyVal() bool    { return t&(Key|Val) == Key|Val }
func (t NodeType) HasKeyTag() bool   { return t&KeyTag != 0 }
func (t NodeType) HasValTag() bool   { return t&ValTag != 0 }

func (t NodeType) HasKeyAnchor() bool { return t&KeyAnchor != 0 }
func (t NodeType) HasValAnchor() bool { return t&ValAnchor != 0 }
func (t NodeType) HasAnchor() bool    { return t&(KeyAnchor|ValAnchor) != 0 }
func (t NodeType) IsKeyRef() bool     { return t&KeyRef != 0 }
func (t NodeType) IsValRef() bool     { return t&ValRef != 0 }
func (t NodeType) IsRef() bool        { return t&(KeyRef|ValRef) != 0 }

func (t NodeType) IsKeyQuoted() bool { return t&(KeySquo|KeyDquo) != 0 }
func (t NodeType) IsValQuoted() bool { return t&(ValSquo|ValDquo) != 0 }
func (t NodeType) IsQuoted() bool    { return t.IsKeyQuoted() || t.IsValQuoted() }

// IsFlow reports whether a container should be written in flow style.
func (t NodeType) IsFlow() bool { return t&FlowStyle != 0 }

// KeyIsString reports whether the key was written in a style that makes it
// a string regardless of its content.
func (t NodeType) KeyIsString() bool { return t&(KeySquo|KeyDquo|KeyLiteral|KeyFolded) != 0 }

// ValIsString is KeyIsString for the value.
func (t NodeType) ValIsString() bool { return t&(ValSquo|ValDquo|ValLiteral|ValFolded) != 0 }

// semantic drops presentation bits, keeping string-ness of scalars.
func (t NodeType) semantic() NodeType {
	res := t &^ (StyleMask | freed)
	if t.KeyIsString() {
		res |= KeyDquo
	}
	if t.ValIsString() {
		res |= ValDquo
	}
	return res
}
