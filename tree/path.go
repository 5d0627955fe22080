package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadPath = errors.New("bad path")
	ErrNoPath  = errors.New("no such path")
)

// segment is one step of a kinded path: a map key or a sequence index.
type segment struct {
	field string
	index int
	isIdx bool
}

func (s segment) String() string {
	if s.isIdx {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return quoteField(s.field)
}

// parsePath parses kinded paths such as
//
//	a.b[0]
//	[1].a
//	"x.y".z
func parsePath(p string) ([]segment, error) {
	var res []segment
	i := 0
	for i < len(p) {
		switch p[i] {
		case '[':
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				return nil, fmt.Errorf("%w %q: unterminated index", ErrBadPath, p)
			}
			n, err := strconv.Atoi(p[i+1 : i+j])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w %q: bad index %q", ErrBadPath, p, p[i+1:i+j])
			}
			res = append(res, segment{index: n, isIdx: true})
			i += j + 1
			continue
		case '.':
			if len(res) == 0 {
				return nil, fmt.Errorf("%w %q: leading '.'", ErrBadPath, p)
			}
			i++
			if i == len(p) {
				return nil, fmt.Errorf("%w %q: trailing '.'", ErrBadPath, p)
			}
		default:
			if len(res) != 0 {
				return nil, fmt.Errorf("%w %q: expected '.' or '[' at %d", ErrBadPath, p, i)
			}
		}
		f, n, err := scanField(p[i:])
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadPath, p, err)
		}
		res = append(res, segment{field: f})
		i += n
	}
	return res, nil
}

func scanField(s string) (string, int, error) {
	if s[0] == '"' {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", 0, err
		}
		f, err := strconv.Unquote(q)
		if err != nil {
			return "", 0, err
		}
		return f, len(q), nil
	}
	n := strings.IndexAny(s, ".[")
	if n < 0 {
		n = len(s)
	}
	if n == 0 {
		return "", 0, errors.New("empty field")
	}
	return s[:n], n, nil
}

func quoteField(f string) string {
	if f == "" || strings.ContainsAny(f, ".[]\" \t\n") {
		return strconv.Quote(f)
	}
	return f
}

// Lookup returns the node reached from id by following the kinded path p.
// Fields select map members by key and "[n]" selects the n-th child of a
// sequence or stream. The empty path selects id.
func (t *Tree) Lookup(id ID, p string) (ID, error) {
	if err := t.check(id); err != nil {
		return None, err
	}
	segs, err := parsePath(p)
	if err != nil {
		return None, err
	}
	res := id
	for i, seg := range segs {
		typ := t.nodes[res].Type
		if seg.isIdx {
			if !typ.IsSeq() {
				return None, fmt.Errorf("%w: %s: index into %s", ErrNoPath, pathString(segs[:i+1]), typ)
			}
			res, err = t.Child(res, seg.index)
			if err != nil {
				return None, err
			}
			continue
		}
		if !typ.IsMap() {
			return None, fmt.Errorf("%w: %s: field of %s", ErrNoPath, pathString(segs[:i+1]), typ)
		}
		ch := t.findChild(res, seg.field)
		if ch == None {
			return None, fmt.Errorf("%w: %s", ErrNoPath, pathString(segs[:i+1]))
		}
		res = ch
	}
	return res, nil
}

func pathString(segs []segment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 && !s.isIdx {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Path returns the kinded path leading from the root to id, suitable for
// [Tree.Lookup]. The root has the empty path.
func (t *Tree) Path(id ID) (string, error) {
	if err := t.check(id); err != nil {
		return "", err
	}
	var segs []segment
	for n := id; t.nodes[n].Parent != None; n = t.nodes[n].Parent {
		p := t.nodes[n].Parent
		if t.nodes[p].Type.IsMap() {
			segs = append(segs, segment{field: t.str(t.nodes[n].key.text)})
			continue
		}
		i := 0
		for ch := t.first(p); ch != n; ch = t.next(ch) {
			if ch == None {
				return "", fmt.Errorf("node %d missing from its parent %d", n, p)
			}
			i++
		}
		segs = append(segs, segment{index: i, isIdx: true})
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return pathString(segs), nil
}
