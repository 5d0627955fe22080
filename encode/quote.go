package encode

import (
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Quote returns v as a double quoted string which reads back as v both as
// YAML and as JSON. Invalid UTF-8 is replaced by U+FFFD.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) || r == '\ufeff' || r == '\u2028' || r == '\u2029' || r == 0xfffe || r == 0xffff {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

func squote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// printable reports whether r may appear unescaped in YAML text.
func printable(r rune) bool {
	switch {
	case r == '\t' || r == '\n':
		return true
	case r == '\ufeff':
		return false
	case r >= 0x20 && r <= 0x7e:
		return true
	case r >= 0xa0 && r <= 0xd7ff:
		return r != '\u2028' && r != '\u2029'
	case r >= 0xe000 && r <= 0xfffd:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// textOK reports whether s is valid UTF-8 made of printable runes, with
// newlines allowed only if nl.
func textOK(s string, nl bool) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r == '\n' && !nl || !printable(r) {
			return false
		}
	}
	return true
}

func squoOK(s string) bool {
	return textOK(s, false)
}

// plainOK reports whether s written unquoted reads back as s.
func plainOK(s string, flow bool) bool {
	if s == "" || !textOK(s, false) || strings.ContainsRune(s, '\t') {
		return false
	}
	switch s[0] {
	case '?', ':':
		if flow {
			return false
		}
		fallthrough
	case '-':
		if len(s) == 1 || s[1] == ' ' || flow && isFlowIndicator(s[1]) {
			return false
		}
	case ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`', ' ':
		return false
	}
	if strings.HasPrefix(s, "---") || strings.HasPrefix(s, "...") {
		return false
	}
	switch s[len(s)-1] {
	case ' ', ':':
		return false
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return false
	}
	if flow && strings.ContainsAny(s, ",?[]{}") {
		return false
	}
	return true
}

func isFlowIndicator(c byte) bool {
	switch c {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// literalOK reports whether s can be written as a literal block scalar.
func literalOK(s string) bool {
	if s == "" || !textOK(s, true) {
		return false
	}
	first := true
	for ln := range strings.SplitSeq(s, "\n") {
		if ln == "" {
			continue
		}
		if strings.TrimLeft(ln, " \t") == "" {
			return false
		}
		if first && (ln[0] == ' ' || ln[0] == '\t') {
			return false
		}
		first = false
	}
	return !first
}
