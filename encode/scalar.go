package encode

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)
	decInt     = regexp.MustCompile(`^[-+]?[0-9]+$`)
	hexInt     = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	octInt     = regexp.MustCompile(`^0o[0-7]+$`)
	yamlFloat  = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
)

// plainJSON resolves a plain scalar with the YAML core schema and returns
// its JSON text and class. Numbers JSON cannot hold, such as .inf or an
// overflowing hex literal, become strings.
func plainJSON(s string) (string, Class) {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return "null", NullClass
	case "true", "True", "TRUE":
		return "true", BoolClass
	case "false", "False", "FALSE":
		return "false", BoolClass
	}
	switch {
	case jsonNumber.MatchString(s):
		return s, NumberClass
	case decInt.MatchString(s):
		neg := s[0] == '-'
		d := strings.TrimLeft(strings.TrimLeft(s, "+-"), "0")
		if d == "" {
			d = "0"
		}
		if neg {
			d = "-" + d
		}
		return d, NumberClass
	case hexInt.MatchString(s), octInt.MatchString(s):
		base := 16
		if s[1] == 'o' {
			base = 8
		}
		v, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return Quote(s), StringClass
		}
		return strconv.FormatUint(v, 10), NumberClass
	case yamlFloat.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Quote(s), StringClass
		}
		return strconv.FormatFloat(f, 'g', -1, 64), NumberClass
	}
	return Quote(s), StringClass
}

func plainClass(s string) Class {
	_, c := plainJSON(s)
	return c
}

const yamlTagPrefix = "tag:yaml.org,2002:"

// tagText returns tag in the form written before a node.
func tagText(tag string) string {
	switch {
	case strings.HasPrefix(tag, "!"):
		return tag
	case strings.HasPrefix(tag, yamlTagPrefix):
		return "!!" + tag[len(yamlTagPrefix):]
	}
	return "!<" + tag + ">"
}

// stringTag reports whether tag forces a plain scalar to be a string.
func stringTag(tag string) bool {
	switch tag {
	case "!!str", "!!binary", yamlTagPrefix + "str", yamlTagPrefix + "binary":
		return true
	}
	return false
}
