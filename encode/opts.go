package encode

import (
	"github.com/signadot/ytree/format"
	"github.com/signadot/ytree/tree"
)

type EncodeOption func(*encState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

func EncodeJSON() EncodeOption { return EncodeFormat(format.JSONFormat) }
func EncodeYAML() EncodeOption { return EncodeFormat(format.YAMLFormat) }

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	return newEncState(opts).format
}

// EncodeNode restricts the output to the subtree at id. A keyed node is
// written as a single member map.
func EncodeNode(id tree.ID) EncodeOption {
	return func(es *encState) { es.node = id }
}

// ErrorOnExcess controls what happens when a sink runs out of room: fail
// (the default) or keep only the prefix that fits.
func ErrorOnExcess(v bool) EncodeOption {
	return func(es *encState) { es.errorOnExcess = v }
}

// Indent sets the number of spaces per block level, between 2 and 9.
func Indent(n int) EncodeOption {
	return func(es *encState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) {
		if c == nil {
			es.color = nil
			return
		}
		es.color = c.Color
	}
}
