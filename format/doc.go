// Package format names the two surface syntaxes a tree can be read from and
// written to.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	out, err := encode.EncodeBytes(t, encode.EncodeFormat(f))
//
// YAML is the default. JSON is treated as the strict, flow-only subset: no
// tags, anchors or block scalars.
//
// # Related Packages
//
//   - github.com/signadot/ytree/parse - Parse text into a tree
//   - github.com/signadot/ytree/encode - Emit a tree as text
package format
