// Package encode writes a [tree.Tree] as YAML or JSON text into a [Sink].
//
// # Usage
//
//	// YAML into a growable buffer
//	d, err := encode.EncodeBytes(t)
//
//	// JSON for one subtree
//	d, err := encode.EncodeBytes(t, encode.EncodeJSON(), encode.EncodeNode(id))
//
//	// into a caller owned buffer, failing if it is too small
//	sink := encode.NewFixedSink(buf)
//	n, err := encode.Encode(t, sink)
//
// # Sinks
//
// A [Sink] hands out room for the engine to write into. Sinks which also
// implement [Bounded] have a fixed capacity: the engine first measures the
// output with the same traversal it writes with, and only writes if it
// fits. With ErrorOnExcess(false) a too small bounded sink receives a
// truncated prefix instead. In all cases Encode returns the full length of
// the output.
//
// # Related Packages
//
//   - github.com/signadot/ytree/tree - the tree being encoded
//   - github.com/signadot/ytree/parse - parse text into a tree
package encode
