// Package parse loads YAML and JSON text into a [tree.Tree].
//
// The YAML grammar is handled by gopkg.in/yaml.v3; this package walks the
// resulting documents and lays them out in the tree's arena. [Parse] copies
// the input into the tree so that the caller may discard it. [ParseInPlace]
// instead makes the tree refer to scalars inside the input wherever they
// appear there verbatim; the input must then stay alive and unmodified for
// as long as the tree is used.
//
// A single document becomes the root of the tree, flagged [tree.Doc].
// Several documents, or none, give a [tree.Stream] root with one
// [tree.Doc] child per document.
//
// Errors wrap diag.ErrMalformedInput and carry the source name and line.
// A failed parse returns no tree.
package parse
