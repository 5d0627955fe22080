// Package tree provides an index-addressed document tree for YAML and JSON.
//
// All nodes of a [Tree] live in one slice and are addressed by [ID]. Links
// between nodes (parent, first/last child, next/previous sibling) are ids,
// never pointers, so the slice can grow without invalidating them. The root
// is always id 0. A root of type [Stream] holds one [Doc] child per
// document; otherwise the root is itself the document.
//
// Scalar text (keys, values, tags and anchors) lives either in the tree's
// own text arena or, for trees loaded in place, in a borrowed source buffer
// which the caller must keep alive and unmodified for the lifetime of the
// tree. Every mutation writes new text to the arena.
//
// Ids stay valid across every mutation other than [Tree.Clear]. Removed
// slots are marked free and are not reused; moving a node within a tree
// keeps its id. Copying from another tree with [Tree.MoveFrom] creates new
// ids in the receiver.
//
// Accessors validate ids and return errors from package diag:
// diag.ErrInvalidIndex for ids that are out of range or freed,
// diag.ErrIndexOutOfBounds for child positions, diag.ErrCyclicMove and
// diag.ErrInvalidOperation for rejected mutations. A rejected mutation leaves
// the tree untouched. Corrupt links found while navigating are internal
// faults and panic via diag.Fatal.
//
// A Tree is not safe for concurrent use.
package tree
