package parse

import (
	"github.com/signadot/ytree/diag"
	"github.com/signadot/ytree/format"
	"github.com/signadot/ytree/tree"
)

type parseOpts struct {
	format    format.Format
	name      string
	inPlace   bool
	resolve   bool
	positions map[tree.ID]diag.Location
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}

// ParseFormat selects the input format. JSON input is validated strictly
// before it is loaded.
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseName names the input in error messages.
func ParseName(name string) ParseOption {
	return func(o *parseOpts) { o.name = name }
}

// InPlace makes the tree refer to the input instead of copying it.
func InPlace() ParseOption {
	return func(o *parseOpts) { o.inPlace = true }
}

// ParseResolve resolves aliases and merge keys once loaded, see
// [tree.Tree.Resolve].
func ParseResolve() ParseOption {
	return func(o *parseOpts) { o.resolve = true }
}

// ParsePositions records the source position of every node in m.
func ParsePositions(m map[tree.ID]diag.Location) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}
