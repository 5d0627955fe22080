package main

import (
	"fmt"

	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func mv(cfg *MvConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Mv.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: mv requires a path, a parent path and a file", cli.ErrUsage)
	}
	t, err := cfg.loadFile(cc, args[2])
	if err != nil {
		return err
	}
	if err := moveNode(t, args[0], args[1]); err != nil {
		return err
	}
	return cfg.write(cc.Out, t)
}

// moveNode moves the node at path to the end of the container at parentPath.
func moveNode(t *tree.Tree, path, parentPath string) error {
	node, err := lookup(t, path)
	if err != nil {
		return err
	}
	parent, err := lookup(t, parentPath)
	if err != nil {
		return err
	}
	after, err := appendAfter(t, parent, node)
	if err != nil {
		return err
	}
	if err := t.MoveTo(node, parent, after); err != nil {
		return fmt.Errorf("could not move %s: %w", path, err)
	}
	return nil
}
