package main

import (
	"fmt"

	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func graft(cfg *GraftConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Graft.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.From == "" || cfg.At == "" || len(args) != 1 {
		return fmt.Errorf("%w: graft requires -from, -at and one file", cli.ErrUsage)
	}
	src, err := cfg.loadFile(cc, cfg.From)
	if err != nil {
		return err
	}
	dst, err := cfg.loadFile(cc, args[0])
	if err != nil {
		return err
	}
	if err := graftTree(dst, src, cfg.At, cfg.Under); err != nil {
		return err
	}
	return cfg.write(cc.Out, dst)
}

// graftTree copies the node of src at path at to the end of the container
// of dst at path under.
func graftTree(dst, src *tree.Tree, at, under string) error {
	node, err := lookup(src, at)
	if err != nil {
		return err
	}
	parent := dst.Root()
	if under != "" {
		if parent, err = lookup(dst, under); err != nil {
			return err
		}
	}
	after, err := appendAfter(dst, parent, tree.None)
	if err != nil {
		return err
	}
	id, err := dst.MoveFrom(src, node, parent, after)
	if err != nil {
		return fmt.Errorf("could not graft %s: %w", at, err)
	}
	theLog.Debug("grafted", "from", at, "id", id)
	return nil
}
