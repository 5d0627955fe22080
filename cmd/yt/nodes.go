package main

import (
	"fmt"

	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func nodes(cfg *NodesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Nodes.Parse(cc, args)
	if err != nil {
		return err
	}
	return cfg.eachFile(cc, args, func(file string, t *tree.Tree) error {
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "# %s\n", file)
		}
		return t.Dump(cc.Out)
	})
}
