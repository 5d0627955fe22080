package main

import (
	"fmt"

	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := args[0]
	return cfg.eachFile(cc, args[1:], func(file string, t *tree.Tree) error {
		id, err := lookup(t, path)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", file, err)
		}
		return cfg.write(cc.Out, t, encode.EncodeNode(id))
	})
}
