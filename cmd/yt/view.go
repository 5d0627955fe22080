package main

import (
	"fmt"

	"github.com/signadot/ytree/parse"
	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	var opts []parse.ParseOption
	if cfg.Resolve {
		opts = append(opts, parse.ParseResolve())
	}
	i := 0
	return cfg.eachFile(cc, args, func(file string, t *tree.Tree) error {
		if i > 0 && cfg.outFormat().IsYAML() {
			if typ, _ := t.Type(t.Root()); !typ.IsStream() {
				if _, err := fmt.Fprint(cc.Out, "---\n"); err != nil {
					return err
				}
			}
		}
		i++
		return cfg.write(cc.Out, t)
	}, opts...)
}
