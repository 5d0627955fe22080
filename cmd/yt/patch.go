package main

import (
	"fmt"
	"os"

	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/parse"
	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.P == "" || len(args) != 1 {
		return fmt.Errorf("%w: patch requires -p and one file", cli.ErrUsage)
	}
	d, err := os.ReadFile(cfg.P)
	if err != nil {
		return fmt.Errorf("could not read patch: %w", err)
	}
	t, err := cfg.loadFile(cc, args[0])
	if err != nil {
		return err
	}
	res, err := applyPatch(t, d)
	if err != nil {
		return err
	}
	return cfg.write(cc.Out, res)
}

// applyPatch applies the RFC 6902 patch d to the JSON form of t and returns
// the result as a new tree.
func applyPatch(t *tree.Tree, d []byte) (*tree.Tree, error) {
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("bad patch: %w", err)
	}
	doc, err := encode.EncodeBytes(t, encode.EncodeJSON())
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("could not apply patch: %w", err)
	}
	res, err := parse.Parse(out, parse.ParseJSON(), parse.ParseName(t.Name()))
	if err != nil {
		return nil, err
	}
	return res, nil
}
