package main

import (
	"fmt"

	"github.com/signadot/ytree/tree"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Where == "" {
		return fmt.Errorf("%w: find requires -where", cli.ErrUsage)
	}
	prg, err := compileWhere(cfg.Where)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return cfg.eachFile(cc, args, func(file string, t *tree.Tree) error {
		paths, err := findPaths(t, prg)
		if err != nil {
			return fmt.Errorf("error searching %s: %w", file, err)
		}
		for _, p := range paths {
			if len(args) > 1 {
				fmt.Fprintf(cc.Out, "%s:", file)
			}
			fmt.Fprintf(cc.Out, "%s\n", p)
		}
		return nil
	})
}

func nodeEnv(t *tree.Tree, id tree.ID) (map[string]any, error) {
	typ, err := t.Type(id)
	if err != nil {
		return nil, err
	}
	key, _ := t.Key(id)
	val, _ := t.Val(id)
	tag, _ := t.ValTag(id)
	depth, _ := t.Depth(id)
	n, _ := t.NumChildren(id)
	return map[string]any{
		"id":       int(id),
		"type":     typ.String(),
		"key":      key,
		"val":      val,
		"tag":      tag,
		"depth":    depth,
		"children": n,
		"map":      typ.IsMap(),
		"seq":      typ.IsSeq(),
		"scalar":   typ.HasVal(),
	}, nil
}

func compileWhere(where string) (*vm.Program, error) {
	env := map[string]any{
		"id": 0, "type": "", "key": "", "val": "", "tag": "",
		"depth": 0, "children": 0, "map": false, "seq": false, "scalar": false,
	}
	return expr.Compile(where, expr.Env(env), expr.AsBool())
}

// findPaths returns the paths of the nodes of t, in document order, for
// which prg holds.
func findPaths(t *tree.Tree, prg *vm.Program) ([]string, error) {
	var res []string
	err := t.Visit(t.Root(), func(id tree.ID, isPost bool) (bool, error) {
		if isPost {
			return true, nil
		}
		env, err := nodeEnv(t, id)
		if err != nil {
			return false, err
		}
		ok, err := expr.Run(prg, env)
		if err != nil {
			return false, err
		}
		if ok.(bool) {
			p, err := t.Path(id)
			if err != nil {
				return false, err
			}
			res = append(res, p)
		}
		return true, nil
	})
	return res, err
}
