package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/parse"
	"github.com/signadot/ytree/tree"

	"github.com/scott-cotton/cli"
)

func ytMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg.settings = s
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// loadFile parses file, or stdin for "-".
func (cfg *MainConfig) loadFile(cc *cli.Context, file string, opts ...parse.ParseOption) (*tree.Tree, error) {
	var r io.Reader = cc.In
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	t, err := parse.ParseReader(r, append(cfg.parseOpts(file), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return t, nil
}

// eachFile calls f with the tree of every file in files, or of stdin if
// there are none.
func (cfg *MainConfig) eachFile(cc *cli.Context, files []string, f func(file string, t *tree.Tree) error, opts ...parse.ParseOption) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		t, err := cfg.loadFile(cc, file, opts...)
		if err != nil {
			return err
		}
		if err := f(file, t); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *MainConfig) write(w io.Writer, t *tree.Tree, opts ...encode.EncodeOption) error {
	if _, err := encode.EncodeTo(t, w, append(cfg.encOpts(w), opts...)...); err != nil {
		return fmt.Errorf("error encoding: %w", err)
	}
	return nil
}

func lookup(t *tree.Tree, path string) (tree.ID, error) {
	id, err := t.Lookup(t.Root(), path)
	if err != nil {
		return tree.None, fmt.Errorf("%s: %w", path, err)
	}
	return id, nil
}

// appendAfter returns the id to insert after to add a node at the end of
// parent, skipping node itself.
func appendAfter(t *tree.Tree, parent, node tree.ID) (tree.ID, error) {
	last, err := t.LastChild(parent)
	if err != nil {
		return tree.None, err
	}
	if last == node && last != tree.None {
		return t.PrevSibling(last)
	}
	return last, nil
}
