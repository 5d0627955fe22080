package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/ytree/encode"
	"github.com/signadot/ytree/format"
	"github.com/signadot/ytree/parse"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Indent int  `cli:"name=indent desc='spaces per block level (2-9)'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	settings *settings

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// flagFormat returns the format chosen with -j or -y.
func (cfg *MainConfig) flagFormat() (format.Format, bool) {
	switch {
	case cfg.Y:
		return format.YAMLFormat, true
	case cfg.J:
		return format.JSONFormat, true
	}
	return format.YAMLFormat, false
}

// parseOpts returns the options for loading file, whose suffix decides the
// format unless one was given.
func (cfg *MainConfig) parseOpts(file string) []parse.ParseOption {
	fmat, ok := cfg.flagFormat()
	if !ok {
		fmat = format.FromSuffix(file)
	}
	if cfg.InFormat != nil {
		fmat = *cfg.InFormat
	}
	res := []parse.ParseOption{parse.ParseFormat(fmat)}
	if file != "" && file != "-" {
		res = append(res, parse.ParseName(file))
	}
	return res
}

func (cfg *MainConfig) outFormat() format.Format {
	fmat, ok := cfg.flagFormat()
	if !ok && cfg.settings != nil {
		fmat = cfg.settings.Format
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	return fmat
}

func (cfg *MainConfig) optSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	indent := cfg.Indent
	if !cfg.optSet("indent") && cfg.settings != nil {
		indent = cfg.settings.Indent
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.Indent(indent),
	}
	if cfg.colors(w) {
		color.NoColor = false
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.optSet("color") {
		return cfg.Color
	}
	if cfg.settings != nil {
		switch cfg.settings.Color {
		case "always":
			return true
		case "never":
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	Resolve bool `cli:"name=r aliases=resolve desc='expand aliases and merge keys'"`
	View    *cli.Command
}

type NodesConfig struct {
	*MainConfig

	Nodes *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type GraftConfig struct {
	*MainConfig

	From  string `cli:"name=from desc='file to copy the node from'"`
	At    string `cli:"name=at desc='path of the node in the -from file'"`
	Under string `cli:"name=under desc='path of the new parent (default root)'"`

	Graft *cli.Command
}

type MvConfig struct {
	*MainConfig

	Mv *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type FindConfig struct {
	*MainConfig

	Where string `cli:"name=where desc='predicate over id, type, key, val, tag, depth, children'"`

	Find *cli.Command
}

type PatchConfig struct {
	*MainConfig

	P string `cli:"name=p desc='json patch file'"`

	Patch *cli.Command
}
