package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "yt").
		WithSynopsis("yt [opts] command [opts]").
		WithDescription("yt loads YAML and JSON into node trees and writes them back out.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ytMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			NodesCommand(cfg),
			GetCommand(cfg),
			GraftCommand(cfg),
			MvCommand(cfg),
			CheckCommand(cfg),
			FindCommand(cfg),
			PatchCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("parse files and write them back out").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func NodesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NodesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Nodes, "nodes").
		WithAliases("n").
		WithSynopsis("nodes [files]").
		WithDescription("print the node table of files").
		WithRun(func(cc *cli.Context, args []string) error {
			return nodes(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("write the node at path, such as a.b[0], of each file").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func GraftCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GraftConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Graft, "graft").
		WithOpts(opts...).
		WithSynopsis("graft -from file -at path [-under path] file").
		WithDescription("copy a node from one file to the end of a container in another").
		WithRun(func(cc *cli.Context, args []string) error {
			return graft(cfg, cc, args)
		})
}

func MvCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MvConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Mv, "mv").
		WithSynopsis("mv <path> <parent-path> file").
		WithDescription("move a node to the end of another container of the same file").
		WithRun(func(cc *cli.Context, args []string) error {
			return mv(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription("check tree invariants and that output reads back to the same output").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func FindCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FindConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Find, "find").
		WithAliases("f").
		WithOpts(opts...).
		WithSynopsis("find -where expr [files]").
		WithDescription("list the paths of nodes for which expr holds, e.g. -where 'key == \"name\" && depth > 1'").
		WithRun(func(cc *cli.Context, args []string) error {
			return find(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("patch -p patch.json file").
		WithDescription("apply an RFC 6902 json patch").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
