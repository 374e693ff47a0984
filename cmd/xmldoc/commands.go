package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xmldoc").
		WithSynopsis("xmldoc [opts] command [opts]").
		WithDescription("xmldoc converts structured data to and from signature-grade XML.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xmldocMain(cfg, cc, args)
		}).
		WithSubs(
			XMLCommand(cfg),
			MapCommand(cfg),
			CanonCommand(cfg),
			QueryCommand(cfg),
			ValidateCommand(cfg),
			DiffCommand(cfg))
}

func xmldocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
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

func XMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &XMLConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("xml").
		WithAliases("x").
		WithSynopsis("xml [-ns uri [-prefix p]] [files]").
		WithDescription("Build XML from structured data files (yaml or json).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runXML(cfg, cc, args)
		})
	cfg.XML = cmd
	return cmd
}

func MapCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MapConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("map").
		WithAliases("m").
		WithSynopsis("map [files]").
		WithDescription("Project XML documents into structured data.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runMap(cfg, cc, args)
		})
	cfg.Map = cmd
	return cmd
}

func CanonCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CanonConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("canon").
		WithAliases("c", "c14n").
		WithSynopsis("canon [-exc] [-x xpath] [files]").
		WithDescription("Print the canonical form in the working encoding.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runCanon(cfg, cc, args)
		})
	cfg.Canon = cmd
	return cmd
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{
		MainConfig: mainCfg,
		Params:     map[string]string{},
		Namespaces: map[string]string{},
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "p",
			Description: "query parameter",
			Type:        cli.NamedFuncOpt(pairOpt(cfg.Params), "(name=value)"),
		},
		&cli.Opt{
			Name:        "n",
			Description: "register a namespace prefix",
			Type:        cli.NamedFuncOpt(pairOpt(cfg.Namespaces), "(prefix=uri)"),
		})
	cmd := cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query [-p name=value]... [-n prefix=uri]... xpath [files]").
		WithDescription("Run a parameterized xpath query and project the matches.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runQuery(cfg, cc, args)
		})
	cfg.Query = cmd
	return cmd
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("validate").
		WithAliases("v").
		WithSynopsis("validate [-s schema.xsd] [files]").
		WithDescription("Validate documents against an XSD schema.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runValidate(cfg, cc, args)
		})
	cfg.Validate = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff a.xml b.xml").
		WithDescription("Compare the canonical forms of two documents.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func pairOpt(dst map[string]string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
		name, value, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: want name=value, got %q", cli.ErrUsage, a)
		}
		dst[name] = value
		return nil, nil
	})
}
