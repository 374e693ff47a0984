package main

import (
	"bytes"
	"fmt"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	xmldoc "github.com/fiscalxml/go-xmldoc"
)

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	a, err := canonArg(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	b, err := canonArg(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if bytes.Equal(a, b) {
		return nil
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(string(a), string(b), false)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	if cfg.colorize(cc.Out) {
		fmt.Fprintln(cc.Out, diffCfg.DiffPrettyText(diffs))
	} else {
		for _, d := range diffs {
			switch d.Type {
			case diffpatch.DiffDelete:
				fmt.Fprintf(cc.Out, "-%q\n", d.Text)
			case diffpatch.DiffInsert:
				fmt.Fprintf(cc.Out, "+%q\n", d.Text)
			}
		}
	}
	return cli.ExitCodeErr(1)
}

func canonArg(cfg *MainConfig, arg string) ([]byte, error) {
	in, err := readInput(arg)
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.Load(in, cfg.docOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", arg, err)
	}
	d, err := doc.C14N()
	if err != nil {
		return nil, fmt.Errorf("error canonicalizing %s: %w", arg, err)
	}
	return d, nil
}
