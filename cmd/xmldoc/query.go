package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
	"github.com/fiscalxml/go-xmldoc/query"
)

func runQuery(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an xpath argument", cli.ErrUsage)
	}
	q := args[0]
	for _, arg := range inputArgs(args[1:]) {
		in, err := readInput(arg)
		if err != nil {
			return err
		}
		doc, err := xmldoc.Load(in, cfg.docOpts()...)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		eng, err := doc.QueryEngine()
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
		if len(cfg.Namespaces) != 0 {
			eng, err = query.New(eng.Document(), cfg.Namespaces)
			if err != nil {
				return err
			}
		}
		if cfg.Values {
			vals, err := eng.GetValues(q, cfg.Params, nil)
			if err != nil {
				return fmt.Errorf("error querying %s: %w", arg, err)
			}
			for _, v := range vals {
				fmt.Fprintln(cc.Out, v)
			}
			continue
		}
		res, err := eng.Get(q, cfg.Params, nil)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
		if res == nil {
			continue
		}
		if err := writeStructure(cfg.MainConfig, cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}
