package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
)

func runCanon(cfg *CanonConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Canon.Parse(cc, args)
	if err != nil {
		return err
	}
	var opts []xmldoc.C14NOption
	if cfg.Exc {
		opts = append(opts, xmldoc.Exclusive())
	}
	if cfg.Comments {
		opts = append(opts, xmldoc.WithComments())
	}
	if cfg.XPath != "" {
		opts = append(opts, xmldoc.WithXPath(cfg.XPath, nil))
	}
	for _, arg := range inputArgs(args) {
		in, err := readInput(arg)
		if err != nil {
			return err
		}
		doc, err := xmldoc.Load(in, cfg.docOpts()...)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		d, err := doc.C14N(opts...)
		if err != nil {
			return fmt.Errorf("error canonicalizing %s: %w", arg, err)
		}
		d = append(d, '\n')
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}
