package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
	"github.com/fiscalxml/go-xmldoc/codec"
)

func runXML(cfg *XMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.XML.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Prefix != "" && cfg.NS == "" {
		return fmt.Errorf("%w: -prefix requires -ns", cli.ErrUsage)
	}
	var ns *codec.Namespace
	if cfg.NS != "" {
		ns = &codec.Namespace{URI: cfg.NS, Prefix: cfg.Prefix}
	}
	for _, arg := range inputArgs(args) {
		in, err := readInput(arg)
		if err != nil {
			return err
		}
		y, err := parseStructure(in)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		doc, err := xmldoc.FromNodeNS(y, ns, cfg.docOpts()...)
		if err != nil {
			return fmt.Errorf("error building %s: %w", arg, err)
		}
		d, err := doc.Bytes()
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", arg, err)
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}
