package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
)

func runMap(cfg *MapConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Map.Parse(cc, args)
	if err != nil {
		return err
	}
	args = inputArgs(args)
	for i, arg := range args {
		in, err := readInput(arg)
		if err != nil {
			return err
		}
		doc, err := xmldoc.Load(in, cfg.docOpts()...)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		if err := writeStructure(cfg.MainConfig, cc.Out, doc.ToNode()); err != nil {
			return err
		}
		if i < len(args)-1 && !cfg.jsonOut() {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}
