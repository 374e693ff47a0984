package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
	"github.com/fiscalxml/go-xmldoc/schema"
)

func runValidate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if !cfg.colorize(cc.Out) {
		ok.DisableColor()
		fail.DisableColor()
	}
	v := schema.NewValidator()
	failed := 0
	for _, arg := range inputArgs(args) {
		in, err := readInput(arg)
		if err != nil {
			return err
		}
		doc, err := xmldoc.Load(in, cfg.docOpts()...)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		err = v.Validate(doc, cfg.Schema)
		if err == nil {
			ok.Fprintf(cc.Out, "ok %s\n", arg)
			continue
		}
		failed++
		vErr := &schema.ValidationError{}
		if !errors.As(err, &vErr) {
			return fmt.Errorf("error validating %s: %w", arg, err)
		}
		fail.Fprintf(cc.Out, "fail %s against %s\n", arg, vErr.Schema)
		for _, d := range vErr.Diagnostics {
			fmt.Fprintf(cc.Out, "\t%d:%d %s: %s\n", d.Line, d.Column, d.Path, d.Message)
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
