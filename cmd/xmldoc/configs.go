package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	xmldoc "github.com/fiscalxml/go-xmldoc"
)

type MainConfig struct {
	Enc   string `cli:"name=enc desc='working document encoding'"`
	J     bool   `cli:"name=j aliases=json desc='structure i/o in json'"`
	Y     bool   `cli:"name=y aliases=yaml desc='structure i/o in yaml'"`
	Color bool   `cli:"name=color desc='force colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) docOpts() []xmldoc.Option {
	if cfg.Enc == "" {
		return nil
	}
	return []xmldoc.Option{xmldoc.WithEncoding(cfg.Enc)}
}

// jsonOut reports whether structure output goes out as JSON rather
// than YAML.
func (cfg *MainConfig) jsonOut() bool {
	return cfg.J && !cfg.Y
}

func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
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

type XMLConfig struct {
	*MainConfig
	NS     string `cli:"name=ns desc='namespace uri for created elements'"`
	Prefix string `cli:"name=prefix desc='namespace prefix for created elements'"`

	XML *cli.Command
}

type MapConfig struct {
	*MainConfig

	Map *cli.Command
}

type CanonConfig struct {
	*MainConfig
	Exc      bool   `cli:"name=exc desc='exclusive canonicalization'"`
	Comments bool   `cli:"name=comments desc='keep comments'"`
	XPath    string `cli:"name=x desc='canonicalize the element this xpath selects'"`

	Canon *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Values bool `cli:"name=values desc='print text values only, no projection'"`

	Params     map[string]string
	Namespaces map[string]string

	Query *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Schema string `cli:"name=s aliases=schema desc='schema path (default: schemaLocation hint)'"`

	Validate *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
