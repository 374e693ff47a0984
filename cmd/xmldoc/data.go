package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/fiscalxml/go-xmldoc/ir"
)

// readInput reads a file argument, with "-" meaning stdin.
func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", arg, err)
	}
	return d, nil
}

// inputArgs normalizes the argument list so that no arguments means
// read from stdin.
func inputArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// parseStructure decodes yaml or json input into a node, keeping
// object fields in document order.
func parseStructure(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromAny(v)
}

func fromAny(v any) (*ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(t), nil
	case string:
		return ir.FromString(t), nil
	case int:
		return ir.FromInt(int64(t)), nil
	case int64:
		return ir.FromInt(t), nil
	case uint64:
		return ir.FromInt(int64(t)), nil
	case float64:
		return ir.FromFloat(t), nil
	case yaml.MapSlice:
		res := ir.Object()
		for _, item := range t {
			val, err := fromAny(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(fmt.Sprint(item.Key), val)
		}
		return res, nil
	case []any:
		res := ir.Array()
		for _, elt := range t {
			val, err := fromAny(elt)
			if err != nil {
				return nil, err
			}
			res.Append(val)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unsupported input value %T", v)
	}
}

// writeStructure renders a node as json or yaml on w per the main
// config.
func writeStructure(cfg *MainConfig, w io.Writer, y *ir.Node) error {
	if cfg.jsonOut() {
		d, err := ir.ToJSON(y)
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	}
	d, err := yaml.Marshal(toAny(y))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func toAny(y *ir.Node) any {
	if y == nil {
		return nil
	}
	switch y.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return y.Bool
	case ir.StringType:
		return y.String
	case ir.NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case ir.ObjectType:
		res := make(yaml.MapSlice, 0, len(y.Fields))
		for i, f := range y.Fields {
			res = append(res, yaml.MapItem{
				Key:   f.String,
				Value: toAny(y.Values[i]),
			})
		}
		return res
	case ir.ArrayType:
		res := make([]any, 0, len(y.Values))
		for _, v := range y.Values {
			res = append(res, toAny(v))
		}
		return res
	default:
		return nil
	}
}
