// Package debug holds env-var gated trace switches for the codec and
// query internals.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Codec    bool
	Query    bool
	Encoding bool
}

var d *debug

func init() {
	d = &debug{}
	d.Codec = boolEnv("XMLDOC_DEBUG_CODEC")
	d.Query = boolEnv("XMLDOC_DEBUG_QUERY")
	d.Encoding = boolEnv("XMLDOC_DEBUG_ENCODING")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Codec() bool {
	return d.Codec
}
func Query() bool {
	return d.Query
}
func Encoding() bool {
	return d.Encoding
}

func Printf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
