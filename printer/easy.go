package printer

import (
	"fmt"
	"strings"

	"github.com/pm1-tools/pm1/pm1"
)

// EasyPrinter emits one pipe separated line:
// number|state|steps|factor,factor,...|cofactor
func EasyPrinter(res *pm1.Result) {
	fs := make([]string, len(res.Factors))
	for i, f := range res.Factors {
		fs[i] = f.String()
	}
	fmt.Fprintf(Output, "%s|%s|%d|%s|%s\n",
		res.Number,
		res.State,
		res.Steps,
		strings.Join(fs, ","),
		res.Cofactor,
	)
}
