package printer

import (
	"fmt"
	"math/big"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/pm1-tools/pm1/pm1"
)

type FactorRow struct {
	Index  string
	Factor string
	Digits string
	Kind   string
}

// FactorRows lays out the factors of res followed by the unsplit cofactor,
// if any.
func FactorRows(res *pm1.Result) []FactorRow {
	rows := make([]FactorRow, 0, len(res.Factors)+1)
	add := func(f *big.Int, kind string) {
		s := f.String()
		rows = append(rows, FactorRow{
			Index:  fmt.Sprint(len(rows) + 1),
			Factor: s,
			Digits: fmt.Sprint(len(s)),
			Kind:   kind,
		})
	}
	for _, f := range res.Factors {
		add(f, "factor")
	}
	if res.Cofactor != nil && res.Cofactor.Cmp(big.NewInt(1)) > 0 {
		add(res.Cofactor, "cofactor")
	}
	return rows
}

func FactorTablePrinter(res *pm1.Result) {
	tbl := New()
	for _, r := range FactorRows(res) {
		tbl.AddRow(r.Index, r.Factor, r.Digits, r.Kind)
	}
	tbl.Print()
	fmt.Fprintf(Output, "%s: %s after %d steps\n", res.Number, res.State, res.Steps)
	if !res.Complete() {
		PrintGivenUp(res)
	}
}

func New() table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("#", "Factor", "Digits", "Kind")
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt).WithWriter(Output)
	return tbl
}
