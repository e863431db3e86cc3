package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/pm1-tools/pm1/config"
	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/util"
)

// Output is where every printer writes. Tests swap it for a buffer.
var Output io.Writer = color.Output

const logo = `
             _   __  __      _   _               _ 
 _ __       / | |  \/  | ___| |_| |__   ___   __| |
| '_ \ _____| | | |\/| |/ _ \ __| '_ \ / _ \ / _` + "`" + ` |
| |_) |_____| | | |  | |  __/ |_| | | | (_) | (_| |
| .__/      |_| |_|  |_|\___|\__|_| |_|\___/ \__,_|
|_|                                                
`

const dividerMin = 50

func Version() {
	fmt.Fprintf(Output, "%s %s %s %s\n",
		color.New(color.FgWhite, color.Bold).Sprintf("%s", "pm1"),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", config.Version),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", config.BuildDate),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", config.CommitID),
	)
}

func CopyRight() {
	fmt.Fprintf(Output, "\n%s\n%s\n",
		color.New(color.FgCyan, color.Bold).Sprintf("%s", "pm1 - Pollard's p-1 factorization"),
		color.New(color.FgHiBlack).Sprintf("%s", "Factors are not certified prime. A given-up search may succeed with a larger bound."),
	)
}

func Logo() {
	fmt.Fprint(Output, color.New(color.FgCyan, color.Bold).Sprint(logo))
}

// Divider prints a rule at least as wide as the logo.
func Divider() {
	fmt.Fprintln(Output, strings.Repeat("-", dividerWidth()))
}

func dividerWidth() int {
	width := dividerMin
	for _, line := range strings.Split(logo, "\n") {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return width
}

// PrintResult is the default human readable output.
func PrintResult(res *pm1.Result) {
	fmt.Fprintf(Output, "The dividers of %s are: %s\n",
		color.New(color.FgWhite, color.Bold).Sprint(res.Number.String()),
		color.New(color.FgGreen, color.Bold).Sprint(util.FormatFactors(res.Factors)),
	)
	if !res.Complete() {
		PrintGivenUp(res)
	}
}

// PrintGivenUp explains a search that stopped before splitting the number
// completely. It is deliberately worded differently from invalid input.
func PrintGivenUp(res *pm1.Result) {
	fmt.Fprintln(Output, color.New(color.FgYellow, color.Bold).Sprint("Could not find all valid factors!"))
	if res.Cofactor != nil && res.Cofactor.Cmp(res.Number) != 0 {
		fmt.Fprintf(Output, "Unsplit cofactor: %s\n", res.Cofactor)
	}
	fmt.Fprintln(Output, "Increasing the bound could help.")
}

func PrintInvalidInput() {
	fmt.Fprintln(Output, color.New(color.FgRed, color.Bold).Sprint("Invalid Input: Please enter a positive number."))
}
