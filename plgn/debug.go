package plgn

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/pm1-tools/pm1/pm1"
)

// DebugPlugin traces the search. Level 1 prints every transition, level 2
// only extracted factors and the outcome, level 3 and above stays silent.
type DebugPlugin struct {
	DefaultPlugin
	DebugLevel int
	Out        io.Writer
}

func NewDebugPlugin(params interface{}) pm1.Plugin {
	debugLevel, ok := params.(int)
	if !ok {
		return nil
	}
	return &DebugPlugin{DebugLevel: debugLevel, Out: os.Stderr}
}

func (d *DebugPlugin) OnStart(number *big.Int) error {
	if d.DebugLevel <= 2 {
		fmt.Fprintln(d.Out, "Debug: factoring", number)
	}
	return nil
}

func (d *DebugPlugin) OnStep(ev pm1.Event) error {
	if d.DebugLevel <= 1 {
		fmt.Fprintf(d.Out, "Debug Level 1: step %d target=%s bound=%d primes=%d iteration=%d base=%d gcd=%v -> %s\n",
			ev.Step, ev.Target, ev.Bound, ev.Primes, ev.Iteration, ev.Base, ev.GCD, ev.State)
	}
	if d.DebugLevel <= 2 && ev.Factor != nil {
		fmt.Fprintf(d.Out, "Debug Level 2: factor %s found with base %d\n", ev.Factor, ev.Base)
	}
	return nil
}

func (d *DebugPlugin) OnFinish(res *pm1.Result) error {
	if d.DebugLevel <= 2 {
		fmt.Fprintf(d.Out, "Debug Level 2: %s after %d steps, cofactor %s\n", res.State, res.Steps, res.Cofactor)
	}
	return nil
}
