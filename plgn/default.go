package plgn

import (
	"math/big"

	"github.com/pm1-tools/pm1/pm1"
)

type DefaultPlugin struct {
}

func NewDefaultPlugin(interface{}) pm1.Plugin {
	return &DefaultPlugin{}
}

func (d *DefaultPlugin) OnStart(number *big.Int) error {
	return nil
}

func (d *DefaultPlugin) OnStep(ev pm1.Event) error {
	return nil
}

func (d *DefaultPlugin) OnFinish(res *pm1.Result) error {
	return nil
}
