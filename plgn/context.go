package plgn

import (
	"context"
	"math/big"

	"github.com/pm1-tools/pm1/pm1"
)

// ContextPlugin aborts the search once Ctx is done. It is attached per
// request rather than registered by name.
type ContextPlugin struct {
	DefaultPlugin
	Ctx context.Context
}

func NewContextPlugin(ctx context.Context) pm1.Plugin {
	return &ContextPlugin{Ctx: ctx}
}

func (c *ContextPlugin) OnStart(*big.Int) error {
	return context.Cause(c.Ctx)
}

func (c *ContextPlugin) OnStep(pm1.Event) error {
	return context.Cause(c.Ctx)
}
