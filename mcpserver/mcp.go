// Package mcpserver exposes the factor operation as a Model Context Protocol
// tool served over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pm1-tools/pm1/config"
	"github.com/pm1-tools/pm1/plgn"
	"github.com/pm1-tools/pm1/pm1"
	"github.com/pm1-tools/pm1/util"
)

type factorInput struct {
	Number string `json:"number" jsonschema:"positive decimal integer to factor"`
}

// factorOutput mirrors the HTTP response with every integer as a decimal
// string.
type factorOutput struct {
	Number     string   `json:"number"`
	Factors    []string `json:"factors"`
	Cofactor   string   `json:"cofactor"`
	State      string   `json:"state"`
	Steps      int      `json:"steps"`
	Complete   bool     `json:"complete"`
	Error      string   `json:"error,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

func newFactorOutput(res *pm1.Result, duration time.Duration) factorOutput {
	out := factorOutput{
		Number:     res.Number.String(),
		Factors:    decimals(res.Factors),
		Cofactor:   res.Cofactor.String(),
		State:      res.State.String(),
		Steps:      res.Steps,
		Complete:   res.Complete(),
		DurationMs: duration.Milliseconds(),
	}
	if err := res.Err(); err != nil {
		out.Error = err.Error()
	}
	return out
}

func decimals(fs []*big.Int) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

// NewServer builds the MCP server with the factor tool registered.
// A zero MaxBound falls back to pm1.DefaultServeMaxBound. Each call stops
// when the client cancels it.
func NewServer(conf pm1.Config) *mcp.Server {
	if conf.MaxBound <= 0 {
		conf.MaxBound = pm1.DefaultServeMaxBound
	}
	server := mcp.NewServer(&mcp.Implementation{Name: "pm1", Version: config.Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "factor",
		Description: "Factor a positive integer with Pollard's p-1 method. Factors are not certified prime; state given_up means part of the number stayed unsplit.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in factorInput) (*mcp.CallToolResult, factorOutput, error) {
		n, err := util.ParsePositive(in.Number)
		if err != nil {
			return nil, factorOutput{}, fmt.Errorf("number %q: %w", in.Number, err)
		}
		start := time.Now()
		callConf := conf
		callConf.Plugins = append(append([]pm1.Plugin(nil), conf.Plugins...), plgn.NewContextPlugin(ctx))
		res, err := pm1.FindFactors(n, callConf)
		if err != nil {
			return nil, factorOutput{}, err
		}
		return nil, newFactorOutput(res, time.Since(start)), nil
	})

	return server
}

// Run serves the factor tool on stdin/stdout until ctx is done or the client
// disconnects.
func Run(ctx context.Context, conf pm1.Config) error {
	log.Printf("[mcp] serving factor tool over stdio, max bound %d", conf.MaxBound)
	return NewServer(conf).Run(ctx, &mcp.StdioTransport{})
}
