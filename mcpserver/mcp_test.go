package mcpserver

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pm1-tools/pm1/pm1"
)

func connect(t *testing.T, conf pm1.Config) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := NewServer(conf).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "pm1-test", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callFactor(t *testing.T, session *mcp.ClientSession, number string) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "factor",
		Arguments: map[string]any{"number": number},
	})
	require.NoError(t, err)
	return res
}

func decodeOutput(t *testing.T, res *mcp.CallToolResult) factorOutput {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])

	var out factorOutput
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func TestListTools(t *testing.T) {
	session := connect(t, pm1.Config{})
	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)
	assert.Equal(t, "factor", tools.Tools[0].Name)
}

func TestFactorTool(t *testing.T) {
	session := connect(t, pm1.Config{})

	res := callFactor(t, session, "8051")
	require.False(t, res.IsError)
	out := decodeOutput(t, res)
	assert.Equal(t, "8051", out.Number)
	assert.Equal(t, []string{"97", "83"}, out.Factors)
	assert.Equal(t, "1", out.Cofactor)
	assert.Equal(t, "exhausted", out.State)
	assert.Equal(t, 23, out.Steps)
	assert.True(t, out.Complete)
}

func TestFactorTool_GivenUp(t *testing.T) {
	session := connect(t, pm1.Config{})

	out := decodeOutput(t, callFactor(t, session, "15"))
	assert.Equal(t, []string{"3"}, out.Factors)
	assert.Equal(t, "5", out.Cofactor)
	assert.Equal(t, "given_up", out.State)
	assert.False(t, out.Complete)
	assert.NotEmpty(t, out.Error)
}

func TestFactorTool_InvalidNumber(t *testing.T) {
	session := connect(t, pm1.Config{})

	res := callFactor(t, session, "-7")
	assert.True(t, res.IsError)
}

func TestNewFactorOutput(t *testing.T) {
	res, err := pm1.FindFactors(big.NewInt(21), pm1.Config{})
	require.NoError(t, err)

	out := newFactorOutput(res, 0)
	assert.Equal(t, []string{"7", "3"}, out.Factors)
	assert.Empty(t, out.Error)
}

func TestNewServer_DefaultsToServeBound(t *testing.T) {
	session := connect(t, pm1.Config{})

	// sqrt is 2^20, above the network default
	res := callFactor(t, session, "1099511627776")
	assert.True(t, res.IsError)
}
