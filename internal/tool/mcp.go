package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPDispatcher serves the Dispatcher contract over an MCP stdio client,
// spawning the tool backend as a subprocess. The mcp-go client serializes
// requests internally, so one dispatcher may be shared across runners.
type MCPDispatcher struct {
	client *client.Client
}

// NewMCPDispatcher starts the given MCP server command and performs the
// protocol handshake. The caller owns the dispatcher and must Close it.
func NewMCPDispatcher(ctx context.Context, command string, args ...string) (*MCPDispatcher, error) {
	c, err := client.NewStdioMCPClient(command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("start MCP backend: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "crew",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize MCP backend: %w", err)
	}

	return &MCPDispatcher{client: c}, nil
}

// Execute dispatches one tool call to the backend. Backend-reported tool
// failures come back as recoverable ExecutionErrors; transport failures are
// wrapped the same way so the loop's error taxonomy stays uniform.
func (d *MCPDispatcher) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := d.client.CallTool(ctx, req)
	if err != nil {
		return nil, NewExecutionError(name, err)
	}

	content := flattenContent(res.Content)
	if res.IsError {
		return nil, NewExecutionError(name, fmt.Errorf("%s", content))
	}

	return &Result{Content: content}, nil
}

// ListAvailableTools returns the backend's tool catalog as Definitions.
func (d *MCPDispatcher) ListAvailableTools(ctx context.Context) ([]Definition, error) {
	res, err := d.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}

	defs := make([]Definition, 0, len(res.Tools))
	for _, t := range res.Tools {
		defs = append(defs, Definition{
			Name:        t.Name,
			Description: t.Description,
			Properties:  t.InputSchema.Properties,
			Required:    t.InputSchema.Required,
		})
	}
	return defs, nil
}

// Close shuts down the backend subprocess.
func (d *MCPDispatcher) Close() error {
	return d.client.Close()
}

// flattenContent joins all text blocks of an MCP result into one payload.
func flattenContent(blocks []mcp.Content) string {
	var parts []string
	for _, block := range blocks {
		if tc, ok := block.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
