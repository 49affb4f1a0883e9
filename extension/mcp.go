package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool is a tool an extension adds to `xmlkit serve`, with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler serves one tool call. extCtx carries the server's toolkit.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
