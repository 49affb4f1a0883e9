// tools_log.go implements the MCP tool for listing past runs.

package mcp

import (
	"context"
	"time"

	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultLogLimit bounds xml_log when the client gives no limit.
const defaultLogLimit = 20

// runEntry is the JSON shape of an audit entry.
type runEntry struct {
	Time    string         `json:"time"`
	Source  string         `json:"source"`
	Action  string         `json:"action"`
	Path    string         `json:"path,omitempty"`
	Output  string         `json:"output,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// recentRuns handles xml_log tool calls.
func (h *handlers) recentRuns(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := getInt(req, "limit", defaultLogLimit)
	if limit <= 0 {
		limit = defaultLogLimit
	}

	entries, err := log.Recent(limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runs := make([]runEntry, 0, len(entries))
	for _, e := range entries {
		runs = append(runs, runEntry{
			Time:    time.Unix(e.Start, 0).UTC().Format(time.RFC3339),
			Source:  e.Source,
			Action:  e.Action,
			Path:    e.Path,
			Output:  e.Output,
			Success: e.Success,
			Error:   e.Error,
			Detail:  e.Detail,
		})
	}
	return jsonResult(runs)
}
