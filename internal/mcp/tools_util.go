// tools_util.go reads optional tool arguments.
//
// Optional arguments fall back to a default when missing or of the wrong
// JSON type; clients often send "true" for true or omit fields entirely.
// Required arguments go through req.RequireString in the handlers instead.

package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/mark3labs/mcp-go/mcp"
)

// arg returns the raw value of an argument, if the arguments are an object.
func arg(req mcp.CallToolRequest, name string) (any, bool) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := args[name]
	return v, ok
}

func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	if v, ok := arg(req, name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// getInt reads a JSON number; encoding/json hands numbers over as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	if v, ok := arg(req, name); ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return def
}

// getParams reads stylesheet parameters from a JSON object. Numbers and
// booleans are passed on as their text; nested values are dropped. Returns
// nil when the argument is absent.
func getParams(req mcp.CallToolRequest, name string) invoke.Params {
	v, _ := arg(req, name)
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	params := make(invoke.Params, len(obj))
	for k, v := range obj {
		switch v := v.(type) {
		case string:
			params[k] = v
		case float64, bool:
			params[k] = fmt.Sprint(v)
		}
	}
	return params
}

// jsonResult returns v as indented JSON text. A value that cannot be
// marshalled becomes a tool error.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
