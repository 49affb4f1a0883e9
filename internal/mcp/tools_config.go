// tools_config.go implements MCP tools for configuration management.
//
// Separated because config operations modify persistent settings rather
// than documents. The running server keeps the toolkit it started with, so
// a change only applies to the next server.
//
// Design: Values are read back through Get after Set so the client sees the
// effective value (default applied) rather than what it sent.

package mcp

import (
	"context"

	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// loadConfig reloads configuration from disk. The config the server started
// with may be stale after xml_config_set.
var loadConfig = config.Load

// configGet handles xml_config_get tool calls.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := loadConfig()
	if err != nil {
		log.Event("mcp:xml_config_get", "get").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:xml_config_get", "list").Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)

	log.Event("mcp:xml_config_get", "get").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles xml_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Event("mcp:xml_config_set", "set").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := cfg.Set(key, value); err != nil {
		log.Event("mcp:xml_config_set", "set").Detail("key", key).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()

	log.Event("mcp:xml_config_set", "set").Detail("key", key).Detail("value", value).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	effective, _ := cfg.Get(key)
	return jsonResult(map[string]string{key: effective})
}
