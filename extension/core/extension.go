// Package core provides the core extension for xmlkit.
// It registers commands: init, config, serve, guide, vacuum, log, llm, version.
package core

import (
	"github.com/jpl-au/xmlkit/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental xmlkit commands.
func (e *Extension) Name() string { return "core" }

// Commands returns the housekeeping and integration commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVacuumCmd(),
		newLogCmd(),
		newLlmCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the built-in MCP tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// StandaloneCommands returns commands that never use the shared toolkit.
// serve: Long-running MCP server builds its own toolkit.
// vacuum: Must sweep scratch even when the tool configuration is broken.
// log: Reads the audit database only.
// version: Displays build info.
func (e *Extension) StandaloneCommands() []string {
	return []string{"serve", "vacuum", "log", "version"}
}
