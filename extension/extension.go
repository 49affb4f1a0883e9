// Package extension provides the plugin architecture for xmlkit. Extensions
// encapsulate related functionality (commands, MCP tools) and register at
// init time, enabling modular feature development without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for xmlkit extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared toolkit before their commands
// run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is an optional interface for extensions with commands that
// don't need the toolkit. Commands returned by StandaloneCommands() will
// not trigger toolkit construction in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before the config is usable
// 2. Commands that manage their own toolkit lifecycle (serve)
// 3. Utility commands that never start a tool (doctype, log, version)
type Standalone interface {
	StandaloneCommands() []string
}
