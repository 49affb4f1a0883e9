// serve.go implements the "xmlkit serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: Serve is a standalone command - it builds its own toolkit instead
// of using the shared one from root.go, so a broken config is reported when
// the server starts rather than when the CLI framework initialises.

package core

import (
	"fmt"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --config to serve with a specific configuration:
  xmlkit serve --config ci.yaml`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	extCtx, err := cmd.NewContext()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return mcp.Serve(extCtx)
}
