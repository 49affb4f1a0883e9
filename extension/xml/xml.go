// Package xml provides the xml extension: the commands that run the XSLT
// processor and the DTD checker, and the DOCTYPE rewriter.
// Registers commands: transform, validate, doctype.
//
// Each command file is separated to isolate its argument handling and
// output formatting. All tool runs go through the shared toolkit so the CLI
// behaves exactly like the MCP tools.

package xml

import (
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/toolkit"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the xml extension.
type Extension struct {
	tk  toolkit.Service
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Standalone    = (*Extension)(nil)
)

// Name returns "xml".
func (e *Extension) Name() string { return "xml" }

// Init connects to the shared toolkit.
func (e *Extension) Init(ctx extension.Context) error {
	e.tk = ctx.Toolkit()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the document processing commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTransformCmd(),
		e.newValidateCmd(),
		e.newDoctypeCmd(),
	}
}

// MCPTools returns xml_doctype. Transform and validate tools are provided by
// the internal/mcp package.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{doctypeTool()}
}

// StandaloneCommands returns doctype: it edits text and never starts a tool.
func (e *Extension) StandaloneCommands() []string {
	return []string{"doctype"}
}
