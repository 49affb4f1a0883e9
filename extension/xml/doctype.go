// doctype.go implements the "xmlkit doctype" command and the xml_doctype MCP
// tool.
//
// Separated from validate.go because these rewrites are permanent: validate
// swaps the declaration for one run and puts the file back, doctype shows
// or edits the file itself.
//
// Design: Nothing is written without --write. Without it a rewrite prints the
// new document (or, with --diff, only what changes) so it can be reviewed or
// redirected first.

package xml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/diff"
	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// doctypeResult is the JSON shape of a doctype inspection or rewrite.
type doctypeResult struct {
	Path    string `json:"path"`
	Doctype string `json:"doctype,omitempty"` // declaration before
	Result  string `json:"result,omitempty"`  // declaration after a rewrite
	Changed bool   `json:"changed"`
	Written bool   `json:"written"`
	Diff    string `json:"diff,omitempty"`
}

// rewrite holds both versions of a document.
type rewrite struct {
	result doctypeResult
	before string
	after  string
}

func (e *Extension) newDoctypeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "doctype <xml>",
		Short: "Show or rewrite a document's DOCTYPE declaration",
		Long: `Show or rewrite a document's DOCTYPE declaration.

  xmlkit doctype article.xml                                   # show it
  xmlkit doctype article.xml --set '<!DOCTYPE article SYSTEM "j.dtd">' --diff
  xmlkit doctype article.xml --remove --write

Without --write the rewritten document is printed and the file is left
alone. A declaration sharing its line with other markup is not removed.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runDoctype,
	}
	c.Flags().String(extension.FlagSet, "", "Replacement DOCTYPE declaration")
	c.Flags().Bool(extension.FlagRemove, false, "Remove the DOCTYPE declaration")
	c.Flags().Bool(extension.FlagDiff, false, "Show only the changes")
	c.Flags().Bool(extension.FlagWrite, false, "Write the result back to the file")
	c.MarkFlagsMutuallyExclusive(extension.FlagSet, extension.FlagRemove)
	return c
}

func (e *Extension) runDoctype(c *cobra.Command, args []string) error {
	path := args[0]
	decl, _ := c.Flags().GetString(extension.FlagSet)
	remove, _ := c.Flags().GetBool(extension.FlagRemove)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	write, _ := c.Flags().GetBool(extension.FlagWrite)

	if err := validate.Path(path); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("doctype: %w", err))
	}
	override, err := overrideFlags(decl, c.Flags().Changed(extension.FlagSet), remove)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("doctype: %w", err))
	}
	if !override.IsSet() && (write || showDiff) {
		return cmd.PrintJSONError(errors.New("doctype: --diff and --write need --set or --remove"))
	}

	rw, err := rewriteDoctype(path, override, write)
	if override.IsSet() {
		logRewrite("xml:doctype", path, override, rw.result, err)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("doctype %q: %w", path, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(rw.result)
	}

	switch {
	case !override.IsSet():
		if rw.result.Doctype == "" {
			fmt.Fprintf(cmd.Out(), "%s has no DOCTYPE declaration\n", path)
		} else {
			fmt.Fprintln(cmd.Out(), rw.result.Doctype)
		}
	case showDiff:
		colour := term.IsTerminal(int(os.Stdout.Fd()))
		if !rw.result.Changed {
			fmt.Fprintln(cmd.Out(), "No changes")
		} else if err := diff.Compute(rw.before, rw.after, path, path+" (rewritten)").Write(cmd.Out(), colour); err != nil {
			return err
		}
	case write:
		if rw.result.Written {
			fmt.Fprintf(cmd.Out(), "Rewrote DOCTYPE in %s\n", path)
		} else {
			fmt.Fprintf(cmd.Out(), "No changes to %s\n", path)
		}
	default:
		fmt.Fprint(cmd.Out(), rw.after)
	}
	return nil
}

// rewriteDoctype reads path, applies o and, when write is set and the text
// changed, writes the result back with the file's existing permissions.
func rewriteDoctype(path string, o doctype.Override, write bool) (rewrite, error) {
	rw := rewrite{result: doctypeResult{Path: path}}

	info, err := os.Stat(path)
	if err != nil {
		return rw, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return rw, err
	}
	rw.before = string(data)
	rw.result.Doctype, _ = doctype.Find(rw.before)

	rw.after = doctype.Rewrite(rw.before, o)
	rw.result.Result, _ = doctype.Find(rw.after)
	rw.result.Changed = rw.after != rw.before
	if rw.result.Changed {
		rw.result.Diff = diff.Compute(rw.before, rw.after, path, path+" (rewritten)").Diff
	}

	if write && rw.result.Changed {
		if err := os.WriteFile(path, []byte(rw.after), info.Mode().Perm()); err != nil {
			return rw, fmt.Errorf("write: %w", err)
		}
		rw.result.Written = true
	}
	return rw, nil
}

func logRewrite(source, path string, o doctype.Override, r doctypeResult, err error) {
	log.Event(source, "rewrite").
		Path(path).
		Detail("doctype", o.String()).
		Detail("changed", r.Changed).
		Detail("written", r.Written).
		Write(err)
}

// doctypeTool exposes rewriteDoctype over MCP.
func doctypeTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("xml_doctype",
			mcp.WithDescription("Show or rewrite the DOCTYPE declaration of an XML file. Without write=true nothing is saved; the result includes a diff of the change."),
			mcp.WithString("xml", mcp.Required(), mcp.Description("Path of the XML file")),
			mcp.WithString("doctype", mcp.Description("Replacement declaration, e.g. <!DOCTYPE article SYSTEM \"journal.dtd\">")),
			mcp.WithBoolean("remove", mcp.Description("Remove the declaration instead of replacing it")),
			mcp.WithBoolean("write", mcp.Description("Save the rewritten document")),
		),
		Handler: handleDoctype,
	}
}

func handleDoctype(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("xml")
	if err != nil {
		return mcp.NewToolResultError("xml is required"), nil //nolint:nilerr
	}
	if err := validate.Path(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	decl := req.GetString("doctype", "")
	remove := req.GetBool("remove", false)
	if decl != "" && remove {
		return mcp.NewToolResultError("doctype and remove are mutually exclusive"), nil
	}
	override, err := overrideFlags(decl, decl != "", remove)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rw, err := rewriteDoctype(path, override, override.IsSet() && req.GetBool("write", false))
	if override.IsSet() {
		logRewrite("mcp:xml_doctype", path, override, rw.result, err)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(rw.result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
