// log.go implements the "xmlkit log" command for reading the audit log.
//
// Design: The audit database is global (~/.xmlkit/log), so log is a
// standalone command and lists runs from every project, newest first.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/format"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/spf13/cobra"
)

const defaultLogLimit = 20

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent runs from the audit log",
		Long: `Show recent transforms, validations and doctype rewrites, newest first.

  xmlkit log              # last 20 runs
  xmlkit log -n 100       # last 100 runs
  xmlkit log -o json      # machine-readable`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", defaultLogLimit, "Number of entries to show")
	return c
}

// logEntry is the JSON shape of one run.
type logEntry struct {
	Time    string         `json:"time"`
	Source  string         `json:"source"`
	Action  string         `json:"action"`
	Path    string         `json:"path,omitempty"`
	Output  string         `json:"output,omitempty"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if limit <= 0 {
		limit = defaultLogLimit
	}

	entries, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read audit log: %w", err))
	}

	if cmd.JSON() {
		out := make([]logEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, logEntry{
				Time:    time.Unix(e.Start, 0).Format(time.RFC3339),
				Source:  e.Source,
				Action:  e.Action,
				Path:    e.Path,
				Output:  e.Output,
				Success: e.Success,
				Error:   e.Error,
				Detail:  e.Detail,
			})
		}
		return cmd.PrintJSON(out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.Out(), "No runs recorded")
		return nil
	}
	return format.Runs(cmd.Out(), entries)
}
