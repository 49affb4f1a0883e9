// vacuum.go implements the "xmlkit vacuum" command for housekeeping.
//
// Separated from extension.go because vacuum is destructive and requires
// special handling including confirmation prompts and dry-run support.
//
// Design: Vacuum is a standalone command. It only needs the scratch
// directory from config, so it still works when the tool settings are
// broken and the shared toolkit cannot be built.

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/duration"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/vacuum"
	"github.com/jpl-au/xmlkit/internal/workspace"
	"github.com/spf13/cobra"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Remove stale scratch files and old log entries",
		Long: `Remove staged files left in the scratch directory by interrupted runs,
and audit log entries older than the cutoff.

This is irreversible. Use --force to skip confirmation.

Duration formats: 7d (days), 4w (weeks), 3m (months), or Go durations
such as 12h. Default: 1d.`,
		Args: cobra.NoArgs,
		RunE: runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only remove what is older than duration (e.g., 12h, 7d, 4w)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{DryRun: dryRun, Log: log.Purge}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = d
	}

	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}
	ws, err := workspace.New(cfg.ScratchDir())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open scratch directory: %w", err))
	}

	if !dryRun && !cmd.Force() {
		fmt.Fprintf(cmd.Out(), "Permanently delete stale files in %s and old log entries? [y/N] ", ws.Dir())
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := vacuum.Run(c.Context(), w, ws, opts)

	log.Event("core:vacuum", "vacuum").
		Path(ws.Dir()).
		Detail("dry_run", dryRun).
		Detail("files", len(result.Files)).
		Detail("entries", result.Entries).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(map[string]any{
		"dry_run": dryRun,
		"files":   result.Files,
		"entries": result.Entries,
	})
}
