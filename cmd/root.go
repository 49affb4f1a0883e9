/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE builds the toolkit lazily - only commands that
// start a tool trigger extension init. This lets bootstrap commands (init,
// guide, config) run even when the config points at jars that don't exist
// yet. The standaloneCommands map controls which commands skip it.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/spf13/cobra"
)

// ErrFailed is returned by commands whose tool run completed but reported
// failure (invalid document, missing transform output). The report has
// already been written, so nothing more is printed.
var ErrFailed = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:   "xmlkit",
	Short: "Run XSLT transforms and DTD validation over XML documents",
	Long: `Drives an external XSLT processor and DTD checker over XML documents.

Every run leaves a file at the requested output: the tool's result, or a
report saying why there is none. DOCTYPE declarations can be swapped or
removed for the duration of a validation; the original file is always put
back.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Build the toolkit for commands that run tools
		if !standaloneCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "xmlkit validate a.xml", returns "validate".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Failed silences cobra's error output for c and returns ErrFailed. Use it
// once the failure report has been written.
func Failed(c *cobra.Command) error {
	c.SilenceErrors = true
	c.SilenceUsage = true
	return ErrFailed
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions and executes the command.
// Exit code 1 indicates an error or a failed run.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
