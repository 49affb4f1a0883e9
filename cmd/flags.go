/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go holds the persistent flags and the output helpers every command
// shares. Extensions reach them through the exported functions below so
// that extension packages never touch the flag variables.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output     string
	configPath string
	verbose    bool
	force      bool
)

// out receives command output; tests swap it with SetOut.
var out io.Writer = os.Stdout

// Out returns where commands write their results.
func Out() io.Writer { return out }

// Output returns the --output value ("" or "json").
func Output() string { return output }

// Force reports whether --force was given.
func Force() bool { return force }

// ConfigPath returns the config file named by --config, then XMLKIT_CONFIG.
// Empty means the local/global cascade applies.
func ConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("XMLKIT_CONFIG")
}

// LoadConfig loads the config file named by --config, or the local/global
// cascade when none is given.
func LoadConfig() (*config.Config, error) {
	if p := ConfigPath(); p != "" {
		return config.LoadFile(p)
	}
	return config.Load()
}

// Logger returns the trace logger: debug output on stderr with --verbose,
// otherwise discarded.
func Logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetOut redirects command output.
func SetOut(w io.Writer) { out = w }

// JSON reports whether -o json was given.
func JSON() bool { return output == "json" }

// PrintJSON writes v as one line of JSON. It does nothing unless -o json
// was given.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError reports err as {"error": ...} under -o json and returns
// nil so cobra does not print it a second time. Without -o json, err is
// returned unchanged.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .xmlkit/config.yaml, then ~/.xmlkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Trace tool runs on stderr")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
