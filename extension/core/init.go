// init.go implements the "xmlkit init" command for project setup.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before any configuration exists and creates the local one.
//
// Design: Init writes .xmlkit/config.yaml in the current directory and then
// looks for the Java launcher and both jars. Missing tools are warnings, not
// errors: the jars are often installed after the project is set up.

package core

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/jpl-au/xmlkit/cmd"
	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/spf13/cobra"
)

// ErrAlreadyInitialised is returned when a local config exists and --force
// was not given.
var ErrAlreadyInitialised = errors.New("already initialised")

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a local xmlkit config",
		Long: `Creates .xmlkit/config.yaml in the current directory.

  xmlkit init                          # defaults (jars next to the binary)
  xmlkit init --jar-dir /opt/xmlkit    # jars installed elsewhere

Reports whether java and the saxon/XMLCheck jars can be found.
Use --force to overwrite an existing local config.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	c.Flags().String(extension.FlagJarDir, "", "Directory holding the saxon and XMLCheck jars")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	jarDir, _ := c.Flags().GetString(extension.FlagJarDir)

	if _, err := os.Stat(config.LocalPath()); err == nil && !cmd.Force() {
		return cmd.PrintJSONError(fmt.Errorf("%w: %s exists (use --force to overwrite)", ErrAlreadyInitialised, config.LocalPath()))
	}

	cfg := &config.Config{}
	var err error
	if jarDir != "" {
		err = cfg.Set("tools.jar_dir", jarDir)
	}
	if err == nil {
		err = cfg.SaveTo(config.LocalPath())
	}

	log.Event("core:init", "init").
		Path(config.LocalPath()).
		Detail("jar_dir", jarDir).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	warnings := checkTools(cfg)

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"config": config.LocalPath(), "warnings": warnings})
	}
	fmt.Fprintf(cmd.Out(), "Initialised xmlkit config in %s\n", config.LocalPath())
	for _, w := range warnings {
		fmt.Fprintf(cmd.Out(), "warning: %s\n", w)
	}
	return nil
}

// checkTools reports the configured tools that cannot be found.
func checkTools(cfg *config.Config) []string {
	var warnings []string
	if _, err := exec.LookPath(cfg.Java()); err != nil {
		warnings = append(warnings, fmt.Sprintf("java launcher %q not found", cfg.Java()))
	}
	for _, jar := range []string{cfg.TransformJar(), cfg.ValidateJar()} {
		if _, err := os.Stat(jar); err != nil {
			warnings = append(warnings, fmt.Sprintf("jar %s not found", jar))
		}
	}
	return warnings
}
