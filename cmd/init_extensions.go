/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, builds the toolkit, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before config is loaded. The toolkit is created once and
// shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/xmlkit/extension"
	"github.com/jpl-au/xmlkit/internal/toolkit"
)

// standaloneCommands lists commands that bypass toolkit construction.
// Built dynamically from bootstrap commands plus extension-declared ones.
var standaloneCommands map[string]bool

// buildStandaloneCommands creates the set of commands that skip toolkit
// construction.
//
// Most commands start a tool and need the toolkit, but some must work
// without it:
//
//  1. Bootstrap commands (init, guide, config, llm) - These help users set up
//     or learn about xmlkit. "xmlkit config tools.jar_dir ..." must work even
//     when the current config is broken.
//
//  2. Extension-declared standalone commands - Extensions implement the
//     Standalone interface to declare commands that never start a tool or
//     manage their own toolkit.
func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"guide":  true,
		"config": true,
		"llm":    true,
	}

	for _, name := range extension.StandaloneCommands() {
		cmds[name] = true
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads config, builds the toolkit and injects it into
// extensions. sync.Once guarantees one toolkit per process.
func initExtensions() error {
	initOnce.Do(func() {
		extContext, initErr = NewContext()
		if initErr != nil {
			return
		}

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// NewContext loads config and builds a fresh toolkit. Standalone commands
// that need a toolkit of their own (serve) use this directly.
func NewContext() (extension.Context, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	tk, err := toolkit.New(cfg, toolkit.Options{Logger: Logger()})
	if err != nil {
		return nil, fmt.Errorf("building toolkit: %w", err)
	}
	return extension.NewContext(tk, cfg), nil
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build standaloneCommands after all extensions are registered
		standaloneCommands = buildStandaloneCommands()
	})
}
