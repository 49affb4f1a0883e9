// context.go defines the Context interface for extension access to xmlkit
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// reach the toolkit and the configuration without constructing either.
//
// Design: Context is an interface so extensions can be tested with a
// toolkit built on a fake runner. Extensions receive Context during Init(),
// not at construction, because they register before config is loaded.

package extension

import (
	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/toolkit"
)

// Context provides extensions controlled access to xmlkit internals.
type Context interface {
	// Toolkit returns the service that opens, transforms and validates
	// documents.
	Toolkit() toolkit.Service

	// Config returns the effective configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	tk  toolkit.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(tk toolkit.Service, cfg *config.Config) Context {
	return &extContext{tk: tk, cfg: cfg}
}

// Toolkit returns the shared document service.
func (c *extContext) Toolkit() toolkit.Service {
	return c.tk
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
