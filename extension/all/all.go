// Package all imports all core xmlkit extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/xmlkit/extension/core"
	_ "github.com/jpl-au/xmlkit/extension/xml"
)
