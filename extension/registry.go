// registry.go holds the process-wide list of extensions.
//
// Extensions register from init(), before main runs, so the list is fixed by
// the time the root command is built. Order is the order of registration,
// which is the import order in extension/all.

package extension

import "sync"

var (
	mu   sync.RWMutex
	exts []Extension
)

// Register adds e. A second extension with the same name panics: it can only
// be a wiring mistake.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	for _, have := range exts {
		if have.Name() == e.Name() {
			panic("extension already registered: " + e.Name())
		}
	}
	exts = append(exts, e)
}

// All returns the registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Extension(nil), exts...)
}

// Tools collects the MCP tools of every registered extension, in
// registration order.
func Tools() []MCPTool {
	var tools []MCPTool
	for _, e := range All() {
		tools = append(tools, e.MCPTools()...)
	}
	return tools
}

// StandaloneCommands returns the names of every command an extension has
// declared as not needing the toolkit.
func StandaloneCommands() []string {
	var names []string
	for _, e := range All() {
		if s, ok := e.(Standalone); ok {
			names = append(names, s.StandaloneCommands()...)
		}
	}
	return names
}
