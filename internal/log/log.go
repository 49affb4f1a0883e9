// Package log provides centralised audit logging for xmlkit runs.
// Logs are stored in ~/.xmlkit/log/xmlkit-log.db and record every transform,
// validation and doctype rewrite across projects, from both the CLI and the
// MCP server.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("xml:validate", "validate").
//		Path(xmlPath).
//		Output(reportPath).
//		Valid(ok).
//		Write(err)
//
//	log.Event("xml:transform", "transform").
//		Path(xmlPath).
//		Output(outPath).
//		Detail("stylesheet", xsl).
//		Valid(ok).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "xml:transform",
// "core:config", "mcp:xml_validate".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "xml:validate", "mcp:xml_transform"
	Action string // verb: transform, validate, rewrite, config, etc.
	Path   string // input: document path (empty for inline content)
	Output string // output: file written by the run

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	// Success is false when the call failed with an error or the tool
	// reported a failure (a false result from transform/validate).
	Success bool
	Error   string         // error message or tool failure summary
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry  Entry
	failed bool
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "xml:transform")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:xml_validate")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the document this operation reads.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Output sets the file this operation wrote.
func (b *Builder) Output(path string) *Builder {
	b.entry.Output = path
	return b
}

// Valid records the tool's verdict. A false verdict marks the entry as
// failed even when the call itself returned no error.
func (b *Builder) Valid(ok bool) *Builder {
	b.failed = !ok
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// stylesheet, doctype override, runner mode, etc.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from
// err and any verdict set with [Builder.Valid].
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil && !b.failed
	switch {
	case err != nil:
		b.entry.Error = err.Error()
	case b.failed:
		b.entry.Error = "tool reported failure"
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	if wd, err := os.Getwd(); err == nil {
		global.project = hash(wd)
	}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to n of the most recent entries, newest first.
// Returns nil if the logger is not initialised.
func Recent(n int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, nil
	}
	return l.recent(n)
}

// Purge deletes entries that ended before cutoff. With dryRun set it only
// counts them. Returns 0 if the logger is not initialised.
func Purge(cutoff time.Time, dryRun bool) (int64, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return 0, nil
	}
	if dryRun {
		return l.countBefore(cutoff.Unix())
	}
	return l.purge(cutoff.Unix())
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
