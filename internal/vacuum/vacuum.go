// Package vacuum removes what xmlkit leaves behind over time: staged files
// stranded in the scratch directory by interrupted runs, and old audit log
// entries. Both are irreversible; DryRun lists what would go.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/xmlkit/internal/format"
	"github.com/jpl-au/xmlkit/internal/progress"
	"github.com/jpl-au/xmlkit/internal/workspace"
)

// DefaultOlderThan keeps a day of scratch files so a run in progress is
// never swept from under itself.
const DefaultOlderThan = 24 * time.Hour

// Scratch lists stale files in the scratch directory.
type Scratch interface {
	Stale(cutoff time.Time) ([]workspace.Entry, error)
}

// PurgeFunc removes (or with dryRun, counts) audit entries older than cutoff.
type PurgeFunc func(cutoff time.Time, dryRun bool) (int64, error)

// Options configures vacuum scope and safety checks.
type Options struct {
	OlderThan time.Duration // Keep anything newer than this
	DryRun    bool          // Preview without deleting
	Log       PurgeFunc     // nil skips the audit log
}

// Result reports what was removed, enabling confirmation and logging.
type Result struct {
	Files   []string // Removed (or, in dry-run mode, removable) scratch files
	Entries int64    // Audit log entries purged
}

// Run sweeps the scratch directory and purges the audit log.
func Run(ctx context.Context, w io.Writer, ws Scratch, opts Options) (Result, error) {
	var result Result
	if opts.OlderThan <= 0 {
		opts.OlderThan = DefaultOlderThan
	}
	cutoff := time.Now().Add(-opts.OlderThan)

	stale, err := ws.Stale(cutoff)
	if err != nil {
		return result, err
	}

	p := progress.New("Sweeping", len(stale))
	for _, e := range stale {
		if err := ctx.Err(); err != nil {
			p.Done()
			return result, err
		}
		if opts.DryRun {
			_ = format.Stale(w, []workspace.Entry{e})
		} else if err := workspace.Remove(e.Path); err != nil {
			p.Done()
			return result, err
		}
		result.Files = append(result.Files, e.Path)
		p.Step(e.Path)
	}
	p.Done()

	if opts.Log != nil {
		n, err := opts.Log(cutoff, opts.DryRun)
		if err != nil {
			return result, fmt.Errorf("purging audit log: %w", err)
		}
		result.Entries = n
	}

	verb := "Removed"
	if opts.DryRun {
		verb = "Would remove"
	}
	if len(result.Files) == 0 && result.Entries == 0 {
		fmt.Fprintln(w, "Nothing to vacuum")
	} else {
		fmt.Fprintf(w, "%s %d scratch file(s) and %d log entr(ies)\n", verb, len(result.Files), result.Entries)
	}
	return result, nil
}
