// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// running tools while this package handles presentation concerns like
// column alignment and human-readable sizes.
package format

import (
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/xmlkit/internal/log"
	"github.com/jpl-au/xmlkit/internal/workspace"
)

// Size formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func Size(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Runs prints audit log entries in long format.
//
// Column order is TIME, STATUS, SOURCE, then the document. Fixed-width
// columns come first; SOURCE is padded to the longest source so the paths
// line up.
func Runs(w io.Writer, entries []log.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	maxSource := 6 // minimum "SOURCE"
	for _, e := range entries {
		if len(e.Source) > maxSource {
			maxSource = len(e.Source)
		}
	}

	fmt.Fprintf(w, "%-19s  %-6s  %-*s  %s\n", "TIME", "STATUS", maxSource, "SOURCE", "DOCUMENT")

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAIL"
		}
		doc := e.Path
		if doc == "" {
			doc = "-"
		}
		if e.Output != "" {
			doc += " -> " + e.Output
		}
		if e.Error != "" {
			doc += "  (" + e.Error + ")"
		}
		started := time.Unix(e.Start, 0).Format("2006-01-02 15:04:05")
		fmt.Fprintf(w, "%s  %-6s  %-*s  %s\n", started, status, maxSource, e.Source, doc)
	}
	return nil
}

// Stale prints one line per scratch entry with its age and size.
func Stale(w io.Writer, entries []workspace.Entry) error {
	for _, e := range entries {
		fmt.Fprintf(w, "Would delete: %s (modified %s, %s)\n",
			e.Path, e.ModTime.Format("2006-01-02 15:04"), Size(e.Size))
	}
	return nil
}
