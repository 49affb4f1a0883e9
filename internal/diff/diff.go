// Package diff shows what a DOCTYPE rewrite changes in a document, line by
// line, so `xmlkit doctype --diff` and the xml_doctype tool can preview a
// rewrite before anything is written.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines of unchanged text are kept on each side of a change. Longer
// unchanged runs are folded to a "..." line.
const contextLines = 3

const (
	red   = "\033[31m"
	green = "\033[32m"
	reset = "\033[0m"
)

// Result is a computed diff.
type Result struct {
	Old  string // label of the original
	New  string // label of the rewritten side
	Diff string // "- ", "+ " and "  " prefixed lines
}

// Compute diffs oldContent against newContent line by line.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(oldContent, newContent)
	hunks := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var sb strings.Builder
	for _, h := range hunks {
		lines := splitLines(h.Text)
		switch h.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "- ", lines)
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+ ", lines)
		default:
			writeLines(&sb, "  ", fold(lines))
		}
	}
	return Result{Old: oldLabel, New: newLabel, Diff: sb.String()}
}

// splitLines splits text into lines without the trailing empty element a
// final newline would produce.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// fold keeps contextLines at each end of an unchanged run.
func fold(lines []string) []string {
	if len(lines) <= 2*contextLines {
		return lines
	}
	out := make([]string, 0, 2*contextLines+1)
	out = append(out, lines[:contextLines]...)
	out = append(out, "...")
	return append(out, lines[len(lines)-contextLines:]...)
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

// Changed reports whether any line was added or removed.
func (r Result) Changed() bool {
	for _, l := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(l, "- ") || strings.HasPrefix(l, "+ ") {
			return true
		}
	}
	return false
}

// Format returns the diff under a ---/+++ header, with removed lines in red
// and added lines in green when colour is set.
func (r Result) Format(colour bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", r.Old, r.New)
	if !colour {
		sb.WriteString(r.Diff)
		return sb.String()
	}
	for _, l := range splitLines(r.Diff) {
		switch {
		case strings.HasPrefix(l, "- "):
			sb.WriteString(red + l + reset)
		case strings.HasPrefix(l, "+ "):
			sb.WriteString(green + l + reset)
		default:
			sb.WriteString(l)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write writes Format(colour) to w.
func (r Result) Write(w io.Writer, colour bool) error {
	_, err := io.WriteString(w, r.Format(colour))
	return err
}
