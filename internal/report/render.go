// render.go formats reports for terminal display.
//
// Separated from report.go because rendering pulls in glamour and is only used
// by the CLI. Reports are plain text, so they are fenced before rendering to
// keep tool output (line numbers, angle brackets) verbatim.

package report

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render returns report formatted for a terminal. When styled is false, or
// rendering fails, the plain report is returned.
func Render(report string, ok bool, styled bool) string {
	if !styled {
		return report
	}

	status := "**valid**"
	if !ok {
		status = "**failed**"
	}

	var b strings.Builder
	b.WriteString("Result: " + status + "\n\n")
	b.WriteString("```text\n")
	b.WriteString(strings.TrimRight(report, "\n"))
	b.WriteString("\n```\n")

	out, err := glamour.Render(b.String(), "dark")
	if err != nil {
		return report
	}
	return out
}
