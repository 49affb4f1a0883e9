// Package report inspects and builds the plain-text reports produced by the
// external XML tools.
//
// The tools signal failure only through their text: a report containing
// "ERROR" in any case is a failure, anything else is a success. Exit codes
// play no part.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Marker is the text that flags a failed run.
const Marker = "ERROR"

// DefaultEncoding is used when no report encoding is configured.
const DefaultEncoding = "utf-8"

// HasError reports whether text contains Marker, ignoring case.
func HasError(text string) bool {
	return strings.Contains(strings.ToUpper(text), Marker)
}

// TransformFailure is the report written when a transform produced no output.
func TransformFailure(cmd string) string {
	return "ERROR: transformation error.\n" + cmd
}

// UnknownInvalid is the report written when the validator produced no report.
func UnknownInvalid(cmd string) string {
	return "ERROR: Not valid. Unknown error.\n" + cmd
}

// NumberLines returns source with each line prefixed by "N:". Lines keep
// their terminators.
//
// The first line is left out and numbering starts at the second line, which
// gets "1:". Tool line numbers therefore line up one off from this dump;
// existing reports depend on that layout.
func NumberLines(source string) string {
	var b strings.Builder
	for n, line := range strings.SplitAfter(source, "\n") {
		if n == 0 || line == "" {
			continue
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteByte(':')
		b.WriteString(line)
	}
	return b.String()
}

// Annotate appends the numbered source to a failed report.
func Annotate(report, source string) string {
	return report + "\n" + NumberLines(source)
}

// Decode converts raw report bytes to text using the named encoding
// (any WHATWG label such as "utf-8", "latin1" or "windows-1252").
func Decode(data []byte, name string) (string, error) {
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding report as %s: %w", name, err)
	}
	return string(out), nil
}

// ValidEncoding reports whether name is a known encoding label.
func ValidEncoding(name string) bool {
	_, err := lookup(name)
	return err == nil
}

func lookup(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, DefaultEncoding) || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown report encoding %q: %w", name, err)
	}
	return enc, nil
}
