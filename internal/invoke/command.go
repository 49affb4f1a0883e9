// Package invoke builds and runs the external XML tool commands.
//
// Commands are kept structured (tool plus argument list) and only turned into
// a single command-line string at the process boundary: by ShellRunner, and
// for the text embedded in failure reports. ExecRunner never builds a string
// at all.
//
// Success is never decided here. Invokers run a command exactly once and
// ignore its exit status; callers look for the expected output file and scan
// its text instead.
package invoke

import (
	"strings"
)

// Arg is a single command argument.
//
// Key is set for name=value stylesheet parameters. Quote marks arguments that
// are double-quoted when the command is rendered as a string (paths).
type Arg struct {
	Key   string
	Value string
	Quote bool
}

// Flag returns a bare argument.
func Flag(v string) Arg { return Arg{Value: v} }

// Path returns an argument rendered in double quotes.
func Path(v string) Arg { return Arg{Value: v, Quote: true} }

// Param returns a name=value argument.
func Param(k, v string) Arg { return Arg{Key: k, Value: v} }

// Raw returns the argument as passed to the process, without shell quoting.
func (a Arg) Raw() string {
	if a.Key != "" {
		return a.Key + "=" + a.Value
	}
	return a.Value
}

// String renders the argument for a command line.
func (a Arg) String() string {
	switch {
	case a.Key != "":
		if strings.Contains(a.Value, " ") {
			return a.Key + `="` + a.Value + `"`
		}
		return a.Key + "=" + a.Value
	case a.Quote:
		return `"` + a.Value + `"`
	default:
		return a.Value
	}
}

// Command is a structured tool invocation.
type Command struct {
	Tool string
	Args []Arg

	// Stdout, when set, receives the process's standard output.
	Stdout string
}

// Raw returns the arguments as passed to the process. Empty bare arguments
// are dropped.
func (c Command) Raw() []string {
	out := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		if a.Key == "" && !a.Quote && a.Value == "" {
			continue
		}
		out = append(out, a.Raw())
	}
	return out
}

// String renders the command as a single shell command line.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+3)
	parts = append(parts, c.Tool)
	for _, a := range c.Args {
		if a.Key == "" && !a.Quote && a.Value == "" {
			continue
		}
		parts = append(parts, a.String())
	}
	if c.Stdout != "" {
		parts = append(parts, ">", `"`+c.Stdout+`"`)
	}
	return strings.Join(parts, " ")
}
