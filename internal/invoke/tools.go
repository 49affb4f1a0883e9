// tools.go builds the two tool commands and runs them.
//
// Separated from command.go because this is where the fixed command
// templates live:
//
//	transform: java -jar "<saxon>" -novw -w0 -o "<output>" "<input>" "<xsl>" k=v ...
//	validate:  java -cp "<xmlcheck>" <class> "<input>" [--validate] > "<output>"

package invoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/shlex"
)

// ErrNoJava is returned when the configured Java command is empty.
var ErrNoJava = errors.New("java command not set")

// Tools locates the external tools.
type Tools struct {
	Java          string // java launcher, may carry JVM flags ("java -Xmx1g")
	TransformJar  string // XSLT processor jar
	ValidateJar   string // DTD/schema checker jar
	ValidateClass string // checker entry point
}

// SplitJava splits the Java command into the executable and its leading
// flags using shell word rules.
func SplitJava(java string) (string, []string, error) {
	words, err := shlex.Split(java)
	if err != nil {
		return "", nil, fmt.Errorf("parsing java command %q: %w", java, err)
	}
	if len(words) == 0 {
		return "", nil, ErrNoJava
	}
	return words[0], words[1:], nil
}

func (t Tools) java() (string, []Arg, error) {
	exe, flags, err := SplitJava(t.Java)
	if err != nil {
		return "", nil, err
	}
	args := make([]Arg, 0, len(flags))
	for _, f := range flags {
		args = append(args, Flag(f))
	}
	return exe, args, nil
}

// Run records one tool invocation. Err is whatever the runner reported
// (start failure, non-zero exit, timeout); it is informational only.
type Run struct {
	Command Command
	Result  Result
	Err     error
}

// Interrupted reports whether the run was cut short by cancellation or the
// timeout. Anything the tool wrote is then incomplete.
func (r Run) Interrupted() bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}

// invoker holds what both tools share.
type invoker struct {
	tools   Tools
	runner  Runner
	timeout time.Duration
	log     *slog.Logger
}

func (i *invoker) run(ctx context.Context, c Command) Run {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	i.log.Debug("running tool", "command", c.String())
	res, err := i.runner.Run(ctx, c)
	if ctx.Err() != nil {
		err = errors.Join(err, ctx.Err())
	}
	i.log.Debug("tool finished", "exit_code", res.ExitCode, "duration", res.Duration, "error", err)
	return Run{Command: c, Result: res, Err: err}
}

// Options configures an invoker.
type Options struct {
	Runner  Runner        // nil means ExecRunner
	Timeout time.Duration // 0 means wait indefinitely
	Logger  *slog.Logger  // nil discards
}

func newInvoker(t Tools, opts Options) invoker {
	i := invoker{tools: t, runner: opts.Runner, timeout: opts.Timeout, log: opts.Logger}
	if i.runner == nil {
		i.runner = &ExecRunner{}
	}
	if i.log == nil {
		i.log = slog.New(slog.DiscardHandler)
	}
	return i
}

// Transformer runs the XSLT processor.
type Transformer struct {
	invoker
}

// NewTransformer returns a Transformer for t.
func NewTransformer(t Tools, opts Options) (*Transformer, error) {
	if _, _, err := t.java(); err != nil {
		return nil, err
	}
	return &Transformer{invoker: newInvoker(t, opts)}, nil
}

// Command builds the transform command writing to output.
func (t *Transformer) Command(input, stylesheet, output string, params Params) Command {
	exe, args, _ := t.tools.java()
	args = append(args,
		Flag("-jar"), Path(t.tools.TransformJar),
		Flag("-novw"), Flag("-w0"),
		Flag("-o"), Path(output),
		Path(input), Path(stylesheet),
	)
	args = append(args, params.Args()...)
	return Command{Tool: exe, Args: args}
}

// Transform runs the processor once. The caller checks whether output was
// written.
func (t *Transformer) Transform(ctx context.Context, input, stylesheet, output string, params Params) Run {
	return t.run(ctx, t.Command(input, stylesheet, output, params))
}

// Mode selects what the checker verifies.
type Mode int

const (
	// ModeValidate checks the document against its DTD.
	ModeValidate Mode = iota
	// ModeWellFormed only checks well-formedness.
	ModeWellFormed
)

func (m Mode) flag() string {
	if m == ModeValidate {
		return "--validate"
	}
	return ""
}

func (m Mode) String() string {
	if m == ModeValidate {
		return "validate"
	}
	return "well-formed"
}

// Validator runs the DTD/schema checker.
type Validator struct {
	invoker
}

// NewValidator returns a Validator for t.
func NewValidator(t Tools, opts Options) (*Validator, error) {
	if _, _, err := t.java(); err != nil {
		return nil, err
	}
	return &Validator{invoker: newInvoker(t, opts)}, nil
}

// Command builds the validate command with its report redirected to output.
func (v *Validator) Command(input string, mode Mode, output string) Command {
	exe, args, _ := v.tools.java()
	args = append(args,
		Flag("-cp"), Path(v.tools.ValidateJar),
		Flag(v.tools.ValidateClass),
		Path(input),
		Flag(mode.flag()),
	)
	return Command{Tool: exe, Args: args, Stdout: output}
}

// Validate runs the checker once. The caller checks whether the report was
// written and what it says.
func (v *Validator) Validate(ctx context.Context, input string, mode Mode, output string) Run {
	return v.run(ctx, v.Command(input, mode, output))
}
