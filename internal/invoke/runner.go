// runner.go implements the process-execution boundary.
//
// Separated from the invokers so the way a process is started can change
// without touching how commands are built. ExecRunner starts the tool
// directly; ShellRunner hands the rendered command line to the system shell,
// which is how the tools were historically driven and what the embedded
// command text in failure reports reproduces.

package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// Runner executes a command to completion.
type Runner interface {
	Run(ctx context.Context, c Command) (Result, error)
}

// Result is what a Runner observed. Nothing in xmlkit uses it to decide
// success; it is kept for logging.
type Result struct {
	Output   string // combined output (stderr only when Stdout is redirected)
	ExitCode int
	Duration time.Duration
}

// waitDelay bounds how long Wait lingers on output pipes after a cancelled
// tool is killed. A JVM can leave children holding stderr open.
const waitDelay = time.Second

// Runner modes accepted by NewRunner.
const (
	ModeExec  = "exec"
	ModeShell = "shell"
)

// ErrUnknownRunner is returned by NewRunner for an unsupported mode.
var ErrUnknownRunner = errors.New("unknown runner mode")

// NewRunner returns the runner for mode ("exec" or "shell"; empty means exec).
func NewRunner(mode string) (Runner, error) {
	switch mode {
	case "", ModeExec:
		return &ExecRunner{}, nil
	case ModeShell:
		return &ShellRunner{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRunner, mode)
	}
}

// ExecRunner starts the tool directly, without a shell.
type ExecRunner struct{}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, c.Tool, c.Raw()...)
	cmd.WaitDelay = waitDelay

	var buf bytes.Buffer
	cmd.Stderr = &buf
	if c.Stdout == "" {
		cmd.Stdout = &buf
		err := cmd.Run()
		return result(cmd, &buf, start), err
	}

	f, err := os.Create(c.Stdout)
	if err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", c.Stdout, err)
	}
	cmd.Stdout = f

	if err := cmd.Start(); err != nil {
		// The tool never ran, so there is no report to leave behind.
		f.Close()
		os.Remove(c.Stdout)
		return Result{Duration: time.Since(start)}, err
	}
	err = cmd.Wait()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	discardInterrupted(ctx, c)
	return result(cmd, &buf, start), err
}

// ShellRunner runs the rendered command line through sh -c (cmd /C on
// Windows).
type ShellRunner struct{}

var _ Runner = (*ShellRunner)(nil)

func (r *ShellRunner) Run(ctx context.Context, c Command) (Result, error) {
	start := time.Now()
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", c.String())
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", c.String())
	}
	cmd.WaitDelay = waitDelay
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	discardInterrupted(ctx, c)
	return result(cmd, &buf, start), err
}

// discardInterrupted removes the redirected report of a tool killed by ctx.
// The file was opened before the tool ran, so whatever it holds is not a
// verdict.
func discardInterrupted(ctx context.Context, c Command) {
	if ctx.Err() != nil && c.Stdout != "" {
		os.Remove(c.Stdout)
	}
}

func result(cmd *exec.Cmd, buf *bytes.Buffer, start time.Time) Result {
	r := Result{Output: buf.String(), Duration: time.Since(start), ExitCode: -1}
	if cmd.ProcessState != nil {
		r.ExitCode = cmd.ProcessState.ExitCode()
	}
	return r
}

// FakeRunner records commands instead of starting processes. Fn, when set,
// stands in for the tool (typically by writing the expected output file).
type FakeRunner struct {
	Fn func(c Command) error

	mu    sync.Mutex
	calls []Command
}

var _ Runner = (*FakeRunner)(nil)

func (f *FakeRunner) Run(_ context.Context, c Command) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.Fn == nil {
		return Result{}, nil
	}
	if err := f.Fn(c); err != nil {
		return Result{ExitCode: 1, Output: err.Error()}, err
	}
	return Result{}, nil
}

// Calls returns the commands run so far.
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.calls))
	copy(out, f.calls)
	return out
}
