// operations.go implements transform and validate on a Document.
//
// Separated from document.go, which owns the lifecycle. Both operations stage
// their result in the workspace scratch directory first and only then move or
// write it to the requested output. Success is decided from the staged file:
// whether it exists and whether its text contains the error marker. The
// tool's exit status is not consulted.

package xmldoc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/report"
	"github.com/jpl-au/xmlkit/internal/workspace"
)

// TransformToFile transforms the document with stylesheet into output.
//
// If the processor leaves no output, output receives a report starting with
// "ERROR: transformation error." followed by the command that was run, and
// the result is false. Either way a file is left at output.
func (d *Document) TransformToFile(ctx context.Context, stylesheet, output string, params invoke.Params) (bool, error) {
	if err := d.ready(d.tr != nil, "transformer"); err != nil {
		return false, err
	}
	defer d.trace("transform")()
	return d.transform(ctx, d.path, stylesheet, output, params)
}

func (d *Document) transform(ctx context.Context, input, stylesheet, output string, params invoke.Params) (bool, error) {
	staged, err := d.ws.Prepare(output)
	if err != nil {
		return false, err
	}

	run := d.tr.Transform(ctx, input, stylesheet, staged, params)
	if run.Err != nil {
		d.log.Debug("transformer reported an error", "error", run.Err, "output", run.Result.Output)
	}
	if err := d.dropInterrupted(run, staged); err != nil {
		return false, err
	}

	ok := true
	if !workspace.Exists(staged) {
		ok = false
		if err := os.WriteFile(staged, []byte(report.TransformFailure(run.Command.String())), 0644); err != nil {
			return false, fmt.Errorf("writing transform report: %w", err)
		}
	}
	if err := workspace.Move(staged, output); err != nil {
		return false, fmt.Errorf("moving transform result: %w", err)
	}
	return ok, nil
}

// TransformToText transforms the current document content with stylesheet
// and returns the result. A failed transform returns an empty string.
func (d *Document) TransformToText(ctx context.Context, stylesheet string) (_ string, err error) {
	if err := d.ready(d.tr != nil, "transformer"); err != nil {
		return "", err
	}
	defer d.trace("transform to text")()

	in, err := d.ws.TempFile()
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, workspace.Remove(in)) }()

	out, err := d.ws.TempFile()
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, workspace.Remove(out)) }()

	if err := os.WriteFile(in, []byte(d.content), 0644); err != nil {
		return "", fmt.Errorf("writing transform input: %w", err)
	}

	ok, err := d.transform(ctx, in, stylesheet, out, nil)
	if err != nil || !ok {
		return "", err
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("reading transform result: %w", err)
	}
	return string(data), nil
}

// Validate checks the document and writes the checker's report to output.
//
// With the DOCTYPE removed only well-formedness is checked; otherwise the
// document is validated against its DTD. A report mentioning "ERROR" gets the
// numbered source appended. When the checker writes no report at all, output
// receives "ERROR: Not valid. Unknown error." and the command that was run.
// The result is true when the final report has no error marker.
func (d *Document) Validate(ctx context.Context, output string) (bool, error) {
	if err := d.ready(d.va != nil, "validator"); err != nil {
		return false, err
	}
	defer d.trace("validate")()

	mode := invoke.ModeValidate
	if d.override.Removes() {
		mode = invoke.ModeWellFormed
	}

	staged, err := d.ws.Prepare(output)
	if err != nil {
		return false, err
	}

	run := d.va.Validate(ctx, d.path, mode, staged)
	if run.Err != nil {
		d.log.Debug("validator reported an error", "error", run.Err, "output", run.Result.Output)
	}
	if err := d.dropInterrupted(run, staged); err != nil {
		return false, err
	}

	var result string
	switch {
	case !workspace.Exists(staged):
		result = report.UnknownInvalid(run.Command.String())
		if err := os.WriteFile(output, []byte(result), 0644); err != nil {
			return false, fmt.Errorf("writing validation report: %w", err)
		}

	default:
		data, err := os.ReadFile(staged)
		if err != nil {
			return false, fmt.Errorf("reading validation report: %w", err)
		}
		result, err = report.Decode(data, d.encoding)
		if err != nil {
			return false, err
		}

		if !report.HasError(result) {
			if err := workspace.Move(staged, output); err != nil {
				return false, fmt.Errorf("moving validation report: %w", err)
			}
			break
		}

		src, err := os.ReadFile(d.path)
		if err != nil {
			return false, fmt.Errorf("reading document for report: %w", err)
		}
		result = report.Annotate(result, string(src))
		if err := os.WriteFile(output, []byte(result), 0644); err != nil {
			return false, fmt.Errorf("writing validation report: %w", err)
		}
		if err := workspace.Remove(staged); err != nil {
			return false, err
		}
	}

	return !report.HasError(result), nil
}

// dropInterrupted removes whatever a killed tool left at staged, so the run
// is judged as one that produced no output.
func (d *Document) dropInterrupted(run invoke.Run, staged string) error {
	if !run.Interrupted() {
		return nil
	}
	d.log.Debug("tool interrupted, discarding partial output", "staged", staged)
	return workspace.Remove(staged)
}

func (d *Document) ready(hasTool bool, name string) error {
	if d.finished {
		return ErrFinished
	}
	if !hasTool {
		return fmt.Errorf("%w: %s", ErrNoTool, name)
	}
	return nil
}
