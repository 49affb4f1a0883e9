// Package xmldoc wraps an XML document for transformation and validation by
// the external tools.
//
// A Document moves through a fixed lifecycle: it is opened (and, when a
// DOCTYPE override is given, backed up and rewritten in place), used for any
// number of transform and validate calls, and finished. Finish puts the
// original file back byte for byte. Callers must always call Finish.
//
// Every operation leaves a file at the requested output path, holding either
// the tool's result or an error report. The boolean result says which; the
// file says why.
package xmldoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/workspace"
)

var (
	// ErrInvalidInput is returned when Open is given neither content nor a path.
	ErrInvalidInput = errors.New("empty document input")
	// ErrFinished is returned for operations on a finished document.
	ErrFinished = errors.New("document already finished")
	// ErrNoWorkspace is returned when Options has no Workspace.
	ErrNoWorkspace = errors.New("no workspace configured")
	// ErrNoTool is returned when the required invoker is not configured.
	ErrNoTool = errors.New("tool not configured")
)

// Transformer runs the XSLT processor once, writing to output.
type Transformer interface {
	Transform(ctx context.Context, input, stylesheet, output string, params invoke.Params) invoke.Run
}

// Validator runs the DTD/schema checker once, writing its report to output.
type Validator interface {
	Validate(ctx context.Context, input string, mode invoke.Mode, output string) invoke.Run
}

// Options configures a Document.
type Options struct {
	Doctype     doctype.Override
	Workspace   *workspace.Workspace
	Transformer Transformer
	Validator   Validator
	Encoding    string       // report text encoding, empty for UTF-8
	Logger      *slog.Logger // nil discards
}

// Document is an XML document bound to a backing file.
type Document struct {
	content  string
	path     string // backing file the tools read
	inline   bool   // path is a temp file holding inline content
	override doctype.Override

	backupDir string
	backup    string

	ws       *workspace.Workspace
	tr       Transformer
	va       Validator
	encoding string
	log      *slog.Logger
	finished bool
}

// Open loads a document. Input containing "<" is treated as the document
// text itself; anything else is a path to read.
//
// When opts.Doctype is set, the backing file is copied to a fresh temporary
// directory and then rewritten with the override before Open returns.
func Open(input string, opts Options) (*Document, error) {
	if input == "" {
		return nil, ErrInvalidInput
	}
	if opts.Workspace == nil {
		return nil, ErrNoWorkspace
	}

	d := &Document{
		override: opts.Doctype,
		ws:       opts.Workspace,
		tr:       opts.Transformer,
		va:       opts.Validator,
		encoding: opts.Encoding,
		log:      opts.Logger,
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	defer d.trace("open")()

	if strings.Contains(input, "<") {
		if err := d.materialise(input); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		d.content = string(data)
		d.path = input
	}

	if d.override.IsSet() {
		if err := d.backupFile(); err != nil {
			d.cleanupInline()
			return nil, err
		}
		if err := d.rewrite(); err != nil {
			return nil, errors.Join(err, d.Finish())
		}
	}
	return d, nil
}

// materialise writes inline content to a temp file so the tools have a file
// to read.
func (d *Document) materialise(content string) error {
	p, err := d.ws.TempFile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		workspace.Discard(p)
		return fmt.Errorf("writing inline document: %w", err)
	}
	d.content = content
	d.path = p
	d.inline = true
	return nil
}

func (d *Document) backupFile() error {
	defer d.trace("backup")()

	dir, err := d.ws.TempDir()
	if err != nil {
		return err
	}
	backup := filepath.Join(dir, filepath.Base(d.path))
	if err := workspace.Copy(d.path, backup); err != nil {
		workspace.Discard(dir)
		return fmt.Errorf("backing up document: %w", err)
	}
	d.backupDir = dir
	d.backup = backup
	return nil
}

// rewrite applies the override and persists the result to the backing file.
func (d *Document) rewrite() error {
	defer d.trace("rewrite doctype")()

	d.content = doctype.Rewrite(d.content, d.override)
	if err := os.WriteFile(d.path, []byte(d.content), 0644); err != nil {
		return fmt.Errorf("writing rewritten document: %w", err)
	}
	return nil
}

// Content returns the document text, after any DOCTYPE rewrite.
func (d *Document) Content() string { return d.content }

// Path returns the backing file. For inline documents this is a temp file.
func (d *Document) Path() string { return d.path }

// Inline reports whether the document was opened from content, not a path.
func (d *Document) Inline() bool { return d.inline }

// Doctype returns the override in effect.
func (d *Document) Doctype() doctype.Override { return d.override }

// Finish restores the original file when an override was applied and
// removes the backup. Removing the backup directory is best-effort. If the
// restore fails the backup is kept and its path is part of the error.
// Calling Finish again does nothing.
func (d *Document) Finish() error {
	if d.finished {
		return nil
	}
	d.finished = true
	defer d.trace("finish")()

	var errs []error
	if d.backup != "" {
		if err := workspace.Move(d.backup, d.path); err != nil {
			// The backup is the only copy of the original; leave it.
			errs = append(errs, fmt.Errorf("restoring document (original kept at %s): %w", d.backup, err))
		} else {
			workspace.Discard(d.backupDir)
		}
	}
	if err := d.cleanupInline(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (d *Document) cleanupInline() error {
	if !d.inline {
		return nil
	}
	return workspace.Remove(d.path)
}

// trace logs the start of op and returns a func logging its end.
func (d *Document) trace(op string) func() {
	d.log.Debug(op+" begin", "document", d.path)
	return func() { d.log.Debug(op+" end", "document", d.path) }
}
