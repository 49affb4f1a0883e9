// Package toolkit wires configuration into the pieces a document needs: the
// scratch workspace, the process runner and the two tool invokers. The CLI
// and the MCP server both go through a Toolkit so a run behaves the same
// whichever surface started it.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/workspace"
	"github.com/jpl-au/xmlkit/internal/xmldoc"
)

// Service is the document-processing surface the CLI and MCP server use.
type Service interface {
	Open(input string, override doctype.Override) (*xmldoc.Document, error)
	Transform(ctx context.Context, xml, stylesheet, output string, params invoke.Params) (bool, error)
	TransformContent(ctx context.Context, content, stylesheet string) (string, error)
	Validate(ctx context.Context, xml, output string, override doctype.Override) (bool, error)
	Config() *config.Config
}

var _ Service = (*Toolkit)(nil)

// Options tunes a Toolkit beyond what the config file holds.
type Options struct {
	// Runner replaces the configured runner. Tests use invoke.FakeRunner.
	Runner invoke.Runner
	// Logger receives debug traces. nil discards.
	Logger *slog.Logger
}

// Toolkit opens documents bound to a shared workspace and tool invokers.
type Toolkit struct {
	cfg *config.Config
	ws  *workspace.Workspace
	tr  *invoke.Transformer
	va  *invoke.Validator
	log *slog.Logger
}

// New builds a Toolkit from cfg.
func New(cfg *config.Config, opts Options) (*Toolkit, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ws, err := workspace.New(cfg.ScratchDir())
	if err != nil {
		return nil, fmt.Errorf("preparing workspace: %w", err)
	}

	runner := opts.Runner
	if runner == nil {
		runner, err = invoke.NewRunner(cfg.RunnerMode())
		if err != nil {
			return nil, err
		}
	}

	iopts := invoke.Options{Runner: runner, Timeout: cfg.Timeout(), Logger: logger}
	tools := cfg.InvokeTools()
	tr, err := invoke.NewTransformer(tools, iopts)
	if err != nil {
		return nil, fmt.Errorf("configuring transformer: %w", err)
	}
	va, err := invoke.NewValidator(tools, iopts)
	if err != nil {
		return nil, fmt.Errorf("configuring validator: %w", err)
	}

	return &Toolkit{cfg: cfg, ws: ws, tr: tr, va: va, log: logger}, nil
}

// Config returns the configuration the toolkit was built from.
func (k *Toolkit) Config() *config.Config { return k.cfg }

// Workspace returns the shared scratch workspace.
func (k *Toolkit) Workspace() *workspace.Workspace { return k.ws }

// Open opens a document with both invokers attached. The caller must call
// Finish on the returned document.
func (k *Toolkit) Open(input string, override doctype.Override) (*xmldoc.Document, error) {
	return xmldoc.Open(input, xmldoc.Options{
		Doctype:     override,
		Workspace:   k.ws,
		Transformer: k.tr,
		Validator:   k.va,
		Encoding:    k.cfg.Encoding(),
		Logger:      k.log,
	})
}

// Transform opens xml, transforms it into output and finishes it.
func (k *Toolkit) Transform(ctx context.Context, xml, stylesheet, output string, params invoke.Params) (_ bool, err error) {
	d, err := k.Open(xml, doctype.Keep())
	if err != nil {
		return false, err
	}
	defer func() { err = errors.Join(err, d.Finish()) }()

	return d.TransformToFile(ctx, stylesheet, output, params)
}

// TransformContent transforms XML text with stylesheet and returns the
// processor's output, or "" if it produced none.
func (k *Toolkit) TransformContent(ctx context.Context, content, stylesheet string) (_ string, err error) {
	d, err := k.Open(content, doctype.Keep())
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, d.Finish()) }()

	return d.TransformToText(ctx, stylesheet)
}

// Validate opens xml with override applied, validates it into output and
// finishes it, which puts the original file back.
func (k *Toolkit) Validate(ctx context.Context, xml, output string, override doctype.Override) (_ bool, err error) {
	d, err := k.Open(xml, override)
	if err != nil {
		return false, err
	}
	defer func() { err = errors.Join(err, d.Finish()) }()

	return d.Validate(ctx, output)
}
