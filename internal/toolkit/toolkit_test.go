package toolkit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/xmlkit/internal/config"
	"github.com/jpl-au/xmlkit/internal/doctype"
	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/toolkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "<?xml version=\"1.0\"?>\n<!DOCTYPE article SYSTEM \"old.dtd\">\n<article/>\n"

// fakeRun stands in for both tools: the checker reports ERROR when the
// document still references old.dtd, and the processor upper-cases input.
func fakeRun(c invoke.Command) error {
	args := c.Raw()
	if c.Stdout != "" {
		data, err := os.ReadFile(args[3])
		if err != nil {
			return err
		}
		rep := "ok\n"
		if strings.Contains(string(data), "old.dtd") {
			rep = "ERROR: cannot load old.dtd\n"
		}
		return os.WriteFile(c.Stdout, []byte(rep), 0644)
	}
	data, err := os.ReadFile(args[6])
	if err != nil {
		return err
	}
	if strings.Contains(args[7], "broken") {
		return errors.New("exit status 2")
	}
	return os.WriteFile(args[5], []byte(strings.ToUpper(string(data))), 0644)
}

func newToolkit(t *testing.T) (*toolkit.Toolkit, *invoke.FakeRunner) {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, cfg.Set("workspace.scratch_dir", filepath.Join(t.TempDir(), "scratch")))

	runner := &invoke.FakeRunner{Fn: fakeRun}
	k, err := toolkit.New(cfg, toolkit.Options{Runner: runner})
	require.NoError(t, err)
	return k, runner
}

func writeDoc(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "article.xml")
	require.NoError(t, os.WriteFile(p, []byte(doc), 0644))
	return p
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		k, err := toolkit.New(nil, toolkit.Options{Runner: &invoke.FakeRunner{}})
		require.NoError(t, err)
		assert.Equal(t, "java", k.Config().Java())
		assert.DirExists(t, k.Workspace().Dir())
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := &config.Config{Runner: config.Runner{Mode: "telnet"}}
		_, err := toolkit.New(cfg, toolkit.Options{})
		assert.ErrorIs(t, err, config.ErrInvalidValue)
	})
}

func TestTransform(t *testing.T) {
	k, runner := newToolkit(t)
	xml := writeDoc(t)
	out := filepath.Join(t.TempDir(), "out", "article.html")

	ok, err := k.Transform(context.Background(), xml, "html.xsl", out, invoke.Params{"lang": "en"})
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(doc), string(data))

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].String(), "lang=en")
}

func TestTransform_Failure(t *testing.T) {
	k, _ := newToolkit(t)
	xml := writeDoc(t)
	out := filepath.Join(t.TempDir(), "article.html")

	ok, err := k.Transform(context.Background(), xml, "broken.xsl", out, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ERROR: transformation error."))
}

func TestTransformContent(t *testing.T) {
	k, _ := newToolkit(t)

	got, err := k.TransformContent(context.Background(), "<a>x</a>", "id.xsl")
	require.NoError(t, err)
	assert.Equal(t, "<A>X</A>", got)

	got, err = k.TransformContent(context.Background(), "<a>x</a>", "broken.xsl")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("doctype kept", func(t *testing.T) {
		k, _ := newToolkit(t)
		xml := writeDoc(t)
		out := filepath.Join(t.TempDir(), "article.rep")

		ok, err := k.Validate(ctx, xml, out, doctype.Keep())
		require.NoError(t, err)
		assert.False(t, ok)

		rep, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(rep), "ERROR: cannot load old.dtd")
		assert.Contains(t, string(rep), "1:<!DOCTYPE", "annotated with numbered source")
	})

	t.Run("doctype replaced then restored", func(t *testing.T) {
		k, runner := newToolkit(t)
		xml := writeDoc(t)
		out := filepath.Join(t.TempDir(), "article.rep")

		ok, err := k.Validate(ctx, xml, out, doctype.Replace(`<!DOCTYPE article SYSTEM "new.dtd">`))
		require.NoError(t, err)
		assert.True(t, ok)

		after, err := os.ReadFile(xml)
		require.NoError(t, err)
		assert.Equal(t, doc, string(after), "original restored byte for byte")

		calls := runner.Calls()
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0].Raw(), "--validate")
	})

	t.Run("doctype removed checks well-formedness", func(t *testing.T) {
		k, runner := newToolkit(t)
		xml := writeDoc(t)
		out := filepath.Join(t.TempDir(), "article.rep")

		ok, err := k.Validate(ctx, xml, out, doctype.Remove())
		require.NoError(t, err)
		assert.True(t, ok)

		calls := runner.Calls()
		require.Len(t, calls, 1)
		assert.NotContains(t, calls[0].Raw(), "--validate")
	})

	t.Run("missing document", func(t *testing.T) {
		k, _ := newToolkit(t)
		_, err := k.Validate(ctx, filepath.Join(t.TempDir(), "none.xml"), "out.rep", doctype.Keep())
		assert.Error(t, err)
	})
}
