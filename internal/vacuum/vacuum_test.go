package vacuum_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/xmlkit/internal/vacuum"
	"github.com/jpl-au/xmlkit/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staleWorkspace(t *testing.T) (*workspace.Workspace, string, string) {
	t.Helper()
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	old := filepath.Join(ws.Dir(), "article.rep")
	fresh := filepath.Join(ws.Dir(), "other.rep")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0644))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	return ws, old, fresh
}

func TestRun(t *testing.T) {
	ws, old, fresh := staleWorkspace(t)

	var gotCutoff time.Time
	purge := func(cutoff time.Time, dryRun bool) (int64, error) {
		gotCutoff = cutoff
		assert.False(t, dryRun)
		return 3, nil
	}

	var buf bytes.Buffer
	res, err := vacuum.Run(context.Background(), &buf, ws, vacuum.Options{Log: purge})
	require.NoError(t, err)

	assert.Equal(t, []string{old}, res.Files)
	assert.EqualValues(t, 3, res.Entries)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.WithinDuration(t, time.Now().Add(-vacuum.DefaultOlderThan), gotCutoff, time.Minute)
	assert.Contains(t, buf.String(), "Removed 1 scratch file(s) and 3 log entr(ies)")
}

func TestRun_DryRun(t *testing.T) {
	ws, old, _ := staleWorkspace(t)

	var buf bytes.Buffer
	res, err := vacuum.Run(context.Background(), &buf, ws, vacuum.Options{DryRun: true, OlderThan: time.Hour})
	require.NoError(t, err)

	assert.Equal(t, []string{old}, res.Files)
	assert.FileExists(t, old, "dry run keeps files")
	assert.Contains(t, buf.String(), "Would delete: "+old)
}

func TestRun_Nothing(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = vacuum.Run(context.Background(), &buf, ws, vacuum.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Nothing to vacuum\n", buf.String())
}
