package workspace_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/xmlkit/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesScratchDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "scratch")

	ws, err := workspace.New(dir)
	require.NoError(t, err)

	assert.DirExists(t, dir)
	assert.Equal(t, dir, ws.Dir())
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := workspace.New("")
	assert.ErrorIs(t, err, workspace.ErrNoScratchDir)
}

func TestTempFileAndDir(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	f1, err := ws.TempFile()
	require.NoError(t, err)
	defer os.Remove(f1)
	f2, err := ws.TempFile()
	require.NoError(t, err)
	defer os.Remove(f2)

	assert.NotEqual(t, f1, f2)
	info, err := os.Stat(f1)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	d, err := ws.TempDir()
	require.NoError(t, err)
	defer os.RemoveAll(d)

	entries, err := os.ReadDir(d)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrepare(t *testing.T) {
	scratch := t.TempDir()
	ws, err := workspace.New(scratch)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "reports", "nested", "result.txt")
	staged := ws.Stage(out)
	assert.Equal(t, filepath.Join(scratch, "result.txt"), staged)

	// Leftovers from a previous run at both locations
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0755))
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(staged, []byte("old"), 0644))

	got, err := ws.Prepare(out)
	require.NoError(t, err)
	assert.Equal(t, staged, got)
	assert.NoFileExists(t, out)
	assert.NoFileExists(t, staged)
	assert.DirExists(t, filepath.Dir(out))
}

func TestRemove(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		assert.NoError(t, workspace.Remove(filepath.Join(t.TempDir(), "nope")))
	})

	t.Run("directory tree", func(t *testing.T) {
		d := filepath.Join(t.TempDir(), "tree")
		require.NoError(t, os.MkdirAll(filepath.Join(d, "x", "y"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(d, "x", "f"), []byte("f"), 0644))

		require.NoError(t, workspace.Remove(d))
		assert.NoDirExists(t, d)
	})
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xml")
	dst := filepath.Join(dir, "dst.xml")
	require.NoError(t, os.WriteFile(src, []byte("<a/>"), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("stale"), 0644))

	require.NoError(t, workspace.Move(src, dst))

	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<a/>", string(data))
}

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xml")
	dst := filepath.Join(dir, "copy.xml")
	require.NoError(t, os.WriteFile(src, []byte("<a/>\r\n"), 0644))

	require.NoError(t, workspace.Copy(src, dst))

	assert.FileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<a/>\r\n", string(data))
}

func TestStale(t *testing.T) {
	ws, err := workspace.New(t.TempDir())
	require.NoError(t, err)

	old := filepath.Join(ws.Dir(), "old.rep")
	older := filepath.Join(ws.Dir(), "older.html")
	fresh := filepath.Join(ws.Dir(), "fresh.rep")
	for _, p := range []string{old, older, fresh} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	now := time.Now()
	require.NoError(t, os.Chtimes(old, now, now.Add(-48*time.Hour)))
	require.NoError(t, os.Chtimes(older, now, now.Add(-72*time.Hour)))

	stale, err := ws.Stale(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, older, stale[0].Path, "oldest first")
	assert.Equal(t, old, stale[1].Path)
	assert.EqualValues(t, 1, stale[0].Size)
}
