package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the duration of t.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = origDBPath
	})
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		// Verify database file exists
		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetProject("/test/project")

		Log(Entry{
			Source:  "xml:validate",
			Action:  "validate",
			Path:    "article.xml",
			Output:  "article.rep",
			Success: true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, path, output string
		var success int
		err = db.QueryRow("SELECT source, action, path, output, success FROM log WHERE id = 1").
			Scan(&source, &action, &path, &output, &success)
		require.NoError(t, err)
		assert.Equal(t, "xml:validate", source)
		assert.Equal(t, "validate", action)
		assert.Equal(t, "article.xml", path)
		assert.Equal(t, "article.rep", output)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		Close()

		err := Open()
		require.NoError(t, err)
		defer Close()

		Log(Entry{
			Source:  "xml:transform",
			Action:  "transform",
			Path:    "missing.xml",
			Success: false,
			Error:   "document not found",
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "document not found", errMsg)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{Source: "test:cmd", Action: "test", Success: true})
		entries, err := Recent(10)
		require.NoError(t, err)
		assert.Nil(t, entries)
	})

	t.Run("open is idempotent", func(t *testing.T) {
		require.NoError(t, Open())
		require.NoError(t, Open())
		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project")
	h2 := hash("/home/user/project")
	h3 := hash("/home/user/other")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expected := filepath.Join(home, ".xmlkit", "log", "xmlkit-log.db")

	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilder(t *testing.T) {
	useTempDB(t)

	t.Run("fluent API success", func(t *testing.T) {
		Close()
		require.NoError(t, Open())
		defer Close()

		Event("xml:transform", "transform").
			Path("in.xml").
			Output("out.html").
			Detail("stylesheet", "html.xsl").
			Valid(true).
			Write(nil)

		entries, err := Recent(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		e := entries[0]
		assert.Equal(t, "xml:transform", e.Source)
		assert.Equal(t, "transform", e.Action)
		assert.Equal(t, "in.xml", e.Path)
		assert.Equal(t, "out.html", e.Output)
		assert.True(t, e.Success)
		assert.Empty(t, e.Error)
		assert.Equal(t, "html.xsl", e.Detail["stylesheet"])
		assert.GreaterOrEqual(t, e.End, e.Start)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		Close()
		require.NoError(t, Open())
		defer Close()

		Event("mcp:xml_validate", "validate").
			Path("missing.xml").
			Write(errors.New("no such file"))

		entries, err := Recent(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Success)
		assert.Equal(t, "no such file", entries[0].Error)
	})

	t.Run("invalid verdict without error", func(t *testing.T) {
		Close()
		require.NoError(t, Open())
		defer Close()

		Event("xml:validate", "validate").
			Path("bad.xml").
			Valid(false).
			Write(nil)

		entries, err := Recent(1)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Success)
		assert.Equal(t, "tool reported failure", entries[0].Error)
	})
}

func TestRecent(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	for _, p := range []string{"a.xml", "b.xml", "c.xml"} {
		Event("xml:validate", "validate").Path(p).Write(nil)
	}

	entries, err := Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c.xml", entries[0].Path, "newest first")
	assert.Equal(t, "b.xml", entries[1].Path)
}

func TestPurge(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	now := time.Now().Unix()
	Log(Entry{Source: "xml:validate", Action: "validate", Path: "old.xml", Start: now - 7200, End: now - 7200})
	Log(Entry{Source: "xml:validate", Action: "validate", Path: "new.xml", Start: now, End: now})

	cutoff := time.Now().Add(-time.Hour)

	n, err := Purge(cutoff, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	entries, err := Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "dry run deletes nothing")

	n, err = Purge(cutoff, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	entries, err = Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new.xml", entries[0].Path)
}
