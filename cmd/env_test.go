// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> toolkit -> document lifecycle -> runner -> a real process.
//
// The Java tools are replaced by a shell script configured as tools.java. It
// reads the same arguments saxon and XMLCheck would and behaves like them
// closely enough: the "processor" upper-cases its input and fails on
// stylesheets named *broken*, the "checker" reports ERROR for documents that
// reference old.dtd. Tests that need the script skip on Windows.
//
// HOME points at a temp directory so the global config and the audit log of
// the developer running the tests are never touched.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the xmlkit binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "xmlkit-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "xmlkit"
		if os.PathSeparator == '\\' {
			binaryName = "xmlkit.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// fakeJava mimics both tools. Arguments follow the command lines xmlkit
// builds:
//
//	-jar <jar> -novw -w0 -o <out> <in> <xsl> [k=v...]
//	-cp <jar> <class> <in> [--validate]
const fakeJava = `#!/bin/sh
if [ "$1" = "-jar" ]; then
	out="$6"; in="$7"; xsl="$8"
	case "$xsl" in *broken*) echo "XTSE0010: stylesheet is broken" >&2; exit 2;; esac
	shift 8
	{ tr 'a-z' 'A-Z' < "$in"; for p in "$@"; do echo "$p"; done; } > "$out" || exit 2
	exit 0
fi
if grep -q old.dtd "$4"; then
	echo "ERROR: cannot load external DTD old.dtd"
	exit 1
fi
if [ "$5" = "--validate" ]; then echo "valid"; else echo "well-formed"; fi
`

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newTestEnv creates a temporary project with a local config whose java
// launcher is the fake tool script.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	env := newBareEnv(t)

	script := filepath.Join(env.home, "fakejava")
	require.NoError(t, os.WriteFile(script, []byte(fakeJava), 0755))

	env.run("init")
	env.run("config", "tools.java", script)
	env.run("config", "workspace.scratch_dir", filepath.Join(env.home, "scratch"))

	return env
}

// newBareEnv creates an empty project directory with an isolated HOME.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// path returns p inside the project directory.
func (e *testEnv) path(p string) string {
	return filepath.Join(e.dir, p)
}

// write creates a file in the project directory.
func (e *testEnv) write(p, content string) string {
	e.t.Helper()
	full := e.path(p)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(e.t, os.WriteFile(full, []byte(content), 0644))
	return full
}

// read returns the content of a file in the project directory.
func (e *testEnv) read(p string) string {
	e.t.Helper()
	data, err := os.ReadFile(e.path(p))
	require.NoError(e.t, err)
	return string(data)
}

// run executes xmlkit with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("xmlkit %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes xmlkit and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.runStdinErr("", args...)
}

// runStdinErr executes xmlkit with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "XMLKIT_CONFIG=")
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// exitCode returns the process exit code carried by err, or 0.
func exitCode(err error) int {
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	return 0
}

// Test documents.
const (
	// testArticle references a DTD the fake checker cannot load.
	testArticle = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE article SYSTEM "old.dtd">
<article><title>Saxon</title></article>
`
	// testPlain has no DOCTYPE at all.
	testPlain = `<?xml version="1.0"?>
<note>plain</note>
`
	testNewDoctype = `<!DOCTYPE article SYSTEM "journal.dtd">`
)
