// Package workspace manages the scratch directory and temporary files that
// xmlkit stages tool input and output through.
//
// A Workspace wraps a single flat scratch directory shared by every operation
// that uses it. Staged paths are derived from the base name of the requested
// output, so two concurrent operations whose outputs share a base name will
// collide on the same staged file. Nothing here locks against that; callers
// must keep output base names distinct when running in parallel.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// ErrNoScratchDir is returned when New is called without a directory.
var ErrNoScratchDir = errors.New("scratch directory not set")

const tempPattern = "xmlkit-*"

// Workspace owns the scratch directory used for staging.
type Workspace struct {
	dir string
}

// New returns a Workspace rooted at dir, creating the directory (and any
// parents) if it does not exist yet.
func New(dir string) (*Workspace, error) {
	if dir == "" {
		return nil, ErrNoScratchDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the scratch directory.
func (w *Workspace) Dir() string { return w.dir }

// TempDir creates a new, empty, uniquely named directory.
func (w *Workspace) TempDir() (string, error) {
	d, err := os.MkdirTemp("", tempPattern)
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	return d, nil
}

// TempFile creates a new, empty, uniquely named file and returns its path.
// The file is closed and left on disk; the caller removes it.
func (w *Workspace) TempFile() (string, error) {
	f, err := os.CreateTemp("", tempPattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	return name, nil
}

// Stage returns the scratch path used as the intermediate target for output.
func (w *Workspace) Stage(output string) string {
	return filepath.Join(w.dir, filepath.Base(output))
}

// Prepare readies output for a new result: it creates the parent directory
// of output, clears any previous file at both output and its staged path, and
// returns the staged path.
func (w *Workspace) Prepare(output string) (string, error) {
	staged := w.Stage(output)
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	for _, p := range []string{output, staged} {
		if err := Remove(p); err != nil {
			return "", err
		}
	}
	return staged, nil
}

// Remove deletes a file or directory tree. A missing path is not an error.
func Remove(path string) error {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Discard removes path ignoring every error. Only for cleanup paths where a
// leftover file is harmless.
func Discard(path string) {
	_ = os.RemoveAll(path)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Copy copies the regular file src to dst, replacing dst.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// Move renames src to dst, replacing dst. When a rename is not possible
// (different filesystems) it falls back to copy and delete.
func Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := Copy(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

// Stale returns the entries of the scratch directory last modified before
// cutoff, oldest first. These are results a crashed or interrupted run left
// behind.
func (w *Workspace) Stale(cutoff time.Time) ([]Entry, error) {
	des, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading scratch directory: %w", err)
	}
	var out []Entry
	for _, de := range des {
		info, err := de.Info()
		if err != nil {
			continue // removed under us
		}
		if info.ModTime().Before(cutoff) {
			out = append(out, Entry{Path: filepath.Join(w.dir, de.Name()), ModTime: info.ModTime(), Size: info.Size()})
		}
	}
	slices.SortFunc(out, func(a, b Entry) int { return a.ModTime.Compare(b.ModTime) })
	return out, nil
}

// Entry is a file found in the scratch directory.
type Entry struct {
	Path    string
	ModTime time.Time
	Size    int64
}
