// Package progress draws batch and spinner indicators on stderr while the
// external tools run. Nothing is drawn unless stderr is a terminal, so
// scripted runs and piped JSON stay clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	// tickInterval is how often Spin advances the spinner.
	tickInterval = 100 * time.Millisecond

	// minItems is the smallest batch that gets a bar. A couple of documents
	// finish before a bar would be readable.
	minItems = 5

	// width of the line Done blanks out.
	width = 60
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// stderrTTY reports whether stderr is an interactive terminal.
func stderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Bar counts documents through a batch run.
type Bar struct {
	w     io.Writer
	label string
	done  int
	total int
	draw  bool
}

// New returns a bar for total items. Batches smaller than minItems, and
// runs without a terminal, draw nothing.
func New(label string, total int) *Bar {
	return &Bar{
		w:     os.Stderr,
		label: label,
		total: total,
		draw:  total >= minItems && stderrTTY(),
	}
}

// Step marks one item finished and redraws the bar with item's base name.
func (b *Bar) Step(item string) {
	b.done++
	if !b.draw {
		return
	}
	line := fmt.Sprintf("%s %d/%d %s", b.label, b.done, b.total, filepath.Base(item))
	if len(line) > width {
		line = line[:width]
	}
	fmt.Fprintf(b.w, "\r%-*s", width, line)
}

// Done clears the bar so the summary starts on a clean line.
func (b *Bar) Done() {
	if b.draw {
		blank(b.w)
	}
}

func blank(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width))
}

// spinner animates while a single tool run is in flight; java reports no
// progress of its own.
type spinner struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	frame int
	live  bool
}

func (s *spinner) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

func (s *spinner) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

func (s *spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return
	}
	s.live = false
	blank(s.w)
}

// Spin runs fn, showing a spinner labelled label on a terminal until it
// returns.
func Spin[T any](label string, fn func() (T, error)) (T, error) {
	if !stderrTTY() {
		return fn()
	}
	return spin(&spinner{w: os.Stderr, label: label}, fn)
}

func spin[T any](s *spinner, fn func() (T, error)) (T, error) {
	s.start()
	defer s.stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				s.tick()
			}
		}
	}()
	return fn()
}
