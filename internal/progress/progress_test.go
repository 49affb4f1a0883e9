package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar(t *testing.T) {
	t.Run("draws count and document", func(t *testing.T) {
		var buf bytes.Buffer
		b := &Bar{w: &buf, label: "Validating", total: 10, draw: true}
		b.Step("docs/a.xml")
		b.Step("docs/b.xml")
		assert.Contains(t, buf.String(), "\rValidating 2/10 b.xml")
		b.Done()
		assert.Equal(t, 2, b.done)
	})

	t.Run("long lines are cut", func(t *testing.T) {
		var buf bytes.Buffer
		b := &Bar{w: &buf, label: "Validating", total: 10, draw: true}
		b.Step("a-very-long-document-name-that-would-wrap-the-terminal-line.xml")
		assert.Len(t, buf.String(), width+1)
	})

	t.Run("small batches are silent", func(t *testing.T) {
		b := New("Validating", 2)
		b.w = new(bytes.Buffer)
		b.Step("a.xml")
		b.Done()
		assert.Empty(t, b.w.(*bytes.Buffer).String())
	})
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := &spinner{w: &buf, label: "Transforming"}
	s.start()
	s.tick()
	s.stop()

	out := buf.String()
	assert.Contains(t, out, frames[0]+" Transforming...")
	assert.Contains(t, out, "\r"+frames[1]+" Transforming...")

	buf.Reset()
	s.tick()
	assert.Empty(t, buf.String(), "stopped spinner does not draw")
}

func TestSpin(t *testing.T) {
	got, err := Spin("Working", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	_, err = spin(&spinner{w: new(bytes.Buffer), label: "Working"}, func() (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
