package report_test

import (
	"testing"

	"github.com/jpl-au/xmlkit/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasError(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"document is valid", false},
		{"ERROR: element x not allowed", true},
		{"Fatal error at line 3", true},
		{"line 1: eRrOr", true},
		{"errors: 0", true}, // substring match, no word boundaries
		{"err", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, report.HasError(tc.text), "HasError(%q)", tc.text)
	}
}

func TestFailureReports(t *testing.T) {
	cmd := `java -jar "saxon9.jar" -novw -w0 -o "out.html" "in.xml" "x.xsl" `

	tf := report.TransformFailure(cmd)
	assert.Equal(t, "ERROR: transformation error.\n"+cmd, tf)
	assert.True(t, report.HasError(tf))

	ui := report.UnknownInvalid(cmd)
	assert.Equal(t, "ERROR: Not valid. Unknown error.\n"+cmd, ui)
	assert.True(t, report.HasError(ui))
}

// The numbered dump leaves out the first line and labels the second line 1.
// This mirrors reports that downstream readers already parse.
func TestNumberLines_SkipsFirstLine(t *testing.T) {
	src := "<?xml version=\"1.0\"?>\n<a>\n<b/>\n</a>\n"

	got := report.NumberLines(src)

	assert.Equal(t, "1:<a>\n2:<b/>\n3:</a>\n", got)
	assert.NotContains(t, got, "xml version")
}

func TestNumberLines_NoTrailingNewline(t *testing.T) {
	assert.Equal(t, "1:b\n2:c", report.NumberLines("a\nb\nc"))
	assert.Equal(t, "", report.NumberLines("single line"))
	assert.Equal(t, "", report.NumberLines(""))
}

func TestAnnotate(t *testing.T) {
	raw := "ERROR: line 2: element b not declared"
	got := report.Annotate(raw, "<?xml version=\"1.0\"?>\n<a><b/></a>\n")

	assert.Equal(t, raw+"\n1:<a><b/></a>\n", got)
	assert.Greater(t, len(got), len(raw))
}

func TestDecode(t *testing.T) {
	t.Run("utf-8 default", func(t *testing.T) {
		got, err := report.Decode([]byte("válido"), "")
		require.NoError(t, err)
		assert.Equal(t, "válido", got)
	})

	t.Run("latin1", func(t *testing.T) {
		// "inválido" in ISO-8859-1
		got, err := report.Decode([]byte{'i', 'n', 'v', 0xe1, 'l', 'i', 'd', 'o'}, "latin1")
		require.NoError(t, err)
		assert.Equal(t, "inválido", got)
	})

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := report.Decode([]byte("x"), "klingon")
		assert.Error(t, err)
		assert.False(t, report.ValidEncoding("klingon"))
		assert.True(t, report.ValidEncoding("windows-1252"))
	})
}

func TestRender_Plain(t *testing.T) {
	assert.Equal(t, "ERROR: x", report.Render("ERROR: x", false, false))
}
