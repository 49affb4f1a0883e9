package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("log")
		env.contains(out, "No runs recorded")
	})

	t.Run("records runs", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.xml", testArticle)
		env.write("b.xml", testPlain)

		_, err := env.runErr("validate", "a.xml")
		require.Error(t, err)
		env.run("transform", "b.xml", "html.xsl", "b.html")

		out := env.run("log", "-n", "2")
		env.contains(out, "xml:transform")
		env.contains(out, "b.xml -> b.html")
		env.contains(out, "FAIL")
		env.contains(out, "xml:validate")

		out = env.run("log", "-o", "json", "-n", "1")
		env.contains(out, `"source":"xml:transform"`)
	})
}
