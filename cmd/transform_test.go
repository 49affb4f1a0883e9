package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform(t *testing.T) {
	t.Run("writes output with parameters", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("transform", "article.xml", "html.xsl", "out/article.html", "lang=en")
		env.contains(out, "Wrote out/article.html")

		html := env.read("out/article.html")
		assert.Contains(t, html, "<ARTICLE><TITLE>SAXON</TITLE></ARTICLE>")
		assert.Contains(t, html, "lang=en")
	})

	t.Run("failure leaves a report", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("article.xml", testArticle)

		out, err := env.runErr("transform", "article.xml", "broken.xsl", "article.html")
		require.Error(t, err)
		assert.Equal(t, 1, exitCode(err))
		env.contains(out, "report written to article.html")

		rep := env.read("article.html")
		assert.True(t, strings.HasPrefix(rep, "ERROR: transformation error."))
		assert.Contains(t, rep, "broken.xsl")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("transform", "-o", "json", "article.xml", "html.xsl", "article.html")
		env.contains(out, `"ok":true`)
		env.contains(out, `"output":"article.html"`)
	})

	t.Run("text from stdin", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runStdinErr("<a>x</a>", "transform", "--text", "-", "id.xsl")
		require.NoError(t, err, out)
		env.contains(out, "<A>X</A>")
	})

	t.Run("parameter that looks like a flag", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("article.xml", testArticle)

		out, err := env.runErr("transform", "article.xml", "html.xsl", "article.html", "--", "-o=x")
		require.Error(t, err)
		env.contains(out, "looks like a flag")
	})

	t.Run("missing document", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("transform", "none.xml", "html.xsl", "out.html")
		require.Error(t, err)
	})
}
