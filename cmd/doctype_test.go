package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctype(t *testing.T) {
	t.Run("show", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("doctype", "article.xml")
		env.contains(out, `<!DOCTYPE article SYSTEM "old.dtd">`)
	})

	t.Run("show without declaration", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("note.xml", testPlain)

		out := env.run("doctype", "note.xml")
		env.contains(out, "has no DOCTYPE declaration")
	})

	t.Run("preview does not write", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("doctype", "article.xml", "--set", testNewDoctype)
		env.contains(out, testNewDoctype)
		env.contains(out, "<article><title>Saxon</title></article>")
		assert.Equal(t, testArticle, env.read("article.xml"))
	})

	t.Run("diff", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("doctype", "article.xml", "--set", testNewDoctype, "--diff")
		env.contains(out, `- <!DOCTYPE article SYSTEM "old.dtd">`)
		env.contains(out, "+ "+testNewDoctype)
	})

	t.Run("remove and write", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("doctype", "article.xml", "--remove", "--write")
		env.contains(out, "Rewrote DOCTYPE")
		assert.NotContains(t, env.read("article.xml"), "<!DOCTYPE")

		out = env.run("doctype", "article.xml", "--remove", "--write")
		env.contains(out, "No changes")
	})

	t.Run("set and remove are exclusive", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		_, err := env.runErr("doctype", "article.xml", "--set", testNewDoctype, "--remove")
		require.Error(t, err)
	})

	t.Run("json", func(t *testing.T) {
		env := newBareEnv(t)
		env.write("article.xml", testArticle)

		out := env.run("doctype", "-o", "json", "article.xml", "--set", testNewDoctype)
		env.contains(out, `"changed":true`)
		env.contains(out, `"written":false`)
	})
}
