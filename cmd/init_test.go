package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("creates local config", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("init", "--jar-dir", "/opt/xmlkit/jar")
		env.contains(out, "Initialised xmlkit config")
		env.contains(out, "warning: jar")

		assert.FileExists(t, env.path(".xmlkit/config.yaml"))
		assert.Contains(t, env.read(".xmlkit/config.yaml"), "/opt/xmlkit/jar")
	})

	t.Run("already initialised", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")

		out, err := env.runErr("init")
		require.Error(t, err)
		env.contains(out, "already initialised")
	})

	t.Run("force", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init", "--jar-dir", "/first")
		env.run("init", "--force", "--jar-dir", "/second")

		cfg := env.read(".xmlkit/config.yaml")
		assert.Contains(t, cfg, "/second")
		assert.NotContains(t, cfg, "/first")
	})

	t.Run("json", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init", "-o", "json")
		env.contains(out, `"config":".xmlkit/config.yaml"`)
	})
}
