package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("get all shows defaults", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("config")
		env.contains(out, "tools.java: java")
		env.contains(out, "runner.mode: exec")
		env.contains(out, "report.encoding: utf-8")
	})

	t.Run("set writes global without local config", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("config", "runner.timeout", "2m")
		env.contains(out, "(global)")
		assert.FileExists(t, filepath.Join(env.home, ".xmlkit", "config.yaml"))

		out = env.run("config", "runner.timeout")
		env.contains(out, "2m0s")
	})

	t.Run("local wins after init", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")

		out := env.run("config", "tools.jar_dir", "/opt/jar")
		env.contains(out, "(local)")
		env.contains(env.read(".xmlkit/config.yaml"), "/opt/jar")
	})

	t.Run("explicit config file", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("--config", "ci.yaml", "config", "runner.mode", "shell")

		env.contains(env.read("ci.yaml"), "shell")
		out := env.run("--config", "ci.yaml", "config", "runner.mode")
		env.contains(out, "shell")
	})
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "author.name", "x"},
		{"bad runner mode", "runner.mode", "telnet"},
		{"bad timeout", "runner.timeout", "soon"},
		{"bad encoding", "report.encoding", "klingon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newBareEnv(t)
			_, err := env.runErr("config", tc.key, tc.value)
			require.Error(t, err)
		})
	}
}
