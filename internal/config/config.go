// Package config provides reading and writing of xmlkit configuration.
// Supports both global (~/.xmlkit/config.yaml) and local (.xmlkit/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jpl-au/xmlkit/internal/invoke"
	"github.com/jpl-au/xmlkit/internal/report"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.xmlkit/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .xmlkit/config.yaml
	ScopeLocal
)

// Tools locates the external Java tools.
type Tools struct {
	Java          string `yaml:"java,omitempty"`
	JarDir        string `yaml:"jar_dir,omitempty"`
	TransformJar  string `yaml:"transform_jar,omitempty"`
	ValidateJar   string `yaml:"validate_jar,omitempty"`
	ValidateClass string `yaml:"validate_class,omitempty"`
}

// Workspace holds staging options.
type Workspace struct {
	ScratchDir string `yaml:"scratch_dir,omitempty"`
}

// Runner holds process execution options.
type Runner struct {
	Mode    string `yaml:"mode,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// Report holds report handling options.
type Report struct {
	Encoding string `yaml:"encoding,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultJava          = "java"
	DefaultJarDir        = "jar"
	DefaultTransformJar  = "saxonb9-1-0-8j/saxon9.jar"
	DefaultValidateJar   = "XMLCheck.jar"
	DefaultValidateClass = "br.bireme.XMLCheck.XMLCheck"
	DefaultRunnerMode    = invoke.ModeExec
)

// MaxTimeout bounds runner.timeout.
const MaxTimeout = 24 * time.Hour

// Config contains configuration for xmlkit.
type Config struct {
	Tools     Tools     `yaml:"tools,omitempty"`
	Workspace Workspace `yaml:"workspace,omitempty"`
	Runner    Runner    `yaml:"runner,omitempty"`
	Report    Report    `yaml:"report,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are acceptable.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Tools.Java != "" {
		if _, _, err := invoke.SplitJava(c.Tools.Java); err != nil {
			return fmt.Errorf("%w: tools.java: %w", ErrInvalidValue, err)
		}
	}
	if c.Runner.Mode != "" {
		if _, err := invoke.NewRunner(c.Runner.Mode); err != nil {
			return fmt.Errorf("%w: runner.mode must be %s or %s, got %q",
				ErrInvalidValue, invoke.ModeExec, invoke.ModeShell, c.Runner.Mode)
		}
	}
	if c.Runner.Timeout != "" {
		d, err := time.ParseDuration(c.Runner.Timeout)
		if err != nil || d < 0 || d > MaxTimeout {
			return fmt.Errorf("%w: runner.timeout must be a duration between 0 and %s, got %q",
				ErrInvalidValue, MaxTimeout, c.Runner.Timeout)
		}
	}
	if c.Report.Encoding != "" && !report.ValidEncoding(c.Report.Encoding) {
		return fmt.Errorf("%w: report.encoding %q is not a known encoding", ErrInvalidValue, c.Report.Encoding)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Java returns the Java launcher command (defaults to "java").
func (c *Config) Java() string { return orDefault(c.Tools.Java, DefaultJava) }

// JarDir returns the directory relative jar paths resolve against.
func (c *Config) JarDir() string { return orDefault(c.Tools.JarDir, DefaultJarDir) }

// TransformJar returns the resolved XSLT processor jar path.
func (c *Config) TransformJar() string {
	return c.jar(orDefault(c.Tools.TransformJar, DefaultTransformJar))
}

// ValidateJar returns the resolved DTD checker jar path.
func (c *Config) ValidateJar() string {
	return c.jar(orDefault(c.Tools.ValidateJar, DefaultValidateJar))
}

// ValidateClass returns the DTD checker entry point.
func (c *Config) ValidateClass() string {
	return orDefault(c.Tools.ValidateClass, DefaultValidateClass)
}

func (c *Config) jar(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.JarDir(), p)
}

// InvokeTools returns the tool locations in the form the invokers take.
func (c *Config) InvokeTools() invoke.Tools {
	return invoke.Tools{
		Java:          c.Java(),
		TransformJar:  c.TransformJar(),
		ValidateJar:   c.ValidateJar(),
		ValidateClass: c.ValidateClass(),
	}
}

// ScratchDir returns the shared staging directory (defaults to <tmp>/xmlkit).
func (c *Config) ScratchDir() string {
	return orDefault(c.Workspace.ScratchDir, filepath.Join(os.TempDir(), "xmlkit"))
}

// RunnerMode returns how tools are started: "exec" (default) or "shell".
func (c *Config) RunnerMode() string { return orDefault(c.Runner.Mode, DefaultRunnerMode) }

// Timeout returns the per-invocation timeout; 0 waits indefinitely.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Runner.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Encoding returns the report text encoding (defaults to utf-8).
func (c *Config) Encoding() string { return orDefault(c.Report.Encoding, report.DefaultEncoding) }

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".xmlkit", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.xmlkit/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".xmlkit", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadFile(path, scope)
}

// LoadFile reads configuration from an explicit file (the --config flag).
func LoadFile(path string) (*Config, error) {
	return loadFile(path, ScopeLocal)
}

func loadFile(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveTo writes the configuration to path and makes it the file later
// saves go to.
func (c *Config) SaveTo(path string) error {
	c.path = path
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
