// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command and the MCP server, where
// settings are addressed by dotted keys (e.g., "tools.java").
//
// Design: Get returns the effective value (default applied) so users see
// what will actually run; IsSet tells explicit values apart from defaults.

package config

import (
	"fmt"
	"slices"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"tools.java", "tools.jar_dir", "tools.transform_jar",
		"tools.validate_jar", "tools.validate_class",
		"workspace.scratch_dir",
		"runner.mode", "runner.timeout",
		"report.encoding",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the effective value of a configuration key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "tools.java":
		return c.Java(), nil
	case "tools.jar_dir":
		return c.JarDir(), nil
	case "tools.transform_jar":
		return c.TransformJar(), nil
	case "tools.validate_jar":
		return c.ValidateJar(), nil
	case "tools.validate_class":
		return c.ValidateClass(), nil
	case "workspace.scratch_dir":
		return c.ScratchDir(), nil
	case "runner.mode":
		return c.RunnerMode(), nil
	case "runner.timeout":
		return c.Timeout().String(), nil
	case "report.encoding":
		return c.Encoding(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// field returns the storage for key.
func (c *Config) field(key string) (*string, error) {
	switch key {
	case "tools.java":
		return &c.Tools.Java, nil
	case "tools.jar_dir":
		return &c.Tools.JarDir, nil
	case "tools.transform_jar":
		return &c.Tools.TransformJar, nil
	case "tools.validate_jar":
		return &c.Tools.ValidateJar, nil
	case "tools.validate_class":
		return &c.Tools.ValidateClass, nil
	case "workspace.scratch_dir":
		return &c.Workspace.ScratchDir, nil
	case "runner.mode":
		return &c.Runner.Mode, nil
	case "runner.timeout":
		return &c.Runner.Timeout, nil
	case "report.encoding":
		return &c.Report.Encoding, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key. An empty value restores the
// default. The value is rejected (and the config left unchanged) if it fails
// validation.
func (c *Config) Set(key, value string) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	old := *f
	*f = value
	if err := c.Validate(); err != nil {
		*f = old
		return err
	}
	return nil
}

// All returns all effective configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	f, err := c.field(key)
	return err == nil && *f != ""
}
