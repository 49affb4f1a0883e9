// Package guide embeds the markdown pages behind `xmlkit guide`, `xmlkit llm`
// and the xml_guide MCP tool.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"slices"
	"strings"
)

// ErrNotFound is returned for a topic with no guide page.
var ErrNotFound = errors.New("guide not found")

//go:embed *.md
var files embed.FS

// Get returns the page for topic; "" is the overview. "install" resolves to
// the page for the running OS, since Java and jar setup differ per platform.
func Get(name string) (string, error) {
	if name == "" {
		name = "guide"
	}
	if name == "install" {
		name = "install-" + runtime.GOOS
	}
	data, err := files.ReadFile(name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the topics Get accepts, sorted. Per-OS install pages are
// listed once as "install".
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	names := []string{"install"}
	for _, e := range entries {
		topic, _ := strings.CutSuffix(e.Name(), ".md")
		if topic == "guide" || strings.HasPrefix(topic, "install-") {
			continue
		}
		names = append(names, topic)
	}
	slices.Sort(names)
	return names, nil
}
