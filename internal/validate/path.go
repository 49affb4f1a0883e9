// path.go implements file path argument validation.

package validate

import (
	"fmt"
	"strings"
)

// Path validates a file path handed to one of the tools.
//
// Validation rules:
//   - Empty paths rejected (the tool would read or write nothing)
//   - Null bytes rejected (cannot be passed to a process)
//   - Line breaks rejected (would split the command in shell mode)
func Path(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	if strings.ContainsAny(p, "\r\n") {
		return fmt.Errorf("%w: line break in path %q", ErrInvalidPath, p)
	}
	return nil
}
