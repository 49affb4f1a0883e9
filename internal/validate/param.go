// param.go implements stylesheet parameter validation.
//
// Separated from path.go because parameters are passed to the processor as
// name=value words: the name must survive that format, the value only has to
// stay on one line.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Param validates a stylesheet parameter.
//
// Validation rules:
//   - Name must be non-empty and free of whitespace, '=' and quotes
//   - Name may not start with '-' (would be read as a processor flag)
//   - Value may not contain null bytes or line breaks
func Param(name, value string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidParam)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: name %q looks like a flag", ErrInvalidParam, name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || r == '=' || r == '"' || r == '\'' || r == 0 {
			return fmt.Errorf("%w: name %q contains %q", ErrInvalidParam, name, r)
		}
	}
	if strings.ContainsRune(value, 0) || strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value of %s must be a single line", ErrInvalidParam, name)
	}
	return nil
}
