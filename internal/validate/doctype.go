// doctype.go implements DOCTYPE declaration validation.
//
// The rewriter substitutes whatever it is given, so a declaration missing its
// closing '>' would silently swallow the root element. This is the one place
// that guards against that.

package validate

import (
	"fmt"
	"strings"
)

// Doctype validates a replacement DOCTYPE declaration. An empty declaration
// is valid: it means "remove".
//
// Validation rules:
//   - Must start with "<!DOCTYPE" and end with ">"
//   - Must not contain null bytes
func Doctype(decl string) error {
	if decl == "" {
		return nil
	}
	if strings.ContainsRune(decl, 0) {
		return fmt.Errorf("%w: null byte in declaration", ErrInvalidDoctype)
	}
	if !strings.HasPrefix(decl, "<!DOCTYPE") || !strings.HasSuffix(decl, ">") {
		return fmt.Errorf("%w: expected <!DOCTYPE ...>, got %q", ErrInvalidDoctype, decl)
	}
	return nil
}
