// content.go implements inline document content validation.
//
// Separated because content validation is intentionally minimal: we check
// that the text can be an XML document at all and that it fits, not that it
// is well formed. Well-formedness is the checker's job.

package validate

import (
	"fmt"
	"strings"
)

// Content validates inline document text.
//
// Validation rules:
//   - Must contain '<' (otherwise it would be read as a path)
//   - Null bytes rejected (not allowed anywhere in XML)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Content(content string, maxLen int64) error {
	if !strings.Contains(content, "<") {
		return fmt.Errorf("%w: no markup found", ErrInvalidContent)
	}
	if strings.ContainsRune(content, 0) {
		return fmt.Errorf("%w: null byte in content", ErrInvalidContent)
	}
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}
