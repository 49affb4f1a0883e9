// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. Each error represents a
// distinct validation failure category; detailed messages are provided by
// wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidParam    = errors.New("invalid stylesheet parameter")
	ErrInvalidDoctype  = errors.New("invalid doctype declaration")
	ErrInvalidContent  = errors.New("invalid document content")
	ErrContentTooLarge = errors.New("content too large")
)
