// Package validate provides input validation for xmlkit's arguments.
//
// This package checks what users and MCP clients hand us before any tool is
// started: file paths, stylesheet parameters, DOCTYPE declarations and inline
// document content. Each validation function returns nil on success or a
// descriptive error on failure.
//
// # Design Philosophy
//
// Validation is minimal. We reject inputs that would corrupt the command line
// or the document (null bytes, line breaks in parameters, malformed
// declarations) but leave XML correctness to the checker itself.
//
// # Validation Functions
//
// Path validates a file path argument.
// Param validates a stylesheet parameter name and value.
// Doctype validates a replacement DOCTYPE declaration.
// Content validates inline document text.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidPath, ErrInvalidParam, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidParam) {
//	    // handle invalid parameter
//	}
package validate
