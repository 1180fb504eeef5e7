package toon

import "fmt"

// Error codes identifying the reason a call failed. Every error returned by
// this package carries one of these so callers can react to the failure kind
// without parsing messages.
const (
	// ErrCodeOption indicates invalid options: a non-positive indent width,
	// an unsupported delimiter, or an unsupported key mode. Option errors
	// are reported before any encode/decode work begins.
	ErrCodeOption = iota + 1

	// ErrCodeUnsupportedType indicates an encode input containing a value
	// outside the canonical model (null, bool, number, string, object, array).
	ErrCodeUnsupportedType

	// ErrCodeIndentation indicates a line indented by something other than a
	// whole multiple of the configured indent width (strict mode).
	ErrCodeIndentation

	// ErrCodeBlankLine indicates a blank line inside a block (strict mode).
	ErrCodeBlankLine

	// ErrCodeUnexpectedLine indicates a line that does not match any of the
	// recognized grammar forms, or content left over after the document.
	ErrCodeUnexpectedLine

	// ErrCodeLengthMismatch indicates an array whose declared element count
	// does not match the number of elements found (strict mode).
	ErrCodeLengthMismatch

	// ErrCodeInvalidEscape indicates a backslash escape other than
	// \\ \" \n \r \t inside a quoted string.
	ErrCodeInvalidEscape

	// ErrCodeUnterminatedString indicates a quoted string with no closing quote.
	ErrCodeUnterminatedString

	// ErrCodeDuplicateKey indicates the same key appearing twice in one object.
	ErrCodeDuplicateKey

	// ErrCodeUnknownKey indicates a key not present in the supplied
	// SymbolTable under KeyModeInternExisting.
	ErrCodeUnknownKey
)

// EncodeError represents a failure while encoding a value to TOON.
type EncodeError struct {
	Code    int
	Message string
}

func (e *EncodeError) Error() string {
	return "toon: " + e.Message
}

// DecodeError represents a failure while decoding TOON input. Line and
// Column are 1-based and zero when the error does not originate from a
// specific position. Context holds the offending source line, when known.
type DecodeError struct {
	Code    int
	Message string
	Line    int
	Column  int
	Context string
}

func (e *DecodeError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("toon: %s at line %d, column %d", e.Message, e.Line, e.Column)
	case e.Line > 0:
		return fmt.Sprintf("toon: %s at line %d", e.Message, e.Line)
	default:
		return "toon: " + e.Message
	}
}

// OptionError represents invalid EncodeOptions or DecodeOptions. It is
// returned before any codec work begins.
type OptionError struct {
	Message string
}

func (e *OptionError) Error() string {
	return "toon: " + e.Message
}

func newOptionError(format string, args ...interface{}) error {
	return &OptionError{Message: fmt.Sprintf(format, args...)}
}

func newEncodeError(code int, format string, args ...interface{}) error {
	return &EncodeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func newDecodeError(code int, ln line, col int, format string, args ...interface{}) error {
	return &DecodeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    ln.num,
		Column:  col,
		Context: ln.raw,
	}
}
