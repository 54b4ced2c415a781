// Script execution error types.
//
// Every failure mode of the interpreter maps to exactly one ErrorKind.
// The kind string is the conformance tag recorded in generated test
// vectors, so external verifiers compare against it literally. The
// surrounding Error carries a human-readable description with the
// opcode context.
package script

import "errors"

// ErrorKind identifies a kind of script execution error.
type ErrorKind string

// These constants are used to identify a specific ErrorKind. The set
// is exhaustive for the supported opcode subset.
const (
	// ErrStackUnderflow is returned when an opcode requires more
	// elements than the stack holds.
	ErrStackUnderflow = ErrorKind("StackUnderflow")

	// ErrStackOverflow is returned when a push would grow the stack
	// beyond MaxStackSize.
	ErrStackOverflow = ErrorKind("StackOverflow")

	// ErrElementTooLarge is returned when a pushed element, or the
	// result of CAT or ADD, exceeds MaxScriptElementSize.
	ErrElementTooLarge = ErrorKind("ElementTooLarge")

	// ErrTruncatedPush is returned when a push opcode needs more data
	// bytes than remain in the script.
	ErrTruncatedPush = ErrorKind("TruncatedPush")

	// ErrUnknownOpcode is returned when the script contains a byte
	// outside the supported opcode set.
	ErrUnknownOpcode = ErrorKind("UnknownOpcode")

	// ErrVerifyFailed is returned when VERIFY pops a falsy element.
	ErrVerifyFailed = ErrorKind("VerifyFailed")
)

// Error satisfies the error interface and returns the kind string,
// which doubles as the conformance tag.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a script execution failure. It has full support for
// errors.Is and errors.As, so callers can match on the underlying
// ErrorKind while still surfacing the opcode-specific description.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// scriptError creates an Error given a set of arguments.
func scriptError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// IsErrorKind returns whether or not the provided error is a script
// error with the provided error kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var e Error
	return errors.As(err, &e) && e.Err == kind
}
