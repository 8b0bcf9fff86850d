package core

import (
	"errors"
	"fmt"
)

// Error codes of the rendering packages.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // asset, font or glyph does not exist
	EINVALID  int = 123 // malformed document, attribute or asset
	EIO       int = 124 // local file unreadable or unwritable
	EINTERNAL int = 125 // internal error
)

var errorTexts = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	EIO:       "i/o error",
	EINTERNAL: "internal error",
}

func errorText(code int) string {
	if t, ok := errorTexts[code]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
//
// The domain errors of the rendering packages (unreadable font faces, missing
// glyphs, malformed colors) implement AppError, so that the command line
// front end is able to report them uniformly.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// codedError carries a code and a user message along with its cause.
type codedError struct {
	cause error
	code  int
	msg   string
}

func (e codedError) Unwrap() error       { return e.cause }
func (e codedError) ErrorCode() int      { return e.code }
func (e codedError) UserMessage() string { return e.msg }

func (e codedError) Error() string {
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

var _ AppError = codedError{}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return codedError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError wraps err, attaching an error code and a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return codedError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Code returns the code of the first AppError in err's chain.
// Errors without a code are EINTERNAL; a nil error is NOERROR.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message of the first AppError in err's chain,
// or the default text for err's code. If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// ExitStatus maps an error to a process exit status:
// 0 for nil, 2 for invalid input, 3 for missing resources, 4 for I/O failures
// and 1 otherwise.
func ExitStatus(err error) int {
	switch Code(err) {
	case NOERROR:
		return 0
	case EINVALID:
		return 2
	case EMISSING:
		return 3
	case EIO:
		return 4
	}
	return 1
}
