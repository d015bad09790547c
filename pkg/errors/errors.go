package errors

import "errors"

// Codes shared by the domain and transport layers.
const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
	CodeFAQ          = "faq_error"
)

// AppError carries a stable code next to the human readable message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError. err may be nil for validation failures.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// Invalid is shorthand for a CodeInvalidInput error without a cause.
func Invalid(message string) error {
	return Wrap(CodeInvalidInput, message, nil)
}

// NotFound is shorthand for a CodeNotFound error without a cause.
func NotFound(message string) error {
	return Wrap(CodeNotFound, message, nil)
}

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// MessageOf returns the AppError message without the wrapped cause, falling
// back to err.Error() for foreign errors.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
