package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/faq-autoreply/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromAppError maps service failures onto transport status codes and keeps
// the AppError code in the envelope. Internal causes stay in the log; clients
// only see the AppError message.
func fromAppError(err error) *HTTPError {
	message := apperrors.MessageOf(err)
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, message, err)
	case apperrors.CodeNotFound:
		return NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, message, err)
	default:
		return NewHTTPError(http.StatusInternalServerError, apperrors.CodeFAQ, message, err)
	}
}

// invalidInput reports a request the transport rejected before reaching the service.
func invalidInput(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func writeError(c *gin.Context, httpErr *HTTPError) {
	message := httpErr.Message
	if message == "" {
		message = http.StatusText(httpErr.Status)
	}
	body := gin.H{
		"code":    httpErr.Code,
		"message": message,
	}
	if id := getRequestID(c); id != "" {
		body["requestId"] = id
	}
	c.JSON(httpErr.Status, gin.H{"error": body})
}
