package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrForbidden    = errors.New("operation not allowed")
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
	ErrInvalidIcon  = errors.New("must be one of: code, database, design, web")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var causeApiErr *ApiErr
		if errors.As(e.Cause, &causeApiErr) {
			msg = fmt.Sprintf("%s: %s", msg, causeApiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
		}
	}
	return msg
}

func (e *ApiErr) Unwrap() error {
	return e.err
}

func Malformed(payloadName string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, payloadName+" malformed")
}

func BadRequest(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewBadRequestError(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *ApiErr {
	return NewApiErr(http.StatusNotFound, message)
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrCORSBlocked,
		Details:    fmt.Sprintf("Origin %s is not allowed", origin),
		Field:      "origin",
	}
}

// NewValidationError reports a single invalid request field.
func NewValidationError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrBadRequest,
		Details:    message,
		Field:      field,
	}
}
