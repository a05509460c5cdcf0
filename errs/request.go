package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// Authentication errors
func NewMissingTokenError() *ApiErr {
	e := NewUnauthorizedError("not authenticated")
	e.Field = "authorization"
	return e
}

func NewInvalidTokenError(cause error) *ApiErr {
	e := NewUnauthorizedError("invalid token")
	e.Field = "authorization"
	e.Cause = cause
	return e
}

func NewInvalidCredentialsError() *ApiErr {
	return NewUnauthorizedError("invalid credentials")
}

// Request & input-validation errors

func NewValidationError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		message:    "validation error",
		err:        ErrValidation,
		Details:    fmt.Sprintf("%s: %s", field, reason),
		Field:      field,
	}
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		message:    "validation error",
		err:        ErrValidation,
		Details:    fmt.Sprintf("malformed %s payload", payloadType),
		Field:      "body",
		Cause:      cause,
	}
}

func NewUnsupportedMediaTypeError(contentType string, allowedTypes []string) *ApiErr {
	e := NewBadRequestError("file type not allowed")
	e.Details = fmt.Sprintf("%q is not one of %s", contentType, strings.Join(allowedTypes, ", "))
	e.Field = "file"
	return e
}

// NewFileTooLargeError is a 400 rather than a 413 so clients see the same kind
// as every other rejected upload.
func NewFileTooLargeError(maxMB int64) *ApiErr {
	e := NewBadRequestError("file too large")
	e.Details = fmt.Sprintf("maximum is %dMB", maxMB)
	e.Field = "file"
	return e
}

func NewRateLimitedError() *ApiErr {
	return NewApiErr(http.StatusTooManyRequests, "too many requests")
}
