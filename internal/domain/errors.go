package domain

import "fmt"

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Status: 401}
}

// ErrSourceUnavailable signals that the recent-plays feed could not be
// fetched. The whole reconcile invocation aborts with no partial writes.
func ErrSourceUnavailable(cause error) *AppError {
	return &AppError{Code: "SOURCE_UNAVAILABLE", Message: "score source unavailable", Status: 502, Cause: cause}
}

// ErrInvalidCredential signals a missing or expired API token. Distinct from
// SOURCE_UNAVAILABLE so the client can trigger reauthentication.
func ErrInvalidCredential(msg string) *AppError {
	return &AppError{Code: "INVALID_CREDENTIAL", Message: msg, Status: 401}
}

// ErrMalformedRecord marks a play record missing a required field. Callers
// skip and log the single record rather than aborting the batch.
func ErrMalformedRecord(msg string) *AppError {
	return &AppError{Code: "MALFORMED_RECORD", Message: msg, Status: 422}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
