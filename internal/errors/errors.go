// Package errors defines the domain error taxonomy returned by services.
// Handlers map these onto HTTP status codes; nothing here is fatal to the
// process.
package errors

import "fmt"

// DomainError is a structured, user-facing failure.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// ValidationError reports every violated field of a create or update,
// not just the first.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

var (
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "missing, invalid or expired credentials",
	}
	ErrCardNotFound = &DomainError{
		Code:    "CARD_NOT_FOUND",
		Message: "card not found",
	}
	ErrPhotoNotFound = &DomainError{
		Code:    "PHOTO_NOT_FOUND",
		Message: "photo not found",
	}
	ErrUpstreamFailure = &DomainError{
		Code:    "UPSTREAM_FAILURE",
		Message: "upstream storage unavailable",
	}
)
