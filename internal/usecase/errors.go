package usecase

import (
	"errors"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeStorage       = "STORAGE_ERROR"
)

// DomainError is a caller-facing failure detected by the domain rules:
// unknown keys, duplicates, bad input or bad generation parameters.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError wraps a persistence failure. It is always surfaced.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the code carried by err, or "" when err has none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func IsNotFound(err error) bool { return ErrorCode(err) == CodeNotFound }

func IsConflict(err error) bool { return ErrorCode(err) == CodeConflict }

func validationError(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

// translate maps repository and entity errors onto the use case taxonomy.
func translate(err error, context string) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) || IsTechnicalError(err) {
		return err
	}
	msg := context + ": " + err.Error()
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return &DomainError{Code: CodeNotFound, Message: msg, Err: err}
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrInvalidTransition):
		return &DomainError{Code: CodeConflict, Message: msg, Err: err}
	case errors.Is(err, entity.ErrConfiguration):
		return &DomainError{Code: CodeConfiguration, Message: msg, Err: err}
	}
	return &TechnicalError{Code: CodeStorage, Message: msg, Err: err}
}
