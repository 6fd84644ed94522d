package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrMissingRequiredField is the cause of every ValidationError raised for an unset required field.
var ErrMissingRequiredField = errors.New("missing required field")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewMissingFieldError reports a single required field that has not been set.
func NewMissingFieldError(field, msg string) error {
	return &ValidationError{
		Err:    ErrMissingRequiredField,
		Fields: []FieldError{{Field: field, Error: msg}},
	}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// IsMissingRequiredField reports whether err stems from an unset required field,
// either raised by hand or by the validator's `required` tag.
func IsMissingRequiredField(err error) bool {
	switch origErr := errors.Cause(err).(type) {
	case *ValidationError:
		return origErr.Err == ErrMissingRequiredField
	case validator.ValidationErrors:
		for _, fe := range origErr {
			if fe.Tag() == requiredTag {
				return true
			}
		}
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
