package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the client and the development backend.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNothingToSave    = errors.New("nothing to save")
	ErrPublishCancelled = errors.New("publish cancelled")
	ErrUnknownModule    = errors.New("unknown module type")
	ErrModuleLimit      = errors.New("module instance limit reached")
	ErrInvalidUpload    = errors.New("invalid upload")
)

// ValidationError is a field-scoped validation problem.
// swagger:model ValidationError
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation error codes.
const (
	CodeRequired     = "REQUIRED_FIELD"
	CodeInvalidDate  = "INVALID_DATE"
	CodePastDate     = "PAST_DATE"
	CodeInvalidValue = "INVALID_VALUE"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}
