package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("access forbidden")
	ErrUnauthenticated      = errors.New("authentication credentials were not provided")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateApplication = errors.New("already applied for this job")
	ErrStatusOnlyUpdate     = errors.New("only the status field of an application can be updated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserExists           = errors.New("user with this email already exists")
	ErrIndustryExists       = errors.New("industry with this name already exists")
)

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource ResourceType
	ID       string
}

// NewNotFound returns a NotFoundError for the given resource and id.
func NewNotFound(resource ResourceType, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
