package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// IntegrityKind classifies a storage-layer constraint breach.
type IntegrityKind string

const (
	IntegrityUnique     IntegrityKind = "unique"
	IntegrityNotNull    IntegrityKind = "not_null"
	IntegrityForeignKey IntegrityKind = "foreign_key"
	IntegrityCheck      IntegrityKind = "check"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Kind    IntegrityKind
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewIntegrityError wraps a commit-time constraint violation so callers can
// branch on the kind without matching driver error strings.
func NewIntegrityError(kind IntegrityKind, err error) *AppError {
	return &AppError{
		Code:    "INTEGRITY_VIOLATION",
		Message: fmt.Sprintf("%s constraint violated", kind),
		Kind:    kind,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// IsIntegrityViolation reports whether err is a constraint breach, and of
// which kind.
func IsIntegrityViolation(err error) (IntegrityKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == "INTEGRITY_VIOLATION" {
		return appErr.Kind, true
	}
	return "", false
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
