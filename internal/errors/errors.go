package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes carried in the error envelope.
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeInvalidToken   = "INVALID_TOKEN"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeValidation     = "VALIDATION_ERROR"
	CodeIntegrityError = "INTEGRITY_ERROR"
	CodeDatabaseError  = "DATABASE_ERROR"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
)

// APIError is implemented by every typed application error. The outermost
// error-translator middleware is the only place that turns these into HTTP
// responses; services raise them freely.
type APIError interface {
	error
	Status() int
	Code() string
}

// BadRequestError represents an invalid business input (400)
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }
func (e *BadRequestError) Status() int   { return http.StatusBadRequest }
func (e *BadRequestError) Code() string  { return CodeBadRequest }

// Is enables errors.Is() comparison for BadRequestError
func (e *BadRequestError) Is(target error) bool {
	t, ok := target.(*BadRequestError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// UnauthorizedError represents missing/invalid/expired credentials (401)
type UnauthorizedError struct {
	Message   string
	ErrorCode string // defaults to UNAUTHORIZED when empty
}

func (e *UnauthorizedError) Error() string { return e.Message }
func (e *UnauthorizedError) Status() int   { return http.StatusUnauthorized }
func (e *UnauthorizedError) Code() string {
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	return CodeUnauthorized
}

// Is enables errors.Is() comparison for UnauthorizedError
func (e *UnauthorizedError) Is(target error) bool {
	t, ok := target.(*UnauthorizedError)
	if !ok {
		return false
	}
	return e.Message == t.Message && e.ErrorCode == t.ErrorCode
}

// ForbiddenError represents an authenticated but not permitted action (403)
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }
func (e *ForbiddenError) Status() int   { return http.StatusForbidden }
func (e *ForbiddenError) Code() string  { return CodeForbidden }

// Is enables errors.Is() comparison for ForbiddenError
func (e *ForbiddenError) Is(target error) bool {
	t, ok := target.(*ForbiddenError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// NotFoundError represents a missing resource (404)
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }
func (e *NotFoundError) Status() int   { return http.StatusNotFound }
func (e *NotFoundError) Code() string  { return CodeNotFound }

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ConflictError represents a uniqueness violation (409)
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Status() int   { return http.StatusConflict }
func (e *ConflictError) Code() string  { return CodeConflict }

// Is enables errors.Is() comparison for ConflictError
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// ValidationError represents malformed input shape (422)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
func (e *ValidationError) Status() int  { return http.StatusUnprocessableEntity }
func (e *ValidationError) Code() string { return CodeValidation }

// ServiceUnavailableError represents a dependency outage (503)
type ServiceUnavailableError struct {
	Message string
}

func (e *ServiceUnavailableError) Error() string { return e.Message }
func (e *ServiceUnavailableError) Status() int   { return http.StatusServiceUnavailable }
func (e *ServiceUnavailableError) Code() string  { return CodeUnavailable }

// Entity Not Found Errors
var (
	ErrOrganizationNotFound  = &NotFoundError{Entity: "organization"}
	ErrUserNotFound          = &NotFoundError{Entity: "user"}
	ErrProjectNotFound       = &NotFoundError{Entity: "project"}
	ErrTaskNotFound          = &NotFoundError{Entity: "task"}
	ErrCommentNotFound       = &NotFoundError{Entity: "comment"}
	ErrAttachmentNotFound    = &NotFoundError{Entity: "attachment"}
	ErrProjectMemberNotFound = &NotFoundError{Entity: "project member"}
)

// Business Rule Errors
var (
	ErrEmailExists              = &BadRequestError{Message: "Email already registered"}
	ErrOrganizationNameRequired = &BadRequestError{Message: "Organization name is required for registration. To join an existing organization, please ask an admin to add you."}
	ErrOrganizationNameTaken    = &BadRequestError{Message: "Organization name is already taken"}
	ErrDueDateInPast            = &BadRequestError{Message: "Due date must be today or in the future"}
	ErrAlreadyProjectMember     = &BadRequestError{Message: "User is already a member of this project"}
	ErrCrossOrganization        = &BadRequestError{Message: "User must be in the same organization"}
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &UnauthorizedError{Message: "Invalid email or password"}
	ErrAccountDeactivated  = &UnauthorizedError{Message: "User account is deactivated"}
	ErrMissingToken        = &UnauthorizedError{Message: "Authorization header is required"}
	ErrTokenExpired        = &UnauthorizedError{Message: "Token has expired", ErrorCode: CodeTokenExpired}
	ErrInvalidToken        = &UnauthorizedError{Message: "Invalid token", ErrorCode: CodeInvalidToken}
	ErrInvalidRefreshToken = &UnauthorizedError{Message: "Invalid refresh token"}
)

// Authorization Errors
var (
	ErrProjectAccessDenied       = &ForbiddenError{Message: "You don't have access to this project"}
	ErrNotProjectMember          = &ForbiddenError{Message: "Only project members can perform this action"}
	ErrAssignmentNotAllowed      = &ForbiddenError{Message: "Only admin or manager can assign tasks to other users"}
	ErrCommentDeleteForbidden    = &ForbiddenError{Message: "You can only delete your own comments"}
	ErrAttachmentDeleteForbidden = &ForbiddenError{Message: "You can only delete your own attachments"}
	ErrInsufficientRole          = &ForbiddenError{Message: "You don't have permission to perform this action"}
	ErrInactiveUser              = &ForbiddenError{Message: "User account is deactivated"}
)

// Helper Functions

// IsAPIError extracts the APIError from an error chain if present
func IsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsBadRequest checks if an error is a BadRequestError
func IsBadRequest(err error) bool {
	var badRequestErr *BadRequestError
	return errors.As(err, &badRequestErr)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var unauthorizedErr *UnauthorizedError
	return errors.As(err, &unauthorizedErr)
}

// IsForbidden checks if an error is a ForbiddenError
func IsForbidden(err error) bool {
	var forbiddenErr *ForbiddenError
	return errors.As(err, &forbiddenErr)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

// NewForbiddenError creates a new ForbiddenError
func NewForbiddenError(message string) error {
	return &ForbiddenError{Message: message}
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStatusTransitionError reports a backwards task-status transition.
func NewStatusTransitionError(from, to string) error {
	return &BadRequestError{Message: fmt.Sprintf("Cannot move status backwards from %s to %s", from, to)}
}

// NewServiceUnavailableError creates a new ServiceUnavailableError
func NewServiceUnavailableError(message string) error {
	return &ServiceUnavailableError{Message: message}
}

// NewAttachmentLimitError reports that a task already carries the maximum
// number of attachments.
func NewAttachmentLimitError(max int) error {
	return &BadRequestError{Message: fmt.Sprintf("Maximum %d attachments per task allowed", max)}
}
