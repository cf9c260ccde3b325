package services

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable machine-readable kind surfaced to callers.
type ErrorCode string

const (
	CodeNotFound        ErrorCode = "not_found"
	CodeRoleMismatch    ErrorCode = "role_mismatch"
	CodeInvalidArgument ErrorCode = "invalid_argument"
	CodeConflict        ErrorCode = "conflict"
	CodeUnauthorized    ErrorCode = "unauthorized"
	CodeInternal        ErrorCode = "internal"
)

// ServiceError carries an error kind plus a human-readable message.
type ServiceError struct {
	Code     ErrorCode
	Resource string
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s", e.Resource, e.Message)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(resource string, id uint) *ServiceError {
	return &ServiceError{
		Code:     CodeNotFound,
		Resource: resource,
		Message:  fmt.Sprintf("%s not found with id: %d", resource, id),
	}
}

func NewRoleMismatchError(userID uint, required string) *ServiceError {
	return &ServiceError{
		Code:     CodeRoleMismatch,
		Resource: "user",
		Message:  fmt.Sprintf("user with id: %d does not have the %s role", userID, required),
	}
}

func NewInvalidArgumentError(message string) *ServiceError {
	return &ServiceError{
		Code:    CodeInvalidArgument,
		Message: message,
	}
}

func NewConflictError(resource, message string) *ServiceError {
	return &ServiceError{
		Code:     CodeConflict,
		Resource: resource,
		Message:  message,
	}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// CodeOf extracts the error kind, defaulting to internal for anything
// that is not a ServiceError.
func CodeOf(err error) ErrorCode {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool        { return CodeOf(err) == CodeNotFound }
func IsRoleMismatch(err error) bool    { return CodeOf(err) == CodeRoleMismatch }
func IsInvalidArgument(err error) bool { return CodeOf(err) == CodeInvalidArgument }
func IsConflict(err error) bool        { return CodeOf(err) == CodeConflict }
