package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies business failures so handlers can map them to HTTP
// statuses. Conflict is the only kind a client should retry.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindValidation
)

// AppError carries a kind and a client-safe message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NotFoundError reports an absent entity.
func NotFoundError(entity string, id uint) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with ID: %d", entity, id)}
}

// ConflictError reports a uniqueness or concurrency conflict.
func ConflictError(format string, args ...interface{}) error {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports a business-rule violation on an existing entity.
func InvalidStateError(format string, args ...interface{}) error {
	return &AppError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports malformed or incomplete input.
func ValidationError(format string, args ...interface{}) error {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, KindUnknown for internal errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
