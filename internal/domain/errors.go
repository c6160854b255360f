package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrDuplicate            = errors.New("duplicate record")
	ErrResponsesUnsupported = errors.New("message responses are not stored")
)

// ValidationError is a registration input the user has to correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports an email or username that is already in use.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
