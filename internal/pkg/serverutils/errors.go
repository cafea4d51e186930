package serverutils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("the requested resource was not found")
	ErrUnauthorized     = errors.New("you are not authorized to access this resource")
	ErrInvalidFile      = errors.New("invalid file type or corrupted content")
	ErrInternal         = errors.New("something went wrong on our end, please try again later")
	ErrBadRequest       = errors.New("the request could not be processed due to invalid input")
	ErrUploadInProgress = errors.New("another upload is already in progress")
)

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a user-correctable input problem. It covers both
// request field checks and file checks.
type ValidationError struct {
	Details []ErrorDetail
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: []ErrorDetail{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return ErrBadRequest.Error()
	}
	return e.Details[0].Message
}

func (e *ValidationError) ToErrorDetails() []ErrorDetail {
	return e.Details
}

// DecodeError means the uploaded bytes are not a well-formed PDF.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("pdf decode failed: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps whatever the object store reported during a transfer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("object transfer failed: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// WriteError wraps a failed metadata write.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("metadata write failed: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// IsUploadFailure reports whether err belongs to the failures that are shown
// to the user as one generic upload message.
func IsUploadFailure(err error) bool {
	var de *DecodeError
	var te *TransportError
	var we *WriteError
	return errors.As(err, &de) || errors.As(err, &te) || errors.As(err, &we)
}
