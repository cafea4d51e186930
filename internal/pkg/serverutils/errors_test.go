package serverutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("file", "Only PDF files are allowed")

	assert.Equal(t, "Only PDF files are allowed", err.Error())
	assert.Equal(t, []ErrorDetail{{Field: "file", Message: "Only PDF files are allowed"}}, err.ToErrorDetails())
	assert.Equal(t, ErrBadRequest.Error(), (&ValidationError{}).Error())
}

func TestIsUploadFailure(t *testing.T) {
	cause := errors.New("boom")

	assert.True(t, IsUploadFailure(&DecodeError{Err: cause}))
	assert.True(t, IsUploadFailure(fmt.Errorf("stage: %w", &TransportError{Err: cause})))
	assert.True(t, IsUploadFailure(&WriteError{Err: cause}))
	assert.False(t, IsUploadFailure(cause))
	assert.False(t, IsUploadFailure(NewValidationError("file", "x")))
}

func TestTypedErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")

	assert.ErrorIs(t, &TransportError{Err: cause}, cause)
	assert.ErrorIs(t, &WriteError{Err: cause}, cause)
	assert.ErrorIs(t, &DecodeError{Err: cause}, cause)
	assert.Contains(t, (&TransportError{Err: cause}).Error(), "connection reset")
}
