package serverutils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `form:"title" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateRequest_OK(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Title: "abc", Email: "a@b.co"}))
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	err := ValidateRequest(sampleRequest{Email: "nope"})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []ErrorDetail{
		{Field: "title", Message: "title is required"},
		{Field: "email", Message: "email must be a valid email address"},
	}, ve.ToErrorDetails())
}

func TestValidateRequest_Max(t *testing.T) {
	err := ValidateRequest(sampleRequest{Title: "too long title"})

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title must be at most 5 characters", ve.Error())
}
