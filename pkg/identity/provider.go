// Package identity verifies user credentials. A CredentialProvider turns an
// email/password pair into an Identity; it never keeps session state.
package identity

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrRegistrationUnsupported = errors.New("registration is not supported by this identity provider")
)

type Identity struct {
	Subject string
	Email   string
	Name    string
}

type CredentialProvider interface {
	Login(ctx context.Context, email, password string) (Identity, error)
	Register(ctx context.Context, name, email, password string) (Identity, error)
}
