package identity

import "context"

const (
	MockSubject     = "1"
	MockDisplayName = "John Doe"
)

// MockProvider accepts any credentials. Login always yields the same
// subject and display name; Register keeps the name it was given.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Login(ctx context.Context, email, password string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	return Identity{Subject: MockSubject, Email: email, Name: MockDisplayName}, nil
}

func (p *MockProvider) Register(ctx context.Context, name, email, password string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	return Identity{Subject: MockSubject, Email: email, Name: name}, nil
}
