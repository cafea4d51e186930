package service

import (
	"context"
	"errors"
	"fmt"
	"studyshare-be/internal/dto"
	"studyshare-be/internal/entity"
	"studyshare-be/internal/pkg/serverutils"
	"studyshare-be/pkg/identity"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*entity.Session, error)
}

// authService keeps sessions in memory. The bearer token is an HS256 JWT
// whose jti is the session id, so a logout revokes it immediately.
type authService struct {
	provider identity.CredentialProvider
	secret   []byte
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func NewAuthService(provider identity.CredentialProvider, secret string, ttl time.Duration) IAuthService {
	return &authService{
		provider: provider,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entity.Session),
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	id, err := s.provider.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, mapIdentityError(err)
	}

	return s.startSession(id)
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error) {
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	id, err := s.provider.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, mapIdentityError(err)
	}

	return s.startSession(id)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, session.Id)
	s.mu.Unlock()

	return nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, serverutils.ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, serverutils.ErrUnauthorized
	}

	sessionId, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, serverutils.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionId]
	if !ok {
		return nil, serverutils.ErrUnauthorized
	}
	if session.Expired(s.now()) {
		delete(s.sessions, sessionId)
		return nil, serverutils.ErrUnauthorized
	}

	snapshot := *session
	return &snapshot, nil
}

func (s *authService) startSession(id identity.Identity) (*dto.SessionResponse, error) {
	now := s.now()
	session := &entity.Session{
		Id: uuid.New(),
		User: entity.User{
			Id:    id.Subject,
			Email: id.Email,
			Name:  id.Name,
		},
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.Id.String(),
		Subject:   session.User.Id,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.mu.Lock()
	s.sweep(now)
	s.sessions[session.Id] = session
	s.mu.Unlock()

	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User: dto.UserResponse{
			Id:    session.User.Id,
			Email: session.User.Email,
			Name:  session.User.Name,
		},
	}, nil
}

// sweep drops expired sessions. Callers hold s.mu.
func (s *authService) sweep(now time.Time) {
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
		}
	}
}

func mapIdentityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return serverutils.ErrUnauthorized
	case errors.Is(err, identity.ErrRegistrationUnsupported):
		return serverutils.NewValidationError("email", err.Error())
	}
	return err
}
