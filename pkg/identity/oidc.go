package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc"
	"golang.org/x/oauth2"
)

type OIDCConfig struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
}

type passwordExchanger interface {
	PasswordCredentialsToken(ctx context.Context, username, password string) (*oauth2.Token, error)
}

type tokenVerifier interface {
	verify(ctx context.Context, rawIDToken string) (Identity, error)
}

// RemoteProvider checks credentials against an OpenID Connect issuer with
// the resource owner password grant and verifies the returned ID token.
type RemoteProvider struct {
	exchanger passwordExchanger
	verifier  tokenVerifier
}

func NewRemoteProvider(ctx context.Context, cfg OIDCConfig) (*RemoteProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover oidc issuer: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	return &RemoteProvider{
		exchanger: oauthCfg,
		verifier:  &oidcVerifier{v: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})},
	}, nil
}

func (p *RemoteProvider) Login(ctx context.Context, email, password string) (Identity, error) {
	token, err := p.exchanger.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil &&
			(re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return Identity{}, errors.New("token response has no id_token")
	}

	id, err := p.verifier.verify(ctx, rawIDToken)
	if err != nil {
		return Identity{}, fmt.Errorf("id token verification failed: %w", err)
	}
	if id.Email == "" {
		id.Email = email
	}

	return id, nil
}

func (p *RemoteProvider) Register(ctx context.Context, name, email, password string) (Identity, error) {
	return Identity{}, ErrRegistrationUnsupported
}

type oidcVerifier struct {
	v *oidc.IDTokenVerifier
}

func (o *oidcVerifier) verify(ctx context.Context, rawIDToken string) (Identity, error) {
	idToken, err := o.v.Verify(ctx, rawIDToken)
	if err != nil {
		return Identity{}, err
	}

	var claims struct {
		Sub               string `json:"sub"`
		Email             string `json:"email"`
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("claim parse failed: %w", err)
	}

	name := claims.Name
	if name == "" {
		name = claims.PreferredUsername
	}

	return Identity{Subject: claims.Sub, Email: claims.Email, Name: name}, nil
}
