package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/events"
	"github.com/spec-kit/auth-gateway/internal/repository"
)

// AuthService is the authentication gate: it verifies a username/password
// pair against the credential store and mints a signed token on success.
type AuthService struct {
	users      repository.UserRepository
	codec      *auth.TokenCodec
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		codec:      auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		dispatcher: dispatcher,
	}
}

// Login authenticates the credential pair and returns a signed token. An
// unknown username and a wrong password both come back as
// domain.ErrBadCredentials so callers cannot enumerate registered usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.publishLoginFailed(ctx, username, "user not found")
			return "", time.Time{}, domain.ErrBadCredentials
		}
		return "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publishLoginFailed(ctx, username, "password mismatch")
		return "", time.Time{}, domain.ErrBadCredentials
	}

	token, expiresAt, err := s.codec.Encode(user.Username, user.Role)
	if err != nil {
		return "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginSucceeded,
		Username:  user.Username,
		Timestamp: time.Now(),
		Payload:   events.LoginSucceededPayload{Role: user.Role, TokenExpiresAt: expiresAt},
	})
	return token, expiresAt, nil
}

// TokenCodec exposes the underlying codec for middleware usage.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.codec
}

func (s *AuthService) publishLoginFailed(ctx context.Context, username, reason string) {
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginFailed,
		Username:  username,
		Timestamp: time.Now(),
		Payload:   events.LoginFailedPayload{Reason: reason},
	})
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
