package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

func TestLoginAfterJoin(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepository()
	cfg := testConfig()

	joinSvc := NewJoinService(cfg, repo, nil)
	authSvc := NewAuthService(cfg, repo, nil)

	require.NoError(t, joinSvc.Join(ctx, "alice", "password1"))

	token, expiresAt, err := authSvc.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(10*time.Hour), expiresAt, 5*time.Second)

	username, err := authSvc.TokenCodec().DecodeUsername(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	role, err := authSvc.TokenCodec().DecodeRole(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUserRepository()
	cfg := testConfig()

	joinSvc := NewJoinService(cfg, repo, nil)
	authSvc := NewAuthService(cfg, repo, nil)

	require.NoError(t, joinSvc.Join(ctx, "alice", "password1"))

	_, _, wrongPassword := authSvc.Login(ctx, "alice", "nope")
	_, _, unknownUser := authSvc.Login(ctx, "nobody", "password1")

	assert.ErrorIs(t, wrongPassword, domain.ErrBadCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrBadCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}
