package service_test

import (
	"context"
	"testing"

	"github.com/jihun/brolly/internal/core/repository"
	"github.com/jihun/brolly/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.authService.Register(ctx, "alice", "pw1", "Alice", "010-1234", "Design")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Handle)
	assert.False(t, user.Admin)

	// Stored credential is a salted hash, never the plaintext
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "pw1")

	got, err := env.authService.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)
}

func TestRegisterTrimsAndValidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.authService.Register(ctx, "  ", "pw", "Name", "", "")
	assert.ErrorIs(t, err, service.ErrMissingField)

	_, err = env.authService.Register(ctx, "bob", "   ", "Name", "", "")
	assert.ErrorIs(t, err, service.ErrMissingField)

	_, err = env.authService.Register(ctx, "bob", "pw", "", "", "")
	assert.ErrorIs(t, err, service.ErrMissingField)

	// Optional fields stay empty instead of becoming empty strings
	user, err := env.authService.Register(ctx, " carol ", "pw", " Carol ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Handle)
	assert.Equal(t, "Carol", user.Name)
	assert.Nil(t, user.Phone)
	assert.Nil(t, user.Org)
}

func TestRegisterDuplicateHandle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.authService.Register(ctx, "alice", "pw1", "Alice", "", "")
	require.NoError(t, err)

	_, err = env.authService.Register(ctx, "alice", "other", "Impostor", "", "")
	assert.ErrorIs(t, err, repository.ErrDuplicateHandle)

	// The loser left no partial row behind
	var count int
	require.NoError(t, env.db.Get(&count, "SELECT count(*) FROM user WHERE handle = ?", "alice"))
	assert.Equal(t, 1, count)
}

func TestAuthenticateFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.authService.Register(ctx, "alice", "pw1", "Alice", "", "")
	require.NoError(t, err)

	_, err = env.authService.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, service.ErrBadPassword)

	_, err = env.authService.Authenticate(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdminBypass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.authService.Authenticate(ctx, testAdminHandle, testAdminPass)
	require.NoError(t, err)
	assert.True(t, admin.Admin)
	assert.Zero(t, admin.ID)

	// A wrong password on the bypass handle fails without ever
	// reaching the table, even if a member registered that handle.
	_, err = env.authService.Register(ctx, testAdminHandle, "member-pw", "Not The Keeper", "", "")
	require.NoError(t, err)

	_, err = env.authService.Authenticate(ctx, testAdminHandle, "member-pw")
	assert.ErrorIs(t, err, service.ErrBadPassword)
}

func TestAuthorizeAndExchange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.authService.Register(ctx, "alice", "pw1", "Alice", "", "")
	require.NoError(t, err)

	code, err := env.authService.Authorize(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, code.Code)
	assert.Equal(t, user.ID, code.UserID)

	token, err := env.authService.ExchangeAuthCode(ctx, code.Code)
	require.NoError(t, err)

	claims, err := env.authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.Admin)

	// Codes are single use
	_, err = env.authService.ExchangeAuthCode(ctx, code.Code)
	assert.Error(t, err)
}

func TestAuthorizeBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.authService.Authorize(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
