package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/model"
	"github.com/vidstream/vidstream/internal/repository"
)

type authFixture struct {
	users    repository.UserRepository
	auth     *AuthService
	accounts *AccountService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	database := newTestDB(t)
	users := repository.NewUserRepository(database)
	tokens := newTestTokenService()
	auth := NewAuthService(users, tokens, false, 240*time.Hour)
	accounts := NewAccountService(users, newFakeStorage(), auth)

	return &authFixture{users: users, auth: auth, accounts: accounts}
}

func (f *authFixture) register(t *testing.T, username, email, password string) *model.PublicUser {
	t.Helper()

	user, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		FullName: "Test User",
		Password: password,
	}, makeFileHeader(t, "avatar.png", pngBytes), nil)
	require.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "a@x.com", "p1")

	user, pair, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// refresh token is persisted onto the user record
	stored, err := f.users.ByUsernameOrEmail("alice", "")
	require.NoError(t, err)
	require.True(t, stored.HasRefreshToken())
	assert.Equal(t, pair.RefreshToken, *stored.RefreshToken)
}

func TestLogin_MixedCaseIdentifier(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "Alice", "Alice@Example.com", "p1")

	// identifiers are stored case-folded; login folds the same way
	_, pair, err := f.auth.Login("Alice", "", "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)

	_, _, err = f.auth.Login("", "ALICE@EXAMPLE.COM", "p1")
	require.NoError(t, err)
}

func TestLogin_ByEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "a@x.com", "p1")

	_, pair, err := f.auth.Login("", "a@x.com", "p1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "a@x.com", "p1")

	_, _, errWrongPassword := f.auth.Login("alice", "", "nope")
	_, _, errUnknownUser := f.auth.Login("nobody", "", "p1")

	require.ErrorIs(t, errWrongPassword, apperr.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownUser, apperr.ErrInvalidCredentials)
	assert.Equal(t, apperr.MessageOf(errWrongPassword), apperr.MessageOf(errUnknownUser))
}

func TestLogin_MissingIdentifier(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.auth.Login("", "", "p1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLogin_OverwritesPriorSession(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "a@x.com", "p1")

	_, first, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)
	_, second, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)

	// Single-session model: the first refresh token is dead
	_, err = f.auth.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrTokenExpiredOrUsed)

	_, err = f.auth.Refresh(second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_Rotation(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "alice", "a@x.com", "p1")

	_, pair, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)

	rotated, err := f.auth.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the consumed token is permanently invalid
	_, err = f.auth.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrTokenExpiredOrUsed)

	// the rotated token still works
	_, err = f.auth.Refresh(rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_EmptyToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Refresh("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestRefresh_ForgedToken(t *testing.T) {
	f := newAuthFixture(t)

	forged := NewTokenService("access-secret", "other-refresh-secret", 15*time.Minute, 240*time.Hour)
	token, err := forged.IssueRefresh("user-123")
	require.NoError(t, err)

	_, err = f.auth.Refresh(token)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestRefresh_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	token, err := newTestTokenService().IssueRefresh("ghost")
	require.NoError(t, err)

	_, err = f.auth.Refresh(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogout_InvalidatesRefresh(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.register(t, "alice", "a@x.com", "p1")

	_, pair, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(registered.ID))

	_, err = f.auth.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrTokenExpiredOrUsed)
}

func TestLogout_Idempotent(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.register(t, "alice", "a@x.com", "p1")

	require.NoError(t, f.auth.Logout(registered.ID))
	require.NoError(t, f.auth.Logout(registered.ID))
	// unknown users succeed too
	require.NoError(t, f.auth.Logout("ghost"))
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.register(t, "alice", "a@x.com", "p1")

	require.NoError(t, f.auth.ChangePassword(registered.ID, "p1", "p2"))

	_, _, err := f.auth.Login("alice", "", "p1")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, _, err = f.auth.Login("alice", "", "p2")
	assert.NoError(t, err)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.register(t, "alice", "a@x.com", "p1")

	err := f.auth.ChangePassword(registered.ID, "nope", "p2")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestChangePassword_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	err := f.auth.ChangePassword("ghost", "p1", "p2")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestChangePassword_KeepsSession(t *testing.T) {
	f := newAuthFixture(t)
	registered := f.register(t, "alice", "a@x.com", "p1")

	_, pair, err := f.auth.Login("alice", "", "p1")
	require.NoError(t, err)

	require.NoError(t, f.auth.ChangePassword(registered.ID, "p1", "p2"))

	// the existing refresh token survives a password change
	_, err = f.auth.Refresh(pair.RefreshToken)
	assert.NoError(t, err)
}
