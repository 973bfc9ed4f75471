package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/model"
)

func newTestTokenService() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func testUser() *model.User {
	return &model.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice A",
	}
}

func TestIssueAndVerifyAccess(t *testing.T) {
	t.Parallel()

	s := newTestTokenService()
	user := testUser()

	token, err := s.IssueAccess(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.FullName, claims.FullName)
}

func TestIssueRefresh_MinimalClaims(t *testing.T) {
	t.Parallel()

	s := newTestTokenService()

	token, err := s.IssueRefresh("user-123")
	require.NoError(t, err)

	claims, err := s.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestIssueRefresh_DistinctValues(t *testing.T) {
	t.Parallel()

	s := newTestTokenService()

	first, err := s.IssueRefresh("user-123")
	require.NoError(t, err)
	second, err := s.IssueRefresh("user-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyAccess_Expired(t *testing.T) {
	t.Parallel()

	s := NewTokenService("access-secret", "refresh-secret", -1*time.Second, 240*time.Hour)

	token, err := s.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccess(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	t.Parallel()

	s := newTestTokenService()
	forged := NewTokenService("other-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)

	token, err := forged.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = s.VerifyAccess(token)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	t.Parallel()

	s := newTestTokenService()

	_, err := s.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	// Access and refresh tokens are signed with distinct secrets, so one can
	// never stand in for the other.
	s := newTestTokenService()

	token, err := s.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = s.VerifyRefresh(token)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}
