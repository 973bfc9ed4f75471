package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/model"
	"github.com/vidstream/vidstream/internal/repository"
	"github.com/vidstream/vidstream/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the session lifecycle: credential checks, token pair
// issuance, refresh rotation and logout. A user has at most one live refresh
// token; every login or refresh overwrites it.
type AuthService struct {
	userRepository repository.UserRepository
	tokens         *TokenService
	isProduction   bool
	refreshExpiry  time.Duration
}

func NewAuthService(userRepository repository.UserRepository, tokens *TokenService, isProduction bool, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		isProduction:   isProduction,
		refreshExpiry:  refreshExpiry,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Login verifies credentials by username or email (either may be supplied)
// and issues a fresh token pair. The new refresh token replaces whatever was
// stored — one session per user.
func (s *AuthService) Login(username, email, password string) (*model.PublicUser, *TokenPair, error) {
	// Identifiers are stored normalized, so the lookup normalizes too
	username = validation.NormalizeUsername(username)
	email = validation.NormalizeEmail(email)

	if username == "" && email == "" {
		return nil, nil, apperr.Validation("username or email is required")
	}
	if password == "" {
		return nil, nil, apperr.Validation("password is required")
	}

	user, err := s.userRepository.ByUsernameOrEmail(username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same message as a wrong password, to avoid user enumeration
			return nil, nil, apperr.InvalidCredentials()
		}
		return nil, nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, nil, apperr.InvalidCredentials()
	}

	pair, err := s.issueAndStore(user)
	if err != nil {
		return nil, nil, err
	}

	return user.Public(), pair, nil
}

// Refresh exchanges a valid, still-current refresh token for a new pair.
// Rotation: the presented token must exactly match the stored value, and the
// stored value is replaced, permanently invalidating the old token.
func (s *AuthService) Refresh(presented string) (*TokenPair, error) {
	if presented == "" {
		return nil, apperr.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.VerifyRefresh(presented)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.ByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	// A mismatch means the token was superseded by a later rotation or the
	// session was logged out — either way it is permanently dead.
	if !user.HasRefreshToken() || *user.RefreshToken != presented {
		return nil, apperr.TokenExpiredOrUsed("refresh token is expired or already used")
	}

	return s.issueAndStore(user)
}

// Logout clears the stored refresh token. Idempotent: logging out an already
// logged-out user succeeds.
func (s *AuthService) Logout(userID string) error {
	err := s.userRepository.UpdateRefreshToken(userID, nil)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return apperr.Internal(fmt.Errorf("failed to clear refresh token: %w", err))
	}
	return nil
}

// ChangePassword re-hashes and persists the new password after verifying the
// old one. The current session stays valid: the stored refresh token is
// deliberately left untouched.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("oldPassword and newPassword are required")
	}

	user, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	err = s.ComparePassword(oldPassword, user.PasswordHash)
	if err != nil {
		return apperr.InvalidCredentials()
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	err = s.userRepository.UpdatePassword(userID, hash)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to update password: %w", err))
	}

	return nil
}

// issueAndStore mints a token pair and persists the refresh token onto the
// user record. Concurrent calls for the same user race last-write-wins; the
// store's single-row update is the only coordination (a documented
// limitation, not a guarantee).
func (s *AuthService) issueAndStore(user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	err = s.userRepository.UpdateRefreshToken(user.ID, &refreshToken)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to store refresh token: %w", err))
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// SetAuthCookies delivers both tokens as HTTP-only cookies alongside the JSON
// body (dual delivery for browser and non-browser clients).
func (s *AuthService) SetAuthCookies(w http.ResponseWriter, pair *TokenPair) {
	expiry := time.Now().Add(s.refreshExpiry)
	s.setCookie(w, "accessToken", pair.AccessToken, expiry)
	s.setCookie(w, "refreshToken", pair.RefreshToken, expiry)
}

func (s *AuthService) ClearAuthCookies(w http.ResponseWriter) {
	s.setCookie(w, "accessToken", "", time.Unix(0, 0))
	s.setCookie(w, "refreshToken", "", time.Unix(0, 0))
}

func (s *AuthService) setCookie(w http.ResponseWriter, name, value string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
