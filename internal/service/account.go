package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/model"
	"github.com/vidstream/vidstream/internal/repository"
	"github.com/vidstream/vidstream/internal/storage"
	"github.com/vidstream/vidstream/internal/validation"
)

// AccountService handles registration and profile mutation. Media assets are
// delegated to the external storage through its narrow upload contract.
type AccountService struct {
	userRepository repository.UserRepository
	storage        storage.Storage
	auth           *AuthService
}

func NewAccountService(userRepository repository.UserRepository, storage storage.Storage, auth *AuthService) *AccountService {
	return &AccountService{
		userRepository: userRepository,
		storage:        storage,
		auth:           auth,
	}
}

// RegisterInput is the typed request shape validated at the boundary.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// Register validates fields, checks uniqueness, uploads the required avatar
// (and optional cover image), then persists the normalized user. No store
// write happens before validation and the avatar upload succeed.
func (s *AccountService) Register(ctx context.Context, in RegisterInput, avatar, coverImage *multipart.FileHeader) (*model.PublicUser, error) {
	in.Username = validation.NormalizeUsername(in.Username)
	in.Email = validation.NormalizeEmail(in.Email)

	err := validation.ValidateUsername(in.Username)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	err = validation.ValidateEmail(in.Email)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if in.FullName == "" {
		return nil, apperr.Validation("fullName is required")
	}
	if in.Password == "" {
		return nil, apperr.Validation("password is required")
	}
	if avatar == nil {
		return nil, apperr.Validation("avatar is required")
	}

	existing, err := s.userRepository.ByUsernameOrEmail(in.Username, in.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperr.Internal(fmt.Errorf("failed to check existing user: %w", err))
	}
	if existing != nil {
		return nil, apperr.Conflict("user already exists")
	}

	err = validation.ValidateFile(avatar, validation.ImageConstraints)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	avatarURL, err := s.uploadImage(ctx, "avatars", avatar)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if coverImage != nil {
		err = validation.ValidateFile(coverImage, validation.ImageConstraints)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		url, uploadErr := s.uploadImage(ctx, "covers", coverImage)
		if uploadErr != nil {
			return nil, uploadErr
		}
		coverURL = &url
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:            uuid.New().String(),
		Username:      in.Username,
		Email:         in.Email,
		FullName:      in.FullName,
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, apperr.Conflict("user already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user.Public(), nil
}

// UpdateAccount patches fullName and/or email; at least one must be present.
func (s *AccountService) UpdateAccount(userID string, fullName, email *string) (*model.PublicUser, error) {
	if fullName == nil && email == nil {
		return nil, apperr.Validation("fullName or email is required")
	}

	if email != nil {
		normalized := validation.NormalizeEmail(*email)
		err := validation.ValidateEmail(normalized)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		email = &normalized
	}
	if fullName != nil && *fullName == "" {
		return nil, apperr.Validation("fullName must not be empty")
	}

	err := s.userRepository.UpdateAccount(userID, fullName, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update account: %w", err))
	}

	return s.publicByID(userID)
}

// UpdateAvatar uploads the newly supplied asset and patches only avatarUrl.
func (s *AccountService) UpdateAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*model.PublicUser, error) {
	if avatar == nil {
		return nil, apperr.Validation("avatar image is required")
	}

	err := validation.ValidateFile(avatar, validation.ImageConstraints)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	url, err := s.uploadImage(ctx, "avatars", avatar)
	if err != nil {
		return nil, err
	}

	err = s.userRepository.UpdateAvatar(userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update avatar: %w", err))
	}

	return s.publicByID(userID)
}

// UpdateCoverImage uploads the newly supplied asset and patches only coverImageUrl.
func (s *AccountService) UpdateCoverImage(ctx context.Context, userID string, coverImage *multipart.FileHeader) (*model.PublicUser, error) {
	if coverImage == nil {
		return nil, apperr.Validation("cover image is required")
	}

	err := validation.ValidateFile(coverImage, validation.ImageConstraints)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	url, err := s.uploadImage(ctx, "covers", coverImage)
	if err != nil {
		return nil, err
	}

	err = s.userRepository.UpdateCoverImage(userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to update cover image: %w", err))
	}

	return s.publicByID(userID)
}

// CurrentUser returns the sanitized record for an authenticated user.
func (s *AccountService) CurrentUser(userID string) (*model.PublicUser, error) {
	return s.publicByID(userID)
}

func (s *AccountService) publicByID(userID string) (*model.PublicUser, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}
	return user.Public(), nil
}

// uploadImage stores the asset under a randomized key and returns its
// retrievable URL. The multipart temp file is released exactly once via the
// deferred Close, on success and failure alike.
func (s *AccountService) uploadImage(ctx context.Context, prefix string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("failed to open upload: %w", err))
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close upload", "error", closeErr)
		}
	}()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(header.Filename))

	err = s.storage.Save(ctx, key, file)
	if err != nil {
		return "", apperr.UploadFailed("failed to upload media", err)
	}

	url := s.storage.PublicURL(key)
	if url == "" {
		return "", apperr.UploadFailed("uploaded media has no retrievable URL", nil)
	}

	return url, nil
}
