package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vidstream/vidstream/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByUsernameOrEmail(username, email string) (*model.User, error)
	UpdateRefreshToken(id string, token *string) error
	UpdatePassword(id, passwordHash string) error
	UpdateAccount(id string, fullName, email *string) error
	UpdateAvatar(id, avatarURL string) error
	UpdateCoverImage(id, coverImageURL string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, username, email, full_name, password_hash, avatar_url, cover_image_url, refresh_token, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		user.AvatarURL, user.CoverImageURL, user.RefreshToken, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// Unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

// ByUsernameOrEmail matches either identifier; empty arguments never match.
func (r *userRepository) ByUsernameOrEmail(username, email string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE (username = $1 AND $1 != '') OR (email = $2 AND $2 != '')`

	err := r.db.Get(user, query, username, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

// UpdateRefreshToken overwrites the stored refresh token. A nil token clears
// the session; rotation replaces, never appends.
func (r *userRepository) UpdateRefreshToken(id string, token *string) error {
	query := `UPDATE users SET refresh_token = $1, updated_at = $2 WHERE id = $3`

	return r.exec(query, token, time.Now().UTC(), id)
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	return r.exec(query, passwordHash, time.Now().UTC(), id)
}

// UpdateAccount patches only the provided fields.
func (r *userRepository) UpdateAccount(id string, fullName, email *string) error {
	query := `UPDATE users SET full_name = COALESCE($1, full_name), email = COALESCE($2, email), updated_at = $3 WHERE id = $4`

	err := r.exec(query, fullName, email, time.Now().UTC(), id)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUser
		}
	}
	return err
}

func (r *userRepository) UpdateAvatar(id, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $1, updated_at = $2 WHERE id = $3`

	return r.exec(query, avatarURL, time.Now().UTC(), id)
}

func (r *userRepository) UpdateCoverImage(id, coverImageURL string) error {
	query := `UPDATE users SET cover_image_url = $1, updated_at = $2 WHERE id = $3`

	return r.exec(query, coverImageURL, time.Now().UTC(), id)
}

func (r *userRepository) exec(query string, args ...any) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
