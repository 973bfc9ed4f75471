package model

import (
	"time"
)

// User is the persisted identity and credential record. PasswordHash and
// RefreshToken never leave the process; responses carry PublicUser instead.
type User struct {
	ID            string    `db:"id"`
	Username      string    `db:"username"` // stored case-folded and trimmed
	Email         string    `db:"email"`    // stored case-folded and trimmed
	FullName      string    `db:"full_name"`
	PasswordHash  string    `db:"password_hash"`
	AvatarURL     string    `db:"avatar_url"`
	CoverImageURL *string   `db:"cover_image_url"` // optional
	RefreshToken  *string   `db:"refresh_token"`   // at most one live value
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PublicUser is the sanitized projection returned to clients: credential
// fields stripped.
type PublicUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public returns the sanitized projection of u.
func (u *User) Public() *PublicUser {
	cover := ""
	if u.CoverImageURL != nil {
		cover = *u.CoverImageURL
	}
	return &PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.AvatarURL,
		CoverImage: cover,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// HasRefreshToken reports whether a session is currently active for u.
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != nil && *u.RefreshToken != ""
}
