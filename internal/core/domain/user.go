package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultAvatar is assigned to accounts created without a profile picture.
const DefaultAvatar = "uploads/images/default-avatar.jpg"

const maxBioLength = 500

// User models a registered member of the community. The password hash is
// never serialized.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio,omitempty"`
	FavoriteMovies []string  `json:"favorite_movies,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email address. Uniqueness checks and
// lookups always go through the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate enforces user-level bounds at write time.
func (u *User) Validate() error {
	if len(u.Bio) > maxBioLength {
		return ErrBioTooLong
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return ErrInvalidRole
	}
	return nil
}
