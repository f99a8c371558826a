package domain

import "errors"

// Auth / identity errors.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is deliberately generic: it never reveals whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidRole        = errors.New("invalid role")
	ErrBioTooLong         = errors.New("bio exceeds maximum length")
)

// Movie errors.
var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrMissingFields      = errors.New("missing required fields")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidYear        = errors.New("year out of range")
	ErrInvalidRating      = errors.New("rating out of range")
	ErrMissingCreator     = errors.New("movie has no creator")
)

// Media upload errors.
var (
	ErrMissingFile          = errors.New("no image file provided")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
	ErrUploadFailed         = errors.New("image upload failed")
)
