package domain

import (
	"fmt"
	"time"
)

// DefaultMovieImage is used when a record carries no image reference.
const DefaultMovieImage = "uploads/images/default-movie.jpg"

const (
	// MinReleaseYear is the year of the first motion picture.
	MinReleaseYear = 1888

	maxDescriptionLength = 1000

	MinRating = 0.0
	MaxRating = 10.0
)

// Movie is the owned resource of the system. CreatorID is bound to the
// authenticated principal at creation and is never client-settable; any
// future mutation or deletion must compare the acting principal's id
// against CreatorID in addition to requiring authentication.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	Director    string    `json:"director"`
	Image       string    `json:"image"`
	Rating      float64   `json:"rating"`
	CreatorID   string    `json:"creator_id"`
	Comments    []string  `json:"comments"`
	Likes       []string  `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate enforces the data-model bounds at write time, independent of any
// input parsing done at the transport layer.
func (m *Movie) Validate() error {
	if m.Title == "" || m.Description == "" || m.Director == "" {
		return ErrMissingFields
	}
	if len(m.Description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	maxYear := time.Now().UTC().Year() + 1
	if m.Year < MinReleaseYear || m.Year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidYear, MinReleaseYear, maxYear)
	}
	if m.Rating < MinRating || m.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %.0f and %.0f", ErrInvalidRating, MinRating, MaxRating)
	}
	if m.CreatorID == "" {
		return ErrMissingCreator
	}
	return nil
}
