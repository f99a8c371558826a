package ports

import (
	"context"
	"time"
)

// CreateMovieInput carries the raw form values for a new movie. Year and
// Rating arrive as strings from the multipart form and are parsed and
// bound-checked by the service. CreatorID is always the authenticated
// principal's id, never a client-supplied value.
type CreateMovieInput struct {
	Title       string
	Description string
	Year        string
	Director    string
	Rating      string
	ImageURL    string
	CreatorID   string
}

// CreatorSummary is the hydrated owner reference embedded in movie responses.
type CreatorSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// MovieDetail is a movie record hydrated with its creator summary.
type MovieDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Year        int             `json:"year"`
	Director    string          `json:"director"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	Comments    []string        `json:"comments"`
	Likes       []string        `json:"likes"`
	Creator     *CreatorSummary `json:"creator"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovieService covers the owned-resource lifecycle: create, list, get.
type MovieService interface {
	Create(ctx context.Context, in CreateMovieInput) (*MovieDetail, error)
	List(ctx context.Context) ([]MovieDetail, error)
	ListByCreator(ctx context.Context, creatorID string) ([]MovieDetail, error)
	GetByID(ctx context.Context, id string) (*MovieDetail, error)
}
