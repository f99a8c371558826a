package ports

import (
	"context"

	"github.com/filmmemories/backend/internal/core/domain"
)

// MovieRepository defines the persistence interface for movie records.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	// Find returns up to limit records ordered by creation time descending.
	Find(ctx context.Context, limit int64) ([]domain.Movie, error)
	FindByCreator(ctx context.Context, creatorID string) ([]domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
}
