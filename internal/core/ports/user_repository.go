package ports

import (
	"context"

	"github.com/filmmemories/backend/internal/core/domain"
)

// UserRepository defines the persistence interface for user identity records.
// Email lookups expect the normalized (lowercase) form.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a batch of user ids in one round trip, keyed by id.
	// Unknown ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}
