package ports

import (
	"context"

	"github.com/filmmemories/backend/internal/core/domain"
)

// AuthService implements registration and login. Both return the persisted
// user together with a freshly issued bearer token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
