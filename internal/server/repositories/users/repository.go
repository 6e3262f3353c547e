package users

import (
	"context"

	"github.com/dsemenov/pressroom/internal/server/models"
)

// Repository is storage for admin-API accounts.
type Repository interface {
	// Create stores a new account and fills in its generated id.
	// A username collision yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns one account or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Get returns one account by id or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.User, error)
}
