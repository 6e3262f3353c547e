package media

import (
	"context"

	"github.com/dsemenov/pressroom/internal/server/models"
)

// Repository is storage for media asset records. Media have no child
// rows and no update operation; records are created and deleted whole.
type Repository interface {
	// List returns records ordered by created_at descending. An empty
	// typeFilter returns everything.
	List(ctx context.Context, typeFilter models.MediaType) ([]*models.Media, error)

	// Get returns one record or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Media, error)

	// Insert stores a new record and returns its generated id.
	Insert(ctx context.Context, m *models.Media) (int64, error)

	// Delete removes the record. Zero rows affected yields
	// common.ErrorNotFound.
	Delete(ctx context.Context, id int64) error
}
