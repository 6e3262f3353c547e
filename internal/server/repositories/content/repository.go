package content

import (
	"context"

	"github.com/dsemenov/pressroom/internal/server/models"
)

// Repository is row-level storage for content records and their tags.
// Methods take effect on whatever handle the repository was built over,
// so a caller composing a multi-statement write binds one repository to
// a transaction and calls several methods on it.
type Repository interface {
	// List returns records ordered by updated_at descending. An empty
	// typeFilter returns everything. Tags are not populated.
	List(ctx context.Context, typeFilter models.ContentType) ([]*models.Content, error)

	// Get returns one record without tags, or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Content, error)

	// Insert stores a new record and returns its generated id.
	// A slug collision yields common.ErrorAlreadyExists.
	Insert(ctx context.Context, c *models.Content) (int64, error)

	// Update replaces every writable column of the record. Zero rows
	// affected yields common.ErrorNotFound.
	Update(ctx context.Context, id int64, c *models.Content) error

	// Delete removes the record; tag rows go with it via FK cascade.
	// Zero rows affected yields common.ErrorNotFound.
	Delete(ctx context.Context, id int64) error

	// Tags returns the tag list for one record, sorted.
	Tags(ctx context.Context, contentID int64) ([]string, error)

	// InsertTags bulk-inserts (contentID, tag) pairs. Duplicates within
	// the batch collapse via the uniqueness constraint.
	InsertTags(ctx context.Context, contentID int64, tags []string) error

	// DeleteTags removes every tag row for the record.
	DeleteTags(ctx context.Context, contentID int64) error
}
