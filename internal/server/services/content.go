// Package services holds the application services sitting between the
// HTTP layer and the repositories.
package services

import (
	"context"
	"database/sql"

	"github.com/dsemenov/pressroom/internal/dbx"
	"github.com/dsemenov/pressroom/internal/server/models"
	"github.com/dsemenov/pressroom/internal/server/repositories/repomanager"
)

// ContentService implements the content operations: list/get with tags
// populated, and create/update/delete where the content row and its tag
// rows change inside one transaction.
type ContentService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, repos repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repos: repos}
}

// dedupe collapses duplicate tags preserving first-seen order, so the
// uniqueness constraint never trips on input like ["ai","ai"].
func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// List returns content ordered by updated_at descending, each record with
// its tags populated. A filter value outside the known types is treated
// as no filter.
func (s *ContentService) List(ctx context.Context, typeFilter models.ContentType) ([]*models.Content, error) {
	if !typeFilter.Valid() {
		typeFilter = ""
	}

	repo := s.repos.Content(s.db)

	items, err := repo.List(ctx, typeFilter)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		tags, err := repo.Tags(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.Tags = tags
	}
	return items, nil
}

// Get returns one record with tags populated, or common.ErrorNotFound.
func (s *ContentService) Get(ctx context.Context, id int64) (*models.Content, error) {
	repo := s.repos.Content(s.db)

	item, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := repo.Tags(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Tags = tags

	return item, nil
}

// Create inserts the record and its tags in one transaction and returns
// the persisted state re-read from storage, never the input echoed back.
func (s *ContentService) Create(ctx context.Context, c *models.Content) (*models.Content, error) {
	tags := dedupe(c.Tags)

	var id int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Content(tx)

		newID, err := repo.Insert(ctx, c)
		if err != nil {
			return err
		}
		id = newID

		return repo.InsertTags(ctx, id, tags)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Update replaces every writable field of the record and its whole tag
// set in one transaction. The row is updated first so a missing id fails
// fast with common.ErrorNotFound before any tag row is touched.
func (s *ContentService) Update(ctx context.Context, id int64, c *models.Content) (*models.Content, error) {
	tags := dedupe(c.Tags)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Content(tx)

		if err := repo.Update(ctx, id, c); err != nil {
			return err
		}
		if err := repo.DeleteTags(ctx, id); err != nil {
			return err
		}
		return repo.InsertTags(ctx, id, tags)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the record; the FK cascade removes its tag rows.
func (s *ContentService) Delete(ctx context.Context, id int64) error {
	return s.repos.Content(s.db).Delete(ctx, id)
}
