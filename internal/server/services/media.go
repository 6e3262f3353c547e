package services

import (
	"context"
	"database/sql"

	"github.com/dsemenov/pressroom/internal/server/models"
	"github.com/dsemenov/pressroom/internal/server/repositories/repomanager"
)

// MediaService implements the media operations. There is no update:
// media records are immutable once created, matching the admin UI.
type MediaService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewMediaService(db *sql.DB, repos repomanager.RepositoryManager) *MediaService {
	return &MediaService{db: db, repos: repos}
}

// List returns media ordered by created_at descending. A filter value
// outside the known types is treated as no filter.
func (s *MediaService) List(ctx context.Context, typeFilter models.MediaType) ([]*models.Media, error) {
	if !typeFilter.Valid() {
		typeFilter = ""
	}
	return s.repos.Media(s.db).List(ctx, typeFilter)
}

// Get returns one record or common.ErrorNotFound.
func (s *MediaService) Get(ctx context.Context, id int64) (*models.Media, error) {
	return s.repos.Media(s.db).Get(ctx, id)
}

// Create inserts the record and returns the persisted state re-read by
// its generated id.
func (s *MediaService) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	repo := s.repos.Media(s.db)

	id, err := repo.Insert(ctx, m)
	if err != nil {
		return nil, err
	}

	return repo.Get(ctx, id)
}

// Delete removes the record or returns common.ErrorNotFound.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	return s.repos.Media(s.db).Delete(ctx, id)
}
