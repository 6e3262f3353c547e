// Package media provides PostgreSQL-backed storage for media asset records.
package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dsemenov/pressroom/internal/common"
	"github.com/dsemenov/pressroom/internal/dbx"
	"github.com/dsemenov/pressroom/internal/server/models"
)

// PostgresRepository implements media storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const mediaColumns = `id, type, title, url, thumbnail_url, file_size, dimensions, uploaded_by, created_at`

func scanMedia(scan func(dest ...any) error) (*models.Media, error) {
	var (
		m          models.Media
		thumbnail  sql.NullString
		fileSize   sql.NullInt64
		dimensions sql.NullString
	)

	err := scan(&m.ID, &m.Type, &m.Title, &m.URL, &thumbnail, &fileSize, &dimensions, &m.UploadedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.ThumbnailURL = thumbnail.String
	m.FileSize = fileSize.Int64
	m.Dimensions = dimensions.String
	return &m, nil
}

func (r *PostgresRepository) List(ctx context.Context, typeFilter models.MediaType) ([]*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media ORDER BY created_at DESC`
	args := []any{}
	if typeFilter != "" {
		query = `SELECT ` + mediaColumns + ` FROM media WHERE type = $1 ORDER BY created_at DESC`
		args = append(args, typeFilter)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select media: %w", err)
	}
	defer rows.Close()

	var result []*models.Media
	for rows.Next() {
		item, err := scanMedia(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	item, err := scanMedia(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, m *models.Media) (int64, error) {
	query := `
		INSERT INTO media (type, title, url, thumbnail_url, file_size, dimensions, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	thumbnail := sql.NullString{String: m.ThumbnailURL, Valid: m.ThumbnailURL != ""}
	fileSize := sql.NullInt64{Int64: m.FileSize, Valid: m.FileSize != 0}
	dimensions := sql.NullString{String: m.Dimensions, Valid: m.Dimensions != ""}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		m.Type, m.Title, m.URL, thumbnail, fileSize, dimensions, m.UploadedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
