// Package content provides PostgreSQL-backed storage for content records
// (pages, blog posts, testimonials) and their tag rows.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dsemenov/pressroom/internal/common"
	"github.com/dsemenov/pressroom/internal/dbx"
	"github.com/dsemenov/pressroom/internal/server/models"
)

// PostgresRepository implements content storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contentColumns = `id, type, title, body, slug, author, featured, image, category, position, company, created_at, updated_at`

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// nullIfEmpty maps "" to NULL so optional columns stay NULL instead of
// accumulating empty strings.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// flatten translates the tagged domain shape into the flat column set
// persisted by the content table.
func flatten(c *models.Content) (featured bool, image, category, position, company sql.NullString) {
	if c.Blog != nil {
		featured = c.Blog.Featured
		image = nullIfEmpty(c.Blog.Image)
		category = nullIfEmpty(c.Blog.Category)
	}
	if c.Testimonial != nil {
		position = nullIfEmpty(c.Testimonial.Position)
		company = nullIfEmpty(c.Testimonial.Company)
	}
	return
}

// scanContent reads one flat row and rebuilds the tagged domain shape.
// Columns belonging to another type are dropped, not leaked.
func scanContent(scan func(dest ...any) error) (*models.Content, error) {
	var (
		c                                  models.Content
		featured                           bool
		image, category, position, company sql.NullString
	)

	err := scan(&c.ID, &c.Type, &c.Title, &c.Body, &c.Slug, &c.Author,
		&featured, &image, &category, &position, &company,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	switch c.Type {
	case models.ContentTypeBlog:
		c.Blog = &models.BlogFields{
			Category: category.String,
			Featured: featured,
			Image:    image.String,
		}
	case models.ContentTypeTestimonial:
		c.Testimonial = &models.TestimonialFields{
			Position: position.String,
			Company:  company.String,
		}
	}

	return &c, nil
}

func (r *PostgresRepository) List(ctx context.Context, typeFilter models.ContentType) ([]*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content ORDER BY updated_at DESC`
	args := []any{}
	if typeFilter != "" {
		query = `SELECT ` + contentColumns + ` FROM content WHERE type = $1 ORDER BY updated_at DESC`
		args = append(args, typeFilter)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select content: %w", err)
	}
	defer rows.Close()

	var result []*models.Content
	for rows.Next() {
		item, err := scanContent(rows.Scan)
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

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	item, err := scanContent(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, c *models.Content) (int64, error) {
	query := `
		INSERT INTO content (type, title, body, slug, author, featured, image, category, position, company)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	featured, image, category, position, company := flatten(c)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.Type, c.Title, c.Body, c.Slug, c.Author,
		featured, image, category, position, company).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, common.ErrorAlreadyExists
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, c *models.Content) error {
	query := `
		UPDATE content
		SET type = $1, title = $2, body = $3, slug = $4, author = $5,
			featured = $6, image = $7, category = $8, position = $9, company = $10,
			updated_at = now()
		WHERE id = $11
	`
	featured, image, category, position, company := flatten(c)

	res, err := r.db.ExecContext(ctx, query,
		c.Type, c.Title, c.Body, c.Slug, c.Author,
		featured, image, category, position, company, id)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content WHERE id = $1`, id)
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

func (r *PostgresRepository) Tags(ctx context.Context, contentID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM content_tags WHERE content_id = $1 ORDER BY tag`, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresRepository) InsertTags(ctx context.Context, contentID int64, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	query := `INSERT INTO content_tags (content_id, tag) VALUES `
	args := make([]any, 0, len(tags)+1)
	args = append(args, contentID)
	for i, tag := range tags {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($1, $%d)", i+2)
		args = append(args, tag)
	}
	query += ` ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTags(ctx context.Context, contentID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM content_tags WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
