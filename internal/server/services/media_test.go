package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsemenov/pressroom/internal/common"
	"github.com/dsemenov/pressroom/internal/server/models"
	"github.com/dsemenov/pressroom/internal/server/repositories/repomanager"
)

func newMediaServiceWithMock(t *testing.T) (*MediaService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewMediaService(db, repomanager.NewPostgresRepositoryManager()), mock, db
}

func mediaRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "title", "url", "thumbnail_url", "file_size", "dimensions", "uploaded_by", "created_at",
	}).AddRow(int64(7), "image", "Hero", "https://cdn/hero.png", "https://cdn/hero_t.png", int64(2048), "800x600", "alice", time.Now())
}

func TestMediaCreateReadsBack(t *testing.T) {
	svc, mock, db := newMediaServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO media .* RETURNING id`).
		WithArgs("image", "Hero", "https://cdn/hero.png", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT .* FROM media WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(mediaRow())

	got, err := svc.Create(context.Background(), &models.Media{
		Type:         models.MediaTypeImage,
		Title:        "Hero",
		URL:          "https://cdn/hero.png",
		ThumbnailURL: "https://cdn/hero_t.png",
		FileSize:     2048,
		Dimensions:   "800x600",
		UploadedBy:   "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, models.MediaTypeImage, got.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaListUnknownFilterMeansAll(t *testing.T) {
	svc, mock, db := newMediaServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM media ORDER BY created_at DESC`).
		WillReturnRows(mediaRow())

	items, err := svc.List(context.Background(), models.MediaType("gif"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaGetNotFound(t *testing.T) {
	svc, mock, db := newMediaServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM media WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMediaDeleteMissing(t *testing.T) {
	svc, mock, db := newMediaServiceWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM media WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), 5)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}
