package httpapi

import (
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsemenov/pressroom/internal/logging"
	"github.com/dsemenov/pressroom/internal/server/auth"
	"github.com/dsemenov/pressroom/internal/server/config"
	"github.com/dsemenov/pressroom/internal/server/metrics"
	"github.com/dsemenov/pressroom/internal/server/repositories/repomanager"
	"github.com/dsemenov/pressroom/internal/server/services"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
	}

	repos := repomanager.NewPostgresRepositoryManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(":0", logger,
		services.NewUserService(db, repos, cfg),
		services.NewContentService(db, repos),
		services.NewMediaService(db, repos),
		services.NewUploadService(cfg),
		metrics.New(),
		testSecret,
	)
	return srv, mock, db
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken(1, "admin", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

func editorToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.GenerateToken(2, "editor", []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

func doRequest(srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func contentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "type", "title", "body", "slug", "author",
		"featured", "image", "category", "position", "company",
		"created_at", "updated_at",
	})
}

func TestMutatingRoutes_NoToken(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/content"},
		{http.MethodPut, "/api/content/1"},
		{http.MethodDelete, "/api/content/1"},
		{http.MethodPost, "/api/media"},
		{http.MethodDelete, "/api/media/1"},
	}

	for _, rt := range routes {
		w := doRequest(srv, rt.method, rt.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
		assert.Contains(t, w.Body.String(), "No token, authorization denied")
	}

	// no storage call may have happened
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMutatingRoutes_InvalidToken(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	w := doRequest(srv, http.MethodDelete, "/api/content/1", "garbage.token.here", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMutatingRoutes_NonAdmin(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/content", editorToken(t),
		`{"type":"page","title":"T","content":"B","slug":"t","author":"A"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
	require.NoError(t, mock.ExpectationsWereMet(), "role check must run before any store call")
}

func TestCreateContent_Admin(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO content .* RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec(`INSERT INTO content_tags`).
		WithArgs(int64(7), "ai", "edu").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT .* FROM content WHERE id = \$1`).
		WillReturnRows(contentRows().AddRow(
			int64(7), "blog", "X", "Y", "x", "A",
			false, nil, nil, nil, nil, now, now))
	mock.ExpectQuery(`SELECT tag FROM content_tags`).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("ai").AddRow("edu"))

	w := doRequest(srv, http.MethodPost, "/api/content", adminToken(t),
		`{"type":"blog","title":"X","content":"Y","slug":"x","author":"A","tags":["ai","edu"]}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID   int64    `json:"id"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, []string{"ai", "edu"}, resp.Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContent_Public(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM content WHERE id = \$1`).
		WillReturnRows(contentRows().AddRow(
			int64(3), "page", "About", "B", "about", "A",
			false, nil, nil, nil, nil, now, now))
	mock.ExpectQuery(`SELECT tag FROM content_tags`).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}))

	w := doRequest(srv, http.MethodGet, "/api/content/3", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"about"`)
}

func TestGetContent_NotFound(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	mock.ExpectQuery(`SELECT .* FROM content WHERE id = \$1`).
		WillReturnError(sql.ErrNoRows)

	w := doRequest(srv, http.MethodGet, "/api/content/404", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetContent_NonNumericID(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/content/abc", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet(), "no query for an unparseable id")
}

func TestDeleteContent_NotFound(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	mock.ExpectExec(`DELETE FROM content WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doRequest(srv, http.MethodDelete, "/api/content/404", adminToken(t), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMedia_Success(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	mock.ExpectExec(`DELETE FROM media WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doRequest(srv, http.MethodDelete, "/api/media/11", adminToken(t), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Media deleted")
}

func TestCreateContent_DuplicateSlugIs500(t *testing.T) {
	srv, mock, _ := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO content .* RETURNING id`).
		WillReturnError(errDuplicate{})
	mock.ExpectRollback()

	w := doRequest(srv, http.MethodPost, "/api/content", adminToken(t),
		`{"type":"blog","title":"X","content":"Y","slug":"x","author":"A"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server error")
}

func TestLogin_BadBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/auth/login", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

// errDuplicate stands in for a driver-level unique violation.
type errDuplicate struct{}

func (errDuplicate) Error() string { return "duplicate key value violates unique constraint" }
