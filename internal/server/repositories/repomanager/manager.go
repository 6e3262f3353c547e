// Package repomanager vends repository implementations bound to a DB
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsemenov/pressroom/internal/dbx"
	"github.com/dsemenov/pressroom/internal/server/repositories/content"
	"github.com/dsemenov/pressroom/internal/server/repositories/media"
	"github.com/dsemenov/pressroom/internal/server/repositories/users"
)

// RepositoryManager builds repositories over an arbitrary DBTX so a
// service can bind the same repository type either to the pool or to a
// transaction mid-write.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Content(db dbx.DBTX) content.Repository
	Media(db dbx.DBTX) media.Repository
}
