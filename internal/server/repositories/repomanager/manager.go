package repomanager

import (
	"context"
	"database/sql"

	"github.com/wellnessdiary/api/internal/dbx"
	"github.com/wellnessdiary/api/internal/server/repositories/entries"
	"github.com/wellnessdiary/api/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
