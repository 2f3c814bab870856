package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/acquisitions/internal/dbx"
	"github.com/dmitrijs2005/acquisitions/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// run them either directly on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
