package repomanager

import (
	"context"
	"database/sql"

	"github.com/swivl/traveldiary/internal/dbx"
	"github.com/swivl/traveldiary/internal/server/repositories/entries"
	"github.com/swivl/traveldiary/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
}
