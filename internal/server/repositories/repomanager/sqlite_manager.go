package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pmdadmin/internal/dbx"
	"github.com/dmitrijs2005/pmdadmin/internal/server/migrations"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager backs the record store with a local SQLite file,
// for development and single-node installs.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}
