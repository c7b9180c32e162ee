// Package repomanager opens the record store database, runs its goose
// migrations and vends repositories bound to a *sql.DB or *sql.Tx.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/dbx"
	"github.com/dmitrijs2005/pmdadmin/internal/filex"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Records(db dbx.DBTX) records.Repository
}

// New returns the manager for a database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres, "postgres":
		return NewPostgresRepositoryManager(), nil
	case DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// Open connects and pings the database. For SQLite file DSNs the parent
// directory is created first.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == "postgres" {
		driver = DriverPostgres
	}
	if driver == DriverSQLite {
		if dir := sqliteDir(dsn); dir != "" {
			if _, err := filex.EnsureDir(dir); err != nil {
				return nil, err
			}
		}
	}

	db, err := sqlOpen(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return dir
}
