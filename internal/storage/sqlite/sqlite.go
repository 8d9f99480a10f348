// Package sqlite provides the SQLite-backed implementation of
// storage.Storage. Importing go-sqlite3 registers the "sqlite3" driver
// with database/sql.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/migrations"
)

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	storage.BaseStore
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.DSN, applies pending migrations
// and returns a ready-to-use *SQLite.
func New(ctx context.Context, cfg config.Storage, log *logger.Logger) (*SQLite, error) {
	if isFilePath(cfg.DSN) {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create data dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	if err := migrations.Migrate(ctx, db.DB, migrations.SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	// SQLite serialises writers anyway; a single connection avoids
	// SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	log.Debug().Str("func", "sqlite.New").Str("dsn", cfg.DSN).Msg("connected to database successfully")

	return &SQLite{BaseStore: storage.BaseStore{
		DB:                db,
		Builder:           sq.StatementBuilder.PlaceholderFormat(sq.Question),
		IsUniqueViolation: isUniqueViolation,
	}}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// isFilePath reports whether dsn is a plain path whose parent directory
// may need creating.
func isFilePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
