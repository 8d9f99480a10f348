// Package postgres provides the PostgreSQL-backed implementation of
// storage.Storage using the pgx driver through database/sql.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/student-management-api/internal/config"
	"github.com/aanand-mishra/student-management-api/internal/logger"
	"github.com/aanand-mishra/student-management-api/internal/storage"
	"github.com/aanand-mishra/student-management-api/migrations"
)

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	storage.BaseStore
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to cfg.DSN, applies pending migrations and returns a
// ready-to-use *Postgres.
func New(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Postgres, error) {
	db, err := sqlx.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "postgres.New").Msg("error occurred during database connection")
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "postgres.New").Msg("error connecting database (ping)")
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if err := migrations.Migrate(ctx, db.DB, migrations.Postgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: %w", err)
	}

	log.Info().Str("func", "postgres.New").Msg("connected to database successfully")

	return newStore(db), nil
}

func newStore(db *sqlx.DB) *Postgres {
	return &Postgres{BaseStore: storage.BaseStore{
		DB:                db,
		Builder:           sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		IsUniqueViolation: isUniqueViolation,
	}}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
