// Package storage opens the local sqlite cache and wires the repositories on
// top of it. Schema changes ship as embedded goose migrations and run on
// every start.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/coursecopilot/copilot/internal/client/migrations"
	"github.com/coursecopilot/copilot/internal/client/repositories/mirror"
	"github.com/coursecopilot/copilot/internal/client/repositories/pending"
	"github.com/coursecopilot/copilot/internal/client/repositories/session"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Mirror  mirror.Repository
	Pending pending.Repository
	Session session.Repository
	DB      *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Mirror:  mirror.NewSQLiteRepository(db),
		Pending: pending.NewSQLiteRepository(db),
		Session: session.NewSQLiteRepository(db),
		DB:      db,
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
