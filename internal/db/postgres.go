package db

import (
	"cediflow/common/config"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx"
	pgxv4 "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

func NewPostgresClient(ctx context.Context, cfg *config.Postgres) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	pool, err := pgxpool.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// CheckErrNoRows reports whether err is a no-rows result. The pool's
// QueryRow().Scan returns pgx/v4's sentinel, which is a distinct value
// from both sql.ErrNoRows and the v3 one, so all three are checked.
func CheckErrNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, pgxv4.ErrNoRows)
}
