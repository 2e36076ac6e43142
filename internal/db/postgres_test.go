package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx"
	pgxv4 "github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
)

func TestCheckErrNoRows(t *testing.T) {
	// The pool's QueryRow().Scan hands back pgx/v4's sentinel; missing
	// it makes every empty-table read look like a failure, starting
	// with the rate_table_versions read on a fresh database.
	assert.True(t, CheckErrNoRows(pgxv4.ErrNoRows))
	assert.True(t, CheckErrNoRows(pgx.ErrNoRows))
	assert.True(t, CheckErrNoRows(sql.ErrNoRows))

	assert.True(t, CheckErrNoRows(fmt.Errorf("GetLatestRateTable(): %w", pgxv4.ErrNoRows)))

	assert.False(t, CheckErrNoRows(nil))
	assert.False(t, CheckErrNoRows(errors.New("no rows in result set")))
}
