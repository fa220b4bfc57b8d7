package postgres

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
)

// DB is the slice of *sql.DB the journal needs.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type journalDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &journalDB{db: db}
}

func (j *journalDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := j.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "journal exec failed")
	}
	return res, nil
}
