package postgres

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
)

type reportDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &reportDB{db: db}
}

// QueryContext hands back *sql.Rows directly; it already satisfies RowScanner.
func (r *reportDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "report query failed")
	}
	return rows, nil
}
