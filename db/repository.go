package db

import (
	"context"
	"database/sql"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// querier is satisfied by both *sql.DB and *sql.Tx so that scanning helpers
// can run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the SQLite database described by dsn. Foreign keys are
// always enforced and write transactions take the database lock up front so
// that concurrent writers queue instead of failing mid-transaction.
func Open(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite3", withDefaults(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return sqlDB, nil
}

func withDefaults(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000", "_txlock=immediate"}
	var missing []string
	for _, p := range params {
		key := p[:strings.Index(p, "=")]
		if !strings.Contains(dsn, key+"=") {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

func withTx(ctx context.Context, sqlDB *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed tx.Rollback: %s", err.Error())
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed rows.Close: %s", err.Error())
	}
}

// exists reports whether table has a row with the given id matching the
// optional extra predicate.
func exists(ctx context.Context, q querier, table string, id int64, extra string) (bool, error) {
	query := "SELECT 1 FROM " + table + " WHERE id = ?"
	if extra != "" {
		query += " AND " + extra
	}
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "check %s %d", table, id)
	}
	return true, nil
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "rows affected")
}
