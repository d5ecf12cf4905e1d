package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every embedded migration that is not yet recorded in
// schema_migrations, in file name order.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if _, err := sqlDB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return errors.Wrap(err, "create schema_migrations")
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return errors.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimPrefix(file, "migrations/")
		applied, err := isApplied(ctx, sqlDB, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		content, err := migrations.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "read migration %s", version)
		}
		err = withTx(ctx, sqlDB, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return errors.Wrapf(err, "execute migration %s", version)
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version)
			return errors.Wrapf(err, "record migration %s", version)
		})
		if err != nil {
			return err
		}
		log.Printf("applied migration %s", version)
	}
	return nil
}

func isApplied(ctx context.Context, sqlDB *sql.DB, version string) (bool, error) {
	var one int
	err := sqlDB.QueryRowContext(ctx, "SELECT 1 FROM schema_migrations WHERE version = ?", version).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "check migration %s", version)
	}
	return true, nil
}
