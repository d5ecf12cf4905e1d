package db_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mural-studio/backend/db"
	"github.com/mural-studio/backend/domain"
)

// newTestDB opens a migrated SQLite database in a temporary directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("unexpected error for db.Open: %s", err.Error())
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(context.Background(), sqlDB); err != nil {
		t.Fatalf("unexpected error for db.Migrate: %s", err.Error())
	}
	return sqlDB
}

func newItem(name string, quantity int64) domain.NewItem {
	price := decimal.RequireFromString("120.50")
	shipping := decimal.RequireFromString("15")
	return domain.NewItem{
		Name:        name,
		Description: name + " print",
		Price:       &price,
		Shipping:    &shipping,
		Quantity:    &quantity,
	}
}

func createItem(t *testing.T, repo db.ItemRepository, name string, quantity int64) domain.Item {
	t.Helper()
	item, err := repo.Create(context.Background(), newItem(name, quantity))
	if err != nil {
		t.Fatalf("unexpected error for Create: %s", err.Error())
	}
	return item
}
