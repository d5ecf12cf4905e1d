package db

import "database/sql"

// NewAdminRepositoryWithComparator replaces the bcrypt comparison so tests can
// observe which hashes a lookup is checked against.
func NewAdminRepositoryWithComparator(db *sql.DB, cost int, compare func(hash, secret []byte) error) AdminRepository {
	return &AdminDBRepository{DB: db, cost: cost, compare: compare}
}
