//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const homepageColumns = "id, greeting, message, created, is_active"

type HomepageRepository interface {
	// Create stores new homepage content and makes it the active one.
	Create(ctx context.Context, greeting, message string) (domain.Homepage, error)
	GetActive(ctx context.Context) (domain.Homepage, error)
	GetAll(ctx context.Context) ([]domain.Homepage, error)
	Update(ctx context.Context, id int64, update domain.HomepageUpdate) (domain.Homepage, error)
	Delete(ctx context.Context, id int64) error
}

type HomepageDBRepository struct {
	*sql.DB
}

func NewHomepageRepository(db *sql.DB) HomepageRepository {
	return &HomepageDBRepository{DB: db}
}

func (r *HomepageDBRepository) Create(ctx context.Context, greeting, message string) (domain.Homepage, error) {
	if greeting == "" || message == "" {
		return domain.Homepage{}, errors.Wrap(domain.ErrBadRequest, "greeting and message are required")
	}

	var page domain.Homepage
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE homepage SET is_active = 0 WHERE is_active = 1"); err != nil {
			return errors.Wrap(err, "deactivate homepage")
		}
		res, err := tx.ExecContext(ctx, "INSERT INTO homepage (greeting, message, is_active) VALUES (?, ?, 1)", greeting, message)
		if err != nil {
			return errors.Wrap(err, "insert homepage")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "homepage id")
		}
		page, err = getHomepage(ctx, tx, "id = ?", id)
		return err
	})
	if err != nil {
		return domain.Homepage{}, err
	}
	return page, nil
}

func (r *HomepageDBRepository) GetActive(ctx context.Context) (domain.Homepage, error) {
	return getHomepage(ctx, r.DB, "is_active = 1")
}

func (r *HomepageDBRepository) GetAll(ctx context.Context) ([]domain.Homepage, error) {
	rows, err := r.QueryContext(ctx, "SELECT "+homepageColumns+" FROM homepage ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "query homepage")
	}
	defer closeRows(rows)

	pages := []domain.Homepage{}
	for rows.Next() {
		var p domain.Homepage
		if err := rows.Scan(&p.ID, &p.Greeting, &p.Message, &p.Created, &p.IsActive); err != nil {
			return nil, errors.Wrap(err, "scan homepage")
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate homepage")
	}
	return pages, nil
}

func (r *HomepageDBRepository) Update(ctx context.Context, id int64, update domain.HomepageUpdate) (domain.Homepage, error) {
	sets, args, err := PartialUpdate(update.Fields(), nil)
	if err != nil {
		return domain.Homepage{}, err
	}
	res, err := r.ExecContext(ctx, updateByID("homepage", sets, ""), append(args, id)...)
	if err != nil {
		return domain.Homepage{}, errors.Wrapf(err, "update homepage %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Homepage{}, err
	} else if n == 0 {
		return domain.Homepage{}, errors.Wrapf(domain.ErrNotFound, "homepage %d", id)
	}
	return getHomepage(ctx, r.DB, "id = ?", id)
}

func (r *HomepageDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "DELETE FROM homepage WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete homepage %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "homepage %d", id)
	}
	return nil
}

func getHomepage(ctx context.Context, q querier, where string, args ...any) (domain.Homepage, error) {
	row := q.QueryRowContext(ctx, "SELECT "+homepageColumns+" FROM homepage WHERE "+where+" ORDER BY id DESC LIMIT 1", args...)

	var p domain.Homepage
	err := row.Scan(&p.ID, &p.Greeting, &p.Message, &p.Created, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Homepage{}, errors.Wrap(domain.ErrNotFound, "homepage")
	}
	if err != nil {
		return domain.Homepage{}, errors.Wrap(err, "get homepage")
	}
	return p, nil
}
