//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const muralColumns = "id, name, description, created, is_archived, image"

type MuralRepository interface {
	Create(ctx context.Context, name, description string) (domain.Mural, error)
	Get(ctx context.Context, id int64) (domain.Mural, error)
	GetAll(ctx context.Context) ([]domain.Mural, error)
	GetArchived(ctx context.Context) ([]domain.Mural, error)
	Update(ctx context.Context, id int64, update domain.MuralUpdate) (domain.Mural, error)
	Archive(ctx context.Context, id int64) (domain.Mural, error)
	Unarchive(ctx context.Context, id int64) (domain.Mural, error)
	UploadImage(ctx context.Context, id int64, image string) (domain.Mural, error)
	Delete(ctx context.Context, id int64) error
}

type MuralDBRepository struct {
	*sql.DB
}

func NewMuralRepository(db *sql.DB) MuralRepository {
	return &MuralDBRepository{DB: db}
}

func (r *MuralDBRepository) Create(ctx context.Context, name, description string) (domain.Mural, error) {
	if name == "" || description == "" {
		return domain.Mural{}, errors.Wrap(domain.ErrBadRequest, "mural name and description are required")
	}
	res, err := r.ExecContext(ctx, "INSERT INTO murals (name, description) VALUES (?, ?)", name, description)
	if err != nil {
		return domain.Mural{}, errors.Wrap(err, "insert mural")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Mural{}, errors.Wrap(err, "mural id")
	}
	return r.Get(ctx, id)
}

func (r *MuralDBRepository) Get(ctx context.Context, id int64) (domain.Mural, error) {
	row := r.QueryRowContext(ctx, "SELECT "+muralColumns+" FROM murals WHERE id = ?", id)
	mural, err := scanMural(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Mural{}, errors.Wrapf(domain.ErrNotFound, "mural %d", id)
	}
	if err != nil {
		return domain.Mural{}, errors.Wrapf(err, "get mural %d", id)
	}
	return mural, nil
}

func (r *MuralDBRepository) GetAll(ctx context.Context) ([]domain.Mural, error) {
	return r.query(ctx, false)
}

func (r *MuralDBRepository) GetArchived(ctx context.Context) ([]domain.Mural, error) {
	return r.query(ctx, true)
}

func (r *MuralDBRepository) query(ctx context.Context, archived bool) ([]domain.Mural, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT "+muralColumns+" FROM murals WHERE is_archived = ? ORDER BY created DESC, id DESC", archived)
	if err != nil {
		return nil, errors.Wrap(err, "query murals")
	}
	defer closeRows(rows)

	murals := []domain.Mural{}
	for rows.Next() {
		mural, err := scanMural(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan mural")
		}
		murals = append(murals, mural)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate murals")
	}
	return murals, nil
}

func (r *MuralDBRepository) Update(ctx context.Context, id int64, update domain.MuralUpdate) (domain.Mural, error) {
	sets, args, err := PartialUpdate(update.Fields(), nil)
	if err != nil {
		return domain.Mural{}, err
	}
	return r.exec(ctx, id, updateByID("murals", sets, ""), append(args, id)...)
}

func (r *MuralDBRepository) Archive(ctx context.Context, id int64) (domain.Mural, error) {
	return r.exec(ctx, id, "UPDATE murals SET is_archived = 1 WHERE id = ?", id)
}

func (r *MuralDBRepository) Unarchive(ctx context.Context, id int64) (domain.Mural, error) {
	return r.exec(ctx, id, "UPDATE murals SET is_archived = 0 WHERE id = ?", id)
}

func (r *MuralDBRepository) UploadImage(ctx context.Context, id int64, image string) (domain.Mural, error) {
	if image == "" {
		return domain.Mural{}, errors.Wrap(domain.ErrBadRequest, "image is required")
	}
	return r.exec(ctx, id, "UPDATE murals SET image = ? WHERE id = ?", image, id)
}

func (r *MuralDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "DELETE FROM murals WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete mural %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "mural %d", id)
	}
	return nil
}

// exec runs a single-row mutation and returns the row afterwards.
func (r *MuralDBRepository) exec(ctx context.Context, id int64, query string, args ...any) (domain.Mural, error) {
	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Mural{}, errors.Wrapf(err, "update mural %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Mural{}, err
	} else if n == 0 {
		return domain.Mural{}, errors.Wrapf(domain.ErrNotFound, "mural %d", id)
	}
	return r.Get(ctx, id)
}

func scanMural(row rowScanner) (domain.Mural, error) {
	var mural domain.Mural
	var image sql.NullString
	if err := row.Scan(&mural.ID, &mural.Name, &mural.Description, &mural.Created, &mural.IsArchived, &image); err != nil {
		return domain.Mural{}, err
	}
	if image.Valid {
		mural.Image = &image.String
	}
	return mural, nil
}
