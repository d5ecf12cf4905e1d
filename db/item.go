//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const itemColumns = "id, name, description, price, shipping, quantity, created, is_sold, image"

var itemFieldColumns = map[string]string{
	"isSold": "is_sold",
}

type ItemRepository interface {
	Create(ctx context.Context, item domain.NewItem) (domain.Item, error)
	Get(ctx context.Context, id int64) (domain.Item, error)
	GetAll(ctx context.Context) ([]domain.Item, error)
	GetAllAvailable(ctx context.Context) ([]domain.Item, error)
	GetAllSold(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, id int64, update domain.ItemUpdate) (domain.Item, error)
	Sell(ctx context.Context, id int64) (domain.Item, error)
	MarkSold(ctx context.Context, id int64) (domain.Item, error)
	UploadImage(ctx context.Context, id int64, image string) (domain.Item, error)
	DeleteImage(ctx context.Context, id int64) (domain.Item, error)
	Delete(ctx context.Context, id int64) error
}

type ItemDBRepository struct {
	*sql.DB
}

func NewItemRepository(db *sql.DB) ItemRepository {
	return &ItemDBRepository{DB: db}
}

func (r *ItemDBRepository) Create(ctx context.Context, item domain.NewItem) (domain.Item, error) {
	switch {
	case item.Name == "":
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item name is required")
	case item.Description == "":
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item description is required")
	case item.Price == nil:
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item price is required")
	case item.Shipping == nil:
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item shipping is required")
	case item.Quantity == nil:
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item quantity is required")
	case *item.Quantity < 0:
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item quantity must not be negative")
	case item.Price.IsNegative() || item.Shipping.IsNegative():
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item price and shipping must not be negative")
	}

	res, err := r.ExecContext(ctx,
		"INSERT INTO items (name, description, price, shipping, quantity, is_sold) VALUES (?, ?, ?, ?, ?, 0)",
		item.Name, item.Description, *item.Price, *item.Shipping, *item.Quantity)
	if err != nil {
		return domain.Item{}, errors.Wrap(err, "insert item")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Item{}, errors.Wrap(err, "item id")
	}
	return getItem(ctx, r.DB, id)
}

func (r *ItemDBRepository) Get(ctx context.Context, id int64) (domain.Item, error) {
	return getItem(ctx, r.DB, id)
}

func (r *ItemDBRepository) GetAll(ctx context.Context) ([]domain.Item, error) {
	return queryItems(ctx, r.DB, "SELECT "+itemColumns+" FROM items ORDER BY created DESC, id DESC")
}

func (r *ItemDBRepository) GetAllAvailable(ctx context.Context) ([]domain.Item, error) {
	return r.getAllBySold(ctx, false)
}

func (r *ItemDBRepository) GetAllSold(ctx context.Context) ([]domain.Item, error) {
	return r.getAllBySold(ctx, true)
}

func (r *ItemDBRepository) getAllBySold(ctx context.Context, sold bool) ([]domain.Item, error) {
	return queryItems(ctx, r.DB,
		"SELECT "+itemColumns+" FROM items WHERE is_sold = ? ORDER BY created DESC, id DESC", sold)
}

func (r *ItemDBRepository) Update(ctx context.Context, id int64, update domain.ItemUpdate) (domain.Item, error) {
	if (update.Price != nil && update.Price.IsNegative()) || (update.Shipping != nil && update.Shipping.IsNegative()) {
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item price and shipping must not be negative")
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "item quantity must not be negative")
		}
		// keep is_sold in step with the stock unless it is set explicitly
		if update.IsSold == nil {
			sold := *update.Quantity == 0
			update.IsSold = &sold
		}
	}

	sets, args, err := PartialUpdate(update.Fields(), itemFieldColumns)
	if err != nil {
		return domain.Item{}, err
	}
	res, err := r.ExecContext(ctx, updateByID("items", sets, ""), append(args, id)...)
	if err != nil {
		return domain.Item{}, errors.Wrapf(err, "update item %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Item{}, err
	} else if n == 0 {
		return domain.Item{}, errors.Wrapf(domain.ErrNotFound, "item %d", id)
	}
	return getItem(ctx, r.DB, id)
}

// Sell takes one unit out of stock. The decrement is a single conditional
// statement, so two concurrent sales of the last unit cannot both succeed.
func (r *ItemDBRepository) Sell(ctx context.Context, id int64) (domain.Item, error) {
	var item domain.Item
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE items
			SET quantity = quantity - 1,
			    is_sold = CASE WHEN quantity = 1 THEN 1 ELSE 0 END
			WHERE id = ? AND quantity > 0`, id)
		if err != nil {
			return errors.Wrapf(err, "sell item %d", id)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		if n == 0 {
			found, err := exists(ctx, tx, "items", id, "")
			if err != nil {
				return err
			}
			if !found {
				return errors.Wrapf(domain.ErrNotFound, "item %d", id)
			}
			return errors.Wrapf(domain.ErrBadRequest, "item %d is sold out", id)
		}
		item, err = getItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (r *ItemDBRepository) MarkSold(ctx context.Context, id int64) (domain.Item, error) {
	res, err := r.ExecContext(ctx, "UPDATE items SET quantity = 0, is_sold = 1 WHERE id = ?", id)
	if err != nil {
		return domain.Item{}, errors.Wrapf(err, "mark item %d sold", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Item{}, err
	} else if n == 0 {
		return domain.Item{}, errors.Wrapf(domain.ErrNotFound, "item %d", id)
	}
	return getItem(ctx, r.DB, id)
}

func (r *ItemDBRepository) UploadImage(ctx context.Context, id int64, image string) (domain.Item, error) {
	if image == "" {
		return domain.Item{}, errors.Wrap(domain.ErrBadRequest, "image is required")
	}
	return r.setImage(ctx, id, &image)
}

func (r *ItemDBRepository) DeleteImage(ctx context.Context, id int64) (domain.Item, error) {
	return r.setImage(ctx, id, nil)
}

func (r *ItemDBRepository) setImage(ctx context.Context, id int64, image *string) (domain.Item, error) {
	res, err := r.ExecContext(ctx, "UPDATE items SET image = ? WHERE id = ?", image, id)
	if err != nil {
		return domain.Item{}, errors.Wrapf(err, "set image of item %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Item{}, err
	} else if n == 0 {
		return domain.Item{}, errors.Wrapf(domain.ErrNotFound, "item %d", id)
	}
	return getItem(ctx, r.DB, id)
}

func (r *ItemDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete item %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "item %d", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.Item, error) {
	var item domain.Item
	var image sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Shipping,
		&item.Quantity, &item.Created, &item.IsSold, &image)
	if err != nil {
		return domain.Item{}, err
	}
	if image.Valid {
		item.Image = &image.String
	}
	return item, nil
}

func getItem(ctx context.Context, q querier, id int64) (domain.Item, error) {
	row := q.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Item{}, errors.Wrapf(domain.ErrNotFound, "item %d", id)
	}
	if err != nil {
		return domain.Item{}, errors.Wrapf(err, "get item %d", id)
	}
	return item, nil
}

func queryItems(ctx context.Context, q querier, query string, args ...any) ([]domain.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query items")
	}
	defer closeRows(rows)

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate items")
	}
	return items, nil
}
