//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const orderColumns = "id, email, name, street, unit, city, state_code, zipcode, phone, transaction_id, status, amount, created"

var orderFieldColumns = map[string]string{
	"stateCode":     "state_code",
	"transactionId": "transaction_id",
}

type OrderRepository interface {
	// Create stores a new pending order and attaches the given items. When
	// some item ids do not exist the order and the remaining associations are
	// still stored and a *domain.UnknownItemsError is returned with the order.
	Create(ctx context.Context, order domain.NewOrder, itemIDs []int64) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, id int64, update domain.OrderUpdate) (domain.Order, error)
	AddItem(ctx context.Context, orderID, itemID int64) (domain.Order, error)
	RemoveItem(ctx context.Context, orderID, itemID int64) (domain.Order, error)
	MarkConfirmed(ctx context.Context, id int64) (domain.Order, error)
	MarkShipped(ctx context.Context, id int64) (domain.Order, error)
	MarkCompleted(ctx context.Context, id int64) (domain.Order, error)
	// Remove hides the order from reads; the row is kept.
	Remove(ctx context.Context, id int64) error
	// Delete erases the order and its item associations.
	Delete(ctx context.Context, id int64) error
	IsRemoved(ctx context.Context, id int64) (bool, error)
}

type OrderDBRepository struct {
	*sql.DB
	cipher FieldCipher
}

func NewOrderRepository(db *sql.DB, cipher FieldCipher) OrderRepository {
	return &OrderDBRepository{DB: db, cipher: cipher}
}

func (r *OrderDBRepository) Create(ctx context.Context, order domain.NewOrder, itemIDs []int64) (domain.Order, error) {
	if err := validateCustomer(order.Customer); err != nil {
		return domain.Order{}, err
	}
	if order.Amount.IsNegative() {
		return domain.Order{}, errors.Wrap(domain.ErrBadRequest, "order amount must not be negative")
	}
	enc, err := r.encryptCustomer(order.Customer)
	if err != nil {
		return domain.Order{}, err
	}

	var id int64
	var unknown []int64
	err = withTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (email, name, street, unit, city, state_code, zipcode, phone, transaction_id, status, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			enc.Email, enc.Name, enc.Street, enc.Unit, enc.City, enc.StateCode, enc.Zipcode, enc.Phone,
			enc.TransactionID, domain.OrderStatusPending, order.Amount)
		if err != nil {
			return errors.Wrap(err, "insert order")
		}
		if id, err = res.LastInsertId(); err != nil {
			return errors.Wrap(err, "order id")
		}

		for _, itemID := range itemIDs {
			found, err := exists(ctx, tx, "items", itemID, "")
			if err != nil {
				return err
			}
			if !found {
				unknown = append(unknown, itemID)
				continue
			}
			if err := insertOrderItem(ctx, tx, id, itemID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	created, err := r.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if len(unknown) > 0 {
		return created, &domain.UnknownItemsError{OrderID: id, ItemIDs: unknown}
	}
	return created, nil
}

func (r *OrderDBRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	return r.getOrder(ctx, r.DB, id)
}

func (r *OrderDBRepository) GetAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.QueryContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE is_deleted = 0 ORDER BY created DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer closeRows(rows)

	orders := []domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}
	return orders, nil
}

func (r *OrderDBRepository) Update(ctx context.Context, id int64, update domain.OrderUpdate) (domain.Order, error) {
	fields := map[string]any{}
	for name, value := range update.PIIFields() {
		enc, err := r.cipher.Encrypt(value)
		if err != nil {
			return domain.Order{}, err
		}
		fields[name] = enc
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return domain.Order{}, errors.Wrapf(domain.ErrBadRequest, "invalid order status %q", *update.Status)
		}
		fields["status"] = *update.Status
	}
	if update.Amount != nil {
		if update.Amount.IsNegative() {
			return domain.Order{}, errors.Wrap(domain.ErrBadRequest, "order amount must not be negative")
		}
		fields["amount"] = *update.Amount
	}

	sets, args, err := PartialUpdate(fields, orderFieldColumns)
	if err != nil {
		return domain.Order{}, err
	}
	res, err := r.ExecContext(ctx, updateByID("orders", sets, "is_deleted = 0"), append(args, id)...)
	if err != nil {
		return domain.Order{}, errors.Wrapf(err, "update order %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Order{}, err
	} else if n == 0 {
		return domain.Order{}, errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	return r.Get(ctx, id)
}

func (r *OrderDBRepository) AddItem(ctx context.Context, orderID, itemID int64) (domain.Order, error) {
	if orderID == 0 || itemID == 0 {
		return domain.Order{}, errors.Wrap(domain.ErrBadRequest, "order id and item id are required")
	}

	var order domain.Order
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := requireOrderAndItem(ctx, tx, orderID, itemID); err != nil {
			return err
		}
		if err := insertOrderItem(ctx, tx, orderID, itemID); err != nil {
			return err
		}
		var err error
		order, err = r.getOrder(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *OrderDBRepository) RemoveItem(ctx context.Context, orderID, itemID int64) (domain.Order, error) {
	if orderID == 0 || itemID == 0 {
		return domain.Order{}, errors.Wrap(domain.ErrBadRequest, "order id and item id are required")
	}

	var order domain.Order
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := requireOrderAndItem(ctx, tx, orderID, itemID); err != nil {
			return err
		}

		var assocID int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM orders_items WHERE order_id = ? AND item_id = ? ORDER BY id LIMIT 1",
			orderID, itemID).Scan(&assocID)
		if errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(domain.ErrNotFound, "item %d is not part of order %d", itemID, orderID)
		}
		if err != nil {
			return errors.Wrapf(err, "find item %d in order %d", itemID, orderID)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM orders_items WHERE id = ?", assocID); err != nil {
			return errors.Wrapf(err, "remove item %d from order %d", itemID, orderID)
		}

		order, err = r.getOrder(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (r *OrderDBRepository) MarkConfirmed(ctx context.Context, id int64) (domain.Order, error) {
	return r.setStatus(ctx, id, domain.OrderStatusConfirmed)
}

func (r *OrderDBRepository) MarkShipped(ctx context.Context, id int64) (domain.Order, error) {
	return r.setStatus(ctx, id, domain.OrderStatusShipped)
}

func (r *OrderDBRepository) MarkCompleted(ctx context.Context, id int64) (domain.Order, error) {
	return r.setStatus(ctx, id, domain.OrderStatusCompleted)
}

// setStatus overwrites the status unconditionally; transitions are not
// checked for direction.
func (r *OrderDBRepository) setStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	res, err := r.ExecContext(ctx, "UPDATE orders SET status = ? WHERE id = ? AND is_deleted = 0", status, id)
	if err != nil {
		return domain.Order{}, errors.Wrapf(err, "set status of order %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Order{}, err
	} else if n == 0 {
		return domain.Order{}, errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	return r.Get(ctx, id)
}

func (r *OrderDBRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "UPDATE orders SET is_deleted = 1 WHERE id = ? AND is_deleted = 0", id)
	if err != nil {
		return errors.Wrapf(err, "remove order %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	return nil
}

func (r *OrderDBRepository) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM orders_items WHERE order_id = ?", id); err != nil {
			return errors.Wrapf(err, "delete items of order %d", id)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
		if err != nil {
			return errors.Wrapf(err, "delete order %d", id)
		}
		n, err := affected(res)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrapf(domain.ErrNotFound, "order %d", id)
		}
		return nil
	})
}

func (r *OrderDBRepository) IsRemoved(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := r.QueryRowContext(ctx, "SELECT is_deleted FROM orders WHERE id = ?", id).Scan(&removed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	if err != nil {
		return false, errors.Wrapf(err, "check order %d", id)
	}
	return removed, nil
}

func (r *OrderDBRepository) getOrder(ctx context.Context, q querier, id int64) (domain.Order, error) {
	row := q.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ? AND is_deleted = 0", id)
	order, err := r.scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, errors.Wrapf(domain.ErrNotFound, "order %d", id)
	}
	if err != nil {
		return domain.Order{}, err
	}

	order.ListItems, err = queryItems(ctx, q, `
		SELECT i.id, i.name, i.description, i.price, i.shipping, i.quantity, i.created, i.is_sold, i.image
		FROM orders_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, id)
	if err != nil {
		return domain.Order{}, errors.Wrapf(err, "items of order %d", id)
	}
	return order, nil
}

// scanOrder reads one order row and decrypts its customer fields.
func (r *OrderDBRepository) scanOrder(row rowScanner) (domain.Order, error) {
	var order domain.Order
	c := &order.Customer
	err := row.Scan(&order.ID, &c.Email, &c.Name, &c.Street, &c.Unit, &c.City, &c.StateCode,
		&c.Zipcode, &c.Phone, &c.TransactionID, &order.Status, &order.Amount, &order.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, err
	}
	if err != nil {
		return domain.Order{}, errors.Wrap(err, "scan order")
	}
	order.Customer, err = r.decryptCustomer(order.Customer)
	if err != nil {
		return domain.Order{}, errors.Wrapf(err, "order %d", order.ID)
	}
	return order, nil
}

func (r *OrderDBRepository) encryptCustomer(c domain.Customer) (domain.Customer, error) {
	return mapCustomer(c, r.cipher.Encrypt)
}

func (r *OrderDBRepository) decryptCustomer(c domain.Customer) (domain.Customer, error) {
	return mapCustomer(c, r.cipher.Decrypt)
}

func mapCustomer(c domain.Customer, fn func(string) (string, error)) (domain.Customer, error) {
	fields := []*string{&c.Email, &c.Name, &c.Street, &c.Unit, &c.City, &c.StateCode, &c.Zipcode, &c.Phone, &c.TransactionID}
	for _, f := range fields {
		v, err := fn(*f)
		if err != nil {
			return domain.Customer{}, err
		}
		*f = v
	}
	return c, nil
}

func validateCustomer(c domain.Customer) error {
	required := []struct {
		name, value string
	}{
		{"email", c.Email},
		{"name", c.Name},
		{"street", c.Street},
		{"city", c.City},
		{"stateCode", c.StateCode},
		{"zipcode", c.Zipcode},
	}
	for _, f := range required {
		if f.value == "" {
			return errors.Wrapf(domain.ErrBadRequest, "order %s is required", f.name)
		}
	}
	return nil
}

func requireOrderAndItem(ctx context.Context, q querier, orderID, itemID int64) error {
	found, err := exists(ctx, q, "orders", orderID, "is_deleted = 0")
	if err != nil {
		return err
	}
	if !found {
		return errors.Wrapf(domain.ErrNotFound, "order %d", orderID)
	}
	found, err = exists(ctx, q, "items", itemID, "")
	if err != nil {
		return err
	}
	if !found {
		return errors.Wrapf(domain.ErrNotFound, "item %d", itemID)
	}
	return nil
}

func insertOrderItem(ctx context.Context, q querier, orderID, itemID int64) error {
	_, err := q.ExecContext(ctx, "INSERT INTO orders_items (order_id, item_id) VALUES (?, ?)", orderID, itemID)
	return errors.Wrapf(err, "add item %d to order %d", itemID, orderID)
}
