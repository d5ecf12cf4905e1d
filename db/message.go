//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const messageColumns = "id, email, name, message, received, is_archived"

type MessageRepository interface {
	Create(ctx context.Context, email, name, message string) (domain.Message, error)
	Get(ctx context.Context, id int64) (domain.Message, error)
	GetAll(ctx context.Context) ([]domain.Message, error)
	GetArchived(ctx context.Context) ([]domain.Message, error)
	Archive(ctx context.Context, id int64) (domain.Message, error)
	Activate(ctx context.Context, id int64) (domain.Message, error)
	Remove(ctx context.Context, id int64) error
}

type MessageDBRepository struct {
	*sql.DB
}

func NewMessageRepository(db *sql.DB) MessageRepository {
	return &MessageDBRepository{DB: db}
}

func (r *MessageDBRepository) Create(ctx context.Context, email, name, message string) (domain.Message, error) {
	if email == "" || name == "" || message == "" {
		return domain.Message{}, errors.Wrap(domain.ErrBadRequest, "email, name and message are required")
	}
	res, err := r.ExecContext(ctx, "INSERT INTO messages (email, name, message) VALUES (?, ?, ?)", email, name, message)
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "insert message")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "message id")
	}
	return r.Get(ctx, id)
}

func (r *MessageDBRepository) Get(ctx context.Context, id int64) (domain.Message, error) {
	row := r.QueryRowContext(ctx, "SELECT "+messageColumns+" FROM messages WHERE id = ? AND is_deleted = 0", id)

	var m domain.Message
	err := row.Scan(&m.ID, &m.Email, &m.Name, &m.Message, &m.Received, &m.IsArchived)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, errors.Wrapf(domain.ErrNotFound, "message %d", id)
	}
	if err != nil {
		return domain.Message{}, errors.Wrapf(err, "get message %d", id)
	}
	return m, nil
}

func (r *MessageDBRepository) GetAll(ctx context.Context) ([]domain.Message, error) {
	return r.query(ctx, false)
}

func (r *MessageDBRepository) GetArchived(ctx context.Context) ([]domain.Message, error) {
	return r.query(ctx, true)
}

func (r *MessageDBRepository) query(ctx context.Context, archived bool) ([]domain.Message, error) {
	rows, err := r.QueryContext(ctx,
		"SELECT "+messageColumns+" FROM messages WHERE is_deleted = 0 AND is_archived = ? ORDER BY received DESC, id DESC",
		archived)
	if err != nil {
		return nil, errors.Wrap(err, "query messages")
	}
	defer closeRows(rows)

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.Message, &m.Received, &m.IsArchived); err != nil {
			return nil, errors.Wrap(err, "scan message")
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate messages")
	}
	return messages, nil
}

func (r *MessageDBRepository) Archive(ctx context.Context, id int64) (domain.Message, error) {
	return r.setArchived(ctx, id, true)
}

func (r *MessageDBRepository) Activate(ctx context.Context, id int64) (domain.Message, error) {
	return r.setArchived(ctx, id, false)
}

func (r *MessageDBRepository) setArchived(ctx context.Context, id int64, archived bool) (domain.Message, error) {
	res, err := r.ExecContext(ctx, "UPDATE messages SET is_archived = ? WHERE id = ? AND is_deleted = 0", archived, id)
	if err != nil {
		return domain.Message{}, errors.Wrapf(err, "archive message %d", id)
	}
	if n, err := affected(res); err != nil {
		return domain.Message{}, err
	} else if n == 0 {
		return domain.Message{}, errors.Wrapf(domain.ErrNotFound, "message %d", id)
	}
	return r.Get(ctx, id)
}

func (r *MessageDBRepository) Remove(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "UPDATE messages SET is_deleted = 1 WHERE id = ? AND is_deleted = 0", id)
	if err != nil {
		return errors.Wrapf(err, "remove message %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "message %d", id)
	}
	return nil
}
