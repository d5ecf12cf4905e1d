//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mural-studio/backend/domain"
)

const igPostColumns = "id, ig_id, caption, permalink, media_url, media_type, posted"

type IGPostRepository interface {
	Upsert(ctx context.Context, post domain.IGPost) (domain.IGPost, error)
	Get(ctx context.Context, id int64) (domain.IGPost, error)
	GetAll(ctx context.Context) ([]domain.IGPost, error)
	// Replace swaps the whole cache for posts.
	Replace(ctx context.Context, posts []domain.IGPost) ([]domain.IGPost, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type IGPostDBRepository struct {
	*sql.DB
}

func NewIGPostRepository(db *sql.DB) IGPostRepository {
	return &IGPostDBRepository{DB: db}
}

func (r *IGPostDBRepository) Upsert(ctx context.Context, post domain.IGPost) (domain.IGPost, error) {
	if err := validateIGPost(post); err != nil {
		return domain.IGPost{}, err
	}
	if err := upsertIGPost(ctx, r.DB, post); err != nil {
		return domain.IGPost{}, err
	}
	return getIGPost(ctx, r.DB, "ig_id = ?", post.IGID)
}

func (r *IGPostDBRepository) Get(ctx context.Context, id int64) (domain.IGPost, error) {
	return getIGPost(ctx, r.DB, "id = ?", id)
}

func (r *IGPostDBRepository) GetAll(ctx context.Context) ([]domain.IGPost, error) {
	return queryIGPosts(ctx, r.DB)
}

func (r *IGPostDBRepository) Replace(ctx context.Context, posts []domain.IGPost) ([]domain.IGPost, error) {
	for _, p := range posts {
		if err := validateIGPost(p); err != nil {
			return nil, err
		}
	}

	var stored []domain.IGPost
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM ig_posts"); err != nil {
			return errors.Wrap(err, "clear ig posts")
		}
		for _, p := range posts {
			if err := upsertIGPost(ctx, tx, p); err != nil {
				return err
			}
		}
		var err error
		stored, err = queryIGPosts(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *IGPostDBRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ExecContext(ctx, "DELETE FROM ig_posts WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "delete ig post %d", id)
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Wrapf(domain.ErrNotFound, "ig post %d", id)
	}
	return nil
}

func (r *IGPostDBRepository) DeleteAll(ctx context.Context) error {
	_, err := r.ExecContext(ctx, "DELETE FROM ig_posts")
	return errors.Wrap(err, "delete ig posts")
}

func validateIGPost(p domain.IGPost) error {
	if p.IGID == "" || p.Permalink == "" || p.MediaURL == "" || p.MediaType == "" || p.Posted.IsZero() {
		return errors.Wrap(domain.ErrBadRequest, "igId, permalink, mediaUrl, mediaType and posted are required")
	}
	return nil
}

func upsertIGPost(ctx context.Context, q querier, p domain.IGPost) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO ig_posts (ig_id, caption, permalink, media_url, media_type, posted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (ig_id) DO UPDATE SET
			caption = excluded.caption,
			permalink = excluded.permalink,
			media_url = excluded.media_url,
			media_type = excluded.media_type,
			posted = excluded.posted`,
		p.IGID, p.Caption, p.Permalink, p.MediaURL, p.MediaType, p.Posted.UTC())
	return errors.Wrapf(err, "upsert ig post %s", p.IGID)
}

func scanIGPost(row rowScanner) (domain.IGPost, error) {
	var p domain.IGPost
	err := row.Scan(&p.ID, &p.IGID, &p.Caption, &p.Permalink, &p.MediaURL, &p.MediaType, &p.Posted)
	return p, err
}

func getIGPost(ctx context.Context, q querier, where string, arg any) (domain.IGPost, error) {
	p, err := scanIGPost(q.QueryRowContext(ctx, "SELECT "+igPostColumns+" FROM ig_posts WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IGPost{}, errors.Wrapf(domain.ErrNotFound, "ig post %v", arg)
	}
	if err != nil {
		return domain.IGPost{}, errors.Wrapf(err, "get ig post %v", arg)
	}
	return p, nil
}

func queryIGPosts(ctx context.Context, q querier) ([]domain.IGPost, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+igPostColumns+" FROM ig_posts ORDER BY posted DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "query ig posts")
	}
	defer closeRows(rows)

	posts := []domain.IGPost{}
	for rows.Next() {
		p, err := scanIGPost(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan ig post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate ig posts")
	}
	return posts, nil
}
