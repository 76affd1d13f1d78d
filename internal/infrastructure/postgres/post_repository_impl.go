package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

// Posts are stored one row per aggregate with likes and comments in
// JSONB columns, mirroring the profile layout.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, user_id, body, name, avatar_url, likes, comments, created_at, updated_at`

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{}
	err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.AvatarURL,
		&p.Likes, &p.Comments, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (user_id, body, name, avatar_url, likes, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Text, p.Name, p.AvatarURL, p.Likes, p.Comments)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts WHERE id = $1
	`, id))
}

func (r *PostRepository) GetAll(ctx context.Context) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Mutate reads the aggregate under FOR UPDATE, applies fn, and writes
// the result back in the same transaction. Likes and comments against
// the same post serialize on the row lock, so concurrent requests
// never lose updates.
func (r *PostRepository) Mutate(ctx context.Context, id string, fn func(*entity.Post) error) (*entity.Post, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanPost(tx.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE
	`, id))
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE posts
		SET likes = $1, comments = $2, updated_at = $3
		WHERE id = $4
	`, p.Likes, p.Comments, p.UpdatedAt, p.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
