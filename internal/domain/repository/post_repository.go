package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// PostRepository owns Post aggregates including their embedded likes
// and comments.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)

	// GetAll returns posts ordered newest-first by creation date.
	GetAll(ctx context.Context) ([]entity.Post, error)

	Delete(ctx context.Context, id string) error

	// Mutate runs fn against the current aggregate under a row lock and
	// writes the result back. Mutations against the same post are
	// serialized; an error from fn aborts without writing.
	Mutate(ctx context.Context, id string, fn func(*entity.Post) error) (*entity.Post, error)
}
