package repository

import (
	"context"

	"github.com/devlinkhq/devlink/internal/domain/entity"
)

// ProfileRepository owns Profile aggregates, keyed by user id (at most
// one profile per user) with a unique, human-chosen handle.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Profile, error)
	GetAll(ctx context.Context) ([]entity.Profile, error)

	// HandleTaken reports whether another user's profile already claims
	// the handle. The caller's own profile never counts as a conflict.
	HandleTaken(ctx context.Context, handle, excludeUserID string) (bool, error)

	// Update replaces the whole aggregate document.
	Update(ctx context.Context, p *entity.Profile) error

	// Mutate runs fn against the current aggregate under a row lock and
	// writes the result back. Mutations against the same profile are
	// serialized; an error from fn aborts without writing.
	Mutate(ctx context.Context, userID string, fn func(*entity.Profile) error) (*entity.Profile, error)

	// DeleteWithUser removes the profile and its owning user as one
	// atomic operation.
	DeleteWithUser(ctx context.Context, userID string) error
}
