package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
	"github.com/devlinkhq/devlink/pkg/helpers"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not liked")
)

const postsCacheKey = "cache:posts:all"

// PostService owns Post aggregates including their embedded likes and
// comments. Every read-modify-write goes through the repository's
// row-locked Mutate, so concurrent likes and comments on the same post
// never lose updates.
type PostService struct {
	Repo   repo.PostRepository
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewPostService(r repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Repo: r, Logger: logger}
}

// Create snapshots name/avatar from the acting identity; they are not
// re-derived later and may drift from the live user. Minimum text
// length is enforced by the binding layer before this is invoked.
func (s *PostService) Create(ctx context.Context, identity Identity, text string) (*entity.Post, error) {
	p := &entity.Post{
		UserID:    identity.UserID,
		Text:      text,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return p, nil
}

// List returns posts newest-first, briefly cached in Redis.
func (s *PostService) List(ctx context.Context) ([]entity.Post, error) {
	if s.Redis != nil {
		var cached []entity.Post
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, postsCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	posts, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, postsCacheKey, posts, time.Minute); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("posts cache write failed")
		}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a post; only the authoring user may delete it, and the
// ownership check precedes the removal.
func (s *PostService) Delete(ctx context.Context, identity Identity, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != identity.UserID {
		return ErrNotAuthorized
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Like inserts a like for the acting user; a second like from the same
// user fails and leaves the count unchanged (set semantics).
func (s *PostService) Like(ctx context.Context, identity Identity, id string) (*entity.Post, error) {
	return s.mutate(ctx, id, func(p *entity.Post) error {
		if !p.AddLike(identity.UserID) {
			return ErrAlreadyLiked
		}
		return nil
	})
}

// Unlike removes exactly the acting user's like; absence of one is an
// explicit failure.
func (s *PostService) Unlike(ctx context.Context, identity Identity, id string) (*entity.Post, error) {
	return s.mutate(ctx, id, func(p *entity.Post) error {
		if !p.RemoveLike(identity.UserID) {
			return ErrNotLiked
		}
		return nil
	})
}

// AddComment prepends a validated comment with a fresh id, snapshotting
// name/avatar from the acting identity.
func (s *PostService) AddComment(ctx context.Context, identity Identity, postID, text string) (*entity.Post, error) {
	return s.mutate(ctx, postID, func(p *entity.Post) error {
		p.AddComment(entity.Comment{
			UserID:    identity.UserID,
			Text:      text,
			Name:      identity.Name,
			AvatarURL: identity.AvatarURL,
		})
		return nil
	})
}

// RemoveComment deletes a comment by id within the post; a missing
// comment id is reported, never swallowed. Only the comment's author
// may remove it.
func (s *PostService) RemoveComment(ctx context.Context, identity Identity, postID, commentID string) (*entity.Post, error) {
	return s.mutate(ctx, postID, func(p *entity.Post) error {
		c, ok := p.FindComment(commentID)
		if !ok {
			return ErrCommentNotFound
		}
		if c.UserID != identity.UserID {
			return ErrNotAuthorized
		}
		p.RemoveComment(commentID)
		return nil
	})
}

func (s *PostService) mutate(ctx context.Context, id string, fn func(*entity.Post) error) (*entity.Post, error) {
	p, err := s.Repo.Mutate(ctx, id, fn)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	s.invalidateCache(ctx)
	return p, nil
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, postsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("posts cache invalidation failed")
	}
}
