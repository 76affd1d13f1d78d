package application

import (
	"context"
	"errors"
	"testing"
)

func newPostService() *PostService {
	return NewPostService(newFakePostRepo(), nil)
}

func TestPostCreateSnapshotsIdentity(t *testing.T) {
	svc := newPostService()
	id := Identity{UserID: "u1", Name: "Alice", AvatarURL: "https://img/a.png"}

	p, err := svc.Create(context.Background(), id, "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.UserID != "u1" || p.Name != "Alice" || p.AvatarURL != "https://img/a.png" {
		t.Fatalf("identity not snapshotted: %+v", p)
	}
	if p.Likes == nil || p.Comments == nil || len(p.Likes) != 0 || len(p.Comments) != 0 {
		t.Fatalf("collections not initialized empty: %+v", p)
	}
}

func TestPostListNewestFirst(t *testing.T) {
	svc := newPostService()
	id := Identity{UserID: "u1", Name: "Alice"}
	ctx := context.Background()

	if _, err := svc.Create(ctx, id, "first post"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, id, "second post"); err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 || posts[0].Text != "second post" || posts[1].Text != "first post" {
		t.Fatalf("posts not newest-first: %+v", posts)
	}
}

func TestPostGetMissing(t *testing.T) {
	svc := newPostService()
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("want ErrPostNotFound, got %v", err)
	}
}

func TestPostDeleteOwnership(t *testing.T) {
	svc := newPostService()
	alice := Identity{UserID: "u1", Name: "Alice"}
	bob := Identity{UserID: "u2", Name: "Bob"}
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, bob, p.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("want ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("post removed by unauthorized delete: %v", err)
	}

	if err := svc.Delete(ctx, alice, p.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("post survived delete: %v", err)
	}
	if err := svc.Delete(ctx, alice, p.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("want ErrPostNotFound, got %v", err)
	}
}

func TestPostLikeSetSemantics(t *testing.T) {
	svc := newPostService()
	alice := Identity{UserID: "u1", Name: "Alice"}
	bob := Identity{UserID: "u2", Name: "Bob"}
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p2, err := svc.Like(ctx, bob, p.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(p2.Likes) != 1 || p2.Likes[0].UserID != "u2" {
		t.Fatalf("like not recorded: %+v", p2.Likes)
	}

	// Second like from the same user fails and leaves the count alone.
	if _, err := svc.Like(ctx, bob, p.ID); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("want ErrAlreadyLiked, got %v", err)
	}
	got, _ := svc.Get(ctx, p.ID)
	if len(got.Likes) != 1 {
		t.Fatalf("duplicate like changed count: %+v", got.Likes)
	}

	// A different user still goes through.
	if _, err := svc.Like(ctx, alice, p.ID); err != nil {
		t.Fatalf("second user like: %v", err)
	}
}

func TestPostUnlike(t *testing.T) {
	svc := newPostService()
	alice := Identity{UserID: "u1", Name: "Alice"}
	bob := Identity{UserID: "u2", Name: "Bob"}
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Unlike(ctx, bob, p.ID); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("want ErrNotLiked, got %v", err)
	}
	if _, err := svc.Like(ctx, bob, p.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	p2, err := svc.Unlike(ctx, bob, p.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(p2.Likes) != 0 {
		t.Fatalf("like not removed: %+v", p2.Likes)
	}
}

func TestPostComments(t *testing.T) {
	svc := newPostService()
	alice := Identity{UserID: "u1", Name: "Alice", AvatarURL: "https://img/a.png"}
	bob := Identity{UserID: "u2", Name: "Bob"}
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p2, err := svc.AddComment(ctx, bob, p.ID, "nice post!")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(p2.Comments) != 1 {
		t.Fatalf("comment not added: %+v", p2.Comments)
	}
	c := p2.Comments[0]
	if c.ID == "" || c.UserID != "u2" || c.Name != "Bob" || c.Text != "nice post!" {
		t.Fatalf("unexpected comment: %+v", c)
	}

	// Newest comment goes first.
	p2, err = svc.AddComment(ctx, alice, p.ID, "thanks bob!")
	if err != nil {
		t.Fatalf("add second comment: %v", err)
	}
	if len(p2.Comments) != 2 || p2.Comments[0].Text != "thanks bob!" {
		t.Fatalf("comments not prepended: %+v", p2.Comments)
	}

	if _, err := svc.RemoveComment(ctx, bob, p.ID, "no-such-id"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("want ErrCommentNotFound, got %v", err)
	}

	// Only the comment's author may remove it.
	if _, err := svc.RemoveComment(ctx, alice, p.ID, c.ID); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("want ErrNotAuthorized, got %v", err)
	}
	p2, err = svc.RemoveComment(ctx, bob, p.ID, c.ID)
	if err != nil {
		t.Fatalf("remove comment: %v", err)
	}
	if len(p2.Comments) != 1 || p2.Comments[0].Text != "thanks bob!" {
		t.Fatalf("wrong comment removed: %+v", p2.Comments)
	}
}

func TestPostMutateMissingPost(t *testing.T) {
	svc := newPostService()
	id := Identity{UserID: "u1"}
	ctx := context.Background()

	if _, err := svc.Like(ctx, id, "nope"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("like: want ErrPostNotFound, got %v", err)
	}
	if _, err := svc.AddComment(ctx, id, "nope", "some comment"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("comment: want ErrPostNotFound, got %v", err)
	}
}
