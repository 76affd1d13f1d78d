package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is an aggregate root holding the embedded likes and comments
// collections. Name and AvatarURL are snapshots of the author at post
// time and may drift from the live User.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Like records a single user's like. At most one Like per user may
// exist on a post at any time.
type Like struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// Comment is an embedded sub-entity owned exclusively by its Post.
// Name and AvatarURL are snapshots of the commenter.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether the user already has a like on this post.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike prepends a like for the user. It reports false when the user
// already liked the post (set semantics, never a multiset).
func (p *Post) AddLike(userID string) bool {
	if p.LikedBy(userID) {
		return false
	}
	p.Likes = append([]Like{{ID: uuid.NewString(), UserID: userID}}, p.Likes...)
	return true
}

// RemoveLike deletes the user's like, reporting whether one existed.
func (p *Post) RemoveLike(userID string) bool {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment assigns a fresh id and timestamp and prepends the comment
// so the collection stays newest-first.
func (p *Post) AddComment(c Comment) Comment {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	p.Comments = append([]Comment{c}, p.Comments...)
	return c
}

// FindComment returns the comment with the given id, if present.
func (p *Post) FindComment(id string) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// RemoveComment deletes the comment with the given id. Absence of a
// match is reported to the caller, never swallowed.
func (p *Post) RemoveComment(id string) bool {
	for i, c := range p.Comments {
		if c.ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
