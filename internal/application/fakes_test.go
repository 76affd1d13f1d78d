package application

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
)

// In-memory repositories backing the service tests. They mirror the
// postgres implementations' contracts: repo.ErrNotFound on misses,
// copy-in/copy-out semantics, and Mutate aborting without a write when
// fn errors.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]entity.Profile // keyed by user id
	users    *fakeUserRepo
}

func newFakeProfileRepo(users *fakeUserRepo) *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]entity.Profile), users: users}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.profiles[p.UserID] = *p
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) GetByHandle(_ context.Context, handle string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Handle == handle {
			out := p
			return &out, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeProfileRepo) GetAll(_ context.Context) ([]entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Profile{}
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) HandleTaken(_ context.Context, handle, excludeUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle = strings.TrimSpace(handle)
	for _, p := range r.profiles {
		if p.Handle == handle && p.UserID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.UserID]; !ok {
		return repo.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.profiles[p.UserID] = *p
	return nil
}

func (r *fakeProfileRepo) Mutate(_ context.Context, userID string, fn func(*entity.Profile) error) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	r.profiles[userID] = p
	out := p
	return &out, nil
}

func (r *fakeProfileRepo) DeleteWithUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)

	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	if _, ok := r.users.users[userID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users.users, userID)
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]entity.Post
	order []string // ids, newest first
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]entity.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	if p.Likes == nil {
		p.Likes = []entity.Like{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	r.posts[p.ID] = *p
	r.order = append([]string{p.ID}, r.order...)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (r *fakePostRepo) GetAll(_ context.Context) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.posts[id])
	}
	return out, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakePostRepo) Mutate(_ context.Context, id string, fn func(*entity.Post) error) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	r.posts[id] = p
	out := p
	return &out, nil
}
