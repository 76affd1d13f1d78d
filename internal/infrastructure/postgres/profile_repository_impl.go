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

// Profiles are stored one row per aggregate; the embedded experience,
// education and social collections live in JSONB columns so the whole
// aggregate is read and replaced as a single document.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, user_id, handle, company, website, location, bio, status,
	github_username, skills, social, experience, education, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.Handle, &p.Company, &p.Website, &p.Location,
		&p.Bio, &p.Status, &p.GithubUsername, &p.Skills, &p.Social,
		&p.Experience, &p.Education, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []entity.Experience{}
	}
	if p.Education == nil {
		p.Education = []entity.Education{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, handle, company, website, location, bio, status,
			github_username, skills, social, experience, education)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status,
		p.GithubUsername, p.Skills, p.Social, p.Experience, p.Education)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE user_id = $1
	`, userID))
}

func (r *ProfileRepository) GetByHandle(ctx context.Context, handle string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE handle = $1
	`, handle))
}

func (r *ProfileRepository) GetAll(ctx context.Context) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) HandleTaken(ctx context.Context, handle, excludeUserID string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM profiles WHERE handle = $1 AND user_id <> $2)
	`, handle, excludeUserID).Scan(&taken)
	return taken, err
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET handle = $1, company = $2, website = $3, location = $4, bio = $5, status = $6,
			github_username = $7, skills = $8, social = $9, experience = $10, education = $11,
			updated_at = $12
		WHERE user_id = $13
	`, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		p.Skills, p.Social, p.Experience, p.Education, p.UpdatedAt, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Mutate reads the aggregate under FOR UPDATE, applies fn, and writes
// the result back in the same transaction. Concurrent mutations of the
// same profile serialize on the row lock.
func (r *ProfileRepository) Mutate(ctx context.Context, userID string, fn func(*entity.Profile) error) (*entity.Profile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanProfile(tx.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE user_id = $1 FOR UPDATE
	`, userID))
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx, `
		UPDATE profiles
		SET handle = $1, company = $2, website = $3, location = $4, bio = $5, status = $6,
			github_username = $7, skills = $8, social = $9, experience = $10, education = $11,
			updated_at = $12
		WHERE user_id = $13
	`, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		p.Skills, p.Social, p.Experience, p.Education, p.UpdatedAt, p.UserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteWithUser removes the profile row and the owning user row in a
// single transaction so the cascade can never half-apply. A missing
// profile is tolerated (the user may never have created one); a
// missing user is not.
func (r *ProfileRepository) DeleteWithUser(ctx context.Context, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
