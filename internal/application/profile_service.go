package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/mailer"
)

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrHandleExists       = errors.New("handle already exists")
	ErrHandleRequired     = errors.New("handle is required")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")
)

const profilesCacheKey = "cache:profiles:all"

// ProfileService owns Profile aggregates: the partial-field upsert
// keyed by user, the embedded experience/education collections, and the
// atomic account-deletion cascade.
type ProfileService struct {
	Repo            repo.ProfileRepository
	Users           repo.UserRepository
	Redis           *redis.Client
	Logger          *logrus.Logger
	Pub             *helpers.RabbitPublisher
	MailEnabled     bool
	ES              *elasticsearch.Client
	ESProfilesIndex string
}

func NewProfileService(r repo.ProfileRepository, users repo.UserRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, Users: users, Logger: logger}
}

// SocialInput carries per-platform URL updates; nil means "leave as is".
type SocialInput struct {
	Youtube   *string
	Twitter   *string
	Facebook  *string
	Linkedin  *string
	Instagram *string
}

// UpsertProfileInput is a partial field set: only non-nil fields are
// written, absent fields never overwrite existing values. Skills is a
// comma-separated string split into an ordered sequence.
type UpsertProfileInput struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	Social         SocialInput
}

func (in *UpsertProfileInput) apply(p *entity.Profile) {
	setIf := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setIf(&p.Handle, in.Handle)
	setIf(&p.Company, in.Company)
	setIf(&p.Website, in.Website)
	setIf(&p.Location, in.Location)
	setIf(&p.Bio, in.Bio)
	setIf(&p.Status, in.Status)
	setIf(&p.GithubUsername, in.GithubUsername)
	if in.Skills != nil {
		p.Skills = splitSkills(*in.Skills)
	}
	setIf(&p.Social.Youtube, in.Social.Youtube)
	setIf(&p.Social.Twitter, in.Social.Twitter)
	setIf(&p.Social.Facebook, in.Social.Facebook)
	setIf(&p.Social.Linkedin, in.Social.Linkedin)
	setIf(&p.Social.Instagram, in.Social.Instagram)
}

func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// GetOwn returns the acting user's profile.
func (s *ProfileService) GetOwn(ctx context.Context, identity Identity) (*entity.Profile, error) {
	return s.getBy(ctx, func() (*entity.Profile, error) {
		return s.Repo.GetByUserID(ctx, identity.UserID)
	})
}

// GetByHandle is a public read.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*entity.Profile, error) {
	return s.getBy(ctx, func() (*entity.Profile, error) {
		return s.Repo.GetByHandle(ctx, handle)
	})
}

// GetByUser is a public read keyed by user id.
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.getBy(ctx, func() (*entity.Profile, error) {
		return s.Repo.GetByUserID(ctx, userID)
	})
}

func (s *ProfileService) getBy(ctx context.Context, get func() (*entity.Profile, error)) (*entity.Profile, error) {
	p, err := get()
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetAll never fails on empty; it returns an empty sequence. Results
// are cached briefly in Redis and invalidated on any profile mutation.
func (s *ProfileService) GetAll(ctx context.Context) ([]entity.Profile, error) {
	if s.Redis != nil {
		var cached []entity.Profile
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, profilesCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	profiles, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, profilesCacheKey, profiles, time.Minute); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("profiles cache write failed")
		}
	}
	return profiles, nil
}

// Upsert creates the profile on first submission and partially updates
// it thereafter; exactly one profile may exist per user. The handle
// uniqueness check runs on both paths, excluding the caller's own
// profile so re-submitting the current handle never fails. A unique
// index backs the check against races.
func (s *ProfileService) Upsert(ctx context.Context, identity Identity, in UpsertProfileInput) (*entity.Profile, error) {
	if in.Handle != nil {
		taken, err := s.Repo.HandleTaken(ctx, strings.TrimSpace(*in.Handle), identity.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrHandleExists
		}
	}

	current, err := s.Repo.GetByUserID(ctx, identity.UserID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	if current == nil {
		if in.Handle == nil || strings.TrimSpace(*in.Handle) == "" {
			return nil, ErrHandleRequired
		}
		p := &entity.Profile{UserID: identity.UserID, Skills: []string{}}
		in.apply(p)
		if err := s.Repo.Create(ctx, p); err != nil {
			return nil, err
		}
		s.afterMutation(ctx, p)
		return p, nil
	}

	p, err := s.Repo.Mutate(ctx, identity.UserID, func(p *entity.Profile) error {
		in.apply(p)
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	s.afterMutation(ctx, p)
	return p, nil
}

// ExperienceInput is a validated experience entry; the id is generated
// on insertion.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput is a validated education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// AddExperience prepends a fresh entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, identity Identity, in ExperienceInput) (*entity.Profile, error) {
	return s.mutateOwn(ctx, identity, func(p *entity.Profile) error {
		p.AddExperience(entity.Experience{
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			From:        in.From,
			To:          in.To,
			Current:     in.Current,
			Description: in.Description,
		})
		return nil
	})
}

// RemoveExperience deletes an entry by id; a missing id is an explicit
// failure, never a silent no-op.
func (s *ProfileService) RemoveExperience(ctx context.Context, identity Identity, expID string) (*entity.Profile, error) {
	return s.mutateOwn(ctx, identity, func(p *entity.Profile) error {
		if !p.RemoveExperience(expID) {
			return ErrExperienceNotFound
		}
		return nil
	})
}

// AddEducation prepends a fresh entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, identity Identity, in EducationInput) (*entity.Profile, error) {
	return s.mutateOwn(ctx, identity, func(p *entity.Profile) error {
		p.AddEducation(entity.Education{
			School:       in.School,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			From:         in.From,
			To:           in.To,
			Current:      in.Current,
			Description:  in.Description,
		})
		return nil
	})
}

// RemoveEducation deletes an entry by id with the same contract as
// RemoveExperience.
func (s *ProfileService) RemoveEducation(ctx context.Context, identity Identity, eduID string) (*entity.Profile, error) {
	return s.mutateOwn(ctx, identity, func(p *entity.Profile) error {
		if !p.RemoveEducation(eduID) {
			return ErrEducationNotFound
		}
		return nil
	})
}

func (s *ProfileService) mutateOwn(ctx context.Context, identity Identity, fn func(*entity.Profile) error) (*entity.Profile, error) {
	p, err := s.Repo.Mutate(ctx, identity.UserID, fn)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	s.afterMutation(ctx, p)
	return p, nil
}

// DeleteAccount removes the caller's profile and user as one atomic
// operation.
func (s *ProfileService) DeleteAccount(ctx context.Context, identity Identity) error {
	u, err := s.Users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.Repo.DeleteWithUser(ctx, identity.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.invalidateCache(ctx)
	s.deleteFromIndex(ctx, identity.UserID)

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.AccountDeleted,
			Data:     map[string]any{"Name": u.Name},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue goodbye email failed")
		}
	}
	return nil
}

// SearchProfiles performs a multi_match search over the public profile
// fields.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return esSearch(ctx, s.ES, s.ESProfilesIndex, q, []string{"handle^2", "status", "location", "skills", "bio"}, size)
}

func (s *ProfileService) afterMutation(ctx context.Context, p *entity.Profile) {
	s.invalidateCache(ctx)
	s.indexProfile(ctx, p)
}

func (s *ProfileService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, profilesCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("profiles cache invalidation failed")
	}
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":       p.ID,
		"user_id":  p.UserID,
		"handle":   p.Handle,
		"status":   p.Status,
		"location": p.Location,
		"skills":   p.Skills,
		"bio":      p.Bio,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.UserID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", p.UserID).Warn("es index failed")
		}
		return
	}
	_ = res.Body.Close()
}

func (s *ProfileService) deleteFromIndex(ctx context.Context, userID string) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESProfilesIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}
