package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/entity"
	repo "github.com/devlinkhq/devlink/internal/domain/repository"
	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/mailer"
)

var (
	ErrEmailExists       = errors.New("email already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
)

// AccountService owns User entities: registration, login, and the
// current-user read. Email is the unique lookup key and is normalized
// to lower case at write and read time.
type AccountService struct {
	Repo         repo.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
	ES           *elasticsearch.Client
	ESUsersIndex string
	GCS          *storage.Client
	GCSBucket    string
}

func NewAccountService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: r, JWT: jwt, Logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt-hashed password and an avatar
// derived deterministically from the email. A duplicate email fails
// before any write.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		AvatarURL: helpers.GravatarURL(email, 200),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueWelcome(ctx, u)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// Login checks existence before the password, so the two failures stay
// distinguishable to the caller. On success it returns a signed session
// token and its expiry.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", time.Time{}, ErrUserNotFound
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrPasswordIncorrect
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Name, u.AvatarURL)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Current resolves the acting identity to its stored user. Pure read.
func (s *AccountService) Current(ctx context.Context, identity Identity) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UploadAvatar stores a custom avatar in GCS and overrides the
// gravatar-derived URL.
func (s *AccountService) UploadAvatar(ctx context.Context, identity Identity, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	u, err := s.Repo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	_ = s.indexUser(ctx, u)
	return url, nil
}

func (s *AccountService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.Welcome,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}

func (s *AccountService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *AccountService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return esSearch(ctx, s.ES, s.ESUsersIndex, q, []string{"email^2", "name"}, size)
}

func esSearch(ctx context.Context, es *elasticsearch.Client, index, q string, fields []string, size int) ([]map[string]any, error) {
	if es == nil || index == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": fields,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := es.Search(es.Search.WithContext(c), es.Search.WithIndex(index), es.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
