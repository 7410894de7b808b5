// Package session persists the authenticated session between runs.
//
// A session is two metadata entries: the access token and the JSON-encoded
// user profile. They are written and removed together; a store holding only
// one of them, or a profile that no longer parses, is treated as empty and
// wiped on the next Load. No other package reads these keys.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
)

type Store struct {
	repo metadata.Repository
	log  logging.Logger
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{repo: repo, log: log}
}

// Save stores token and user atomically, replacing any previous session.
func (s *Store) Save(ctx context.Context, token string, user models.UserProfile) error {
	if token == "" {
		return fmt.Errorf("save session: empty token")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return s.repo.Atomic(ctx, func(ctx context.Context, r metadata.Repository) error {
		if err := r.Set(ctx, KeyAccessToken, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, KeyUser, data)
	})
}

// Load returns the stored session. It never fails: read errors are logged
// and reported as "no session". Both entries come from one List snapshot.
func (s *Store) Load(ctx context.Context) (*models.Session, bool) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn(ctx, "session read failed", "error", err)
		return nil, false
	}
	token, userData := entries[KeyAccessToken], entries[KeyUser]

	if len(token) == 0 && len(userData) == 0 {
		return nil, false
	}
	if len(token) == 0 || len(userData) == 0 {
		s.log.Warn(ctx, "incomplete session discarded",
			"has_token", len(token) > 0, "has_user", len(userData) > 0)
		s.discard(ctx)
		return nil, false
	}

	var user models.UserProfile
	if err := json.Unmarshal(userData, &user); err != nil {
		s.log.Warn(ctx, "stored user is not valid JSON, session discarded", "error", err)
		s.discard(ctx)
		return nil, false
	}

	return &models.Session{Token: string(token), User: user}, true
}

// Token returns the stored access token or "".
func (s *Store) Token(ctx context.Context) string {
	token, err := s.repo.Get(ctx, KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "session read failed", "key", KeyAccessToken, "error", err)
		return ""
	}
	return string(token)
}

// Clear empties the metadata store. It holds nothing but the session, so
// entries left behind by older clients go with it.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Atomic(ctx, func(ctx context.Context, r metadata.Repository) error {
		return r.Clear(ctx)
	})
}

func (s *Store) discard(ctx context.Context) {
	if err := s.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
	}
}
