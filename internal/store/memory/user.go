package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"appointment-scheduler/internal/model"
	"appointment-scheduler/internal/repository"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[u.Email]; taken {
		return repository.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	s.emails[u.Email] = u.ID
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	if err := s.putToken(id, userID, tokenHash, expiresAt); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) putToken(id, userID, tokenHash string, expiresAt time.Time) error {
	for _, t := range s.tokens {
		if t.TokenHash == tokenHash {
			return repository.ErrDuplicate
		}
	}
	s.tokens[id] = model.RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: s.now(),
	}
	return nil
}

func (s *Store) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tokens {
		if t.TokenHash == tokenHash {
			return t, nil
		}
	}
	return model.RefreshToken{}, repository.ErrNotFound
}

func (s *Store) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.tokens[oldID]
	if !ok {
		return repository.ErrNotFound
	}
	if old.Revoked {
		return repository.ErrConflict
	}
	if err := s.putToken(newID, userID, newHash, newExpiry); err != nil {
		return err
	}
	old.Revoked = true
	old.ReplacedBy = &newID
	s.tokens[oldID] = old
	return nil
}

func (s *Store) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			s.tokens[id] = t
		}
	}
	return nil
}

func (s *Store) PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, t := range s.tokens {
		if t.ExpiresAt.Before(cutoff) || (t.Revoked && t.CreatedAt.Before(cutoff)) {
			delete(s.tokens, id)
			n++
		}
	}
	return n, nil
}
