// internal/session/store.go
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ngeukam/backendmaoni/internal/domain"
)

const (
	sessionKeyPrefix   = "session:"
	blacklistKeyPrefix = "token:blacklist:"

	// Expired records are kept around for a grace period instead of relying
	// on the redis TTL alone, so callers can tell "expired" from "gone".
	expiredGrace = 24 * time.Hour
)

// Record is one server-side session. Expiry is enforced by the application
// against ExpiresAt; the redis TTL only garbage-collects the row later.
type Record struct {
	Key       string    `json:"key"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session's expiry timestamp has passed.
func (r *Record) Expired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Store keeps session records and the refresh-token blacklist in redis.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping tests the redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Create opens a new session for the user with the given lifetime and
// returns the stored record.
func (s *Store) Create(ctx context.Context, userID uuid.UUID, lifetime time.Duration) (*Record, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}

	now := time.Now()
	rec := &Record{
		Key:       hex.EncodeToString(raw),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding session record: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+rec.Key, payload, lifetime+expiredGrace).Err(); err != nil {
		return nil, fmt.Errorf("storing session record: %w", err)
	}

	return rec, nil
}

// Find returns the session record for the given key, expired or not.
// A missing record yields domain.ErrSessionNotFound.
func (s *Store) Find(ctx context.Context, key string) (*Record, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("reading session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &rec, nil
}

// Delete removes the session record. Deleting a missing record is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("deleting session record: %w", err)
	}
	return nil
}

// BlacklistToken marks a refresh token id as revoked until it would have
// expired anyway.
func (s *Store) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklisting token: %w", err)
	}
	return nil
}

// TokenBlacklisted reports whether the refresh token id has been revoked.
func (s *Store) TokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("checking token blacklist: %w", err)
	}
	return n > 0, nil
}
