package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
	redisclient "github.com/quatet/storefront-api/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Record is the per-login state persisted in Redis. The raw platform token is
// stored here and re-read on every request; deleting the record is how logout
// in one tab invalidates every other tab on its next call.
type Record struct {
	Token  string         `json:"token"`
	UserID int64          `json:"user_id"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(tokenID string) string
}

// Manager persists login sessions keyed by the access token's jti claim.
type Manager struct {
	store      sessionStore
	keyer      sessionKeyer
	defaultTTL time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	Get(ctx context.Context, tokenID string) (*Record, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store:      client,
		keyer:      client,
		defaultTTL: cfg.TTL,
	}, nil
}

// Create stores the session record. When expiresAt is known (from the token's
// exp claim) the record lives exactly that long; otherwise the default TTL
// applies.
func (m *Manager) Create(ctx context.Context, tokenID string, record Record, expiresAt time.Time) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	if strings.TrimSpace(record.Token) == "" {
		return fmt.Errorf("bearer token is required")
	}

	ttl := m.defaultTTL
	if !expiresAt.IsZero() {
		if remaining := time.Until(expiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(tokenID), string(payload), ttl)
}

// Get loads the session record, or ErrSessionNotFound.
func (m *Manager) Get(ctx context.Context, tokenID string) (*Record, error) {
	if strings.TrimSpace(tokenID) == "" {
		return nil, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(tokenID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &record, nil
}

// Revoke deletes the session tied to the token identifier.
func (m *Manager) Revoke(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(tokenID))
}
