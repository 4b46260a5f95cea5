package session

import (
	"context"
	"testing"
	"time"

	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) SessionKey(tokenID string) string { return "qt:session:" + tokenID }

func newTestManager(store sessionStore) *Manager {
	return &Manager{store: store, keyer: staticKeyer{}, defaultTTL: time.Hour}
}

func TestManagerRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	mgr := newTestManager(store)
	record := Record{Token: "bearer-xyz", UserID: 42, Email: "an@quatet.vn", Role: enums.UserRoleCustomer}

	if err := mgr.Create(context.Background(), "jti-1", record, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := mgr.Get(context.Background(), "jti-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token != record.Token || got.UserID != 42 || got.Role != enums.UserRoleCustomer {
		t.Fatalf("record mismatch: %+v", got)
	}
	if store.ttls["qt:session:jti-1"] != time.Hour {
		t.Fatalf("expected default ttl, got %s", store.ttls["qt:session:jti-1"])
	}
}

func TestManagerCreateUsesTokenExpiry(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	mgr := newTestManager(store)

	expires := time.Now().Add(10 * time.Minute)
	if err := mgr.Create(context.Background(), "jti-2", Record{Token: "t"}, expires); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ttl := store.ttls["qt:session:jti-2"]
	if ttl <= 9*time.Minute || ttl > 10*time.Minute {
		t.Fatalf("expected ttl near 10m, got %s", ttl)
	}
}

func TestManagerGetMissing(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(newMemoryStore())
	if _, err := mgr.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerRevoke(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	mgr := newTestManager(store)
	if err := mgr.Create(context.Background(), "jti-3", Record{Token: "t"}, time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Revoke(context.Background(), "jti-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.Get(context.Background(), "jti-3"); err != ErrSessionNotFound {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestNewManagerValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, config.SessionConfig{TTL: time.Hour}); err == nil {
		t.Fatal("expected error for nil client")
	}
}
