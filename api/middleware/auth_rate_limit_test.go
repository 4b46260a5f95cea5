package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type memoryLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (m *memoryLimiterStore) RateLimitKey(scope string) string {
	return "qt:rate_limit:" + scope
}

func (m *memoryLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func loginRequest(email string) *http.Request {
	body := strings.NewReader(`{"email":"` + email + `","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.RemoteAddr = "203.0.113.7:51234"
	return req
}

func TestAuthRateLimitBlocksOverIPLimit(t *testing.T) {
	t.Parallel()

	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, &memoryLimiterStore{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("linh@quatet.vn"))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("attempt %d should pass, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("linh@quatet.vn"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthRateLimitCountsEmailsAcrossIPs(t *testing.T) {
	t.Parallel()

	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, &memoryLimiterStore{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := loginRequest("linh@quatet.vn")
	first.RemoteAddr = "198.51.100.1:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first attempt should pass, got %d", rec.Code)
	}

	second := loginRequest("LINH@quatet.vn")
	second.RemoteAddr = "198.51.100.2:1000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("same email from another IP must be throttled, got %d", rec.Code)
	}
}

func TestAuthRateLimitCountersUseStoreNamespace(t *testing.T) {
	t.Parallel()

	store := &memoryLimiterStore{}
	policy := NewAuthRateLimitPolicy("login", time.Minute, 5, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("linh@quatet.vn"))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("attempt should pass, got %d", rec.Code)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if got := store.counts["qt:rate_limit:ip:login:203.0.113.7"]; got != 1 {
		t.Fatalf("expected one hit under the namespaced key, counts %v", store.counts)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	t.Parallel()

	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, &memoryLimiterStore{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("linh@quatet.vn"))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("disabled policy must pass everything, got %d", rec.Code)
		}
	}
}
