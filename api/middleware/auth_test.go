package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/auth/session"
	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
)

const (
	testSecret = "storefront-test-secret"
	testIssuer = "quatet-platform"
)

type stubChecker struct {
	records map[string]*session.Record
}

func (s *stubChecker) Get(ctx context.Context, tokenID string) (*session.Record, error) {
	record, ok := s.records[tokenID]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return record, nil
}

func mintToken(t *testing.T, jti string) string {
	t.Helper()
	claims := pkgauth.AccessTokenClaims{
		UserID: 42,
		Email:  "linh@quatet.vn",
		Role:   enums.UserRoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: testSecret, Issuer: testIssuer}
}

func TestAuthSeedsContextFromSessionRecord(t *testing.T) {
	t.Parallel()

	token := mintToken(t, "jti-1")
	checker := &stubChecker{records: map[string]*session.Record{
		"jti-1": {Token: token, UserID: 42, Email: "linh@quatet.vn", Role: enums.UserRoleCustomer},
	}}

	var gotUserID int64
	var gotRole enums.UserRole
	var gotToken string
	handler := Auth(testJWT(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = pkgauth.UserIDFromContext(r.Context())
		gotRole = pkgauth.RoleFromContext(r.Context())
		gotToken = pkgauth.TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != 42 || gotRole != enums.UserRoleCustomer || gotToken != token {
		t.Fatalf("context not seeded: user=%d role=%s", gotUserID, gotRole)
	}
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWT(), &stubChecker{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	t.Parallel()

	token := mintToken(t, "jti-2")
	handler := Auth(testJWT(), &stubChecker{records: map[string]*session.Record{}}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked session must be rejected, got %d", rec.Code)
	}
}

func TestAuthRejectsTokenSessionMismatch(t *testing.T) {
	t.Parallel()

	presented := mintToken(t, "jti-3")
	stored := mintToken(t, "jti-3")
	checker := &stubChecker{records: map[string]*session.Record{
		"jti-3": {Token: stored + "-stale", UserID: 42, Role: enums.UserRoleCustomer},
	}}
	handler := Auth(testJWT(), checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+presented)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleGates(t *testing.T) {
	t.Parallel()

	handler := RequireRole(nil, enums.UserRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotations", nil)
	req = req.WithContext(pkgauth.WithRole(req.Context(), enums.UserRoleCustomer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/quotations", nil)
	req = req.WithContext(pkgauth.WithRole(req.Context(), enums.UserRoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected admin allowed, got %d", rec.Code)
	}
}
