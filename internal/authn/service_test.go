package authn

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quatet/storefront-api/internal/gateway"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/auth/session"
	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
)

const (
	testSecret = "storefront-test-secret"
	testIssuer = "quatet-platform"
)

type stubLoginGateway struct {
	token string
	err   error
}

func (s *stubLoginGateway) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &gateway.LoginResult{Token: s.token}, nil
}

type recordingSessions struct {
	created map[string]session.Record
	revoked []string
	err     error
}

func (r *recordingSessions) Create(ctx context.Context, tokenID string, record session.Record, expiresAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	if r.created == nil {
		r.created = map[string]session.Record{}
	}
	r.created[tokenID] = record
	return nil
}

func (r *recordingSessions) Revoke(ctx context.Context, tokenID string) error {
	if r.err != nil {
		return r.err
	}
	r.revoked = append(r.revoked, tokenID)
	return nil
}

type recordingCarts struct {
	torn []int64
}

func (r *recordingCarts) Teardown(userID int64) {
	r.torn = append(r.torn, userID)
}

func mintToken(t *testing.T, jti string, expiresAt time.Time) string {
	t.Helper()
	claims := pkgauth.AccessTokenClaims{
		UserID:   42,
		Email:    "linh@quatet.vn",
		FullName: "Linh Tran",
		Role:     enums.UserRoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return token
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: testSecret, Issuer: testIssuer}
}

func TestLoginOpensSessionKeyedByJTI(t *testing.T) {
	t.Parallel()

	token := mintToken(t, "jti-123", time.Now().Add(time.Hour))
	sessions := &recordingSessions{}
	svc, err := NewService(&stubLoginGateway{token: token}, sessions, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.Login(context.Background(), "linh@quatet.vn", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Token != token || view.UserID != 42 || view.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected view: %+v", view)
	}

	record, ok := sessions.created["jti-123"]
	if !ok {
		t.Fatalf("expected session keyed by jti, got %v", sessions.created)
	}
	if record.Token != token || record.UserID != 42 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubLoginGateway{}, &recordingSessions{}, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "", "secret"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "linh@quatet.vn", ""); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginPropagatesPlatformRejection(t *testing.T) {
	t.Parallel()

	gw := &stubLoginGateway{err: pkgerrors.New(pkgerrors.CodeAuthRequired, "invalid credentials")}
	svc, err := NewService(gw, &recordingSessions{}, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Login(context.Background(), "linh@quatet.vn", "wrong")
	if !pkgerrors.IsCode(err, pkgerrors.CodeAuthRequired) {
		t.Fatalf("expected AUTH_REQUIRED, got %v", err)
	}
}

func TestLoginRejectsUnverifiableToken(t *testing.T) {
	t.Parallel()

	gw := &stubLoginGateway{token: "not-a-jwt"}
	sessions := &recordingSessions{}
	svc, err := NewService(gw, sessions, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Login(context.Background(), "linh@quatet.vn", "secret")
	if !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if len(sessions.created) != 0 {
		t.Fatal("no session may be opened for an unverifiable token")
	}
}

func TestLoginRejectsTokenWithoutJTI(t *testing.T) {
	t.Parallel()

	token := mintToken(t, "", time.Now().Add(time.Hour))
	svc, err := NewService(&stubLoginGateway{token: token}, &recordingSessions{}, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "linh@quatet.vn", "secret"); !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLogoutRevokesSessionAndDropsCart(t *testing.T) {
	t.Parallel()

	sessions := &recordingSessions{}
	carts := &recordingCarts{}
	svc, err := NewService(&stubLoginGateway{}, sessions, carts, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(context.Background(), "jti-123", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "jti-123" {
		t.Fatalf("unexpected revocations: %v", sessions.revoked)
	}
	if len(carts.torn) != 1 || carts.torn[0] != 42 {
		t.Fatalf("expected cart teardown for user 42, got %v", carts.torn)
	}
}

func TestLogoutRequiresTokenID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubLoginGateway{}, &recordingSessions{}, nil, testJWTConfig(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Logout(context.Background(), "  ", 42); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
