package authn

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quatet/storefront-api/internal/gateway"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/auth/session"
	"github.com/quatet/storefront-api/pkg/config"
	"github.com/quatet/storefront-api/pkg/enums"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
)

type gatewayAPI interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
}

type sessionWriter interface {
	Create(ctx context.Context, tokenID string, record session.Record, expiresAt time.Time) error
	Revoke(ctx context.Context, tokenID string) error
}

type cartTeardown interface {
	Teardown(userID int64)
}

// LoginView is what a successful login hands back to the client.
type LoginView struct {
	Token    string         `json:"token"`
	UserID   int64          `json:"userId"`
	Email    string         `json:"email"`
	FullName string         `json:"fullName,omitempty"`
	Role     enums.UserRole `json:"role"`
}

// Service owns the login/logout flow. The platform mints the token; this
// service verifies it, persists the session keyed by the token's jti, and
// tears the session down on logout.
type Service struct {
	gw       gatewayAPI
	sessions sessionWriter
	carts    cartTeardown
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
}

func NewService(gw gatewayAPI, sessions sessionWriter, carts cartTeardown, jwtCfg config.JWTConfig, logg *logger.Logger) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session writer is required")
	}
	return &Service{gw: gw, sessions: sessions, carts: carts, jwtCfg: jwtCfg, logg: logg}, nil
}

// Login exchanges credentials with the platform and opens a session. A token
// that fails local verification is treated as a platform fault, not a user
// error.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginView, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	result, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	claims, err := pkgauth.ParseAccessToken(s.jwtCfg, result.Token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "platform issued an unverifiable token")
	}
	if claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "platform token is missing its jti claim")
	}

	record := session.Record{
		Token:  result.Token,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.sessions.Create(ctx, claims.ID, record, expiresAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not persist session")
	}

	return &LoginView{
		Token:    result.Token,
		UserID:   claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil
}

// Logout revokes the session and drops the user's cart mirror. Revocation is
// what other tabs observe: their next request finds no session record.
func (s *Service) Logout(ctx context.Context, tokenID string, userID int64) error {
	if strings.TrimSpace(tokenID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token id is required")
	}
	if err := s.sessions.Revoke(ctx, tokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not revoke session")
	}
	if s.carts != nil && userID > 0 {
		s.carts.Teardown(userID)
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "token_id", tokenID), "session revoked")
	}
	return nil
}
