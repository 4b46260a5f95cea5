package controllers

import (
	"net/http"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/api/validators"
	"github.com/quatet/storefront-api/internal/authn"
	pkgauth "github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/config"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthLogin exchanges credentials for a platform token and opens a session.
func AuthLogin(svc *authn.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// AuthLogout revokes the caller's session. Runs behind Auth, so the context
// already carries a verified token.
func AuthLogout(svc *authn.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := pkgauth.TokenFromContext(r.Context())
		claims, err := pkgauth.ParseAccessToken(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeAuthRequired, err, "invalid token"))
			return
		}

		if err := svc.Logout(r.Context(), claims.ID, pkgauth.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthMe reports the identity attached to the current session.
func AuthMe(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := pkgauth.TokenFromContext(r.Context())
		claims, err := pkgauth.ParseAccessToken(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeAuthRequired, err, "invalid token"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"userId":   claims.UserID,
			"email":    claims.Email,
			"fullName": claims.FullName,
			"role":     claims.Role,
		})
	}
}
