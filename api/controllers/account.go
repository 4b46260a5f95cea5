package controllers

import (
	"net/http"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/api/validators"
	accountsvc "github.com/quatet/storefront-api/internal/account"
	"github.com/quatet/storefront-api/internal/gateway"
	"github.com/quatet/storefront-api/pkg/logger"
)

type profileUpdateRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ProfileFetch serves the caller's profile.
func ProfileFetch(svc *accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.Profile(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// ProfileUpdate rewrites the caller's editable profile fields.
func ProfileUpdate(svc *accountsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload profileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), gateway.ProfileUpdateInput{
			FullName: payload.FullName,
			Phone:    payload.Phone,
			Address:  payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
