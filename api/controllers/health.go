package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/quatet/storefront-api/api/responses"
	"github.com/quatet/storefront-api/pkg/config"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/logger"
)

const readinessTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quatet-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the session store is reachable; an unreachable Redis
// means no request can authenticate, so the instance should not take traffic.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Quatet-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
