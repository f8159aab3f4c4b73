package controllers

import (
	"context"
	"net/http"

	"github.com/mstore-labs/pim-backend/api/responses"
	"github.com/mstore-labs/pim-backend/pkg/config"
	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

const envHeader = "X-PIM-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores. Redis is optional; when the
// cache is disabled readiness only depends on the database.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, cacheP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		deps := map[string]string{}
		healthy := true

		deps["database"] = pingDep(ctx, dbP)
		if deps["database"] != "ok" {
			healthy = false
		}
		if cacheP != nil {
			deps["redis"] = pingDep(ctx, cacheP)
			if deps["redis"] != "ok" {
				healthy = false
			}
		}

		if !healthy {
			if logg != nil {
				lctx := logg.WithFields(ctx, map[string]any{"deps": deps})
				logg.Warn(lctx, "readiness check failed")
			}
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"deps":   deps,
			})
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "deps": deps})
	}
}

func pingDep(ctx context.Context, p db.Pinger) string {
	if p == nil {
		return "missing"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
