package controllers

import (
	"context"
	"net/http"

	"github.com/mstore-labs/pim-backend/api/responses"
	"github.com/mstore-labs/pim-backend/api/validators"
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// PolicyStore is the monitoring configuration surface the controllers need.
type PolicyStore interface {
	Load(ctx context.Context) (monitoring.Policy, error)
	Update(ctx context.Context, policy monitoring.Policy) error
}

func MonitoringPolicyGet(store PolicyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		policy, err := store.Load(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, policy)
	}
}

func MonitoringPolicyUpdate(store PolicyStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var policy monitoring.Policy
		if err := validators.DecodeJSONBody(r, &policy); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := store.Update(ctx, policy); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(ctx, "monitoring policy updated")
		}
		responses.WriteSuccess(w, policy)
	}
}
