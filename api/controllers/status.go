package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/api/responses"
	"github.com/mstore-labs/pim-backend/api/validators"
	"github.com/mstore-labs/pim-backend/internal/status"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// batchStatusLimit caps one bulk request; larger audits page through.
const batchStatusLimit = 200

func parseProductID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "productID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").
			WithDetails(map[string]any{"product_id": raw})
	}
	return id, nil
}

func ProductStatus(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}

		report, err := svc.ProductStatus(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ProductIDLister supplies the full catalog for an all-products audit.
type ProductIDLister interface {
	ListProductIDs(ctx context.Context) ([]uuid.UUID, error)
}

type batchStatusRequest struct {
	ProductIDs []string `json:"product_ids" validate:"omitempty,dive,uuid"`
	All        bool     `json:"all"`
}

func ProductStatusBatch(svc status.Service, lister ProductIDLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req batchStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.All == (len(req.ProductIDs) > 0) {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "provide product_ids or set all, not both"))
			return
		}

		var ids []uuid.UUID
		if req.All {
			var err error
			ids, err = lister.ListProductIDs(ctx)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		} else {
			if len(req.ProductIDs) > batchStatusLimit {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "too many product ids").
						WithDetails(map[string]any{"max": batchStatusLimit}))
				return
			}
			ids = make([]uuid.UUID, 0, len(req.ProductIDs))
			for _, raw := range req.ProductIDs {
				id, err := uuid.Parse(raw)
				if err != nil {
					responses.WriteError(ctx, logg, w,
						pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").
							WithDetails(map[string]any{"product_id": raw}))
					return
				}
				ids = append(ids, id)
			}
		}

		reports, err := svc.ProductStatuses(ctx, ids)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"reports": reports})
	}
}

func ProductStatusInvalidate(svc status.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Invalidate(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "invalidated"})
	}
}
