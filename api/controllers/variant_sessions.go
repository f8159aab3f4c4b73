package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/api/responses"
	"github.com/mstore-labs/pim-backend/api/validators"
	"github.com/mstore-labs/pim-backend/internal/catalog"
	"github.com/mstore-labs/pim-backend/internal/variants"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// ProductSource verifies a product exists before a session opens.
type ProductSource interface {
	LoadGraph(ctx context.Context, productID uuid.UUID) (*catalog.ProductGraph, error)
}

// VariantLister loads the persisted variants the merged view overlays.
type VariantLister interface {
	Variants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
}

// StatusInvalidator drops cached status reports after a commit.
type StatusInvalidator interface {
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

func parseSessionID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "sessionID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
			WithDetails(map[string]any{"session_id": raw})
	}
	return id, nil
}

func parseRefParam(r *http.Request) (variants.VariantRef, error) {
	raw := chi.URLParam(r, "ref")
	ref, err := variants.ParseRef(raw)
	if err != nil {
		return variants.VariantRef{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant ref").
			WithDetails(map[string]any{"ref": raw})
	}
	return ref, nil
}

func SessionOpen(registry *variants.Registry, products ProductSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		graph, err := products.LoadGraph(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		persisted := make([]uuid.UUID, 0, len(graph.Product.Variants))
		for i := range graph.Product.Variants {
			persisted = append(persisted, graph.Product.Variants[i].ID)
		}
		session := registry.Open(productID, persisted)
		if logg != nil {
			lctx := logg.WithFields(ctx, map[string]any{
				"session_id": session.ID.String(),
				"product_id": productID.String(),
			})
			logg.Info(lctx, "variant session opened")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"session_id": session.ID.String(),
			"product_id": productID.String(),
		})
	}
}

func SessionVariants(registry *variants.Registry, lister VariantLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		persisted, err := lister.Variants(ctx, session.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var view []variants.VariantView
		var staged []variants.StagedOp
		err = session.With(func(cs *variants.ChangeSet) error {
			view = cs.MergedView(persisted)
			staged = cs.Staged()
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"variants": view,
			"staged":   staged,
		})
	}
}

type stageCreateRequest struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Name     string `json:"name" validate:"max=255"`
	Position int    `json:"position" validate:"min=0"`
	IsActive bool   `json:"is_active"`
}

func SessionStageCreate(registry *variants.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req stageCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var ref variants.VariantRef
		err = session.With(func(cs *variants.ChangeSet) error {
			var stageErr error
			ref, stageErr = cs.StageCreate(variants.Draft{
				SKU:      validators.SanitizeString(req.SKU, 64),
				Name:     validators.SanitizeString(req.Name, 255),
				Position: req.Position,
				IsActive: req.IsActive,
			})
			return stageErr
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"ref": ref.String()})
	}
}

type stagePatchRequest struct {
	SKU      *string `json:"sku" validate:"omitempty,max=64"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

func SessionStageUpdate(registry *variants.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, ref, err := sessionAndRef(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req stagePatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.SKU != nil {
			*req.SKU = validators.SanitizeString(*req.SKU, 64)
		}
		if req.Name != nil {
			*req.Name = validators.SanitizeString(*req.Name, 255)
		}

		err = session.With(func(cs *variants.ChangeSet) error {
			return cs.StageUpdate(ref, variants.Patch{
				SKU:      req.SKU,
				Name:     req.Name,
				Position: req.Position,
				IsActive: req.IsActive,
			})
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"ref": ref.String(), "staged": "update"})
	}
}

func SessionStageDelete(registry *variants.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, ref, err := sessionAndRef(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = session.With(func(cs *variants.ChangeSet) error {
			return cs.StageDelete(ref)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"ref": ref.String(), "staged": "delete"})
	}
}

func SessionUndo(registry *variants.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, ref, err := sessionAndRef(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		err = session.With(func(cs *variants.ChangeSet) error {
			return cs.Undo(ref)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"ref": ref.String(), "undone": "true"})
	}
}

func SessionCommit(registry *variants.Registry, applier variants.Applier, invalidator StatusInvalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, err := sessionFromRequest(registry, r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var result variants.CommitResult
		var commitErr error
		err = session.With(func(cs *variants.ChangeSet) error {
			result, commitErr = cs.Commit(ctx, applier)
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		// anything that landed makes cached reports stale
		if result.Created+result.Updated+result.Deleted > 0 && invalidator != nil {
			if invErr := invalidator.Invalidate(ctx, session.ProductID); invErr != nil && logg != nil {
				logg.Error(ctx, "status invalidation after commit failed", invErr)
			}
		}

		if commitErr != nil {
			responses.WriteError(ctx, logg, w, commitErr)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func SessionDiscard(registry *variants.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID, err := parseSessionID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		registry.Close(sessionID)
		responses.WriteSuccess(w, map[string]string{"status": "discarded"})
	}
}

func sessionFromRequest(registry *variants.Registry, r *http.Request) (*variants.Session, error) {
	sessionID, err := parseSessionID(r)
	if err != nil {
		return nil, err
	}
	return registry.Get(sessionID)
}

func sessionAndRef(registry *variants.Registry, r *http.Request) (*variants.Session, variants.VariantRef, error) {
	session, err := sessionFromRequest(registry, r)
	if err != nil {
		return nil, variants.VariantRef{}, err
	}
	ref, err := parseRefParam(r)
	if err != nil {
		return nil, variants.VariantRef{}, err
	}
	return session, ref, nil
}
