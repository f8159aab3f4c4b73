package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/api/responses"
	"github.com/mstore-labs/pim-backend/api/validators"
	"github.com/mstore-labs/pim-backend/internal/variants"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

// ShopVariantLoader assembles the shop-side variant list for one
// product on one shop together with the canonical variants.
type ShopVariantLoader interface {
	Load(ctx context.Context, productID, shopID uuid.UUID) ([]variants.ShopVariant, []models.ProductVariant, error)
}

// maxClassificationRows caps the optional limit query parameter.
const maxClassificationRows = 500

func ShopVariantClassification(loader ShopVariantLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rawShop := chi.URLParam(r, "shopID")
		shopID, err := uuid.Parse(rawShop)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "invalid shop id").
					WithDetails(map[string]any{"shop_id": rawShop}))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, maxClassificationRows)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			ctx = logg.WithShopID(logg.WithProductID(ctx, productID.String()), shopID.String())
		}

		shopVariants, canonical, err := loader.Load(ctx, productID, shopID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		classifications := variants.ClassifyAll(shopVariants, canonical)
		if limit > 0 && len(classifications) > limit {
			classifications = classifications[:limit]
		}
		responses.WriteSuccess(w, map[string]any{
			"classifications": classifications,
		})
	}
}
