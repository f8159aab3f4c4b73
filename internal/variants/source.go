package variants

import (
	"context"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
)

// ShopVariantSource assembles the shop-side variant list used for
// classification: stored override rows plus, for every canonical variant
// the shop has no override for, a mirror entry marked as having no local
// data.
type ShopVariantSource struct {
	client *db.Client
}

// NewShopVariantSource wraps the database client.
func NewShopVariantSource(client *db.Client) *ShopVariantSource {
	return &ShopVariantSource{client: client}
}

// Load returns the shop variants for one product on one shop together
// with the product's canonical variants.
func (s *ShopVariantSource) Load(ctx context.Context, productID, shopID uuid.UUID) ([]ShopVariant, []models.ProductVariant, error) {
	conn := s.client.DB().WithContext(ctx)

	var canonical []models.ProductVariant
	err := conn.Preload("Gallery").
		Where("product_id = ?", productID).
		Order("position asc, sku asc").
		Find(&canonical).Error
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load canonical variants")
	}

	var overrides []models.ShopVariantOverride
	err = conn.Where("product_id = ? AND shop_id = ?", productID, shopID).
		Order("sku asc").
		Find(&overrides).Error
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load shop variant overrides")
	}

	covered := make(map[string]struct{}, len(overrides))
	out := make([]ShopVariant, 0, len(overrides)+len(canonical))
	for _, override := range overrides {
		covered[BaseSKU(override.SKU)] = struct{}{}
		out = append(out, ShopVariant{
			SKU:          override.SKU,
			Name:         override.Name,
			IsActive:     override.IsActive,
			ImageCount:   override.ImageCount,
			HasLocalData: true,
		})
	}
	for i := range canonical {
		variant := &canonical[i]
		if _, ok := covered[variant.SKU]; ok {
			continue
		}
		out = append(out, ShopVariant{
			SKU:          variant.SKU,
			Name:         variant.Name,
			IsActive:     variant.IsActive,
			ImageCount:   canonicalImageCount(variant),
			HasLocalData: false,
		})
	}
	return out, canonical, nil
}
