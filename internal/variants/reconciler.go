package variants

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// shopSuffixRe matches the per-shop SKU suffix some storefronts append,
// for example ABC-1-S3.
var shopSuffixRe = regexp.MustCompile(`-S\d+$`)

// BaseSKU strips the shop suffix so a shop variant can be matched
// against the canonical list.
func BaseSKU(sku string) string {
	return shopSuffixRe.ReplaceAllString(strings.TrimSpace(sku), "")
}

// ShopVariant is the shop-side rendition of a variant as seen during
// classification. HasLocalData is false when the shop simply mirrors the
// canonical variant with no stored override.
type ShopVariant struct {
	SKU          string
	Name         string
	IsActive     bool
	ImageCount   int
	HasLocalData bool
}

// Classification is the outcome for one shop variant.
type Classification struct {
	SKU         string                 `json:"sku"`
	BaseSKU     string                 `json:"base_sku"`
	State       enums.VariantShopState `json:"state"`
	CanonicalID *uuid.UUID             `json:"canonical_id,omitempty"`
}

// Classify matches one shop variant against the canonical variants of
// its product and returns the four-way state:
//
//	no canonical with the base SKU  -> shop_only
//	match without local shop data   -> inherited
//	match with identical data       -> same
//	match with diverging data       -> different
func Classify(sv ShopVariant, canonicalBySKU map[string]*models.ProductVariant) Classification {
	base := BaseSKU(sv.SKU)
	out := Classification{SKU: sv.SKU, BaseSKU: base}

	canonical, ok := canonicalBySKU[base]
	if !ok || canonical == nil {
		out.State = enums.VariantShopStateShopOnly
		return out
	}
	id := canonical.ID
	out.CanonicalID = &id

	if !sv.HasLocalData {
		out.State = enums.VariantShopStateInherited
		return out
	}
	if equalVariantData(sv, canonical) {
		out.State = enums.VariantShopStateSame
		return out
	}
	out.State = enums.VariantShopStateDifferent
	return out
}

// ClassifyAll classifies every shop variant against the product's
// canonical list, preserving input order.
func ClassifyAll(shopVariants []ShopVariant, canonical []models.ProductVariant) []Classification {
	bySKU := make(map[string]*models.ProductVariant, len(canonical))
	for i := range canonical {
		bySKU[canonical[i].SKU] = &canonical[i]
	}
	out := make([]Classification, 0, len(shopVariants))
	for _, sv := range shopVariants {
		out = append(out, Classify(sv, bySKU))
	}
	return out
}

// equalVariantData compares the fields shops are allowed to override:
// base SKU, image count, active flag and name.
func equalVariantData(sv ShopVariant, canonical *models.ProductVariant) bool {
	if BaseSKU(sv.SKU) != canonical.SKU {
		return false
	}
	if sv.ImageCount != canonicalImageCount(canonical) {
		return false
	}
	if sv.IsActive != canonical.IsActive {
		return false
	}
	return strings.TrimSpace(sv.Name) == strings.TrimSpace(canonical.Name)
}

func canonicalImageCount(variant *models.ProductVariant) int {
	count := 0
	for _, media := range variant.Gallery {
		if media.IsActive && media.InGallery() {
			count++
		}
	}
	return count
}
