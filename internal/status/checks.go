package status

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mstore-labs/pim-backend/internal/catalog"
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// fieldCategoryIssues maps each monitored field category to the issue it
// raises on divergence.
var fieldCategoryIssues = []struct {
	category enums.CheckCategory
	issue    enums.Issue
}{
	{enums.CheckCategoryBasic, enums.IssueBasicData},
	{enums.CheckCategoryDescriptions, enums.IssueDescriptions},
	{enums.CheckCategoryPhysical, enums.IssuePhysical},
}

// globalIssues runs the product-level checks the policy has enabled.
// Connectivity is a structural fact, not a monitored category, so it
// cannot be switched off.
func globalIssues(policy monitoring.Policy, graph *catalog.ProductGraph, shared *catalog.SharedContext) []enums.Issue {
	var issues []enums.Issue
	product := &graph.Product

	if policy.IsEnabled(enums.CheckCategoryZeroPrice) &&
		graph.PricesLoaded && hasZeroPrice(product.Prices, shared) {
		issues = append(issues, enums.IssueZeroPrice)
	}
	if policy.IsEnabled(enums.CheckCategoryLowStock) &&
		graph.StocksLoaded && hasLowStock(product.Stocks, shared) {
		issues = append(issues, enums.IssueLowStock)
	}
	if policy.IsEnabled(enums.CheckCategoryImages) &&
		graph.GalleryLoaded && countActiveGallery(product.Gallery) == 0 {
		issues = append(issues, enums.IssueNoImages)
	}
	if graph.ShopDataLoaded && !graph.Connected() {
		issues = append(issues, enums.IssueNotConnected)
	}
	return issues
}

func hasZeroPrice(prices []models.ProductPrice, shared *catalog.SharedContext) bool {
	for _, price := range prices {
		if !shared.PriceGroupActive(price.PriceGroupID) {
			continue
		}
		if price.PriceNet.LessThanOrEqual(decimal.Zero) {
			return true
		}
	}
	return false
}

// hasLowStock checks the default warehouse when one is configured and
// every location otherwise. Products without a threshold never trigger.
func hasLowStock(stocks []models.ProductStock, shared *catalog.SharedContext) bool {
	defaultWarehouse := shared.DefaultWarehouseID()
	for _, stock := range stocks {
		if defaultWarehouse != nil && stock.WarehouseID != *defaultWarehouse {
			continue
		}
		if stock.MinimumStock > 0 && stock.Available() < stock.MinimumStock {
			return true
		}
	}
	return false
}

func countActiveGallery(gallery []models.Media) int {
	count := 0
	for _, media := range gallery {
		if media.VariantID != nil {
			continue
		}
		if media.IsActive && media.InGallery() {
			count++
		}
	}
	return count
}

// shopIssues runs every shop-facing check for one overlay row. Field
// categories stop at the first divergent field; the conditional checks
// depend on the product kind.
func shopIssues(policy monitoring.Policy, graph *catalog.ProductGraph, data *models.ProductShopData) []IntegrationIssue {
	var issues []IntegrationIssue
	product := &graph.Product

	for _, fc := range fieldCategoryIssues {
		if field, diverged := shopDivergence(policy, fc.category, product, data); diverged {
			issues = append(issues, IntegrationIssue{Issue: fc.issue, Field: field})
		}
	}

	if policy.IsEnabled(enums.CheckCategoryImages) &&
		graph.GalleryLoaded && hasUnmappedImages(product.Gallery, data.ShopID) {
		issues = append(issues, IntegrationIssue{Issue: enums.IssueImagesMapping})
	}

	switch product.Kind {
	case enums.ProductKindVehicle:
		if policy.IsEnabled(enums.CheckCategoryAttributes) &&
			data.AttributeMappings.Has(models.AttributePendingKey) {
			issues = append(issues, IntegrationIssue{Issue: enums.IssueAttributes})
		}
	case enums.ProductKindSparePart:
		if policy.IsEnabled(enums.CheckCategoryCompatibility) &&
			len(product.Compatibilities) > 0 && len(data.CompatibilityMappings) == 0 {
			issues = append(issues, IntegrationIssue{Issue: enums.IssueCompatibility})
		}
	}

	return issues
}

func hasUnmappedImages(gallery []models.Media, shopID uuid.UUID) bool {
	for _, media := range gallery {
		if media.VariantID != nil || !media.IsActive || !media.InGallery() {
			continue
		}
		if !media.MappedToShop(shopID) {
			return true
		}
	}
	return false
}

// erpIssues runs the field category checks for an ERP overlay. Image
// mappings, attributes and compatibilities are shop concepts.
func erpIssues(policy monitoring.Policy, graph *catalog.ProductGraph, data *models.ProductErpData) []IntegrationIssue {
	var issues []IntegrationIssue
	for _, fc := range fieldCategoryIssues {
		if field, diverged := erpDivergence(policy, fc.category, &graph.Product, data); diverged {
			issues = append(issues, IntegrationIssue{Issue: fc.issue, Field: field})
		}
	}
	return issues
}

// variantIssues mirrors the global checks for one canonical variant.
// Variants use flat prices and have no minimum stock threshold, so the
// stock check fires only when nothing is available at all.
func variantIssues(policy monitoring.Policy, variant *models.ProductVariant, shared *catalog.SharedContext) []enums.Issue {
	var issues []enums.Issue

	if policy.IsEnabled(enums.CheckCategoryImages) && countActiveVariantGallery(variant) == 0 {
		issues = append(issues, enums.IssueVariantNoImages)
	}

	if policy.IsEnabled(enums.CheckCategoryZeroPrice) {
		for _, price := range variant.Prices {
			if !shared.PriceGroupActive(price.PriceGroupID) {
				continue
			}
			if price.Price.LessThanOrEqual(decimal.Zero) {
				issues = append(issues, enums.IssueVariantZeroPrice)
				break
			}
		}
	}

	if policy.IsEnabled(enums.CheckCategoryLowStock) && variantOutOfStock(variant.Stocks, shared) {
		issues = append(issues, enums.IssueVariantNoStock)
	}

	return issues
}

// variantOutOfStock reads the default warehouse row when one is
// configured and skips entirely when that row is missing. Without a
// default warehouse every location counts, but a variant with no stock
// rows at all is never flagged.
func variantOutOfStock(stocks []models.VariantStock, shared *catalog.SharedContext) bool {
	if defaultWarehouse := shared.DefaultWarehouseID(); defaultWarehouse != nil {
		for _, stock := range stocks {
			if stock.WarehouseID == *defaultWarehouse {
				return stock.Available() <= 0
			}
		}
		return false
	}

	if len(stocks) == 0 {
		return false
	}
	available := 0
	for _, stock := range stocks {
		available += stock.Available()
	}
	return available <= 0
}

func countActiveVariantGallery(variant *models.ProductVariant) int {
	count := 0
	for _, media := range variant.Gallery {
		if media.IsActive && media.InGallery() {
			count++
		}
	}
	return count
}
