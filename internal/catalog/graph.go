package catalog

import (
	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/db/models"
)

// ProductGraph is a product with the relations status aggregation needs.
// The Loaded flags record which relations were actually fetched; a check
// whose relation was not loaded is skipped rather than reported.
type ProductGraph struct {
	Product models.Product

	PricesLoaded   bool
	StocksLoaded   bool
	GalleryLoaded  bool
	ShopDataLoaded bool
	ErpDataLoaded  bool
	VariantsLoaded bool
}

// Connected reports whether the product is pushed to any shop. An ERP
// link alone does not count; connectivity means a storefront presence.
func (g *ProductGraph) Connected() bool {
	return len(g.Product.ShopData) > 0
}

// SharedContext carries catalog-wide lookups shared by every product in
// one aggregation run.
type SharedContext struct {
	activePriceGroups  map[uuid.UUID]struct{}
	defaultWarehouseID *uuid.UUID
}

// PriceGroupActive reports whether the group participates in price checks.
func (c *SharedContext) PriceGroupActive(id uuid.UUID) bool {
	if c == nil {
		return false
	}
	_, ok := c.activePriceGroups[id]
	return ok
}

// DefaultWarehouseID returns the default warehouse, if one is flagged.
func (c *SharedContext) DefaultWarehouseID() *uuid.UUID {
	if c == nil {
		return nil
	}
	return c.defaultWarehouseID
}
