package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mstore-labs/pim-backend/pkg/db"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
)

// Repository loads product graphs for aggregation and reconciliation.
type Repository struct {
	client *db.Client
}

// NewRepository wires the catalog repository.
func NewRepository(client *db.Client) (*Repository, error) {
	if client == nil {
		return nil, errors.New("db client is required")
	}
	return &Repository{client: client}, nil
}

func (r *Repository) graphQuery(ctx context.Context) *gorm.DB {
	return r.client.DB().WithContext(ctx).
		Preload("Prices.PriceGroup").
		Preload("Stocks.Warehouse").
		Preload("Gallery").
		Preload("ShopData.Shop").
		Preload("ErpData.ErpConnection").
		Preload("Variants.Prices.PriceGroup").
		Preload("Variants.Stocks").
		Preload("Variants.Gallery")
}

// LoadGraph fetches one product with every aggregation relation.
func (r *Repository) LoadGraph(ctx context.Context, productID uuid.UUID) (*ProductGraph, error) {
	var product models.Product
	err := r.graphQuery(ctx).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product graph")
	}
	return fullGraph(product), nil
}

// LoadGraphs fetches several products at once, skipping unknown ids.
func (r *Repository) LoadGraphs(ctx context.Context, productIDs []uuid.UUID) ([]*ProductGraph, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.graphQuery(ctx).Where("id IN ?", productIDs).Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product graphs")
	}
	graphs := make([]*ProductGraph, 0, len(products))
	for _, product := range products {
		graphs = append(graphs, fullGraph(product))
	}
	return graphs, nil
}

// LoadSharedContext fetches the catalog-wide lookups used by price and
// stock checks.
func (r *Repository) LoadSharedContext(ctx context.Context) (*SharedContext, error) {
	var groups []models.PriceGroup
	err := r.client.DB().WithContext(ctx).
		Where("is_active = ?", true).
		Find(&groups).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading price groups")
	}

	shared := &SharedContext{activePriceGroups: map[uuid.UUID]struct{}{}}
	for _, group := range groups {
		shared.activePriceGroups[group.ID] = struct{}{}
	}

	var warehouse models.Warehouse
	err = r.client.DB().WithContext(ctx).
		Where("is_default = ?", true).
		First(&warehouse).Error
	switch {
	case err == nil:
		id := warehouse.ID
		shared.defaultWarehouseID = &id
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no default warehouse configured, stock checks sum all locations
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading default warehouse")
	}

	return shared, nil
}

// ListProductIDs returns every product id, used by the all-products
// status audit.
func (r *Repository) ListProductIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.client.DB().WithContext(ctx).
		Model(&models.Product{}).
		Order("created_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing product ids")
	}
	return ids, nil
}

// NewSharedContext builds a context from explicit values, used by tests
// and callers that already hold the lookups.
func NewSharedContext(activePriceGroups []uuid.UUID, defaultWarehouseID *uuid.UUID) *SharedContext {
	shared := &SharedContext{activePriceGroups: map[uuid.UUID]struct{}{}}
	for _, id := range activePriceGroups {
		shared.activePriceGroups[id] = struct{}{}
	}
	shared.defaultWarehouseID = defaultWarehouseID
	return shared
}

func fullGraph(product models.Product) *ProductGraph {
	return &ProductGraph{
		Product:        product,
		PricesLoaded:   true,
		StocksLoaded:   true,
		GalleryLoaded:  true,
		ShopDataLoaded: true,
		ErpDataLoaded:  true,
		VariantsLoaded: true,
	}
}
