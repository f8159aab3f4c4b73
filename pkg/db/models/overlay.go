package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/mstore-labs/pim-backend/pkg/db/types"
)

// AttributePendingKey marks a shop attribute mapping as not yet resolved.
const AttributePendingKey = "pending"

// ProductShopData holds the per-shop overlay for a product. Every field
// is a pointer: nil means the shop inherits the canonical value, so a nil
// never counts as a discrepancy.
type ProductShopData struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null"`

	Name         *string          `gorm:"column:name"`
	Manufacturer *string          `gorm:"column:manufacturer"`
	SupplierCode *string          `gorm:"column:supplier_code"`
	EAN          *string          `gorm:"column:ean"`
	TaxRate      *decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2)"`
	SortOrder    *int             `gorm:"column:sort_order"`
	IsActive     *bool            `gorm:"column:is_active"`

	ShortDescription *string `gorm:"column:short_description"`
	LongDescription  *string `gorm:"column:long_description"`
	MetaTitle        *string `gorm:"column:meta_title"`
	MetaDescription  *string `gorm:"column:meta_description"`

	Weight *decimal.Decimal `gorm:"column:weight;type:numeric(10,2)"`
	Height *decimal.Decimal `gorm:"column:height;type:numeric(10,2)"`
	Width  *decimal.Decimal `gorm:"column:width;type:numeric(10,2)"`
	Length *decimal.Decimal `gorm:"column:length;type:numeric(10,2)"`

	// AttributeMappings maps canonical attribute names to shop attribute
	// ids. A "pending" key means the mapping still needs operator review.
	AttributeMappings dbtypes.JSONMap `gorm:"column:attribute_mappings;type:jsonb;not null;default:'{}'"`

	// CompatibilityMappings binds canonical compatibility entries to shop
	// records. Empty while the product lists compatibilities is an issue.
	CompatibilityMappings dbtypes.JSONMap `gorm:"column:compatibility_mappings;type:jsonb;not null;default:'{}'"`

	LastSyncedAt *time.Time `gorm:"column:last_synced_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Shop *Shop `gorm:"foreignKey:ShopID"`
}

// ProductErpData holds the per-ERP overlay for a product, same inherit
// semantics as the shop overlay.
type ProductErpData struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	ErpConnectionID uuid.UUID `gorm:"column:erp_connection_id;type:uuid;not null"`

	Name         *string          `gorm:"column:name"`
	Manufacturer *string          `gorm:"column:manufacturer"`
	SupplierCode *string          `gorm:"column:supplier_code"`
	EAN          *string          `gorm:"column:ean"`
	TaxRate      *decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2)"`
	SortOrder    *int             `gorm:"column:sort_order"`
	IsActive     *bool            `gorm:"column:is_active"`

	ShortDescription *string `gorm:"column:short_description"`
	LongDescription  *string `gorm:"column:long_description"`
	MetaTitle        *string `gorm:"column:meta_title"`
	MetaDescription  *string `gorm:"column:meta_description"`

	Weight *decimal.Decimal `gorm:"column:weight;type:numeric(10,2)"`
	Height *decimal.Decimal `gorm:"column:height;type:numeric(10,2)"`
	Width  *decimal.Decimal `gorm:"column:width;type:numeric(10,2)"`
	Length *decimal.Decimal `gorm:"column:length;type:numeric(10,2)"`

	LastSyncedAt *time.Time `gorm:"column:last_synced_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	ErpConnection *ErpConnection `gorm:"foreignKey:ErpConnectionID"`
}
