package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// Product is the canonical PIM record that every connected integration
// inherits from.
type Product struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU          string            `gorm:"column:sku;not null;unique"`
	EAN          *string           `gorm:"column:ean"`
	Name         string            `gorm:"column:name;not null"`
	Manufacturer *string           `gorm:"column:manufacturer"`
	SupplierCode *string           `gorm:"column:supplier_code"`
	Kind         enums.ProductKind `gorm:"column:kind;type:product_kind;not null;default:'other'"`
	TaxRate      decimal.Decimal   `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	SortOrder    int               `gorm:"column:sort_order;not null;default:0"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`

	ShortDescription *string `gorm:"column:short_description"`
	LongDescription  *string `gorm:"column:long_description"`
	MetaTitle        *string `gorm:"column:meta_title"`
	MetaDescription  *string `gorm:"column:meta_description"`

	Weight *decimal.Decimal `gorm:"column:weight;type:numeric(10,2)"`
	Height *decimal.Decimal `gorm:"column:height;type:numeric(10,2)"`
	Width  *decimal.Decimal `gorm:"column:width;type:numeric(10,2)"`
	Length *decimal.Decimal `gorm:"column:length;type:numeric(10,2)"`

	// Compatibilities lists vehicle identifiers a spare part fits.
	Compatibilities pq.StringArray `gorm:"column:compatibilities;type:text[];not null;default:ARRAY[]::text[]"`

	// ImportedAt marks the most recent bulk import touch. Products inside
	// the import grace period report an awaiting-validation status.
	ImportedAt *time.Time `gorm:"column:imported_at"`

	Prices   []ProductPrice   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Stocks   []ProductStock   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Gallery  []Media          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ShopData []ProductShopData `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ErpData  []ProductErpData  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
