package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a canonical variant of a product, identified by a
// base SKU without any shop suffix.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	SKU       string    `gorm:"column:sku;not null;unique"`
	Name      string    `gorm:"column:name;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`

	Prices  []VariantPrice `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	Stocks  []VariantStock `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	Gallery []Media        `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ShopVariantOverride stores the shop-side rendition of a variant. Shops
// may suffix the SKU (for example ABC-1-S3); classification strips the
// suffix before matching against canonical variants.
type ShopVariantOverride struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID    uuid.UUID `gorm:"column:shop_id;type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	SKU       string    `gorm:"column:sku;not null"`
	Name      string    `gorm:"column:name;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`

	// ImageCount is the number of images the shop renders for this
	// variant, compared against the canonical gallery size.
	ImageCount int `gorm:"column:image_count;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Shop *Shop `gorm:"foreignKey:ShopID"`
}
