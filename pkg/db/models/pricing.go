package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceGroup is a customer segment with its own price list. Only active
// groups participate in zero-price checks.
type PriceGroup struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;unique"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ProductPrice is one product's entry in a price group's list.
type ProductPrice struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	PriceGroupID uuid.UUID       `gorm:"column:price_group_id;type:uuid;not null"`
	PriceNet     decimal.Decimal `gorm:"column:price_net;type:numeric(12,2);not null;default:0"`
	PriceGross   decimal.Decimal `gorm:"column:price_gross;type:numeric(12,2);not null;default:0"`

	PriceGroup *PriceGroup `gorm:"foreignKey:PriceGroupID"`
}

// VariantPrice carries a variant's flat price per group. Variants have no
// net/gross split.
type VariantPrice struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID    uuid.UUID       `gorm:"column:variant_id;type:uuid;not null;index"`
	PriceGroupID uuid.UUID       `gorm:"column:price_group_id;type:uuid;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`

	PriceGroup *PriceGroup `gorm:"foreignKey:PriceGroupID"`
}
