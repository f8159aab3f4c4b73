package models

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a physical stock location.
type Warehouse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ProductStock tracks per-warehouse inventory for a product. Available
// stock is Quantity minus ReservedQuantity.
type ProductStock struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	WarehouseID      uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	Quantity         int       `gorm:"column:quantity;not null;default:0"`
	ReservedQuantity int       `gorm:"column:reserved_quantity;not null;default:0"`
	MinimumStock     int       `gorm:"column:minimum_stock;not null;default:0"`

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

// Available returns sellable stock after reservations.
func (s ProductStock) Available() int {
	return s.Quantity - s.ReservedQuantity
}

// VariantStock tracks per-warehouse inventory for a variant. Variants
// carry no minimum-stock threshold.
type VariantStock struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID        uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index"`
	WarehouseID      uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null"`
	Quantity         int       `gorm:"column:quantity;not null;default:0"`
	ReservedQuantity int       `gorm:"column:reserved_quantity;not null;default:0"`

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

// Available returns sellable stock after reservations.
func (s VariantStock) Available() int {
	return s.Quantity - s.ReservedQuantity
}
