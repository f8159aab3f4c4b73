package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/mstore-labs/pim-backend/pkg/db/types"
)

// MediaContextGallery is the context value for product gallery images.
// Legacy rows imported without a context count as gallery media too.
const MediaContextGallery = "product_gallery"

// Media is one image attached to a product or to one of its variants.
type Media struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	VariantID *uuid.UUID `gorm:"column:variant_id;type:uuid;index"`
	Context   *string    `gorm:"column:context"`
	FileName  string     `gorm:"column:file_name;not null"`
	Position  int        `gorm:"column:position;not null;default:0"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`

	// ShopMappings records per-shop image ids under store_<shopID> keys.
	// A missing key means the image was never pushed to that shop.
	ShopMappings dbtypes.JSONMap `gorm:"column:shop_mappings;type:jsonb;not null;default:'{}'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// InGallery reports whether the image belongs to the product gallery.
func (m Media) InGallery() bool {
	return m.Context == nil || *m.Context == MediaContextGallery
}

// MappedToShop reports whether the image has been pushed to the shop.
func (m Media) MappedToShop(shopID uuid.UUID) bool {
	return m.ShopMappings.Has("store_" + shopID.String())
}
