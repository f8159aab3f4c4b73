package models

import (
	"time"

	dbtypes "github.com/mstore-labs/pim-backend/pkg/db/types"
)

// Setting is a keyed JSON configuration blob. The monitoring policy is
// persisted under the product_status_monitoring key.
type Setting struct {
	Key       string          `gorm:"column:key;primaryKey"`
	Value     dbtypes.JSONMap `gorm:"column:value;type:jsonb;not null;default:'{}'"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
