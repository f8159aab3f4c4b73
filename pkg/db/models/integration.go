package models

import (
	"time"

	"github.com/google/uuid"
)

// Shop is a connected storefront. The label columns drive how the
// admin UI badges the connection.
type Shop struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	LabelColor string    `gorm:"column:label_color;not null;default:''"`
	LabelIcon  string    `gorm:"column:label_icon;not null;default:''"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ErpConnection is a connected ERP system.
type ErpConnection struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	LabelColor string    `gorm:"column:label_color;not null;default:''"`
	LabelIcon  string    `gorm:"column:label_icon;not null;default:''"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
