package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceCategory represents a browsable service category
type ServiceCategory struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Key         string         `json:"key" gorm:"type:varchar(40);not null;unique"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Icon        string         `json:"icon" gorm:"type:varchar(255)"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	SortOrder   int            `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for ServiceCategory
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// Service represents a bookable catalog row exposed by the read endpoints.
// Pricing rules live in the in-memory ServiceConfig catalog; this row carries
// the display fields.
type Service struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ServiceKey  string          `json:"service_key" gorm:"type:varchar(60);not null;unique"`
	CategoryID  uint            `json:"category_id" gorm:"not null"`
	Category    ServiceCategory `json:"category" gorm:"foreignKey:CategoryID"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null"`
	Description string          `json:"description" gorm:"type:text"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(255)"`
	BasePrice   float64         `json:"base_price" gorm:"type:decimal(10,2)"`
	PriceUnit   string          `json:"price_unit" gorm:"type:varchar(50)"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
