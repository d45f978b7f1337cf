package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Cart status values
const (
	CartStatusActive    = "active"
	CartStatusConverted = "converted"
	CartStatusAbandoned = "abandoned"
)

// Cart is the transient per-owner container of up to three service bookings.
// Exactly one of UserID and SessionToken identifies the owner.
type Cart struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       *uint          `json:"user_id,omitempty" gorm:"index"`
	SessionToken *string        `json:"session_token,omitempty" gorm:"type:varchar(64);index"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'active'"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"` // set for session-owned carts only
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Items []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// TableName specifies the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}

// Subtotal sums item subtotals (tips excluded).
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}

// CartItem is one drafted service booking inside a cart. It stays mutable
// until checkout converts it into an OrderItem or the owner removes it.
type CartItem struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	CartID        uint       `json:"cart_id" gorm:"not null;index"`
	ServiceID     string     `json:"service_id" gorm:"type:varchar(60);not null"`
	ProviderID    *uint      `json:"provider_id,omitempty"` // nil until assignment
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTime string     `json:"scheduled_time" gorm:"type:varchar(20)"`
	DurationHours float64    `json:"duration_hours" gorm:"type:decimal(4,1)"`
	BasePrice     float64    `json:"base_price" gorm:"type:decimal(10,2)"`
	AddOnsPrice   float64    `json:"add_ons_price" gorm:"type:decimal(10,2)"`
	Subtotal      float64    `json:"subtotal" gorm:"type:decimal(10,2)"`
	TipAmount     float64    `json:"tip_amount" gorm:"type:decimal(10,2);default:0"`
	Comments      string     `json:"comments" gorm:"type:text"`

	// ServiceDetails is the opaque structured selection blob, stored as JSON.
	ServiceDetails     PricingSelections `json:"service_details" gorm:"-"`
	ServiceDetailsJSON string            `json:"-" gorm:"column:service_details;type:json"`

	// SelectedAddOns is the set of chosen add-on ids, stored as JSON.
	SelectedAddOns     []string `json:"selected_add_ons" gorm:"-"`
	SelectedAddOnsJSON string   `json:"-" gorm:"column:selected_add_ons;type:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeSave hook to serialize JSON-backed columns
func (ci *CartItem) BeforeSave(tx *gorm.DB) error {
	detailsJSON, err := json.Marshal(ci.ServiceDetails)
	if err != nil {
		return err
	}
	ci.ServiceDetailsJSON = string(detailsJSON)

	if ci.SelectedAddOns == nil {
		ci.SelectedAddOns = []string{}
	}
	addOnsJSON, err := json.Marshal(ci.SelectedAddOns)
	if err != nil {
		return err
	}
	ci.SelectedAddOnsJSON = string(addOnsJSON)
	return nil
}

// AfterFind hook to restore JSON-backed columns
func (ci *CartItem) AfterFind(tx *gorm.DB) error {
	if ci.ServiceDetailsJSON != "" {
		if err := json.Unmarshal([]byte(ci.ServiceDetailsJSON), &ci.ServiceDetails); err != nil {
			return err
		}
	}
	if ci.SelectedAddOnsJSON != "" {
		if err := json.Unmarshal([]byte(ci.SelectedAddOnsJSON), &ci.SelectedAddOns); err != nil {
			return err
		}
	}
	return nil
}

// CartItemCreate is the request payload for adding an item to a cart.
type CartItemCreate struct {
	ServiceID     string            `json:"service_id" binding:"required"`
	Selections    PricingSelections `json:"selections"`
	ScheduledDate string            `json:"scheduled_date"` // ISO8601 date
	ScheduledTime string            `json:"scheduled_time"`
	TipAmount     float64           `json:"tip_amount"`
	Comments      string            `json:"comments"`
	GateCode      string            `json:"gate_code"` // encrypted before any write
}

// CartItemUpdate is the request payload for updating an existing cart item.
// Nil fields are left untouched.
type CartItemUpdate struct {
	Selections    *PricingSelections `json:"selections"`
	ScheduledDate *string            `json:"scheduled_date"`
	ScheduledTime *string            `json:"scheduled_time"`
	TipAmount     *float64           `json:"tip_amount"`
	Comments      *string            `json:"comments"`
	GateCode      *string            `json:"gate_code"`
}
