package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status values. Orders are append-only after creation except for these
// transitions.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
)

// Order is the immutable snapshot of a converted cart. Monetary fields are
// fixed at conversion time: PlatformFee is derived from Subtotal only, tips
// are excluded from the fee base.
type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderNumber  string         `json:"order_number" gorm:"type:varchar(30);uniqueIndex;not null"`
	UserID       *uint          `json:"user_id,omitempty" gorm:"index"`
	SessionToken *string        `json:"session_token,omitempty" gorm:"type:varchar(64);index"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Subtotal     float64        `json:"subtotal" gorm:"type:decimal(10,2)"`
	TotalTips    float64        `json:"total_tips" gorm:"type:decimal(10,2)"`
	PlatformFee  float64        `json:"platform_fee" gorm:"type:decimal(10,2)"`
	TotalAmount  float64        `json:"total_amount" gorm:"type:decimal(10,2)"`

	// Masked payment descriptor. Raw PAN, CVV and full account numbers never
	// reach the model layer.
	PaymentMethod string `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentBrand  string `json:"payment_brand,omitempty" gorm:"type:varchar(30)"`
	PaymentLast4  string `json:"payment_last4,omitempty" gorm:"type:varchar(4)"`
	PaymentBank   string `json:"payment_bank,omitempty" gorm:"type:varchar(60)"`
	PaymentBranch string `json:"payment_branch,omitempty" gorm:"type:varchar(60)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a frozen copy of a CartItem. SourceCartItemID records which
// cart item produced it and drives the gate-code transfer at checkout.
type OrderItem struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	OrderID          uint       `json:"order_id" gorm:"not null;index"`
	SourceCartItemID uint       `json:"source_cart_item_id" gorm:"not null"`
	ServiceID        string     `json:"service_id" gorm:"type:varchar(60);not null"`
	ProviderID       *uint      `json:"provider_id,omitempty"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTime    string     `json:"scheduled_time" gorm:"type:varchar(20)"`
	DurationHours    float64    `json:"duration_hours" gorm:"type:decimal(4,1)"`
	BasePrice        float64    `json:"base_price" gorm:"type:decimal(10,2)"`
	AddOnsPrice      float64    `json:"add_ons_price" gorm:"type:decimal(10,2)"`
	Subtotal         float64    `json:"subtotal" gorm:"type:decimal(10,2)"`
	TipAmount        float64    `json:"tip_amount" gorm:"type:decimal(10,2);default:0"`
	Comments         string     `json:"comments" gorm:"type:text"`

	ServiceDetailsJSON string `json:"-" gorm:"column:service_details;type:json"`
	SelectedAddOnsJSON string `json:"-" gorm:"column:selected_add_ons;type:json"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}

// PaymentDescriptor is the masked payment reference accepted at checkout.
// It deliberately has no fields for a raw card number, CVV or full bank
// account, so those values cannot cross the API boundary.
type PaymentDescriptor struct {
	Method string `json:"method"` // "card" or "bank"
	Brand  string `json:"brand"`
	Last4  string `json:"last4"`
	Bank   string `json:"bank"`
	Branch string `json:"branch"`
}

// Valid reports whether the descriptor carries enough masked detail to
// reference a payment method.
func (p PaymentDescriptor) Valid() bool {
	switch p.Method {
	case "card":
		return p.Brand != "" && len(p.Last4) == 4
	case "bank":
		return p.Bank != ""
	default:
		return false
	}
}
