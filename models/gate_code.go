package models

import "time"

// GateCode is an encrypted property access code, 1:1 with a cart item and
// later re-keyed to the corresponding order item inside the checkout
// transaction. The row is immutable once written; overwriting a code replaces
// the row. Exactly one of CartItemID and OrderItemID is set at any time.
type GateCode struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CartItemID  *uint  `json:"cart_item_id,omitempty" gorm:"uniqueIndex"`
	OrderItemID *uint  `json:"order_item_id,omitempty" gorm:"uniqueIndex"`
	Ciphertext  string `json:"-" gorm:"type:text;not null"`
	IV          string `json:"-" gorm:"type:varchar(64);not null"`
	AuthTag     string `json:"-" gorm:"type:varchar(64);not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GateCode
func (GateCode) TableName() string {
	return "gate_codes"
}
