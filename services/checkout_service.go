package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"booking-engine-server/config"
	"booking-engine-server/database"
	"booking-engine-server/models"
)

// PlatformFeeRate is the commission taken on the pre-tip subtotal.
func PlatformFeeRate() float64 {
	if config.AppConfig != nil && config.AppConfig.Billing.PlatformFeeRate > 0 {
		return config.AppConfig.Billing.PlatformFeeRate
	}
	return 0.15
}

// OrderTotals is the money summary fixed at conversion time.
type OrderTotals struct {
	Subtotal    float64
	TotalTips   float64
	PlatformFee float64
	TotalAmount float64
}

// ComputeOrderTotals derives the order money fields from cart items. The
// platform fee is a percentage of the subtotal only; tips never enter the fee
// base.
func ComputeOrderTotals(items []models.CartItem) OrderTotals {
	var totals OrderTotals
	for _, item := range items {
		totals.Subtotal += item.Subtotal
		totals.TotalTips += item.TipAmount
	}
	totals.PlatformFee = math.Round(totals.Subtotal * PlatformFeeRate())
	totals.TotalAmount = totals.Subtotal + totals.TotalTips + totals.PlatformFee
	return totals
}

// NewOrderNumber formats an order number as BE-<year>-<last 6 digits of epoch
// ms>. The scheme is documented as non-globally-unique: two checkouts in the
// same millisecond bucket can collide, and the unique index on order_number
// turns that into a failed (and retried by the client) conversion rather than
// a silent duplicate.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("BE-%d-%06d", now.Year(), now.UnixMilli()%1000000)
}

// CheckoutService converts a cart into an immutable order in one transaction.
type CheckoutService struct {
	db    *gorm.DB
	vault *GateCodeVault
}

// NewCheckoutService creates a checkout service on the shared database handle.
func NewCheckoutService() *CheckoutService {
	return &CheckoutService{db: database.GetDB(), vault: NewGateCodeVault()}
}

// NewCheckoutServiceWith creates a checkout service bound to an explicit
// handle and vault, used by tests.
func NewCheckoutServiceWith(db *gorm.DB, vault *GateCodeVault) *CheckoutService {
	return &CheckoutService{db: db, vault: vault}
}

// Checkout converts the owner's cart into an order. Order creation, order
// item copies, gate-code re-keying and cart clearing are one atomic unit: any
// failure reverts every write and leaves the cart untouched.
func (s *CheckoutService) Checkout(key OwnerKey, payment models.PaymentDescriptor) (*models.Order, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	if !payment.Valid() {
		return nil, ErrMissingPaymentMethod
	}

	cartSvc := &CartService{db: s.db, vault: s.vault}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := cartSvc.lockCart(tx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error; err != nil {
			return fmt.Errorf("%w: loading cart items: %v", ErrPersistence, err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		totals := ComputeOrderTotals(items)
		order = models.Order{
			OrderNumber:   NewOrderNumber(time.Now()),
			UserID:        cart.UserID,
			SessionToken:  cart.SessionToken,
			Status:        models.OrderStatusPending,
			Subtotal:      totals.Subtotal,
			TotalTips:     totals.TotalTips,
			PlatformFee:   totals.PlatformFee,
			TotalAmount:   totals.TotalAmount,
			PaymentMethod: payment.Method,
			PaymentBrand:  payment.Brand,
			PaymentLast4:  payment.Last4,
			PaymentBank:   payment.Bank,
			PaymentBranch: payment.Branch,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("%w: creating order: %v", ErrPersistence, err)
		}

		for _, item := range items {
			orderItem := models.OrderItem{
				OrderID:            order.ID,
				SourceCartItemID:   item.ID,
				ServiceID:          item.ServiceID,
				ProviderID:         item.ProviderID,
				ScheduledDate:      item.ScheduledDate,
				ScheduledTime:      item.ScheduledTime,
				DurationHours:      item.DurationHours,
				BasePrice:          item.BasePrice,
				AddOnsPrice:        item.AddOnsPrice,
				Subtotal:           item.Subtotal,
				TipAmount:          item.TipAmount,
				Comments:           item.Comments,
				ServiceDetailsJSON: item.ServiceDetailsJSON,
				SelectedAddOnsJSON: item.SelectedAddOnsJSON,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("%w: creating order item: %v", ErrPersistence, err)
			}
			if err := s.vault.RekeyToOrderItem(tx, item.ID, orderItem.ID); err != nil {
				return err
			}
		}

		return clearCartItems(tx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("%w: reloading order: %v", ErrPersistence, err)
	}
	return &order, nil
}

// GetOrders lists the owner's orders, newest first.
func (s *CheckoutService) GetOrders(key OwnerKey) ([]models.Order, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	query := s.db.Preload("Items").Order("created_at DESC")
	switch {
	case key.UserID != nil:
		query = query.Where("user_id = ?", *key.UserID)
	case key.SessionToken != "":
		query = query.Where("session_token = ?", key.SessionToken)
	default:
		return nil, fmt.Errorf("%w: order owner is required", ErrValidation)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("%w: loading orders: %v", ErrPersistence, err)
	}
	return orders, nil
}

// GetOrder loads one of the owner's orders by id.
func (s *CheckoutService) GetOrder(key OwnerKey, orderID uint) (*models.Order, error) {
	orders, err := s.ownedOrderQuery(key)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := orders.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading order: %v", ErrPersistence, err)
	}
	return &order, nil
}

// UpdateOrderStatus applies one of the allowed status transitions. Orders are
// append-only otherwise.
func (s *CheckoutService) UpdateOrderStatus(key OwnerKey, orderID uint, status string) (*models.Order, error) {
	switch status {
	case models.OrderStatusConfirmed, models.OrderStatusCancelled, models.OrderStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unsupported order status %q", ErrValidation, status)
	}

	order, err := s.GetOrder(key, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: order %s is final", ErrValidation, order.Status)
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("%w: updating order status: %v", ErrPersistence, err)
	}
	return order, nil
}

// RevealGateCode decrypts the gate code attached to one of the owner's order
// items, typically for the assigned provider shortly before the visit.
func (s *CheckoutService) RevealGateCode(key OwnerKey, orderID, orderItemID uint) (string, error) {
	order, err := s.GetOrder(key, orderID)
	if err != nil {
		return "", err
	}

	for _, item := range order.Items {
		if item.ID == orderItemID {
			return s.vault.RevealForOrderItem(s.db, orderItemID)
		}
	}
	return "", ErrNotFound
}

func (s *CheckoutService) ownedOrderQuery(key OwnerKey) (*gorm.DB, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	switch {
	case key.UserID != nil:
		return s.db.Where("user_id = ?", *key.UserID), nil
	case key.SessionToken != "":
		return s.db.Where("session_token = ?", key.SessionToken), nil
	default:
		return nil, fmt.Errorf("%w: order owner is required", ErrValidation)
	}
}
