package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booking-engine-server/config"
	"booking-engine-server/database"
	"booking-engine-server/models"
)

// OwnerKey identifies the cart owner: exactly one of an authenticated user id
// or an opaque session token. A key with both set is invalid; a key with
// neither set makes the store mint a fresh session token and hand it back.
type OwnerKey struct {
	UserID       *uint
	SessionToken string
}

func (k OwnerKey) validate() error {
	if k.UserID != nil && k.SessionToken != "" {
		return fmt.Errorf("%w: cart owner must be a user id or a session token, not both", ErrValidation)
	}
	return nil
}

// CartMutation is the result of a cart write. MintedToken is non-empty only
// when the store created a new session token; the caller is responsible for
// persisting it (cookie-equivalent).
type CartMutation struct {
	Cart        *models.Cart
	Item        *models.CartItem
	MintedToken string
}

// CartService owns the Cart/CartItem lifecycle and enforces the cart
// invariants: at most MaxItems items, mutually exclusive owner fields, stored
// subtotals produced by the pricing calculator.
type CartService struct {
	db    *gorm.DB
	vault *GateCodeVault
}

// NewCartService creates a cart service on the shared database handle.
func NewCartService() *CartService {
	return &CartService{db: database.GetDB(), vault: NewGateCodeVault()}
}

// NewCartServiceWith creates a cart service bound to an explicit handle and
// vault, used by tests.
func NewCartServiceWith(db *gorm.DB, vault *GateCodeVault) *CartService {
	return &CartService{db: db, vault: vault}
}

func cartMaxItems() int {
	if config.AppConfig != nil && config.AppConfig.Cart.MaxItems > 0 {
		return config.AppConfig.Cart.MaxItems
	}
	return 3
}

func cartSessionTTL() time.Duration {
	days := 14
	if config.AppConfig != nil && config.AppConfig.Cart.SessionTTLDays > 0 {
		days = config.AppConfig.Cart.SessionTTLDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// GetOrCreateCart resolves the owner's active cart, creating one when needed.
// The returned token is non-empty only when a session token was minted.
func (s *CartService) GetOrCreateCart(key OwnerKey) (*models.Cart, string, error) {
	if err := key.validate(); err != nil {
		return nil, "", err
	}

	var cart *models.Cart
	var minted string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cart, minted, err = s.lockOrCreateCart(tx, key)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return cart, minted, nil
}

// lockOrCreateCart locates the owner's cart under a row lock, creating it if
// absent. Must run inside a transaction so the lock pairs with the caller's
// subsequent writes.
func (s *CartService) lockOrCreateCart(tx *gorm.DB, key OwnerKey) (*models.Cart, string, error) {
	var cart models.Cart
	var minted string

	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("status = ?", models.CartStatusActive)
	switch {
	case key.UserID != nil:
		query = query.Where("user_id = ?", *key.UserID)
	case key.SessionToken != "":
		query = query.Where("session_token = ? AND (expires_at IS NULL OR expires_at > ?)", key.SessionToken, time.Now())
	default:
		minted = uuid.NewString()
	}

	if minted == "" {
		err := query.First(&cart).Error
		if err == nil {
			return &cart, "", nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: loading cart: %v", ErrPersistence, err)
		}
	}

	cart = models.Cart{Status: models.CartStatusActive}
	switch {
	case key.UserID != nil:
		cart.UserID = key.UserID
	default:
		token := key.SessionToken
		if token == "" {
			token = minted
		}
		expiresAt := time.Now().Add(cartSessionTTL())
		cart.SessionToken = &token
		cart.ExpiresAt = &expiresAt
	}

	if err := tx.Create(&cart).Error; err != nil {
		return nil, "", fmt.Errorf("%w: creating cart: %v", ErrPersistence, err)
	}
	return &cart, minted, nil
}

// AddItem prices the selection, enforces the item cap under the cart row lock
// and inserts the new item, storing an encrypted gate code when one is given.
func (s *CartService) AddItem(key OwnerKey, input models.CartItemCreate) (*CartMutation, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}
	svc, ok := GetServiceConfig(input.ServiceID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown service %q", ErrValidation, input.ServiceID)
	}
	if input.TipAmount < 0 {
		return nil, fmt.Errorf("%w: tip amount must not be negative", ErrValidation)
	}

	scheduledDate, err := parseScheduledDate(input.ScheduledDate)
	if err != nil {
		return nil, err
	}

	var result CartMutation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		cart, minted, err := s.lockOrCreateCart(tx, key)
		if err != nil {
			return err
		}
		result.MintedToken = minted

		var count int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: counting cart items: %v", ErrPersistence, err)
		}
		if int(count) >= cartMaxItems() {
			return ErrCartLimitExceeded
		}

		pricing := ComputePricing(input.ServiceID, input.Selections)
		item := models.CartItem{
			CartID:         cart.ID,
			ServiceID:      input.ServiceID,
			ScheduledDate:  scheduledDate,
			ScheduledTime:  input.ScheduledTime,
			DurationHours:  EstimateHours(svc.Category, input.Selections),
			BasePrice:      pricing.BasePrice,
			AddOnsPrice:    pricing.AddOnsPrice,
			Subtotal:       pricing.TotalPrice,
			TipAmount:      input.TipAmount,
			Comments:       input.Comments,
			ServiceDetails: input.Selections,
			SelectedAddOns: input.Selections.AddOnIDs,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("%w: creating cart item: %v", ErrPersistence, err)
		}

		if input.GateCode != "" {
			if _, err := s.vault.StoreForCartItem(tx, item.ID, input.GateCode); err != nil {
				return err
			}
		}

		result.Item = &item
		result.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.reloadCart(result.Cart); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateItem applies a partial update, re-running the pricing calculator and
// duration estimator when the selections change.
func (s *CartService) UpdateItem(key OwnerKey, itemID uint, update models.CartItemUpdate) (*models.CartItem, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	var updated models.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, key)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: loading cart item: %v", ErrPersistence, err)
		}

		if update.Selections != nil {
			svc, ok := GetServiceConfig(item.ServiceID)
			if !ok {
				return fmt.Errorf("%w: unknown service %q", ErrValidation, item.ServiceID)
			}
			pricing := ComputePricing(item.ServiceID, *update.Selections)
			item.ServiceDetails = *update.Selections
			item.SelectedAddOns = update.Selections.AddOnIDs
			item.BasePrice = pricing.BasePrice
			item.AddOnsPrice = pricing.AddOnsPrice
			item.Subtotal = pricing.TotalPrice
			item.DurationHours = EstimateHours(svc.Category, *update.Selections)
		}
		if update.ScheduledDate != nil {
			scheduledDate, err := parseScheduledDate(*update.ScheduledDate)
			if err != nil {
				return err
			}
			item.ScheduledDate = scheduledDate
		}
		if update.ScheduledTime != nil {
			item.ScheduledTime = *update.ScheduledTime
		}
		if update.TipAmount != nil {
			if *update.TipAmount < 0 {
				return fmt.Errorf("%w: tip amount must not be negative", ErrValidation)
			}
			item.TipAmount = *update.TipAmount
		}
		if update.Comments != nil {
			item.Comments = *update.Comments
		}

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("%w: updating cart item: %v", ErrPersistence, err)
		}

		if update.GateCode != nil {
			if *update.GateCode == "" {
				if err := tx.Where("cart_item_id = ?", item.ID).Delete(&models.GateCode{}).Error; err != nil {
					return fmt.Errorf("%w: removing gate code: %v", ErrPersistence, err)
				}
			} else if _, err := s.vault.StoreForCartItem(tx, item.ID, *update.GateCode); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveItem deletes a cart item and its gate code.
func (s *CartService) RemoveItem(key OwnerKey, itemID uint) error {
	if err := key.validate(); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, key)
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			return fmt.Errorf("%w: removing cart item: %v", ErrPersistence, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("cart_item_id = ?", itemID).Delete(&models.GateCode{}).Error; err != nil {
			return fmt.Errorf("%w: removing gate code: %v", ErrPersistence, err)
		}
		return nil
	})
}

// Clear removes every item (and attached gate codes) from the owner's cart.
func (s *CartService) Clear(key OwnerKey) error {
	if err := key.validate(); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.lockCart(tx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil // nothing to clear
			}
			return err
		}
		return clearCartItems(tx, cart.ID)
	})
}

// GetWithItems loads the owner's cart with its items. A missing cart is
// reported as ErrNotFound rather than silently minting a new one.
func (s *CartService) GetWithItems(key OwnerKey) (*models.Cart, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	var cart models.Cart
	query := s.db.Preload("Items").Where("status = ?", models.CartStatusActive)
	switch {
	case key.UserID != nil:
		query = query.Where("user_id = ?", *key.UserID)
	case key.SessionToken != "":
		query = query.Where("session_token = ? AND (expires_at IS NULL OR expires_at > ?)", key.SessionToken, time.Now())
	default:
		return nil, fmt.Errorf("%w: cart owner is required", ErrValidation)
	}

	if err := query.First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading cart: %v", ErrPersistence, err)
	}
	return &cart, nil
}

// lockCart is lockOrCreateCart without the create path.
func (s *CartService) lockCart(tx *gorm.DB, key OwnerKey) (*models.Cart, error) {
	var cart models.Cart
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("status = ?", models.CartStatusActive)
	switch {
	case key.UserID != nil:
		query = query.Where("user_id = ?", *key.UserID)
	case key.SessionToken != "":
		query = query.Where("session_token = ? AND (expires_at IS NULL OR expires_at > ?)", key.SessionToken, time.Now())
	default:
		return nil, fmt.Errorf("%w: cart owner is required", ErrValidation)
	}

	if err := query.First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: loading cart: %v", ErrPersistence, err)
	}
	return &cart, nil
}

func (s *CartService) reloadCart(cart *models.Cart) error {
	if err := s.db.Preload("Items").First(cart, cart.ID).Error; err != nil {
		return fmt.Errorf("%w: reloading cart: %v", ErrPersistence, err)
	}
	return nil
}

func clearCartItems(tx *gorm.DB, cartID uint) error {
	var itemIDs []uint
	if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Pluck("id", &itemIDs).Error; err != nil {
		return fmt.Errorf("%w: listing cart items: %v", ErrPersistence, err)
	}
	if len(itemIDs) == 0 {
		return nil
	}
	if err := tx.Where("cart_item_id IN ?", itemIDs).Delete(&models.GateCode{}).Error; err != nil {
		return fmt.Errorf("%w: clearing gate codes: %v", ErrPersistence, err)
	}
	if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("%w: clearing cart items: %v", ErrPersistence, err)
	}
	return nil
}

func parseScheduledDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("%w: scheduled_date must be ISO8601", ErrValidation)
		}
	}
	return &parsed, nil
}
