package services

import (
	"errors"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"booking-engine-server/models"
	"booking-engine-server/utils"
)

// testDB opens the database named by TEST_DB_URL, or skips the test. These
// tests exercise the transactional invariants and need a real Postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set; skipping database-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Cart{}, &models.CartItem{}, &models.GateCode{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	for _, table := range []string{"gate_codes", "order_items", "orders", "cart_items", "carts"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset table %s: %v", table, err)
		}
	}
	return db
}

func testCartService(db *gorm.DB) *CartService {
	return NewCartServiceWith(db, testVault())
}

func cleaningItem(tip float64) models.CartItemCreate {
	return models.CartItemCreate{
		ServiceID:  "house-cleaning",
		Selections: models.PricingSelections{CleaningType: "standard"},
		TipAmount:  tip,
	}
}

func TestAddItemMintsSessionToken(t *testing.T) {
	db := testDB(t)
	svc := testCartService(db)

	result, err := svc.AddItem(OwnerKey{}, cleaningItem(0))
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if result.MintedToken == "" {
		t.Error("anonymous add should mint a session token")
	}
	if result.Cart.SessionToken == nil || *result.Cart.SessionToken != result.MintedToken {
		t.Error("minted token should own the created cart")
	}
	if result.Cart.ExpiresAt == nil {
		t.Error("session carts must carry a TTL")
	}

	// A second add with the minted token reuses the cart and mints nothing.
	again, err := svc.AddItem(OwnerKey{SessionToken: result.MintedToken}, cleaningItem(0))
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	if again.MintedToken != "" {
		t.Error("existing session token should not mint a new one")
	}
	if again.Cart.ID != result.Cart.ID {
		t.Errorf("second add went to cart %d, want %d", again.Cart.ID, result.Cart.ID)
	}
}

func TestAddItemEnforcesCartLimit(t *testing.T) {
	db := testDB(t)
	svc := testCartService(db)
	userID := uint(101)
	owner := OwnerKey{UserID: &userID}

	for i := 0; i < 3; i++ {
		if _, err := svc.AddItem(owner, cleaningItem(0)); err != nil {
			t.Fatalf("AddItem %d failed: %v", i+1, err)
		}
	}

	_, err := svc.AddItem(owner, cleaningItem(0))
	if !errors.Is(err, ErrCartLimitExceeded) {
		t.Fatalf("fourth add: got err %v, want ErrCartLimitExceeded", err)
	}

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	if count != 3 {
		t.Errorf("cart holds %d items after rejected add, want 3", count)
	}
}

func TestAddItemRejectsUnknownService(t *testing.T) {
	db := testDB(t)
	svc := testCartService(db)

	_, err := svc.AddItem(OwnerKey{}, models.CartItemCreate{ServiceID: "no-such-service"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got err %v, want ErrValidation", err)
	}
}

func TestAddItemStoresEncryptedGateCode(t *testing.T) {
	db := testDB(t)
	svc := testCartService(db)

	input := cleaningItem(0)
	input.GateCode = "7733#"
	result, err := svc.AddItem(OwnerKey{}, input)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	var code models.GateCode
	if err := db.Where("cart_item_id = ?", result.Item.ID).First(&code).Error; err != nil {
		t.Fatalf("gate code row missing: %v", err)
	}
	if code.Ciphertext == "7733#" || code.Ciphertext == "" {
		t.Error("gate code must be stored encrypted")
	}

	plaintext, err := testVault().Decrypt(utils.EncryptedPayload{
		Ciphertext: code.Ciphertext, IV: code.IV, AuthTag: code.AuthTag,
	})
	if err != nil {
		t.Fatalf("stored gate code does not decrypt: %v", err)
	}
	if plaintext != "7733#" {
		t.Errorf("decrypted %q, want %q", plaintext, "7733#")
	}
}

func TestCheckoutConvertsCartAtomically(t *testing.T) {
	db := testDB(t)
	cartSvc := testCartService(db)
	checkoutSvc := NewCheckoutServiceWith(db, testVault())
	userID := uint(7)
	owner := OwnerKey{UserID: &userID}

	input := cleaningItem(30)
	input.GateCode = "1122"
	added, err := cartSvc.AddItem(owner, input)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	order, err := checkoutSvc.Checkout(owner, models.PaymentDescriptor{Method: "card", Brand: "visa", Last4: "4242"})
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1", len(order.Items))
	}
	if order.Items[0].SourceCartItemID != added.Item.ID {
		t.Error("order item does not reference its source cart item")
	}
	if order.Subtotal != 300 || order.TotalTips != 30 || order.PlatformFee != 45 || order.TotalAmount != 375 {
		t.Errorf("order totals wrong: %+v", order)
	}

	// The gate code moved to the order item; it is transferred, not copied.
	var code models.GateCode
	if err := db.Where("order_item_id = ?", order.Items[0].ID).First(&code).Error; err != nil {
		t.Fatalf("gate code was not re-keyed: %v", err)
	}
	if code.CartItemID != nil {
		t.Error("re-keyed gate code still references the cart item")
	}

	// The cart is cleared.
	var remaining int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", added.Cart.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("cart still holds %d items after checkout", remaining)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := testDB(t)
	checkoutSvc := NewCheckoutServiceWith(db, testVault())
	userID := uint(8)

	_, err := checkoutSvc.Checkout(OwnerKey{UserID: &userID}, models.PaymentDescriptor{Method: "card", Brand: "visa", Last4: "4242"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("got err %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutMissingPaymentMethod(t *testing.T) {
	db := testDB(t)
	checkoutSvc := NewCheckoutServiceWith(db, testVault())
	userID := uint(9)

	_, err := checkoutSvc.Checkout(OwnerKey{UserID: &userID}, models.PaymentDescriptor{})
	if !errors.Is(err, ErrMissingPaymentMethod) {
		t.Fatalf("got err %v, want ErrMissingPaymentMethod", err)
	}
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	db := testDB(t)
	cartSvc := testCartService(db)
	checkoutSvc := NewCheckoutServiceWith(db, testVault())
	userID := uint(10)
	owner := OwnerKey{UserID: &userID}

	if _, err := cartSvc.AddItem(owner, cleaningItem(20)); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Simulate a mid-transaction failure after the Order insert by breaking
	// the order_items table; the whole conversion must roll back.
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("failed to drop order_items: %v", err)
	}
	defer func() {
		if err := db.AutoMigrate(&models.OrderItem{}); err != nil {
			t.Fatalf("failed to restore order_items: %v", err)
		}
	}()

	_, err := checkoutSvc.Checkout(owner, models.PaymentDescriptor{Method: "card", Brand: "visa", Last4: "4242"})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("got err %v, want ErrPersistence", err)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("found %d persisted orders after failed checkout, want 0", orders)
	}

	var items int64
	db.Model(&models.CartItem{}).Count(&items)
	if items != 1 {
		t.Errorf("cart holds %d items after failed checkout, want its original 1", items)
	}
}
