package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"booking-engine-server/config"
	"booking-engine-server/models"
	"booking-engine-server/utils"
)

// GateCodeVault encrypts property access codes at rest. Each stored code is
// 1:1 with a cart item until checkout re-keys it to the new order item.
type GateCodeVault struct {
	key []byte
}

// NewGateCodeVault derives the vault key from the configured secret.
func NewGateCodeVault() *GateCodeVault {
	cfg := config.AppConfig.Vault
	return &GateCodeVault{key: utils.DeriveKey(cfg.Secret, cfg.Salt)}
}

// NewGateCodeVaultWithKey builds a vault around an explicit key.
func NewGateCodeVaultWithKey(key []byte) *GateCodeVault {
	return &GateCodeVault{key: key}
}

// Encrypt seals a plaintext gate code into its stored form.
func (v *GateCodeVault) Encrypt(plaintext string) (utils.EncryptedPayload, error) {
	return utils.Encrypt(v.key, plaintext)
}

// Decrypt opens a stored gate code. Tampered or mismatched payloads yield
// ErrDecryptionFailed.
func (v *GateCodeVault) Decrypt(payload utils.EncryptedPayload) (string, error) {
	plaintext, err := utils.Decrypt(v.key, payload)
	if err != nil {
		if errors.Is(err, utils.ErrDecryption) {
			return "", ErrDecryptionFailed
		}
		return "", err
	}
	return plaintext, nil
}

// StoreForCartItem encrypts and writes a gate code for a cart item within the
// given transaction. An existing code for the item is replaced, not mutated.
func (v *GateCodeVault) StoreForCartItem(tx *gorm.DB, cartItemID uint, plaintext string) (*models.GateCode, error) {
	payload, err := v.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}

	if err := tx.Where("cart_item_id = ?", cartItemID).Delete(&models.GateCode{}).Error; err != nil {
		return nil, fmt.Errorf("%w: replacing gate code: %v", ErrPersistence, err)
	}

	code := models.GateCode{
		CartItemID: &cartItemID,
		Ciphertext: payload.Ciphertext,
		IV:         payload.IV,
		AuthTag:    payload.AuthTag,
	}
	if err := tx.Create(&code).Error; err != nil {
		return nil, fmt.Errorf("%w: storing gate code: %v", ErrPersistence, err)
	}
	return &code, nil
}

// RekeyToOrderItem re-points a cart item's gate code at the order item that
// replaced it. Called inside the checkout transaction; a failure here must
// fail the whole conversion.
func (v *GateCodeVault) RekeyToOrderItem(tx *gorm.DB, cartItemID, orderItemID uint) error {
	result := tx.Model(&models.GateCode{}).
		Where("cart_item_id = ?", cartItemID).
		Updates(map[string]interface{}{
			"cart_item_id":  nil,
			"order_item_id": orderItemID,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: re-keying gate code: %v", ErrPersistence, result.Error)
	}
	return nil
}

// RevealForOrderItem decrypts the gate code attached to an order item, if any.
func (v *GateCodeVault) RevealForOrderItem(db *gorm.DB, orderItemID uint) (string, error) {
	var code models.GateCode
	if err := db.Where("order_item_id = ?", orderItemID).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: loading gate code: %v", ErrPersistence, err)
	}
	return v.Decrypt(utils.EncryptedPayload{
		Ciphertext: code.Ciphertext,
		IV:         code.IV,
		AuthTag:    code.AuthTag,
	})
}
