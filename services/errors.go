package services

import "errors"

// Error taxonomy for the booking engine. Transactional operations surface
// these verbatim; pure calculators never return errors and degrade to zero
// values instead.
var (
	ErrValidation           = errors.New("validation failed")
	ErrCartLimitExceeded    = errors.New("cart limit exceeded")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingPaymentMethod = errors.New("missing payment method")
	ErrDecryptionFailed     = errors.New("gate code decryption failed")
	ErrPersistence          = errors.New("persistence failure")
	ErrNotFound             = errors.New("record not found")
)
