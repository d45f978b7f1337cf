package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecryption is returned whenever a gate code cannot be authenticated or
// decrypted. Callers must not distinguish tamper from key mismatch.
var ErrDecryption = errors.New("decryption failed")

const (
	keyLength        = 32 // AES-256
	pbkdf2Iterations = 10000
	gcmTagSize       = 16
)

// DeriveKey derives a 32-byte AES key from a secret and salt using PBKDF2.
func DeriveKey(secret, salt string) []byte {
	return pbkdf2.Key([]byte(secret), []byte(salt), pbkdf2Iterations, keyLength, sha256.New)
}

// EncryptedPayload carries the hex-encoded pieces of an AES-256-GCM
// encryption with the auth tag split from the ciphertext.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	AuthTag    string `json:"auth_tag"`
}

// Encrypt encrypts plaintext with AES-256-GCM under the given key and returns
// ciphertext, IV and auth tag as separate hex strings.
func Encrypt(key []byte, plaintext string) (EncryptedPayload, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("failed to create GCM: %w", err)
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return EncryptedPayload{}, fmt.Errorf("failed to generate IV: %w", err)
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	authTag := sealed[len(sealed)-gcmTagSize:]

	return EncryptedPayload{
		Ciphertext: hex.EncodeToString(ciphertext),
		IV:         hex.EncodeToString(iv),
		AuthTag:    hex.EncodeToString(authTag),
	}, nil
}

// Decrypt reverses Encrypt. Any corruption of ciphertext, IV or auth tag, or
// a wrong key, yields ErrDecryption.
func Decrypt(key []byte, payload EncryptedPayload) (string, error) {
	ciphertext, err := hex.DecodeString(payload.Ciphertext)
	if err != nil {
		return "", ErrDecryption
	}
	iv, err := hex.DecodeString(payload.IV)
	if err != nil {
		return "", ErrDecryption
	}
	authTag, err := hex.DecodeString(payload.AuthTag)
	if err != nil {
		return "", ErrDecryption
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}
	if len(iv) != gcm.NonceSize() {
		return "", ErrDecryption
	}

	plaintext, err := gcm.Open(nil, iv, append(ciphertext, authTag...), nil)
	if err != nil {
		return "", ErrDecryption
	}
	return string(plaintext), nil
}
