package services

import (
	"errors"
	"testing"

	"booking-engine-server/utils"
)

func testVault() *GateCodeVault {
	return NewGateCodeVaultWithKey(utils.DeriveKey("vault-test-secret", "vault-test-salt"))
}

func TestVaultRoundTrip(t *testing.T) {
	vault := testVault()

	payload, err := vault.Encrypt("#4815, side entrance")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if payload.Ciphertext == "" || payload.IV == "" || payload.AuthTag == "" {
		t.Fatalf("payload has empty fields: %+v", payload)
	}

	plaintext, err := vault.Decrypt(payload)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if plaintext != "#4815, side entrance" {
		t.Errorf("got %q after round trip", plaintext)
	}
}

func TestVaultDecryptTamperReturnsDecryptionError(t *testing.T) {
	vault := testVault()

	payload, err := vault.Encrypt("1234")
	if err != nil {
		t.Fatal(err)
	}

	if payload.AuthTag[0] == 'a' {
		payload.AuthTag = "b" + payload.AuthTag[1:]
	} else {
		payload.AuthTag = "a" + payload.AuthTag[1:]
	}
	if _, err := vault.Decrypt(payload); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("got err %v, want ErrDecryptionFailed", err)
	}
}
