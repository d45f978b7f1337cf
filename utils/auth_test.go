package utils

import (
	"testing"

	"booking-engine-server/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("got user id %d, want 42", userID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	config.Load()

	if _, err := ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token should not validate")
	}
}
