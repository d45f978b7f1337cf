package utils

import (
	"errors"
	"testing"
)

func testKey() []byte {
	return DeriveKey("test-secret", "test-salt")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey()

	for _, plaintext := range []string{"1234", "gate #42B — ring twice", ""} {
		payload, err := Encrypt(key, plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) failed: %v", plaintext, err)
		}

		decrypted, err := Decrypt(key, payload)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("round trip: got %q, want %q", decrypted, plaintext)
		}
	}
}

func TestEncryptProducesFreshIV(t *testing.T) {
	key := testKey()

	first, err := Encrypt(key, "same plaintext")
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encrypt(key, "same plaintext")
	if err != nil {
		t.Fatal(err)
	}

	if first.IV == second.IV {
		t.Error("two encryptions reused the same IV")
	}
	if first.Ciphertext == second.Ciphertext {
		t.Error("two encryptions produced identical ciphertext")
	}
}

func TestDecryptTamperedAuthTag(t *testing.T) {
	key := testKey()

	payload, err := Encrypt(key, "4815")
	if err != nil {
		t.Fatal(err)
	}

	// Flip the first hex digit of the tag.
	tampered := payload
	if tampered.AuthTag[0] == 'a' {
		tampered.AuthTag = "b" + tampered.AuthTag[1:]
	} else {
		tampered.AuthTag = "a" + tampered.AuthTag[1:]
	}

	if _, err := Decrypt(key, tampered); !errors.Is(err, ErrDecryption) {
		t.Errorf("tampered auth tag: got err %v, want ErrDecryption", err)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	payload, err := Encrypt(testKey(), "4815")
	if err != nil {
		t.Fatal(err)
	}

	wrongKey := DeriveKey("other-secret", "test-salt")
	if _, err := Decrypt(wrongKey, payload); !errors.Is(err, ErrDecryption) {
		t.Errorf("wrong key: got err %v, want ErrDecryption", err)
	}
}

func TestDecryptMalformedPayload(t *testing.T) {
	key := testKey()

	malformed := EncryptedPayload{Ciphertext: "zz-not-hex", IV: "00", AuthTag: "00"}
	if _, err := Decrypt(key, malformed); !errors.Is(err, ErrDecryption) {
		t.Errorf("malformed payload: got err %v, want ErrDecryption", err)
	}
}
