package utils

import "testing"

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash equals the plaintext password")
	}
	if hash == "" {
		t.Fatalf("empty hash")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !VerifyPassword(hash, "secret123") {
		t.Fatalf("expected verification to succeed for correct password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("expected verification to fail for wrong password")
	}
	if VerifyPassword("not-a-bcrypt-hash", "secret123") {
		t.Fatalf("expected verification to fail for invalid hash")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ (random salt)")
	}
}
