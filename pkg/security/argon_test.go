package security

import (
	"strings"
	"testing"
)

func TestGenerateAndVerify(t *testing.T) {
	h := NewHasher()

	encoded, err := h.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("GenerateFromPassword returned error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("encoded hash = %q; want argon2id PHC format", encoded)
	}

	ok, err := h.VerifyPasswd("correct horse battery staple", encoded)
	if err != nil {
		t.Fatalf("VerifyPasswd returned error: %v", err)
	}
	if !ok {
		t.Error("VerifyPasswd = false for the right password")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	h := NewHasher()

	encoded, err := h.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("GenerateFromPassword returned error: %v", err)
	}

	ok, err := h.VerifyPasswd("incorrect horse", encoded)
	if err != nil {
		t.Fatalf("VerifyPasswd returned error: %v", err)
	}
	if ok {
		t.Error("VerifyPasswd = true for a wrong password")
	}
}

func TestGenerateUsesFreshSalt(t *testing.T) {
	h := NewHasher()

	a, err := h.GenerateFromPassword("same password")
	if err != nil {
		t.Fatalf("GenerateFromPassword returned error: %v", err)
	}
	b, err := h.GenerateFromPassword("same password")
	if err != nil {
		t.Fatalf("GenerateFromPassword returned error: %v", err)
	}

	if a == b {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}
