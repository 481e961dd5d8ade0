package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"github.com/angelmondragon/ownshop-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("admin-secret", testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=32768,t=1,p=1$") {
		t.Fatalf("unexpected hash prefix: %s", hash)
	}

	ok, err := security.VerifyPassword("admin-secret", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := security.HashPassword("same", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := security.HashPassword("same", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, encoded := range []string{"not-a-hash", "", "$argon2id$v=19$m=1$salt"} {
		if _, err := security.VerifyPassword("irrelevant", encoded); err == nil {
			t.Fatalf("expected error for malformed hash %q", encoded)
		}
	}
}

func TestIsEmptyHash(t *testing.T) {
	if !security.IsEmptyHash("  ") {
		t.Fatal("blank hash should be empty")
	}
	if security.IsEmptyHash("$argon2id$") {
		t.Fatal("non-blank hash should not be empty")
	}
}

func TestVerifyPasswordRejectsTamperedParams(t *testing.T) {
	hash, err := security.HashPassword("admin-secret", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	tampered := strings.Replace(hash, ",t=", ",t=x", 1)
	if _, err := security.VerifyPassword("admin-secret", tampered); err == nil {
		t.Fatal("expected error for tampered parameters")
	}
}
