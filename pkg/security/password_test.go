package security_test

import (
	"testing"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/security"
)

// Cheap parameters keep the suite fast; bounds are clamped anyway.
var testParams = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerify(t *testing.T) {
	hasher := security.NewHasher(testParams)

	hash, err := hasher.Hash("admin123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !security.IsHash(hash) {
		t.Fatalf("expected encoded argon2id hash, got %q", hash)
	}

	ok, err := hasher.Verify("admin123", hash)
	if err != nil {
		t.Fatalf("Verify returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("Verify failed for the correct secret")
	}

	ok, err = hasher.Verify("admin1234", hash)
	if err != nil {
		t.Fatalf("Verify returned error for wrong secret: %v", err)
	}
	if ok {
		t.Fatal("Verify returned true for incorrect secret")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	hasher := security.NewHasher(testParams)
	first, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same secret")
	}
}

func TestVerifyHashFromOtherParams(t *testing.T) {
	old := security.NewHasher(testParams)
	hash, err := old.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tuned := testParams
	tuned.ArgonTime = 2
	ok, err := security.NewHasher(tuned).Verify("secret", hash)
	if err != nil || !ok {
		t.Fatalf("expected verification with embedded params, ok=%v err=%v", ok, err)
	}
}

func TestRejectsEmptySecretAndBadHash(t *testing.T) {
	hasher := security.NewHasher(testParams)
	if _, err := hasher.Hash(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
	for _, bad := range []string{"not-a-hash", "admin123", "$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5", "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$"} {
		if _, err := hasher.Verify("irrelevant", bad); err == nil {
			t.Fatalf("expected error for malformed hash %q", bad)
		}
		if security.IsHash(bad) {
			t.Fatalf("IsHash(%q) should be false", bad)
		}
	}
}
