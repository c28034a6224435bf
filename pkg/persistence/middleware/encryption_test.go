package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/dateq/pkg/adapters/memory"
	"github.com/aretw0/dateq/pkg/domain"
	"github.com/aretw0/dateq/pkg/persistence/middleware"
	"github.com/aretw0/dateq/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func testResult() *domain.Result {
	return &domain.Result{
		Input:  "09/05/2005",
		Digits: domain.DigitSequence{0, 9, 0, 5, 2, 0, 0, 5},
		Equations: []domain.Equation{
			{Left: "0 * 9 + 0 + 5", Right: "2 * 0 + 0 + 5", Value: 5},
		},
		Stats: domain.SearchStats{Matches: 1},
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	key := generateKey(t)
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	cacheKey := "09052005|basic|fact=false|groups=5|tol=1e-10"

	// 1. Save
	if err := secureStore.Save(ctx, cacheKey, testResult()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify Underlying Store directly (Should be encrypted)
	storedResult, err := underlyingStore.Load(ctx, cacheKey)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if len(storedResult.Equations) != 0 {
		t.Fatalf("Expected equations to be hidden, found: %v", storedResult.Equations)
	}
	if !strings.HasPrefix(storedResult.Input, "encrypted:") {
		t.Fatalf("Expected encrypted envelope, got input %q", storedResult.Input)
	}

	// 3. Load via Middleware (Should be decrypted)
	loadedResult, err := secureStore.Load(ctx, cacheKey)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loadedResult.Input != "09/05/2005" {
		t.Errorf("Expected original input, got %q", loadedResult.Input)
	}
	if len(loadedResult.Equations) != 1 || loadedResult.Equations[0].Left != "0 * 9 + 0 + 5" {
		t.Errorf("Expected original equations, got %v", loadedResult.Equations)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	// Create middleware with OLD key to save initial result
	mwOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	secureStoreOld := mwOld(underlyingStore)

	ctx := context.Background()
	cacheKey := "rotation-key"

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, cacheKey, testResult()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	mwNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	secureStoreNew := mwNew(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, cacheKey)
	if err != nil {
		t.Fatalf("Load with fallback key failed: %v", err)
	}
	if loaded.Input != "09/05/2005" {
		t.Errorf("Expected original input, got %q", loaded.Input)
	}

	// 3. Re-save, now encrypted with the NEW key
	if err := secureStoreNew.Save(ctx, cacheKey, loaded); err != nil {
		t.Fatalf("Re-save failed: %v", err)
	}

	// 4. Verify we CANNOT load with just OLD key anymore
	if _, err := secureStoreOld.Load(ctx, cacheKey); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainEntryFailsSecure(t *testing.T) {
	underlyingStore := memory.NewStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()

	// An unencrypted entry under an encrypted store must not pass through.
	if err := underlyingStore.Save(ctx, "plain", testResult()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := secureStore.Load(ctx, "plain"); err == nil {
		t.Error("Expected failure loading a plain entry through the encryption middleware")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}

// The wrapped store still honors the ResultStore contract.
func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunResultStoreContract(t, mw(memory.NewStore()))
}
