// internal/pkg/jwt/jwt_test.go
package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"
)

func newTestPair(t *testing.T) (*Generator, *Verifier) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	gen := NewGenerator(key, "test-issuer", "test-aud", "kid-1", time.Hour)
	ver := NewVerifier(&key.PublicKey, "test-issuer", "test-aud")
	return gen, ver
}

func TestAccessTokenRoundTrip(t *testing.T) {
	gen, ver := newTestPair(t)

	token, jti, err := gen.GenerateAccessToken(42, "jane", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if jti == "" {
		t.Fatal("missing jti")
	}

	claims, err := ver.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "jane" || claims.Role != "CUSTOMER" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != jti {
		t.Fatalf("jti = %q, want %q", claims.ID, jti)
	}
	if !claims.HasRole("CUSTOMER") || claims.HasRole("ADMIN") {
		t.Fatal("HasRole misreports the token role")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	gen, ver := newTestPair(t)

	token, _, err := gen.Generate(42, "jane", "CUSTOMER", PurposeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := ver.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	gen, ver := newTestPair(t)

	token, _, err := gen.GenerateAccessToken(42, "jane", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := ver.Verify(tampered); err == nil {
		t.Fatal("tampered token verified")
	}
}

func TestWrongKeyRejected(t *testing.T) {
	gen, _ := newTestPair(t)
	_, otherVer := newTestPair(t)

	token, _, err := gen.GenerateAccessToken(42, "jane", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := otherVer.Verify(token); err == nil {
		t.Fatal("token signed with a different key verified")
	}
}

func TestWrongIssuerRejected(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	gen := NewGenerator(key, "someone-else", "test-aud", "", time.Hour)
	ver := NewVerifier(&key.PublicKey, "test-issuer", "test-aud")

	token, _, err := gen.GenerateAccessToken(42, "jane", "CUSTOMER")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := ver.Verify(token); err == nil {
		t.Fatal("token with wrong issuer verified")
	}
}

func TestRefreshPurposeNotAccepted(t *testing.T) {
	gen, ver := newTestPair(t)

	token, _, err := gen.Generate(42, "jane", "CUSTOMER", PurposeRefresh, time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := ver.Verify(token); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if _, err := ver.VerifyAccessToken(token); err == nil {
		t.Fatal("refresh-purpose token accepted as access token")
	}
}
