package security

import (
	"context"
	"testing"
	"time"

	"leetlab/internal/platform/config"
)

func setupJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	InitJWT()
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	setupJWT(t)

	tokenString, err := GenerateToken("user-123", "ADMIN")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := TokenAuth.Decode(tokenString)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}

	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		t.Fatalf("GetUserIDFromClaims: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}

	role, err := GetUserRoleFromClaims(claims)
	if err != nil {
		t.Fatalf("GetUserRoleFromClaims: %v", err)
	}
	if role != "ADMIN" {
		t.Errorf("expected ADMIN, got %q", role)
	}
}

func TestClaimsMissing(t *testing.T) {
	if _, err := GetUserIDFromClaims(map[string]interface{}{}); err == nil {
		t.Error("missing user_id claim should error")
	}
	if _, err := GetUserRoleFromClaims(map[string]interface{}{"role": 42}); err == nil {
		t.Error("non-string role claim should error")
	}
}
