package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	original := &sessionTokens{
		IDToken:      "id-token",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
	}
	if err := saveTokens(path, original); err != nil {
		t.Fatalf("saveTokens: %v", err)
	}

	loaded, err := tokensFromFile(path)
	if err != nil {
		t.Fatalf("tokensFromFile: %v", err)
	}
	if loaded.RefreshToken != original.RefreshToken || loaded.IDToken != original.IDToken {
		t.Errorf("loaded = %+v, want %+v", loaded, original)
	}
	if loaded.expired() {
		t.Error("freshly saved tokens report expired")
	}
}

func TestTokensFromMissingFile(t *testing.T) {
	if _, err := tokensFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing cache file")
	}
}

func TestIdentityFromIDToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "cognito-sub-123",
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatal(err)
	}

	user, err := identityFromIDToken(signed)
	if err != nil {
		t.Fatalf("identityFromIDToken: %v", err)
	}
	if user.ID != "cognito-sub-123" || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestIdentityFromIDTokenMissingSub(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"})
	signed, err := token.SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := identityFromIDToken(signed); err == nil {
		t.Error("token without sub accepted")
	}
}

func TestIdentityFromGarbageToken(t *testing.T) {
	if _, err := identityFromIDToken("not.a.jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}
