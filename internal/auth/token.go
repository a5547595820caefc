package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// sessionTokens is the persisted shape of a provider session. The file is
// the "persisted session" probed on app start.
type sessionTokens struct {
	IDToken      string    `json:"id_token"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (t *sessionTokens) expired() bool {
	return time.Now().After(t.ExpiresAt)
}

func tokensFromFile(path string) (*sessionTokens, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tokens := &sessionTokens{}
	if err := json.NewDecoder(f).Decode(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

func saveTokens(path string, tokens *sessionTokens) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache session tokens: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tokens)
}

// identityFromIDToken pulls the user identity out of an ID token's claims.
// The signature is not verified here: the token came straight from the
// provider over TLS and is only read, never trusted for authorization.
func identityFromIDToken(idToken string) (*domain.AuthUser, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("malformed ID token: %w", err)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("ID token missing sub claim")
	}
	email, _ := claims["email"].(string)
	return &domain.AuthUser{ID: sub, Email: email}, nil
}
