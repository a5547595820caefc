package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// credentials is validated on sign-up before any account is created.
type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// account is a registered local user. Unconfirmed accounts hold the pending
// confirmation code and cannot sign in.
type account struct {
	userID       string
	email        string
	passwordHash string
	confirmed    bool
	code         string
}

// LocalProvider is an in-process Provider for development and tests. It
// keeps accounts in memory, hashes passwords with bcrypt and issues HS256
// session tokens, mirroring what a real pool does without the network.
type LocalProvider struct {
	jwtSecret     string
	jwtExpiration time.Duration
	validate      *validator.Validate

	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	session  string              // current session JWT, empty when signed out
}

// NewLocalProvider creates an empty local identity provider.
func NewLocalProvider(jwtSecret string, jwtExpiration time.Duration) *LocalProvider {
	if jwtSecret == "" {
		panic("local provider JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &LocalProvider{
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		validate:      validator.New(),
		accounts:      make(map[string]*account),
	}
}

type localClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// CurrentUser parses and verifies the session token, if any.
func (p *LocalProvider) CurrentUser(ctx context.Context) (*domain.AuthUser, error) {
	p.mu.Lock()
	token := p.session
	p.mu.Unlock()
	if token == "" {
		return nil, ErrNoSession
	}

	claims := &localClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.jwtSecret), nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		// Expired or tampered session; treat as signed out.
		p.mu.Lock()
		p.session = ""
		p.mu.Unlock()
		return nil, ErrNoSession
	}

	return &domain.AuthUser{ID: claims.Subject, Email: claims.Email}, nil
}

// SignIn checks the password against the stored hash and opens a session.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[email]
	if !ok {
		return nil, ErrAuthenticationFailed
	}
	if !acc.confirmed {
		return nil, ErrUserNotConfirmed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	token, err := p.generateJWT(acc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	p.session = token

	return &domain.AuthUser{ID: acc.userID, Email: acc.email}, nil
}

// SignUp registers an account and "sends" a confirmation code; here the
// code is just logged, standing in for the provider's email delivery.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string) error {
	if err := p.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return fmt.Errorf("invalid credentials: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.accounts[email]; exists {
		return ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := confirmationCode()
	if err != nil {
		return err
	}

	p.accounts[email] = &account{
		userID:       uuid.NewString(),
		email:        email,
		passwordHash: string(hash),
		code:         code,
	}
	log.Printf("INFO: Confirmation code for %s: %s", email, code)
	return nil
}

// ConfirmSignUp redeems the confirmation code issued at sign-up.
func (p *LocalProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[email]
	if !ok || acc.code != code {
		return ErrInvalidCode
	}
	acc.confirmed = true
	acc.code = ""
	return nil
}

// SignOut closes the current session.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = ""
	return nil
}

func (p *LocalProvider) generateJWT(acc *account) (string, error) {
	expirationTime := time.Now().Add(p.jwtExpiration)
	claims := &localClaims{
		Email: acc.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.userID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "repright-local",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.jwtSecret))
}

// confirmationCode draws a 6-digit code from crypto/rand.
func confirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
