package auth

import (
	"context"
	"errors"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// --- Error Definitions ---
var (
	// ErrNoSession means no user is currently signed in.
	ErrNoSession = errors.New("no active session")
	// ErrAuthenticationFailed covers bad email/password combinations.
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	// ErrUserNotConfirmed means the account exists but the sign-up
	// confirmation code was never entered.
	ErrUserNotConfirmed = errors.New("account not confirmed")
	// ErrUserAlreadyExists is returned by SignUp for a taken email.
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	// ErrInvalidCode is returned by ConfirmSignUp for a wrong code.
	ErrInvalidCode = errors.New("invalid confirmation code")
)

// Provider is the identity collaborator the client consumes. Sign-up is a
// two-step flow: SignUp sends an out-of-band confirmation code and
// ConfirmSignUp redeems it; only a later SignIn establishes a session.
type Provider interface {
	// CurrentUser returns the signed-in identity, or ErrNoSession.
	CurrentUser(ctx context.Context) (*domain.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*domain.AuthUser, error)
	SignUp(ctx context.Context, email, password string) error
	ConfirmSignUp(ctx context.Context, email, code string) error
	SignOut(ctx context.Context) error
}
