package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newLocal() *LocalProvider {
	return NewLocalProvider("test-secret", time.Hour)
}

// registered runs the full sign-up flow and returns the provider with a
// confirmed account for alice.
func registered(t *testing.T) *LocalProvider {
	t.Helper()
	p := newLocal()
	ctx := context.Background()
	if err := p.SignUp(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	code := p.accounts["alice@example.com"].code
	if err := p.ConfirmSignUp(ctx, "alice@example.com", code); err != nil {
		t.Fatalf("ConfirmSignUp: %v", err)
	}
	return p
}

func TestSignUpConfirmSignInRoundTrip(t *testing.T) {
	p := registered(t)
	ctx := context.Background()

	user, err := p.SignIn(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.ID == "" || user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}

	current, err := p.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.ID != user.ID {
		t.Errorf("CurrentUser = %+v, want same identity as sign-in", current)
	}

	if err := p.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := p.CurrentUser(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("CurrentUser after sign-out = %v, want ErrNoSession", err)
	}
}

func TestSignInFailures(t *testing.T) {
	p := registered(t)
	ctx := context.Background()

	if _, err := p.SignIn(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password: %v, want ErrAuthenticationFailed", err)
	}
	if _, err := p.SignIn(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown user: %v, want ErrAuthenticationFailed", err)
	}
}

func TestSignInUnconfirmed(t *testing.T) {
	p := newLocal()
	ctx := context.Background()
	if err := p.SignUp(ctx, "bob@example.com", "long-enough-pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SignIn(ctx, "bob@example.com", "long-enough-pw"); !errors.Is(err, ErrUserNotConfirmed) {
		t.Errorf("SignIn before confirm = %v, want ErrUserNotConfirmed", err)
	}
}

func TestConfirmWithWrongCode(t *testing.T) {
	p := newLocal()
	ctx := context.Background()
	if err := p.SignUp(ctx, "bob@example.com", "long-enough-pw"); err != nil {
		t.Fatal(err)
	}
	if err := p.ConfirmSignUp(ctx, "bob@example.com", "000000x"); !errors.Is(err, ErrInvalidCode) {
		t.Errorf("wrong code = %v, want ErrInvalidCode", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	p := newLocal()
	ctx := context.Background()

	if err := p.SignUp(ctx, "not-an-email", "long-enough-pw"); err == nil {
		t.Error("bogus email accepted")
	}
	if err := p.SignUp(ctx, "carol@example.com", "short"); err == nil {
		t.Error("short password accepted")
	}
	if err := p.SignUp(ctx, "carol@example.com", "long-enough-pw"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if err := p.SignUp(ctx, "carol@example.com", "long-enough-pw"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate email = %v, want ErrUserAlreadyExists", err)
	}
}

func TestExpiredSessionIsNoSession(t *testing.T) {
	p := NewLocalProvider("test-secret", time.Hour)
	ctx := context.Background()
	if err := p.SignUp(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}
	code := p.accounts["alice@example.com"].code
	if err := p.ConfirmSignUp(ctx, "alice@example.com", code); err != nil {
		t.Fatal(err)
	}

	// Issue an already-expired token by flipping the expiration negative.
	p.jwtExpiration = -time.Minute
	if _, err := p.SignIn(ctx, "alice@example.com", "correct-horse"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.CurrentUser(ctx); !errors.Is(err, ErrNoSession) {
		t.Errorf("CurrentUser with expired token = %v, want ErrNoSession", err)
	}
}
