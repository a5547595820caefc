package auth

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/h4nrul1/RepRight/internal/config"
	"github.com/h4nrul1/RepRight/internal/domain"
)

// CognitoProvider implements Provider against an AWS Cognito user pool app
// client, with a file-backed token cache so sessions survive restarts.
type CognitoProvider struct {
	client    *cip.Client
	clientID  string
	cachePath string

	mu     sync.Mutex
	tokens *sessionTokens
}

// NewCognitoProvider creates a provider for the configured user pool client.
func NewCognitoProvider(cfg config.CognitoConfig) (*CognitoProvider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("cognito client_id is required")
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for Cognito: %v", err)
		return nil, err
	}

	return &CognitoProvider{
		client:    cip.NewFromConfig(awsSDKConfig),
		clientID:  cfg.ClientID,
		cachePath: cfg.TokenCache,
	}, nil
}

// CurrentUser returns the cached session's identity, refreshing the tokens
// when the ID token has expired and a refresh token is on hand.
func (p *CognitoProvider) CurrentUser(ctx context.Context) (*domain.AuthUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tokens == nil {
		tokens, err := tokensFromFile(p.cachePath)
		if err != nil {
			return nil, ErrNoSession
		}
		p.tokens = tokens
	}

	if p.tokens.expired() {
		if p.tokens.RefreshToken == "" {
			p.dropSessionLocked()
			return nil, ErrNoSession
		}
		if err := p.refreshLocked(ctx); err != nil {
			log.Printf("ERROR: Cognito token refresh failed: %v", err)
			p.dropSessionLocked()
			return nil, ErrNoSession
		}
	}

	return identityFromIDToken(p.tokens.IDToken)
}

// SignIn authenticates with the USER_PASSWORD_AUTH flow and caches the
// resulting tokens.
func (p *CognitoProvider) SignIn(ctx context.Context, email, password string) (*domain.AuthUser, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: ciptypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		var notConfirmed *ciptypes.UserNotConfirmedException
		if errors.As(err, &notConfirmed) {
			return nil, ErrUserNotConfirmed
		}
		var notAuthorized *ciptypes.NotAuthorizedException
		var notFound *ciptypes.UserNotFoundException
		if errors.As(err, &notAuthorized) || errors.As(err, &notFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return nil, errors.New("cognito sign-in returned no tokens (challenge flows are not supported)")
	}

	tokens := &sessionTokens{
		IDToken:     aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken: aws.ToString(out.AuthenticationResult.AccessToken),
		ExpiresAt:   time.Now().Add(time.Duration(out.AuthenticationResult.ExpiresIn) * time.Second),
	}
	if out.AuthenticationResult.RefreshToken != nil {
		tokens.RefreshToken = aws.ToString(out.AuthenticationResult.RefreshToken)
	}

	p.mu.Lock()
	p.tokens = tokens
	if err := saveTokens(p.cachePath, tokens); err != nil {
		log.Printf("ERROR: %v", err)
	}
	p.mu.Unlock()

	return identityFromIDToken(tokens.IDToken)
}

// SignUp registers a new account; Cognito sends the confirmation code out
// of band (email).
func (p *CognitoProvider) SignUp(ctx context.Context, email, password string) error {
	_, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []ciptypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		var exists *ciptypes.UsernameExistsException
		if errors.As(err, &exists) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// ConfirmSignUp redeems the emailed confirmation code.
func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		var mismatch *ciptypes.CodeMismatchException
		var expired *ciptypes.ExpiredCodeException
		if errors.As(err, &mismatch) || errors.As(err, &expired) {
			return ErrInvalidCode
		}
		return err
	}
	return nil
}

// SignOut revokes the session everywhere and drops the local token cache.
// The local cache is removed even when the remote revocation fails.
func (p *CognitoProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	tokens := p.tokens
	p.dropSessionLocked()
	p.mu.Unlock()

	if tokens == nil || tokens.AccessToken == "" {
		return nil
	}
	_, err := p.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(tokens.AccessToken),
	})
	return err
}

// refreshLocked exchanges the refresh token for fresh ID/access tokens.
// Caller holds p.mu.
func (p *CognitoProvider) refreshLocked(ctx context.Context) error {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: ciptypes.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": p.tokens.RefreshToken,
		},
	})
	if err != nil {
		return err
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return errors.New("token refresh returned no tokens")
	}

	p.tokens.IDToken = aws.ToString(out.AuthenticationResult.IdToken)
	p.tokens.AccessToken = aws.ToString(out.AuthenticationResult.AccessToken)
	p.tokens.ExpiresAt = time.Now().Add(time.Duration(out.AuthenticationResult.ExpiresIn) * time.Second)
	if err := saveTokens(p.cachePath, p.tokens); err != nil {
		log.Printf("ERROR: %v", err)
	}
	return nil
}

func (p *CognitoProvider) dropSessionLocked() {
	p.tokens = nil
	if p.cachePath != "" {
		os.Remove(p.cachePath)
	}
}
