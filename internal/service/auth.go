package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/projectboard/projectboard-go/internal/crypto"
	"github.com/projectboard/projectboard-go/internal/model"
	"github.com/projectboard/projectboard-go/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// callers cannot distinguish which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenNotFound      = errors.New("token not found")
)

// Credentials are the derived identity attached to a request after its signed
// credential has been validated against the token store.
type Credentials struct {
	TokenID int64
	UserID  int64
	Email   string
	IsAdmin bool
}

// AuthService implements the session token lifecycle: issue on sign-in,
// re-validate on every authenticated request, revoke on sign-out. It holds no
// mutable state of its own; all durable state lives in the user and token
// stores.
type AuthService struct {
	users  *repository.UserRepository
	tokens *repository.TokenRepository
	secret string
	ttl    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		secret: secret,
		ttl:    ttl,
	}
}

// SignIn verifies the supplied credentials, persists a fresh token record and
// returns the signed credential together with the record. Prior tokens for
// the same user are left untouched; each sign-in is an independent session.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (string, *model.Token, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !match {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Create(ctx, user.ID, s.ttl)
	if err != nil {
		return "", nil, err
	}

	credential, err := crypto.SignSession(token.ID, s.secret)
	if err != nil {
		return "", nil, err
	}

	return credential, token, nil
}

// Validate checks a signed credential against the token store's current
// state. Signature failures, unknown or revoked tokens all surface as
// ErrInvalidToken; expiry as ErrTokenExpired. Store failures are logged and
// downgraded to ErrInvalidToken so a broken lookup can never escape as an
// unhandled fault in the request path.
func (s *AuthService) Validate(ctx context.Context, credential string) (Credentials, error) {
	claims, err := crypto.ParseSession(credential, s.secret)
	if err != nil {
		return Credentials{}, ErrInvalidToken
	}

	token, err := s.tokens.GetByID(ctx, claims.TokenID)
	if err != nil {
		if !errors.Is(err, repository.ErrTokenNotFound) {
			slog.Error("token lookup failed", "token_id", claims.TokenID, "error", err)
		}
		return Credentials{}, ErrInvalidToken
	}

	if !token.Valid {
		return Credentials{}, ErrInvalidToken
	}
	if !time.Now().Before(token.ExpiresAt) {
		return Credentials{}, ErrTokenExpired
	}

	return Credentials{
		TokenID: token.ID,
		UserID:  token.User.ID,
		Email:   token.User.Email,
		IsAdmin: token.User.IsAdmin,
	}, nil
}

// SignOut revokes the caller's current token: validity is cleared and the
// expiration is reset to now. Revoking an already-invalid token succeeds;
// a token id that no longer exists is ErrTokenNotFound.
func (s *AuthService) SignOut(ctx context.Context, tokenID int64) (*model.Token, error) {
	token, err := s.tokens.Invalidate(ctx, tokenID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}
