package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectboard/projectboard-go/internal/crypto"
	"github.com/projectboard/projectboard-go/internal/model"
	"github.com/projectboard/projectboard-go/internal/repository"
	"github.com/projectboard/projectboard-go/internal/repository/repositorytest"
)

const (
	testSecret   = "test-secret"
	testTTL      = 30 * 24 * time.Hour
	testPassword = "secret1"
)

type authFixtures struct {
	db     *sql.DB
	auth   *AuthService
	tokens *repository.TokenRepository
	user   *model.User
}

func newAuthFixtures(t *testing.T) authFixtures {
	t.Helper()
	db := repositorytest.NewDB(t)

	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)

	hash, err := crypto.HashPassword(testPassword)
	require.NoError(t, err)

	user := &model.User{Name: "Alice", Email: "a@x.com", PasswordHash: hash, IsAdmin: true}
	require.NoError(t, users.Create(context.Background(), user))

	return authFixtures{
		db:     db,
		auth:   NewAuthService(users, tokens, testSecret, testTTL),
		tokens: tokens,
		user:   user,
	}
}

func (f authFixtures) tokenCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&n))
	return n
}

func TestSignIn_IssuesValidToken(t *testing.T) {
	f := newAuthFixtures(t)

	credential, token, err := f.auth.SignIn(context.Background(), model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, credential)
	assert.True(t, token.Valid)
	assert.Equal(t, f.user.ID, token.UserID)
	assert.Equal(t, token.CreatedAt.Add(testTTL), token.ExpiresAt)
	assert.Equal(t, 1, f.tokenCount(t))
}

func TestSignIn_UnknownEmail(t *testing.T) {
	f := newAuthFixtures(t)

	_, _, err := f.auth.SignIn(context.Background(), model.SignInRequest{
		Email:    "nobody@x.com",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, f.tokenCount(t))
}

func TestSignIn_WrongPassword(t *testing.T) {
	f := newAuthFixtures(t)

	_, _, err := f.auth.SignIn(context.Background(), model.SignInRequest{
		Email:    "a@x.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, f.tokenCount(t))
}

func TestSignIn_WrongPasswordSameErrorAsUnknownEmail(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	_, _, errUnknown := f.auth.SignIn(ctx, model.SignInRequest{Email: "nobody@x.com", Password: "x"})
	_, _, errWrong := f.auth.SignIn(ctx, model.SignInRequest{Email: "a@x.com", Password: "x"})

	// Neither failure mode may reveal whether the account exists.
	assert.Equal(t, errUnknown, errWrong)
}

func TestValidate_RoundTrip(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	credential, token, err := f.auth.SignIn(ctx, model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	creds, err := f.auth.Validate(ctx, credential)
	require.NoError(t, err)

	assert.Equal(t, token.ID, creds.TokenID)
	assert.Equal(t, f.user.ID, creds.UserID)
	assert.Equal(t, f.user.Email, creds.Email)
	assert.True(t, creds.IsAdmin)
}

func TestValidate_GarbageCredential(t *testing.T) {
	f := newAuthFixtures(t)

	_, err := f.auth.Validate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_UnknownTokenID(t *testing.T) {
	f := newAuthFixtures(t)

	credential, err := crypto.SignSession(99999, testSecret)
	require.NoError(t, err)

	_, err = f.auth.Validate(context.Background(), credential)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RevokedToken(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	credential, token, err := f.auth.SignIn(ctx, model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	_, err = f.auth.SignOut(ctx, token.ID)
	require.NoError(t, err)

	// Revoked wins even though the original expiry was a month out.
	_, err = f.auth.Validate(ctx, credential)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_ExpiredToken(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	// A still-valid record whose expiration has already passed.
	token, err := f.tokens.Create(ctx, f.user.ID, -time.Hour)
	require.NoError(t, err)

	credential, err := crypto.SignSession(token.ID, testSecret)
	require.NoError(t, err)

	_, err = f.auth.Validate(ctx, credential)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_StoreFailure(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	credential, _, err := f.auth.SignIn(ctx, model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	// A broken store must surface as a rejection, not a fault.
	require.NoError(t, f.db.Close())

	_, err = f.auth.Validate(ctx, credential)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignOut_RevokesAndExpires(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	_, token, err := f.auth.SignIn(ctx, model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	before := time.Now()
	revoked, err := f.auth.SignOut(ctx, token.ID)
	require.NoError(t, err)

	assert.False(t, revoked.Valid)
	assert.False(t, revoked.ExpiresAt.After(before.Add(time.Second)))
}

func TestSignOut_Idempotent(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	_, token, err := f.auth.SignIn(ctx, model.SignInRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	_, err = f.auth.SignOut(ctx, token.ID)
	require.NoError(t, err)

	again, err := f.auth.SignOut(ctx, token.ID)
	require.NoError(t, err)
	assert.False(t, again.Valid)
}

func TestSignOut_UnknownToken(t *testing.T) {
	f := newAuthFixtures(t)

	_, err := f.auth.SignOut(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSignIn_MultiSession(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	cred1, token1, err := f.auth.SignIn(ctx, model.SignInRequest{Email: "a@x.com", Password: testPassword})
	require.NoError(t, err)
	cred2, token2, err := f.auth.SignIn(ctx, model.SignInRequest{Email: "a@x.com", Password: testPassword})
	require.NoError(t, err)

	require.NotEqual(t, token1.ID, token2.ID)

	// Signing out one session leaves the other intact.
	_, err = f.auth.SignOut(ctx, token1.ID)
	require.NoError(t, err)

	_, err = f.auth.Validate(ctx, cred1)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.auth.Validate(ctx, cred2)
	assert.NoError(t, err)
}
