package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredential = errors.New("invalid signed credential")

// SessionClaims is the JWT payload for an issued session credential. It names
// the persisted token record and nothing else; validity and expiration are
// always re-derived from the token store, so the JWT itself carries no exp
// claim.
type SessionClaims struct {
	jwt.RegisteredClaims
	TokenID int64 `json:"tokenId"`
}

// SignSession creates a signed credential for the given token record id.
func SignSession(tokenID int64, secret string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   "projectboard",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		TokenID: tokenID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession verifies a signed credential and returns its claims. Only
// HMAC-SHA256 signatures are accepted.
func ParseSession(credential, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(credential, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("projectboard"))
	if err != nil {
		return nil, ErrInvalidCredential
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}
