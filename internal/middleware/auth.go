package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/projectboard/projectboard-go/internal/service"
)

type contextKey string

const credentialsKey contextKey = "credentials"

// SessionCookieName is the cookie the signed credential is persisted under.
const SessionCookieName = "token"

// TokenAuth returns middleware that authenticates each request by
// re-validating its signed credential against the token store. The credential
// is taken from the Authorization header (Bearer scheme) or, failing that,
// from the session cookie. Revoked and expired tokens are rejected with the
// auth service's message; a store failure inside Validate has already been
// downgraded to an ordinary rejection there.
func TokenAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := credentialFromRequest(r)
			if credential == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing credentials")
				return
			}

			creds, err := auth.Validate(r.Context(), credential)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrTokenExpired):
					writeJSONError(w, http.StatusUnauthorized, "token expired")
				default:
					writeJSONError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), credentialsKey, creds)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func credentialFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, found := strings.CutPrefix(auth, "Bearer "); found && token != "" {
			return token
		}
		return auth
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// CredentialsFromContext extracts the authenticated credentials from the
// request context.
func CredentialsFromContext(ctx context.Context) (service.Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(service.Credentials)
	return creds, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
