package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/projectboard/projectboard-go/internal/middleware"
	"github.com/projectboard/projectboard-go/internal/model"
	"github.com/projectboard/projectboard-go/internal/service"
)

// AuthHandler handles HTTP requests for sign-in and sign-out.
type AuthHandler struct {
	service      *service.AuthService
	cookieMaxAge time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cookieMaxAge time.Duration) *AuthHandler {
	return &AuthHandler{service: svc, cookieMaxAge: cookieMaxAge}
}

// HandleSignIn handles POST /api/signin requests. On success the signed
// credential is returned in the body and also set as a long-lived HTTP-only
// cookie, so both header and cookie clients work.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	credential, _, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	})
	w.Header().Set("Authorization", credential)

	writeJSON(w, http.StatusOK, model.SignInResponse{AuthToken: credential})
}

// HandleSignOut handles POST /api/signout requests. The route is protected,
// so the caller's token id comes from the validated credentials.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	creds, ok := middleware.CredentialsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	token, err := h.service.SignOut(r.Context(), creds.TokenID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusCreated, token.ToResponse())
}
