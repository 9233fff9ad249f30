package model

import "time"

// Token represents a persisted session token record. A token authenticates a
// request only while Valid is true and the current time is before ExpiresAt.
type Token struct {
	ID        int64
	UserID    int64
	Valid     bool
	ExpiresAt time.Time
	CreatedAt time.Time

	// User is the owning user, populated on joined lookups.
	User *User
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse carries the signed credential returned on successful sign-in.
type SignInResponse struct {
	AuthToken string `json:"authToken"`
}

// TokenResponse represents a token record in API responses.
type TokenResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expirationDate"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a Token to its API view.
func (t *Token) ToResponse() TokenResponse {
	return TokenResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Valid:     t.Valid,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
