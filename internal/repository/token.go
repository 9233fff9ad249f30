package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/projectboard/projectboard-go/internal/model"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenRepository handles session token persistence operations.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a new valid token for the given user, expiring after ttl.
func (r *TokenRepository) Create(ctx context.Context, userID int64, ttl time.Duration) (*model.Token, error) {
	now := time.Now().UTC().Truncate(time.Second)
	token := &model.Token{
		UserID:    userID,
		Valid:     true,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	query := `INSERT INTO tokens (user_id, valid, expires_at, created_at) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, token.UserID, token.Valid, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	token.ID = id
	return token, nil
}

// GetByID retrieves a token together with its owning user.
func (r *TokenRepository) GetByID(ctx context.Context, id int64) (*model.Token, error) {
	query := `SELECT t.id, t.user_id, t.valid, t.expires_at, t.created_at,
			u.id, u.name, u.email, u.password_hash, u.is_admin, u.created_at, u.updated_at
		FROM tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = ?`

	token := &model.Token{User: &model.User{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.Valid, &token.ExpiresAt, &token.CreatedAt,
		&token.User.ID, &token.User.Name, &token.User.Email, &token.User.PasswordHash,
		&token.User.IsAdmin, &token.User.CreatedAt, &token.User.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return token, nil
}

// Invalidate revokes a token: the validity flag is cleared and the expiration
// is pulled back to the given time, so the token is dead even if one of the
// two checks were skipped downstream. The update writes a terminal state, so
// repeating it is harmless. Returns the updated record, or ErrTokenNotFound
// if no such token exists.
func (r *TokenRepository) Invalidate(ctx context.Context, id int64, at time.Time) (*model.Token, error) {
	query := `UPDATE tokens SET valid = ?, expires_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, false, at.UTC().Truncate(time.Second), id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}
