package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/advenue/foodadmin/internal/model"
)

// TokenRepo persists API bearer tokens. Only the SHA-256 hash of a
// token's secret is stored; the composite plaintext exists once, in
// the login response.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Create inserts a token row and returns its ID. The ID becomes the
// public half of the bearer credential.
func (r *TokenRepo) Create(ctx context.Context, userID uint64, name, tokenHash, abilities string, expiresAt time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO access_tokens (user_id, name, token_hash, abilities, expires_at) VALUES (?,?,?,?,?)",
		userID, name, tokenHash, abilities, expiresAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteExpiredByName prunes the user's expired tokens carrying the
// given device label. Live tokens and tokens under other labels are
// never touched, so one account keeps concurrent sessions per device.
func (r *TokenRepo) DeleteExpiredByName(ctx context.Context, userID uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM access_tokens WHERE user_id=? AND name=? AND expires_at<=NOW()",
		userID, name)
	return err
}

// GetByID loads a token row by primary key.
func (r *TokenRepo) GetByID(ctx context.Context, id uint64) (model.AccessToken, error) {
	var t model.AccessToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, name, token_hash, abilities, expires_at, created_at FROM access_tokens WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, &t.Abilities, &t.ExpiresAt, &t.CreatedAt)
	return t, err
}

// Delete removes one token. Logout revokes exactly the token that
// authenticated the request.
func (r *TokenRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM access_tokens WHERE id=?", id)
	return err
}
