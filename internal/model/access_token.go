package model

import "time"

// AccessToken models an entry in the `access_tokens` table. Each token
// belongs to a user and is named after the device label derived at
// login time. The plain secret is not stored; only its SHA-256 hash.
// A user may hold several live tokens at once, one per device label.
//
// Fields:
//  ID        – primary key identifier; also the public half of the
//              bearer credential ("<id>|<secret>").
//  UserID    – owner of the token.
//  Name      – device label, e.g. "chrome_1a2b3c4d".
//  TokenHash – SHA-256 hex digest of the secret.
//  Abilities – granted scopes; full access is "*".
//  ExpiresAt – expiration timestamp (24h after issuance).
//  CreatedAt – timestamp of creation.
type AccessToken struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Name      string    `json:"name"`
	TokenHash string    `json:"-"`
	Abilities string    `json:"abilities"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
