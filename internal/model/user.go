package model

import "time"

// User represents an account record as stored in the `users` table.
// Accounts are created either by an admin through the dashboard or on
// first contact through the SSO bridge; SSO accounts carry a provider
// marker and a random password that is never usable for local login.
// Accounts are never hard-deleted, "deletion" moves them to the
// Trashed status.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Name            – display name.
//  Email           – unique email address.
//  Username        – login name; the admin form sets it to the email.
//  PasswordHash    – bcrypt hashed password (never serialized).
//  StatusID        – reference into the status directory.
//  Provider        – external identity provider ("advenue") or empty.
//  ProviderID      – identifier at the external provider, may be empty.
//  EmailVerifiedAt – when the email was verified (null if never).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
type User struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	StatusID        StatusID   `json:"status_id"`
	Provider        string     `json:"provider,omitempty"`
	ProviderID      string     `json:"provider_id,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Status holds the joined directory entry when the repository
	// loads it alongside the user. Nil when not loaded.
	Status *UserStatus `json:"status,omitempty"`
}
