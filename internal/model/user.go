package model

import (
	"errors"
	"strings"
	"time"
)

// Role names stored in users.role and carried in the JWT "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application account as stored in the `users` table.
// The password is only ever kept as a bcrypt hash; handlers must never
// serialize this struct directly and instead return a sanitized view.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address, stored exactly as submitted (trimmed,
//                 not case-folded) and matched exactly on lookup.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name ("user" or "admin").
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// ValidRole reports whether the given role name is one the system knows.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Validate checks the record shape before it reaches the store. Invalid
// records are rejected here rather than by the database.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("user: name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("user: email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("user: password hash is required")
	}
	if !ValidRole(u.Role) {
		return errors.New("user: unknown role")
	}
	return nil
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token value is persisted; the raw string goes back to
// the client once and is never stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
