package model

import "time"

// User represents an application user record as stored in the `users`
// table. Handlers define separate response types with JSON tags; these
// structs are used by the repository layer only.
//
// Role is either ADMIN (may write catalog data) or CUSTOMER (may only
// read the catalog and manage their own orders).
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	Role         string    // users.role (ADMIN | CUSTOMER)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is never stored, only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
