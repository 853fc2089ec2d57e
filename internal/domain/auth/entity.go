// internal/domain/auth/entity.go
package auth

import "time"

// RefreshToken is the server-side half of a session: an opaque value
// persisted per user with its own expiry. Access tokens stay stateless.
type RefreshToken struct {
	ID        int64     `json:"-" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}
