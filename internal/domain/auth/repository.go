// internal/domain/auth/repository.go
package auth

import "context"

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *RefreshToken) error
	FindByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByUserID revokes every live refresh token for the user and
	// returns how many were removed.
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
