// internal/domain/customer/repository.go
package customer

import (
	"context"

	"insurance-service/internal/domain/user"
)

type Repository interface {
	// CreateWithUser persists the login account and the customer record in a
	// single transaction. Both succeed or neither is visible.
	CreateWithUser(ctx context.Context, u *user.User, c *Customer) error
	FindAll(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id int64) (*Customer, error)
	FindByUserID(ctx context.Context, userID int64) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
