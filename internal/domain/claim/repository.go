// internal/domain/claim/repository.go
package claim

import (
	"context"
	"time"
)

// MonthlyClaimData is one month's slice of the claim ledger.
type MonthlyClaimData struct {
	Month       string  `json:"month"` // YYYY-MM
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type Repository interface {
	Create(ctx context.Context, c *Claim) error
	FindByID(ctx context.Context, id int64) (*Claim, error)
	// FindAll returns claims newest first.
	FindAll(ctx context.Context) ([]Claim, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]Claim, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCustomerAndStatus(ctx context.Context, customerID int64, status string) (int64, error)
	SumAmount(ctx context.Context) (float64, error)
	SumAmountByStatus(ctx context.Context, status string) (float64, error)
	MonthlyData(ctx context.Context, from time.Time) ([]MonthlyClaimData, error)
}
