// internal/domain/policy/repository.go
package policy

import "context"

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	FindAll(ctx context.Context) ([]Policy, error)
	FindByID(ctx context.Context, id int64) (*Policy, error)
	ExistsByNumber(ctx context.Context, policyNumber string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
}

// AssignmentRepository is the ledger of customer-policy links.
type AssignmentRepository interface {
	// Create inserts the link. Returns xerrors.ErrDuplicateEntry when the
	// storage-level unique constraint on (customer_id, policy_id) rejects it.
	Create(ctx context.Context, cp *CustomerPolicy) error
	Exists(ctx context.Context, customerID, policyID int64) (bool, error)
	FindPoliciesByCustomer(ctx context.Context, customerID int64) ([]Policy, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}
