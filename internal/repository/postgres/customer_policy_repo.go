// internal/repository/postgres/customer_policy_repo.go
package postgres

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerPolicyRepository is the assignment ledger. The unique constraint on
// (customer_id, policy_id) is the authoritative duplicate guard; the Exists
// pre-check in the service is only a fast path.
type CustomerPolicyRepository struct {
	db *pgxpool.Pool
}

func NewCustomerPolicyRepository(db *pgxpool.Pool) *CustomerPolicyRepository {
	return &CustomerPolicyRepository{db: db}
}

func (r *CustomerPolicyRepository) Create(ctx context.Context, cp *policy.CustomerPolicy) error {
	query := `
		INSERT INTO customer_policies (customer_id, policy_id)
		VALUES ($1, $2)
		RETURNING id, assigned_at
	`

	err := r.db.QueryRow(ctx, query, cp.CustomerID, cp.PolicyID).
		Scan(&cp.ID, &cp.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

func (r *CustomerPolicyRepository) Exists(ctx context.Context, customerID, policyID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customer_policies WHERE customer_id = $1 AND policy_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID, policyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}

	return exists, nil
}

func (r *CustomerPolicyRepository) FindPoliciesByCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	query := `
		SELECT p.id, p.policy_number, p.policy_type, p.premium_amount,
		       p.start_date, p.end_date, p.status, p.created_at
		FROM policies p
		JOIN customer_policies cp ON cp.policy_id = p.id
		WHERE cp.customer_id = $1
		ORDER BY cp.id
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer policies: %w", err)
	}
	defer rows.Close()

	return scanPolicies(rows)
}

func (r *CustomerPolicyRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_policies WHERE customer_id = $1`, customerID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customer policies: %w", err)
	}
	return count, nil
}
