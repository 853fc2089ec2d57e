// internal/repository/postgres/policy_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PolicyRepository struct {
	db *pgxpool.Pool
}

func NewPolicyRepository(db *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	query := `
		INSERT INTO policies (policy_number, policy_type, premium_amount, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.PolicyNumber, p.PolicyType, p.PremiumAmount, p.StartDate, p.EndDate, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create policy: %w", err)
	}

	return nil
}

func (r *PolicyRepository) FindAll(ctx context.Context) ([]policy.Policy, error) {
	query := `
		SELECT id, policy_number, policy_type, premium_amount, start_date, end_date, status, created_at
		FROM policies
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	return scanPolicies(rows)
}

func (r *PolicyRepository) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	query := `
		SELECT id, policy_number, policy_type, premium_amount, start_date, end_date, status, created_at
		FROM policies
		WHERE id = $1
	`

	var p policy.Policy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PolicyNumber, &p.PolicyType, &p.PremiumAmount,
		&p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find policy: %w", err)
	}

	return &p, nil
}

func (r *PolicyRepository) ExistsByNumber(ctx context.Context, policyNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM policies WHERE policy_number = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, policyNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check policy number: %w", err)
	}

	return exists, nil
}

func (r *PolicyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM policies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count policies: %w", err)
	}
	return count, nil
}

func (r *PolicyRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	query := `SELECT policy_type, COUNT(*) FROM policies GROUP BY policy_type`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count policies by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var policyType string
		var count int64
		if err := rows.Scan(&policyType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan policy type count: %w", err)
		}
		counts[policyType] = count
	}

	return counts, rows.Err()
}

func scanPolicies(rows pgx.Rows) ([]policy.Policy, error) {
	var policies []policy.Policy
	for rows.Next() {
		var p policy.Policy
		err := rows.Scan(
			&p.ID, &p.PolicyNumber, &p.PolicyType, &p.PremiumAmount,
			&p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}
