// internal/repository/postgres/claim_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"insurance-service/internal/domain/claim"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClaimRepository struct {
	db *pgxpool.Pool
}

func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	query := `
		INSERT INTO claims (customer_id, policy_id, description, status, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.CustomerID, c.PolicyID, c.Description, c.Status, c.Amount,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id int64) (*claim.Claim, error) {
	query := `
		SELECT id, customer_id, policy_id, description, status, amount, created_at
		FROM claims
		WHERE id = $1
	`

	var c claim.Claim
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CustomerID, &c.PolicyID, &c.Description, &c.Status, &c.Amount, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}

	return &c, nil
}

func (r *ClaimRepository) FindAll(ctx context.Context) ([]claim.Claim, error) {
	query := `
		SELECT id, customer_id, policy_id, description, status, amount, created_at
		FROM claims
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *ClaimRepository) FindByCustomer(ctx context.Context, customerID int64) ([]claim.Claim, error) {
	query := `
		SELECT id, customer_id, policy_id, description, status, amount, created_at
		FROM claims
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *ClaimRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE claims SET status = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM claims`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}
	return count, nil
}

func (r *ClaimRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM claims WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count claims by status: %w", err)
	}
	return count, nil
}

func (r *ClaimRepository) CountByCustomerAndStatus(ctx context.Context, customerID int64, status string) (int64, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM claims WHERE customer_id = $1 AND status = $2`,
		customerID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customer claims: %w", err)
	}
	return count, nil
}

func (r *ClaimRepository) SumAmount(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM claims`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum claim amounts: %w", err)
	}
	return sum, nil
}

func (r *ClaimRepository) SumAmountByStatus(ctx context.Context, status string) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM claims WHERE status = $1`, status).
		Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum claim amounts by status: %w", err)
	}
	return sum, nil
}

func (r *ClaimRepository) MonthlyData(ctx context.Context, from time.Time) ([]claim.MonthlyClaimData, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       COUNT(*),
		       COALESCE(SUM(amount), 0)
		FROM claims
		WHERE created_at >= $1
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := r.db.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly claim data: %w", err)
	}
	defer rows.Close()

	var data []claim.MonthlyClaimData
	for rows.Next() {
		var m claim.MonthlyClaimData
		if err := rows.Scan(&m.Month, &m.Count, &m.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly claim data: %w", err)
		}
		data = append(data, m)
	}

	return data, rows.Err()
}

func scanClaims(rows pgx.Rows) ([]claim.Claim, error) {
	var claims []claim.Claim
	for rows.Next() {
		var c claim.Claim
		err := rows.Scan(
			&c.ID, &c.CustomerID, &c.PolicyID, &c.Description, &c.Status, &c.Amount, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
