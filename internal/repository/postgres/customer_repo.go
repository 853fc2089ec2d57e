// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// CreateWithUser inserts the login account and the customer record in one
// transaction so a failure on either side leaves nothing behind.
func (r *CustomerRepository) CreateWithUser(ctx context.Context, u *user.User, c *customer.Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userQuery := `
		INSERT INTO users (username, password_hash, role, enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, userQuery, u.Username, u.PasswordHash, u.Role, u.Enabled).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	customerQuery := `
		INSERT INTO customers (name, email, phone, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	c.UserID = u.ID
	err = tx.QueryRow(ctx, customerQuery, c.Name, c.Email, c.Phone, c.UserID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit customer creation: %w", err)
	}

	return nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]customer.Customer, error) {
	query := `
		SELECT id, name, email, phone, user_id, created_at
		FROM customers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `
		SELECT id, name, email, phone, user_id, created_at
		FROM customers
		WHERE id = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.UserID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

func (r *CustomerRepository) FindByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	query := `
		SELECT id, name, email, phone, user_id, created_at
		FROM customers
		WHERE user_id = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.UserID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer by user: %w", err)
	}

	return &c, nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}

	return exists, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}
