// internal/repository/postgres/activity_log_repo.go
package postgres

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/activity"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityLogRepository struct {
	db *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(ctx context.Context, l *activity.Log) error {
	query := `
		INSERT INTO activity_logs (user_id, action_type, details)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, l.UserID, l.ActionType, l.Details).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity log: %w", err)
	}

	return nil
}

func (r *ActivityLogRepository) FindPaginated(ctx context.Context, offset, limit int) ([]activity.Log, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	query := `
		SELECT id, user_id, action_type, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []activity.Log
	for rows.Next() {
		var l activity.Log
		if err := rows.Scan(&l.ID, &l.UserID, &l.ActionType, &l.Details, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, total, rows.Err()
}
