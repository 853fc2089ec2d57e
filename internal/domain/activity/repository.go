// internal/domain/activity/repository.go
package activity

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	// FindPaginated returns one page newest first plus the total row count.
	FindPaginated(ctx context.Context, offset, limit int) ([]Log, int64, error)
}
