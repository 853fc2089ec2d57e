// internal/service/activity/activity.go
package activity

import (
	"context"

	"insurance-service/internal/domain/activity"

	"go.uber.org/zap"
)

type ActivityService struct {
	activityRepo activity.Repository
	logger       *zap.Logger
}

func NewActivityService(activityRepo activity.Repository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// LogAction appends an audit entry. Failures are logged and swallowed so the
// business operation that triggered the entry never fails on its account.
func (s *ActivityService) LogAction(ctx context.Context, userID int64, actionType, details string) {
	l := &activity.Log{
		UserID:     userID,
		ActionType: actionType,
		Details:    details,
	}

	if err := s.activityRepo.Create(ctx, l); err != nil {
		s.logger.Warn("failed to record activity",
			zap.Int64("user_id", userID),
			zap.String("action_type", actionType),
			zap.Error(err),
		)
	}
}

const defaultPageSize = 20

// GetActivityLogs returns one page of the audit trail, newest first.
func (s *ActivityService) GetActivityLogs(ctx context.Context, page, pageSize int) (*activity.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > 100 {
		pageSize = 100
	}

	logs, total, err := s.activityRepo.FindPaginated(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []activity.Log{}
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &activity.PaginatedResponse{
		Content:       logs,
		CurrentPage:   page,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       page < totalPages,
		HasPrevious:   page > 1,
	}, nil
}
