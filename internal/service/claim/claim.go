// internal/service/claim/claim.go
package claim

import (
	"context"
	"database/sql"
	"fmt"

	"insurance-service/internal/domain/activity"
	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ActivityRecorder appends audit entries; failures never surface.
type ActivityRecorder interface {
	LogAction(ctx context.Context, userID int64, actionType, details string)
}

type ClaimService struct {
	claimRepo    claim.Repository
	customerRepo customer.Repository
	assignRepo   policy.AssignmentRepository
	recorder     ActivityRecorder
	logger       *zap.Logger
}

func NewClaimService(
	claimRepo claim.Repository,
	customerRepo customer.Repository,
	assignRepo policy.AssignmentRepository,
	recorder ActivityRecorder,
	logger *zap.Logger,
) *ClaimService {
	return &ClaimService{
		claimRepo:    claimRepo,
		customerRepo: customerRepo,
		assignRepo:   assignRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

// FileClaimForUser files a claim on behalf of the authenticated customer.
// When the request names a policy, that policy must be assigned to the
// customer. New claims start PENDING.
func (s *ClaimService) FileClaimForUser(ctx context.Context, userID int64, req *claim.FileClaimRequest) (*claim.Claim, error) {
	cust, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("no customer profile for user %d", userID)
		}
		return nil, err
	}

	c := &claim.Claim{
		CustomerID:  cust.ID,
		Description: req.Description,
		Status:      claim.StatusPending,
		Amount:      req.Amount,
	}

	if req.PolicyID != 0 {
		assigned, err := s.assignRepo.Exists(ctx, cust.ID, req.PolicyID)
		if err != nil {
			return nil, fmt.Errorf("failed to check policy assignment: %w", err)
		}
		if !assigned {
			return nil, xerrors.BadRequestf("policy is not assigned to this customer")
		}
		c.PolicyID = sql.NullInt64{Int64: req.PolicyID, Valid: true}
	}

	if err := s.claimRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create claim", zap.Error(err))
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	if s.recorder != nil {
		s.recorder.LogAction(ctx, userID, activity.ActionClaimFile,
			fmt.Sprintf("claim %d filed for %.2f", c.ID, c.Amount))
	}

	return c, nil
}

// GetClaimsForUser returns the authenticated customer's claims, newest first.
func (s *ClaimService) GetClaimsForUser(ctx context.Context, userID int64) ([]claim.Claim, error) {
	cust, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("no customer profile for user %d", userID)
		}
		return nil, err
	}

	claims, err := s.claimRepo.FindByCustomer(ctx, cust.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	if claims == nil {
		claims = []claim.Claim{}
	}
	return claims, nil
}

// GetAllClaims returns every claim, newest first.
func (s *ClaimService) GetAllClaims(ctx context.Context) ([]claim.Claim, error) {
	claims, err := s.claimRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	if claims == nil {
		claims = []claim.Claim{}
	}
	return claims, nil
}

// ReviewClaim approves or rejects a pending claim.
func (s *ClaimService) ReviewClaim(ctx context.Context, actorID, claimID int64, status string) (*claim.Claim, error) {
	if status != claim.StatusApproved && status != claim.StatusRejected {
		return nil, xerrors.BadRequestf("status must be APPROVED or REJECTED")
	}

	c, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("claim not found with id %d", claimID)
		}
		return nil, err
	}

	if c.Status != claim.StatusPending {
		return nil, xerrors.BadRequestf("claim has already been reviewed")
	}

	if err := s.claimRepo.UpdateStatus(ctx, claimID, status); err != nil {
		return nil, fmt.Errorf("failed to update claim status: %w", err)
	}
	c.Status = status

	if s.recorder != nil {
		s.recorder.LogAction(ctx, actorID, activity.ActionClaimReview,
			fmt.Sprintf("claim %d %s", claimID, status))
	}

	return c, nil
}
