// internal/service/policy/policy.go
package policy

import (
	"context"
	"fmt"
	"time"

	"insurance-service/internal/domain/activity"
	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// ActivityRecorder appends audit entries; failures never surface.
type ActivityRecorder interface {
	LogAction(ctx context.Context, userID int64, actionType, details string)
}

type PolicyService struct {
	policyRepo   policy.Repository
	customerRepo customer.Repository
	assignRepo   policy.AssignmentRepository
	recorder     ActivityRecorder
	logger       *zap.Logger
}

func NewPolicyService(
	policyRepo policy.Repository,
	customerRepo customer.Repository,
	assignRepo policy.AssignmentRepository,
	recorder ActivityRecorder,
	logger *zap.Logger,
) *PolicyService {
	return &PolicyService{
		policyRepo:   policyRepo,
		customerRepo: customerRepo,
		assignRepo:   assignRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

const dateLayout = "2006-01-02"

// CreatePolicy registers a new policy. New policies start ACTIVE.
func (s *PolicyService) CreatePolicy(ctx context.Context, actorID int64, req *policy.CreatePolicyRequest) (*policy.Policy, error) {
	exists, err := s.policyRepo.ExistsByNumber(ctx, req.PolicyNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check policy number: %w", err)
	}
	if exists {
		return nil, xerrors.BadRequestf("policy number already exists")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, xerrors.BadRequestf("invalid start date")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, xerrors.BadRequestf("invalid end date")
	}
	if endDate.Before(startDate) {
		return nil, xerrors.BadRequestf("end date must not precede start date")
	}

	p := &policy.Policy{
		PolicyNumber:  req.PolicyNumber,
		PolicyType:    req.PolicyType,
		PremiumAmount: req.PremiumAmount,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        policy.StatusActive,
	}

	if err := s.policyRepo.Create(ctx, p); err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.BadRequestf("policy number already exists")
		}
		s.logger.Error("failed to create policy", zap.Error(err))
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	s.logger.Info("policy created",
		zap.Int64("policy_id", p.ID),
		zap.String("policy_number", p.PolicyNumber),
	)

	if s.recorder != nil {
		s.recorder.LogAction(ctx, actorID, activity.ActionPolicyCreate,
			fmt.Sprintf("policy %s created", p.PolicyNumber))
	}

	return p, nil
}

// GetAllPolicies returns every policy in insertion order.
func (s *PolicyService) GetAllPolicies(ctx context.Context) ([]policy.Policy, error) {
	policies, err := s.policyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	if policies == nil {
		policies = []policy.Policy{}
	}
	return policies, nil
}

// GetPolicyByID retrieves a policy by id.
func (s *PolicyService) GetPolicyByID(ctx context.Context, id int64) (*policy.Policy, error) {
	p, err := s.policyRepo.FindByID(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("policy not found with id %d", id)
		}
		return nil, err
	}
	return p, nil
}

// AssignPolicyToCustomer links a policy to a customer. The checks run
// strictly in order: customer first, then policy, then the duplicate-link
// lookup, so an early failure performs no further reads and no write. The
// storage-level unique constraint remains the authoritative guard; losing
// the insert race reports the same duplicate-assignment failure as the
// pre-check.
func (s *PolicyService) AssignPolicyToCustomer(ctx context.Context, actorID, customerID, policyID int64) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("customer not found with id %d", customerID)
		}
		return err
	}

	if _, err := s.policyRepo.FindByID(ctx, policyID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.NotFoundf("policy not found with id %d", policyID)
		}
		return err
	}

	assigned, err := s.assignRepo.Exists(ctx, customerID, policyID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if assigned {
		return xerrors.BadRequestf("policy already assigned to this customer")
	}

	cp := &policy.CustomerPolicy{
		CustomerID: customerID,
		PolicyID:   policyID,
	}

	if err := s.assignRepo.Create(ctx, cp); err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return xerrors.BadRequestf("policy already assigned to this customer")
		}
		s.logger.Error("failed to create assignment",
			zap.Int64("customer_id", customerID),
			zap.Int64("policy_id", policyID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	if s.recorder != nil {
		s.recorder.LogAction(ctx, actorID, activity.ActionPolicyAssign,
			fmt.Sprintf("policy %d assigned to customer %d", policyID, customerID))
	}

	return nil
}

// GetPoliciesForUser resolves the customer record behind a login and returns
// its assigned policies.
func (s *PolicyService) GetPoliciesForUser(ctx context.Context, userID int64) ([]policy.Policy, error) {
	cust, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer profile not found")
		}
		return nil, err
	}
	return s.GetPoliciesForCustomer(ctx, cust.ID)
}

// GetPoliciesForCustomer returns the policies assigned to one customer.
func (s *PolicyService) GetPoliciesForCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	policies, err := s.assignRepo.FindPoliciesByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer policies: %w", err)
	}
	if policies == nil {
		policies = []policy.Policy{}
	}
	return policies, nil
}
