// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/dashboard"
	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	adminStatsCacheKey = "dashboard:admin_stats"
	adminStatsCacheTTL = 60 * time.Second
	monthlyWindow      = 12 // months of claim history on the admin chart
)

type DashboardService struct {
	customerRepo customer.Repository
	policyRepo   policy.Repository
	assignRepo   policy.AssignmentRepository
	claimRepo    claim.Repository
	cache        *redis.Client // optional, nil skips caching
	logger       *zap.Logger
}

func NewDashboardService(
	customerRepo customer.Repository,
	policyRepo policy.Repository,
	assignRepo policy.AssignmentRepository,
	claimRepo claim.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		policyRepo:   policyRepo,
		assignRepo:   assignRepo,
		claimRepo:    claimRepo,
		cache:        cache,
		logger:       logger,
	}
}

// AdminStats aggregates the customer, policy and claim ledgers. The result
// is cached briefly since every admin page load requests it.
func (s *DashboardService) AdminStats(ctx context.Context) (*dashboard.AdminStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, adminStatsCacheKey).Bytes(); err == nil {
			var stats dashboard.AdminStats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeAdminStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, adminStatsCacheKey, payload, adminStatsCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *DashboardService) computeAdminStats(ctx context.Context) (*dashboard.AdminStats, error) {
	stats := &dashboard.AdminStats{}

	var err error
	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if stats.TotalPolicies, err = s.policyRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count policies: %w", err)
	}
	if stats.TotalClaims, err = s.claimRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}
	if stats.PendingClaims, err = s.claimRepo.CountByStatus(ctx, claim.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending claims: %w", err)
	}
	if stats.ApprovedClaims, err = s.claimRepo.CountByStatus(ctx, claim.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count approved claims: %w", err)
	}
	if stats.RejectedClaims, err = s.claimRepo.CountByStatus(ctx, claim.StatusRejected); err != nil {
		return nil, fmt.Errorf("failed to count rejected claims: %w", err)
	}
	if stats.TotalClaimAmount, err = s.claimRepo.SumAmount(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum claim amounts: %w", err)
	}
	if stats.TotalApprovedAmount, err = s.claimRepo.SumAmountByStatus(ctx, claim.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to sum approved amounts: %w", err)
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthlyWindow - 1), 0)
	monthly, err := s.claimRepo.MonthlyData(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly claim data: %w", err)
	}
	if monthly == nil {
		monthly = []claim.MonthlyClaimData{}
	}
	stats.MonthlyClaimsData = monthly

	byType, err := s.policyRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count policies by type: %w", err)
	}
	distribution := make([]dashboard.PolicyTypeDistribution, 0, len(byType))
	for policyType, count := range byType {
		distribution = append(distribution, dashboard.PolicyTypeDistribution{
			PolicyType: policyType,
			Count:      count,
		})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].PolicyType < distribution[j].PolicyType
	})
	stats.PolicyTypeDistribution = distribution

	return stats, nil
}

// CustomerStats summarises one customer's policies and claims.
func (s *DashboardService) CustomerStats(ctx context.Context, userID int64) (*dashboard.CustomerStats, error) {
	cust, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("no customer profile for user %d", userID)
		}
		return nil, err
	}

	stats := &dashboard.CustomerStats{}
	if stats.PolicyCount, err = s.assignRepo.CountByCustomer(ctx, cust.ID); err != nil {
		return nil, fmt.Errorf("failed to count policies: %w", err)
	}
	if stats.PendingClaims, err = s.claimRepo.CountByCustomerAndStatus(ctx, cust.ID, claim.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending claims: %w", err)
	}
	if stats.ApprovedClaims, err = s.claimRepo.CountByCustomerAndStatus(ctx, cust.ID, claim.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count approved claims: %w", err)
	}
	if stats.RejectedClaims, err = s.claimRepo.CountByCustomerAndStatus(ctx, cust.ID, claim.StatusRejected); err != nil {
		return nil, fmt.Errorf("failed to count rejected claims: %w", err)
	}
	stats.TotalClaims = stats.PendingClaims + stats.ApprovedClaims + stats.RejectedClaims

	return stats, nil
}
