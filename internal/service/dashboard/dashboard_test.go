// internal/service/dashboard/dashboard_test.go
package dashboard

import (
	"context"
	"testing"
	"time"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakeCustomerRepo struct {
	customers map[int64]*customer.Customer
}

func (f *fakeCustomerRepo) CreateWithUser(ctx context.Context, u *user.User, c *customer.Customer) error {
	return nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context) ([]customer.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	for _, c := range f.customers {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeCustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

type fakePolicyRepo struct {
	policies []policy.Policy
}

func (f *fakePolicyRepo) Create(ctx context.Context, p *policy.Policy) error { return nil }

func (f *fakePolicyRepo) FindAll(ctx context.Context) ([]policy.Policy, error) {
	return f.policies, nil
}

func (f *fakePolicyRepo) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakePolicyRepo) ExistsByNumber(ctx context.Context, n string) (bool, error) {
	return false, nil
}

func (f *fakePolicyRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.policies)), nil
}

func (f *fakePolicyRepo) CountByType(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, p := range f.policies {
		out[p.PolicyType]++
	}
	return out, nil
}

type fakeAssignRepo struct {
	byCustomer map[int64]int64
}

func (f *fakeAssignRepo) Create(ctx context.Context, cp *policy.CustomerPolicy) error { return nil }

func (f *fakeAssignRepo) Exists(ctx context.Context, customerID, policyID int64) (bool, error) {
	return false, nil
}

func (f *fakeAssignRepo) FindPoliciesByCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	return nil, nil
}

func (f *fakeAssignRepo) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	return f.byCustomer[customerID], nil
}

type fakeClaimRepo struct {
	claims []claim.Claim
}

func (f *fakeClaimRepo) Create(ctx context.Context, c *claim.Claim) error { return nil }

func (f *fakeClaimRepo) FindByID(ctx context.Context, id int64) (*claim.Claim, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeClaimRepo) FindAll(ctx context.Context) ([]claim.Claim, error) {
	return f.claims, nil
}

func (f *fakeClaimRepo) FindByCustomer(ctx context.Context, customerID int64) ([]claim.Claim, error) {
	return nil, nil
}

func (f *fakeClaimRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return nil
}

func (f *fakeClaimRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.claims)), nil
}

func (f *fakeClaimRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	for _, c := range f.claims {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeClaimRepo) CountByCustomerAndStatus(ctx context.Context, customerID int64, status string) (int64, error) {
	var n int64
	for _, c := range f.claims {
		if c.CustomerID == customerID && c.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeClaimRepo) SumAmount(ctx context.Context) (float64, error) {
	var sum float64
	for _, c := range f.claims {
		sum += c.Amount
	}
	return sum, nil
}

func (f *fakeClaimRepo) SumAmountByStatus(ctx context.Context, status string) (float64, error) {
	var sum float64
	for _, c := range f.claims {
		if c.Status == status {
			sum += c.Amount
		}
	}
	return sum, nil
}

func (f *fakeClaimRepo) MonthlyData(ctx context.Context, from time.Time) ([]claim.MonthlyClaimData, error) {
	return []claim.MonthlyClaimData{{Month: "2026-08", Count: int64(len(f.claims))}}, nil
}

func newTestService() *DashboardService {
	customerRepo := &fakeCustomerRepo{customers: map[int64]*customer.Customer{
		10: {ID: 10, UserID: 2},
		11: {ID: 11, UserID: 3},
	}}
	policyRepo := &fakePolicyRepo{policies: []policy.Policy{
		{ID: 1, PolicyType: policy.TypeAuto},
		{ID: 2, PolicyType: policy.TypeAuto},
		{ID: 3, PolicyType: policy.TypeHome},
	}}
	assignRepo := &fakeAssignRepo{byCustomer: map[int64]int64{10: 2}}
	claimRepo := &fakeClaimRepo{claims: []claim.Claim{
		{ID: 1, CustomerID: 10, Status: claim.StatusPending, Amount: 100},
		{ID: 2, CustomerID: 10, Status: claim.StatusApproved, Amount: 250},
		{ID: 3, CustomerID: 11, Status: claim.StatusRejected, Amount: 400},
		{ID: 4, CustomerID: 10, Status: claim.StatusApproved, Amount: 50},
	}}
	return NewDashboardService(customerRepo, policyRepo, assignRepo, claimRepo, nil, zap.NewNop())
}

func TestAdminStats(t *testing.T) {
	svc := newTestService()

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}

	if stats.TotalCustomers != 2 || stats.TotalPolicies != 3 || stats.TotalClaims != 4 {
		t.Fatalf("totals = %d/%d/%d, want 2/3/4",
			stats.TotalCustomers, stats.TotalPolicies, stats.TotalClaims)
	}
	if stats.PendingClaims != 1 || stats.ApprovedClaims != 2 || stats.RejectedClaims != 1 {
		t.Fatalf("claim counts = %d/%d/%d, want 1/2/1",
			stats.PendingClaims, stats.ApprovedClaims, stats.RejectedClaims)
	}
	if stats.TotalClaimAmount != 800 {
		t.Fatalf("total claim amount = %v, want 800", stats.TotalClaimAmount)
	}
	if stats.TotalApprovedAmount != 300 {
		t.Fatalf("approved amount = %v, want 300", stats.TotalApprovedAmount)
	}

	// Distribution is sorted by type so the payload is stable.
	if len(stats.PolicyTypeDistribution) != 2 {
		t.Fatalf("distribution = %v", stats.PolicyTypeDistribution)
	}
	if stats.PolicyTypeDistribution[0].PolicyType != policy.TypeAuto ||
		stats.PolicyTypeDistribution[0].Count != 2 {
		t.Fatalf("distribution[0] = %+v", stats.PolicyTypeDistribution[0])
	}
	if stats.PolicyTypeDistribution[1].PolicyType != policy.TypeHome ||
		stats.PolicyTypeDistribution[1].Count != 1 {
		t.Fatalf("distribution[1] = %+v", stats.PolicyTypeDistribution[1])
	}

	if len(stats.MonthlyClaimsData) != 1 {
		t.Fatalf("monthly data = %v", stats.MonthlyClaimsData)
	}
}

func TestCustomerStats(t *testing.T) {
	svc := newTestService()

	stats, err := svc.CustomerStats(context.Background(), 2)
	if err != nil {
		t.Fatalf("CustomerStats: %v", err)
	}

	if stats.PolicyCount != 2 {
		t.Fatalf("policy count = %d, want 2", stats.PolicyCount)
	}
	if stats.PendingClaims != 1 || stats.ApprovedClaims != 2 || stats.RejectedClaims != 0 {
		t.Fatalf("claim counts = %d/%d/%d, want 1/2/0",
			stats.PendingClaims, stats.ApprovedClaims, stats.RejectedClaims)
	}
	if stats.TotalClaims != 3 {
		t.Fatalf("total claims = %d, want 3", stats.TotalClaims)
	}
}

func TestCustomerStatsNoProfile(t *testing.T) {
	svc := newTestService()

	_, err := svc.CustomerStats(context.Background(), 99)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}
