// internal/service/policy/policy_test.go
package policy

import (
	"context"
	"testing"
	"time"

	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type fakePolicyRepo struct {
	policies map[int64]*policy.Policy
	numbers  map[string]bool
	nextID   int64
	calls    *[]string
}

func newFakePolicyRepo(calls *[]string) *fakePolicyRepo {
	return &fakePolicyRepo{
		policies: make(map[int64]*policy.Policy),
		numbers:  make(map[string]bool),
		nextID:   1,
		calls:    calls,
	}
}

func (f *fakePolicyRepo) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakePolicyRepo) Create(ctx context.Context, p *policy.Policy) error {
	f.record("policy.Create")
	if f.numbers[p.PolicyNumber] {
		return xerrors.ErrDuplicateEntry
	}
	p.ID = f.nextID
	f.nextID++
	f.policies[p.ID] = p
	f.numbers[p.PolicyNumber] = true
	return nil
}

func (f *fakePolicyRepo) FindAll(ctx context.Context) ([]policy.Policy, error) {
	out := make([]policy.Policy, 0, len(f.policies))
	for _, p := range f.policies {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePolicyRepo) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	f.record("policy.FindByID")
	p, ok := f.policies[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

func (f *fakePolicyRepo) ExistsByNumber(ctx context.Context, n string) (bool, error) {
	return f.numbers[n], nil
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

type fakeCustomerRepo struct {
	customers map[int64]*customer.Customer
	calls     *[]string
}

func newFakeCustomerRepo(calls *[]string) *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: make(map[int64]*customer.Customer),
		calls:     calls,
	}
}

func (f *fakeCustomerRepo) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeCustomerRepo) CreateWithUser(ctx context.Context, u *user.User, c *customer.Customer) error {
	c.ID = int64(len(f.customers) + 1)
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context) ([]customer.Customer, error) {
	out := make([]customer.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	f.record("customer.FindByID")
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
	for _, c := range f.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

type fakeAssignRepo struct {
	links     map[[2]int64]bool
	createErr error
	calls     *[]string
}

func newFakeAssignRepo(calls *[]string) *fakeAssignRepo {
	return &fakeAssignRepo{
		links: make(map[[2]int64]bool),
		calls: calls,
	}
}

func (f *fakeAssignRepo) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeAssignRepo) Create(ctx context.Context, cp *policy.CustomerPolicy) error {
	f.record("assign.Create")
	if f.createErr != nil {
		return f.createErr
	}
	key := [2]int64{cp.CustomerID, cp.PolicyID}
	if f.links[key] {
		return xerrors.ErrDuplicateEntry
	}
	f.links[key] = true
	return nil
}

func (f *fakeAssignRepo) Exists(ctx context.Context, customerID, policyID int64) (bool, error) {
	f.record("assign.Exists")
	return f.links[[2]int64{customerID, policyID}], nil
}

func (f *fakeAssignRepo) FindPoliciesByCustomer(ctx context.Context, customerID int64) ([]policy.Policy, error) {
	return nil, nil
}

func (f *fakeAssignRepo) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var n int64
	for key := range f.links {
		if key[0] == customerID {
			n++
		}
	}
	return n, nil
}

type noopRecorder struct{}

func (noopRecorder) LogAction(ctx context.Context, userID int64, actionType, details string) {}

func newTestService(calls *[]string) (*PolicyService, *fakePolicyRepo, *fakeCustomerRepo, *fakeAssignRepo) {
	policyRepo := newFakePolicyRepo(calls)
	customerRepo := newFakeCustomerRepo(calls)
	assignRepo := newFakeAssignRepo(calls)
	svc := NewPolicyService(policyRepo, customerRepo, assignRepo, noopRecorder{}, zap.NewNop())
	return svc, policyRepo, customerRepo, assignRepo
}

func seed(policyRepo *fakePolicyRepo, customerRepo *fakeCustomerRepo) {
	customerRepo.customers[10] = &customer.Customer{ID: 10, Name: "Jane Doe", Email: "jane@example.com", UserID: 2}
	policyRepo.policies[5] = &policy.Policy{
		ID:           5,
		PolicyNumber: "POL-001",
		PolicyType:   policy.TypeAuto,
		Status:       policy.StatusActive,
	}
}

func TestAssignPolicySuccess(t *testing.T) {
	var calls []string
	svc, policyRepo, customerRepo, assignRepo := newTestService(&calls)
	seed(policyRepo, customerRepo)

	if err := svc.AssignPolicyToCustomer(context.Background(), 1, 10, 5); err != nil {
		t.Fatalf("AssignPolicyToCustomer: %v", err)
	}

	if !assignRepo.links[[2]int64{10, 5}] {
		t.Fatal("assignment was not persisted")
	}

	want := []string{"customer.FindByID", "policy.FindByID", "assign.Exists", "assign.Create"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestAssignPolicyDuplicateRejected(t *testing.T) {
	var calls []string
	svc, policyRepo, customerRepo, assignRepo := newTestService(&calls)
	seed(policyRepo, customerRepo)
	assignRepo.links[[2]int64{10, 5}] = true

	err := svc.AssignPolicyToCustomer(context.Background(), 1, 10, 5)
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
	if got, want := err.Error(), "policy already assigned to this customer"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	for _, call := range calls {
		if call == "assign.Create" {
			t.Fatal("duplicate assignment reached the insert")
		}
	}
}

func TestAssignPolicyCustomerNotFound(t *testing.T) {
	var calls []string
	svc, policyRepo, customerRepo, _ := newTestService(&calls)
	seed(policyRepo, customerRepo)

	err := svc.AssignPolicyToCustomer(context.Background(), 1, 999, 5)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}

	// The customer lookup fails first; nothing else runs.
	if len(calls) != 1 || calls[0] != "customer.FindByID" {
		t.Fatalf("calls = %v, want only customer.FindByID", calls)
	}
}

func TestAssignPolicyPolicyNotFound(t *testing.T) {
	var calls []string
	svc, policyRepo, customerRepo, _ := newTestService(&calls)
	seed(policyRepo, customerRepo)

	err := svc.AssignPolicyToCustomer(context.Background(), 1, 10, 999)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}

	want := []string{"customer.FindByID", "policy.FindByID"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestAssignPolicyLosesInsertRace(t *testing.T) {
	var calls []string
	svc, policyRepo, customerRepo, assignRepo := newTestService(&calls)
	seed(policyRepo, customerRepo)

	// The pre-check sees nothing, but the unique constraint rejects the
	// insert. Same caller-facing failure as the fast path.
	assignRepo.createErr = xerrors.ErrDuplicateEntry

	err := svc.AssignPolicyToCustomer(context.Background(), 1, 10, 5)
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
	if got, want := err.Error(), "policy already assigned to this customer"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestCreatePolicyDuplicateNumber(t *testing.T) {
	svc, policyRepo, customerRepo, _ := newTestService(nil)
	seed(policyRepo, customerRepo)
	policyRepo.numbers["POL-001"] = true

	_, err := svc.CreatePolicy(context.Background(), 1, &policy.CreatePolicyRequest{
		PolicyNumber:  "POL-001",
		PolicyType:    policy.TypeHome,
		PremiumAmount: 100,
		StartDate:     "2026-01-01",
		EndDate:       "2026-12-31",
	})
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
}

func TestCreatePolicyEndBeforeStart(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	_, err := svc.CreatePolicy(context.Background(), 1, &policy.CreatePolicyRequest{
		PolicyNumber:  "POL-100",
		PolicyType:    policy.TypeTravel,
		PremiumAmount: 50,
		StartDate:     "2026-06-01",
		EndDate:       "2026-05-01",
	})
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
}

func TestCreatePolicyStartsActive(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	p, err := svc.CreatePolicy(context.Background(), 1, &policy.CreatePolicyRequest{
		PolicyNumber:  "POL-200",
		PolicyType:    policy.TypeLife,
		PremiumAmount: 75.50,
		StartDate:     "2026-01-01",
		EndDate:       "2027-01-01",
	})
	if err != nil {
		t.Fatalf("CreatePolicy: %v", err)
	}
	if p.Status != policy.StatusActive {
		t.Fatalf("status = %q, want %q", p.Status, policy.StatusActive)
	}
	if p.StartDate != time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("start date parsed as %v", p.StartDate)
	}
}

func TestGetPoliciesForCustomerEmpty(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	policies, err := svc.GetPoliciesForCustomer(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetPoliciesForCustomer: %v", err)
	}
	if policies == nil || len(policies) != 0 {
		t.Fatalf("policies = %v, want empty non-nil slice", policies)
	}
}
