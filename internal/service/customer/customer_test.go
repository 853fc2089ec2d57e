// internal/service/customer/customer_test.go
package customer

import (
	"context"
	"testing"

	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[string]*user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, ok := f.users[u.Username]; ok {
		return xerrors.ErrDuplicateEntry
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.Username] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return xerrors.ErrNotFound
}

type fakeCustomerRepo struct {
	customers   map[int64]*customer.Customer
	createdUser *user.User
	createCalls int
	nextID      int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[int64]*customer.Customer), nextID: 1}
}

func (f *fakeCustomerRepo) CreateWithUser(ctx context.Context, u *user.User, c *customer.Customer) error {
	f.createCalls++
	u.ID = f.nextID
	c.ID = f.nextID
	c.UserID = u.ID
	f.nextID++
	f.createdUser = u
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

type noopRecorder struct{}

func (noopRecorder) LogAction(ctx context.Context, userID int64, actionType, details string) {}

func newTestService() (*CustomerService, *fakeCustomerRepo, *fakeUserRepo) {
	customerRepo := newFakeCustomerRepo()
	userRepo := newFakeUserRepo()
	svc := NewCustomerService(customerRepo, userRepo, noopRecorder{}, zap.NewNop())
	return svc, customerRepo, userRepo
}

func validRequest() *customer.CreateCustomerRequest {
	return &customer.CreateCustomerRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "555-0100",
		Username: "janedoe",
		Password: "s3cret-pass",
	}
}

func TestCreateCustomerSuccess(t *testing.T) {
	svc, customerRepo, _ := newTestService()

	c, err := svc.CreateCustomer(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("customer was not assigned an id")
	}

	u := customerRepo.createdUser
	if u == nil {
		t.Fatal("no login account was created")
	}
	if u.Role != user.RoleCustomer {
		t.Fatalf("role = %q, want %q", u.Role, user.RoleCustomer)
	}
	if !u.Enabled {
		t.Fatal("new account should be enabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatal("stored hash does not match the password")
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in clear")
	}
}

func TestCreateCustomerDuplicateUsername(t *testing.T) {
	svc, customerRepo, userRepo := newTestService()
	userRepo.users["janedoe"] = &user.User{ID: 99, Username: "janedoe"}

	_, err := svc.CreateCustomer(context.Background(), 1, validRequest())
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
	if got, want := err.Error(), "username already exists"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if customerRepo.createCalls != 0 {
		t.Fatal("duplicate username reached the insert")
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, customerRepo, _ := newTestService()
	customerRepo.customers[1] = &customer.Customer{ID: 1, Email: "jane@example.com"}

	_, err := svc.CreateCustomer(context.Background(), 1, validRequest())
	if !xerrors.Is(err, xerrors.ErrBadRequest) {
		t.Fatalf("error = %v, want bad request", err)
	}
	if customerRepo.createCalls != 0 {
		t.Fatal("duplicate email reached the insert")
	}
}

func TestGetCustomerByIDNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetCustomerByID(context.Background(), 404)
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestGetAllCustomersEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	customers, err := svc.GetAllCustomers(context.Background())
	if err != nil {
		t.Fatalf("GetAllCustomers: %v", err)
	}
	if customers == nil || len(customers) != 0 {
		t.Fatalf("customers = %v, want empty non-nil slice", customers)
	}
}
