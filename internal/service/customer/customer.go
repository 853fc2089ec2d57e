// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/activity"
	"insurance-service/internal/domain/customer"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ActivityRecorder appends audit entries; failures never surface.
type ActivityRecorder interface {
	LogAction(ctx context.Context, userID int64, actionType, details string)
}

type CustomerService struct {
	customerRepo customer.Repository
	userRepo     user.Repository
	recorder     ActivityRecorder
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo customer.Repository,
	userRepo user.Repository,
	recorder ActivityRecorder,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

// CreateCustomer creates the login account and the customer record. The two
// inserts run in one transaction inside the repository, so a failure on
// either leaves no partial state.
func (s *CustomerService) CreateCustomer(ctx context.Context, actorID int64, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, xerrors.BadRequestf("username already exists")
	}

	emailTaken, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, xerrors.BadRequestf("customer with email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         user.RoleCustomer,
		Enabled:      true,
	}
	c := &customer.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.customerRepo.CreateWithUser(ctx, u, c); err != nil {
		// Race lost against a concurrent create; same outcome as the pre-check.
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.BadRequestf("username or email already exists")
		}
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.Int64("user_id", u.ID),
	)

	if s.recorder != nil {
		s.recorder.LogAction(ctx, actorID, activity.ActionCustomerCreate,
			fmt.Sprintf("customer %d (%s) created", c.ID, c.Email))
	}

	return c, nil
}

// GetAllCustomers returns every customer in insertion order.
func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]customer.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []customer.Customer{}
	}
	return customers, nil
}

// GetCustomerByID retrieves a customer by id.
func (s *CustomerService) GetCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("customer not found with id %d", id)
		}
		return nil, err
	}
	return c, nil
}

// GetCustomerByUserID resolves the customer profile behind a login account.
func (s *CustomerService) GetCustomerByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	c, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.NotFoundf("no customer profile for user %d", userID)
		}
		return nil, err
	}
	return c, nil
}
