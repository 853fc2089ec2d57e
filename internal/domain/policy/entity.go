// internal/domain/policy/entity.go
package policy

import "time"

// Policy statuses.
const (
	StatusActive    = "ACTIVE"
	StatusExpired   = "EXPIRED"
	StatusCancelled = "CANCELLED"
)

// Policy types.
const (
	TypeAuto   = "AUTO"
	TypeHome   = "HOME"
	TypeLife   = "LIFE"
	TypeHealth = "HEALTH"
	TypeTravel = "TRAVEL"
)

type Policy struct {
	ID            int64     `json:"id" db:"id"`
	PolicyNumber  string    `json:"policyNumber" db:"policy_number"`
	PolicyType    string    `json:"policyType" db:"policy_type"`
	PremiumAmount float64   `json:"premiumAmount" db:"premium_amount"`
	StartDate     time.Time `json:"startDate" db:"start_date"`
	EndDate       time.Time `json:"endDate" db:"end_date"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// CustomerPolicy links one customer to one policy. At most one link exists
// per (customer, policy) pair; the storage-level unique constraint is the
// authoritative guard.
type CustomerPolicy struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	PolicyID   int64     `json:"policyId" db:"policy_id"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`
}
