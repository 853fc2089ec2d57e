// internal/domain/claim/entity.go
package claim

import (
	"database/sql"
	"time"
)

// Claim statuses.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Claim struct {
	ID          int64         `json:"id" db:"id"`
	CustomerID  int64         `json:"customerId" db:"customer_id"`
	PolicyID    sql.NullInt64 `json:"-" db:"policy_id"`
	Description string        `json:"description" db:"description"`
	Status      string        `json:"status" db:"status"`
	Amount      float64       `json:"amount" db:"amount"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}
