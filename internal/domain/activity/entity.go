// internal/domain/activity/entity.go
package activity

import "time"

// Well-known action types recorded in the audit trail.
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionPasswordChange = "PASSWORD_CHANGE"
	ActionCustomerCreate = "CUSTOMER_CREATE"
	ActionPolicyCreate   = "POLICY_CREATE"
	ActionPolicyAssign   = "POLICY_ASSIGN"
	ActionClaimFile      = "CLAIM_FILE"
	ActionClaimReview    = "CLAIM_REVIEW"
)

// Log is one append-only audit trail entry.
type Log struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ActionType string    `json:"actionType" db:"action_type"`
	Details    string    `json:"details" db:"details"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
