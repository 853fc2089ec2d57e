// internal/domain/dashboard/dto.go
package dashboard

import "insurance-service/internal/domain/claim"

// PolicyTypeDistribution is one slice of the policy-type breakdown.
type PolicyTypeDistribution struct {
	PolicyType string `json:"policyType"`
	Count      int64  `json:"count"`
}

// AdminStats aggregates the customer, policy and claim ledgers for the
// admin dashboard.
type AdminStats struct {
	TotalCustomers         int64                    `json:"totalCustomers"`
	TotalPolicies          int64                    `json:"totalPolicies"`
	TotalClaims            int64                    `json:"totalClaims"`
	PendingClaims          int64                    `json:"pendingClaims"`
	ApprovedClaims         int64                    `json:"approvedClaims"`
	RejectedClaims         int64                    `json:"rejectedClaims"`
	TotalClaimAmount       float64                  `json:"totalClaimAmount"`
	TotalApprovedAmount    float64                  `json:"totalApprovedAmount"`
	MonthlyClaimsData      []claim.MonthlyClaimData `json:"monthlyClaimsData"`
	PolicyTypeDistribution []PolicyTypeDistribution `json:"policyTypeDistribution"`
}

// CustomerStats is the read-side summary for one customer's dashboard.
type CustomerStats struct {
	PolicyCount    int64 `json:"policyCount"`
	TotalClaims    int64 `json:"totalClaims"`
	PendingClaims  int64 `json:"pendingClaims"`
	ApprovedClaims int64 `json:"approvedClaims"`
	RejectedClaims int64 `json:"rejectedClaims"`
}
