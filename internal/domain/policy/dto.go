// internal/domain/policy/dto.go
package policy

type CreatePolicyRequest struct {
	PolicyNumber  string  `json:"policyNumber" binding:"required,max=50"`
	PolicyType    string  `json:"policyType" binding:"required,oneof=AUTO HOME LIFE HEALTH TRAVEL"`
	PremiumAmount float64 `json:"premiumAmount" binding:"required,gt=0"`
	StartDate     string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate       string  `json:"endDate" binding:"required,datetime=2006-01-02"`
}

type AssignPolicyRequest struct {
	PolicyID int64 `json:"policyId" binding:"required"`
}

type PolicyDto struct {
	ID            int64   `json:"id"`
	PolicyNumber  string  `json:"policyNumber"`
	PolicyType    string  `json:"policyType"`
	PremiumAmount float64 `json:"premiumAmount"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Status        string  `json:"status"`
}

const dateLayout = "2006-01-02"

func ToDto(p *Policy) PolicyDto {
	return PolicyDto{
		ID:            p.ID,
		PolicyNumber:  p.PolicyNumber,
		PolicyType:    p.PolicyType,
		PremiumAmount: p.PremiumAmount,
		StartDate:     p.StartDate.Format(dateLayout),
		EndDate:       p.EndDate.Format(dateLayout),
		Status:        p.Status,
	}
}
