// internal/domain/claim/dto.go
package claim

type FileClaimRequest struct {
	PolicyID    int64   `json:"policyId"`
	Description string  `json:"description" binding:"required,max=1000"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}

type UpdateClaimStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

type ClaimDto struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customerId"`
	PolicyID    int64   `json:"policyId,omitempty"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"createdAt"`
}

func ToDto(c *Claim) ClaimDto {
	dto := ClaimDto{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		Description: c.Description,
		Status:      c.Status,
		Amount:      c.Amount,
		CreatedAt:   c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if c.PolicyID.Valid {
		dto.PolicyID = c.PolicyID.Int64
	}
	return dto
}
