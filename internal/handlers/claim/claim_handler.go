// internal/handlers/claim/claim_handler.go
package claim

import (
	"net/http"
	"strconv"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"
	service "insurance-service/internal/service/claim"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	claimService *service.ClaimService
}

func NewClaimHandler(claimService *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// FileClaim files a claim on behalf of the calling customer.
func (h *ClaimHandler) FileClaim(c *gin.Context) {
	var req claim.FileClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.claimService.FileClaimForUser(c.Request.Context(), userID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, claim.ToDto(result))
}

// GetMyClaims lists the calling customer's claims.
func (h *ClaimHandler) GetMyClaims(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	claims, err := h.claimService.GetClaimsForUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	dtos := make([]claim.ClaimDto, 0, len(claims))
	for i := range claims {
		dtos = append(dtos, claim.ToDto(&claims[i]))
	}

	response.JSON(c, http.StatusOK, dtos)
}

// GetAllClaims lists every claim (admin only).
func (h *ClaimHandler) GetAllClaims(c *gin.Context) {
	claims, err := h.claimService.GetAllClaims(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	dtos := make([]claim.ClaimDto, 0, len(claims))
	for i := range claims {
		dtos = append(dtos, claim.ToDto(&claims[i]))
	}

	response.JSON(c, http.StatusOK, dtos)
}

// UpdateClaimStatus approves or rejects a pending claim (admin only).
func (h *ClaimHandler) UpdateClaimStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid claim id", nil)
		return
	}

	var req claim.UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	actorID := middleware.MustGetUserID(c)
	result, err := h.claimService.ReviewClaim(c.Request.Context(), actorID, id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, claim.ToDto(result))
}
