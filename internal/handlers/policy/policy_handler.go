// internal/handlers/policy/policy_handler.go
package policy

import (
	"net/http"
	"strconv"

	"insurance-service/internal/domain/policy"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"
	service "insurance-service/internal/service/policy"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	policyService *service.PolicyService
}

func NewPolicyHandler(policyService *service.PolicyService) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
	}
}

// CreatePolicy creates a policy in the catalog (admin only).
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req policy.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	actorID := middleware.MustGetUserID(c)
	result, err := h.policyService.CreatePolicy(c.Request.Context(), actorID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, policy.ToDto(result))
}

// GetAllPolicies lists the full policy catalog (admin only).
func (h *PolicyHandler) GetAllPolicies(c *gin.Context) {
	policies, err := h.policyService.GetAllPolicies(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	dtos := make([]policy.PolicyDto, 0, len(policies))
	for i := range policies {
		dtos = append(dtos, policy.ToDto(&policies[i]))
	}

	response.JSON(c, http.StatusOK, dtos)
}

// GetPolicyByID retrieves one policy (admin only).
func (h *PolicyHandler) GetPolicyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid policy id", nil)
		return
	}

	result, err := h.policyService.GetPolicyByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, policy.ToDto(result))
}

// AssignPolicy links a catalog policy to a customer (admin only).
func (h *PolicyHandler) AssignPolicy(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid customer id", nil)
		return
	}

	var req policy.AssignPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	actorID := middleware.MustGetUserID(c)
	if err := h.policyService.AssignPolicyToCustomer(c.Request.Context(), actorID, customerID, req.PolicyID); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetMyPolicies lists the policies assigned to the calling customer.
func (h *PolicyHandler) GetMyPolicies(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	policies, err := h.policyService.GetPoliciesForUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	dtos := make([]policy.PolicyDto, 0, len(policies))
	for i := range policies {
		dtos = append(dtos, policy.ToDto(&policies[i]))
	}

	response.JSON(c, http.StatusOK, dtos)
}
