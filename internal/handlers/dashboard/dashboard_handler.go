// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"
	service "insurance-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetAdminStats returns the aggregated portfolio statistics (admin only).
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}

// GetCustomerStats returns the calling customer's personal counters.
func (h *DashboardHandler) GetCustomerStats(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	stats, err := h.dashboardService.CustomerStats(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}
