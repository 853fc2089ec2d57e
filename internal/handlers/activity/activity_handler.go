// internal/handlers/activity/activity_handler.go
package activity

import (
	"net/http"
	"strconv"

	"insurance-service/internal/pkg/response"
	service "insurance-service/internal/service/activity"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *service.ActivityService
}

func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetActivityLogs returns a page of the audit trail, newest first (admin only).
func (h *ActivityHandler) GetActivityLogs(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid page", nil)
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid page size", nil)
		return
	}

	result, err := h.activityService.GetActivityLogs(c.Request.Context(), page, size)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}
