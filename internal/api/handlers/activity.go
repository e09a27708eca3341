package handlers

import (
	"net/http"
	"strconv"

	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ActivityLogHandler handles HTTP requests for the audit trail
type ActivityLogHandler struct {
	activityService service.ActivityLogServiceInterface
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(activityService service.ActivityLogServiceInterface) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityService: activityService,
	}
}

// ListActivity handles GET /api/v1/activity
// @Summary List activity log entries
// @Description List booking activity entries, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.ActivityLogListResponse "Paginated activity log"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/activity [get]
func (h *ActivityLogHandler) ListActivity(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, err := h.activityService.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activity log"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
