package handlers

import (
	"net/http"

	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler handles the public schedule endpoints
type ScheduleHandler struct {
	presentationService service.PresentationServiceInterface
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(presentationService service.PresentationServiceInterface) *ScheduleHandler {
	return &ScheduleHandler{
		presentationService: presentationService,
	}
}

// Upcoming handles GET /api/v1/schedule/upcoming
// @Summary Upcoming presentations
// @Description List presentations scheduled from today onwards, ordered chronologically
// @Tags schedule
// @Accept json
// @Produce json
// @Success 200 {object} service.PresentationListResponse "Upcoming presentations"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/schedule/upcoming [get]
func (h *ScheduleHandler) Upcoming(c *gin.Context) {
	presentations, err := h.presentationService.Upcoming()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list upcoming presentations"})
		return
	}

	c.JSON(http.StatusOK, presentations)
}

// Previous handles GET /api/v1/schedule/previous
// @Summary Past presentations
// @Description List presentations held before today, most recent first
// @Tags schedule
// @Accept json
// @Produce json
// @Success 200 {object} service.PresentationListResponse "Past presentations"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/schedule/previous [get]
func (h *ScheduleHandler) Previous(c *gin.Context) {
	presentations, err := h.presentationService.Previous()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list past presentations"})
		return
	}

	c.JSON(http.StatusOK, presentations)
}
