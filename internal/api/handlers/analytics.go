package handlers

import (
	"errors"
	"net/http"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles HTTP requests for research activity analytics
type AnalyticsHandler struct {
	analyticsService service.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Summary handles GET /api/v1/analytics/summary
// @Summary Research activity summary
// @Description Aggregate presentation counts, department ranking and trend series, optionally limited to a date range
// @Tags analytics
// @Accept json
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} service.AnalyticsSummary "Aggregated research activity"
// @Failure 400 {object} ErrorResponse "Malformed date filter"
// @Failure 422 {object} ErrorResponse "Inverted date range or no data to aggregate"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.Summary(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientData) || errors.Is(err, apperrors.ErrInvalidDateRange) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
