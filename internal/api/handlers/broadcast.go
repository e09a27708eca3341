package handlers

import (
	"errors"
	"net/http"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// BroadcastHandler handles HTTP requests for schedule broadcasts
type BroadcastHandler struct {
	broadcastService service.BroadcastServiceInterface
}

// NewBroadcastHandler creates a new broadcast handler
func NewBroadcastHandler(broadcastService service.BroadcastServiceInterface) *BroadcastHandler {
	return &BroadcastHandler{
		broadcastService: broadcastService,
	}
}

// Broadcast handles POST /api/v1/broadcast
// @Summary Broadcast the upcoming schedule
// @Description Email the upcoming presentation schedule to department contacts and subscribers
// @Tags broadcast
// @Accept json
// @Produce json
// @Success 200 {object} service.BroadcastResult "Broadcast outcome with per-recipient failures"
// @Failure 422 {object} ErrorResponse "No recipients configured"
// @Failure 502 {object} ErrorResponse "Mail relay unreachable or rejected credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/broadcast [post]
func (h *BroadcastHandler) Broadcast(c *gin.Context) {
	result, err := h.broadcastService.Broadcast(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoRecipients) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrMailAuthFailure) ||
			errors.Is(err, apperrors.ErrMailCredentialsMissing) ||
			errors.Is(err, apperrors.ErrMailConnectionFailure) ||
			errors.Is(err, apperrors.ErrMailTimeout) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run broadcast"})
		return
	}

	c.JSON(http.StatusOK, result)
}
