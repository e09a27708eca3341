package handlers

import (
	"errors"
	"net/http"

	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubscriptionHandler handles HTTP requests for mailing list subscriptions
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionServiceInterface
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionService service.SubscriptionServiceInterface) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// CreateSubscription handles POST /api/v1/subscriptions
// @Summary Subscribe to schedule broadcasts
// @Description Add an email address to the schedule broadcast mailing list
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body service.CreateSubscriptionRequest true "Subscription data"
// @Success 201 {object} service.SubscriptionResponse "Subscribed successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 409 {object} ErrorResponse "Email already subscribed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req service.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscription, err := h.subscriptionService.Create(&req)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubscriptionExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, subscription)
}

// ListSubscriptions handles GET /api/v1/subscriptions
// @Summary List subscriptions
// @Description List all mailing list subscriptions
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 200 {object} service.SubscriptionListResponse "List of subscriptions"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subscriptions, err := h.subscriptionService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subscriptions"})
		return
	}

	c.JSON(http.StatusOK, subscriptions)
}

// DeleteSubscription handles DELETE /api/v1/subscriptions/:id
// @Summary Remove a subscription
// @Description Remove an email address from the broadcast mailing list
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID (UUID)"
// @Success 204 "Subscription removed successfully"
// @Failure 400 {object} ErrorResponse "Invalid subscription ID"
// @Failure 404 {object} ErrorResponse "Subscription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription ID"})
		return
	}

	if err := h.subscriptionService.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
