package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"research-portal-backend/internal/auth"
	apperrors "research-portal-backend/internal/errors"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PresentationHandler handles HTTP requests for presentation operations
type PresentationHandler struct {
	presentationService service.PresentationServiceInterface
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(presentationService service.PresentationServiceInterface) *PresentationHandler {
	return &PresentationHandler{
		presentationService: presentationService,
	}
}

// CreatePresentation handles POST /api/v1/presentations
// @Summary Book a presentation
// @Description Book a presentation slot for the authenticated coordinator's department
// @Tags presentations
// @Accept json
// @Produce json
// @Param presentation body service.CreatePresentationRequest true "Presentation booking data"
// @Success 201 {object} service.PresentationResponse "Presentation booked successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 404 {object} ErrorResponse "Department not found"
// @Failure 409 {object} ErrorResponse "Slot already booked"
// @Failure 422 {object} ErrorResponse "Booking violates a scheduling rule"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/presentations [post]
func (h *PresentationHandler) CreatePresentation(c *gin.Context) {
	departmentID, ok := auth.GetDepartmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "department session required"})
		return
	}
	actor, _ := auth.GetActor(c)

	var req service.CreatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	presentation, err := h.presentationService.Create(departmentID, actor, &req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, presentation)
}

// GetPresentation handles GET /api/v1/presentations/:id
// @Summary Get presentation by ID
// @Description Get a single presentation by its UUID
// @Tags presentations
// @Accept json
// @Produce json
// @Param id path string true "Presentation ID (UUID)"
// @Success 200 {object} service.PresentationResponse "Presentation data"
// @Failure 400 {object} ErrorResponse "Invalid presentation ID"
// @Failure 404 {object} ErrorResponse "Presentation not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/presentations/{id} [get]
func (h *PresentationHandler) GetPresentation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid presentation ID"})
		return
	}

	presentation, err := h.presentationService.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPresentationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get presentation"})
		return
	}

	c.JSON(http.StatusOK, presentation)
}

// UpdatePresentation handles PUT /api/v1/presentations/:id
// @Summary Update a presentation
// @Description Update a presentation owned by the authenticated coordinator's department
// @Tags presentations
// @Accept json
// @Produce json
// @Param id path string true "Presentation ID (UUID)"
// @Param presentation body service.UpdatePresentationRequest true "Presentation update data"
// @Success 200 {object} service.PresentationResponse "Presentation updated successfully"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Presentation belongs to another department"
// @Failure 404 {object} ErrorResponse "Presentation not found"
// @Failure 409 {object} ErrorResponse "Slot already booked"
// @Failure 422 {object} ErrorResponse "Update violates a scheduling rule"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/presentations/{id} [put]
func (h *PresentationHandler) UpdatePresentation(c *gin.Context) {
	departmentID, ok := auth.GetDepartmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "department session required"})
		return
	}
	actor, _ := auth.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid presentation ID"})
		return
	}

	var req service.UpdatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	presentation, err := h.presentationService.Update(id, departmentID, actor, &req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, presentation)
}

// DeletePresentation handles DELETE /api/v1/presentations/:id
// @Summary Cancel a presentation
// @Description Cancel a presentation owned by the authenticated coordinator's department
// @Tags presentations
// @Accept json
// @Produce json
// @Param id path string true "Presentation ID (UUID)"
// @Success 204 "Presentation cancelled successfully"
// @Failure 400 {object} ErrorResponse "Invalid presentation ID"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 403 {object} ErrorResponse "Presentation belongs to another department"
// @Failure 404 {object} ErrorResponse "Presentation not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/presentations/{id} [delete]
func (h *PresentationHandler) DeletePresentation(c *gin.Context) {
	departmentID, ok := auth.GetDepartmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "department session required"})
		return
	}
	actor, _ := auth.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid presentation ID"})
		return
	}

	if err := h.presentationService.Delete(id, departmentID, actor); err != nil {
		if errors.Is(err, apperrors.ErrPresentationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsAuthorization(err) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel presentation"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ListMyPresentations handles GET /api/v1/presentations/mine
// @Summary List own presentations
// @Description List presentations of the authenticated coordinator's department, optionally filtered by date range
// @Tags presentations
// @Accept json
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.PresentationListResponse "Paginated list of presentations"
// @Failure 400 {object} ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 422 {object} ErrorResponse "Date range is inverted"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/presentations/mine [get]
func (h *PresentationHandler) ListMyPresentations(c *gin.Context) {
	departmentID, ok := auth.GetDepartmentID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "department session required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	presentations, err := h.presentationService.ListByDepartment(
		departmentID, c.Query("date_from"), c.Query("date_to"), page, pageSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDateRange) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list presentations"})
		return
	}

	c.JSON(http.StatusOK, presentations)
}

// FreeSlots handles GET /api/v1/presentations/free-slots
// @Summary List free slots
// @Description List the time slots still open on a given date and venue
// @Tags presentations
// @Accept json
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param venue query string true "Venue name"
// @Success 200 {object} service.FreeSlotsResponse "Free slots for the date and venue"
// @Failure 400 {object} ErrorResponse "Missing or malformed date or venue"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/presentations/free-slots [get]
func (h *PresentationHandler) FreeSlots(c *gin.Context) {
	slots, err := h.presentationService.FreeSlots(c.Query("date"), c.Query("venue"))
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list free slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// respondBookingError maps booking errors shared by create and update to
// HTTP statuses. Conflicts carry the id of the presentation holding the slot.
func (h *PresentationHandler) respondBookingError(c *gin.Context, err error) {
	var conflictErr *apperrors.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "conflicting_presentation_id": conflictErr.ConflictingID})
		return
	}
	if errors.Is(err, apperrors.ErrInvalidTimeSlot) ||
		errors.Is(err, apperrors.ErrInvalidDuration) ||
		errors.Is(err, apperrors.ErrInvalidDesignation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, apperrors.ErrPresentationNotFound) || errors.Is(err, apperrors.ErrDepartmentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if apperrors.IsAuthorization(err) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	var validationErrs validator.ValidationErrors
	if apperrors.IsValidation(err) || errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save presentation"})
}
