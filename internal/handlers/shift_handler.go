package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/services"
)

// ShiftHandler handles HTTP requests for conserje shift rosters.
type ShiftHandler struct {
	service services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler instance.
func NewShiftHandler(service services.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// RosterRequest represents the query parameters selecting a roster period.
type RosterRequest struct {
	StartDate string `form:"startDate" binding:"required"`
}

// GetRoster handles GET /api/v1/shifts.
// An unsaved period returns an empty roster, not a 404.
func (h *ShiftHandler) GetRoster(c *gin.Context) {
	var req RosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	schedule, err := h.service.GetRoster(c.Request.Context(), req.StartDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSchedule) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to query roster", err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// SaveRoster handles PUT /api/v1/shifts.
func (h *ShiftHandler) SaveRoster(c *gin.Context) {
	var schedule models.ShiftSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	saved, err := h.service.SaveRoster(c.Request.Context(), &schedule)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSchedule) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to save roster", err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// WeeklyHours handles GET /api/v1/shifts/weekly-hours.
func (h *ShiftHandler) WeeklyHours(c *gin.Context) {
	var req RosterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	totals, err := h.service.WeeklyHours(c.Request.Context(), req.StartDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSchedule) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to compute weekly hours", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeks": totals, "count": len(totals)})
}
