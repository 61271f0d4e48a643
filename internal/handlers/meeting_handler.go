package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/middleware"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/pdf"
	"github.com/condomaster/api/internal/services"
)

// MeetingHandler handles assembly HTTP requests.
type MeetingHandler struct {
	meetings services.MeetingService
	houses   services.HouseService
}

// NewMeetingHandler creates a new MeetingHandler instance.
func NewMeetingHandler(meetings services.MeetingService, houses services.HouseService) *MeetingHandler {
	return &MeetingHandler{
		meetings: meetings,
		houses:   houses,
	}
}

// MeetingListResponse represents the response for the meeting list endpoint.
type MeetingListResponse struct {
	Meetings []models.Meeting `json:"meetings"`
	Count    int              `json:"count"`
}

// GenerateFinesRequest represents the fine generation body.
type GenerateFinesRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// actor resolves the authenticated administrator for audit stamps.
func actor(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

// List handles GET /api/v1/meetings.
func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.meetings.ListMeetings(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list meetings", err)
		return
	}

	c.JSON(http.StatusOK, MeetingListResponse{
		Meetings: meetings,
		Count:    len(meetings),
	})
}

// Create handles POST /api/v1/meetings.
func (h *MeetingHandler) Create(c *gin.Context) {
	var meeting models.Meeting
	if err := c.ShouldBindJSON(&meeting); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	created, err := h.meetings.CreateMeeting(c.Request.Context(), &meeting, actor(c))
	if err != nil {
		if errors.Is(err, services.ErrInvalidMeeting) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to create meeting", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/meetings/:id.
func (h *MeetingHandler) Update(c *gin.Context) {
	var meeting models.Meeting
	if err := c.ShouldBindJSON(&meeting); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	meeting.ID = models.EntityID(c.Param("id"))

	updated, err := h.meetings.UpdateMeeting(c.Request.Context(), &meeting, actor(c))
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			apierrors.NotFound(c, "Meeting not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update meeting", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/meetings/:id.
func (h *MeetingHandler) Delete(c *gin.Context) {
	err := h.meetings.DeleteMeeting(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			apierrors.NotFound(c, "Meeting not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete meeting", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/v1/meetings/:id/stats.
func (h *MeetingHandler) Stats(c *gin.Context) {
	stats, err := h.meetings.MeetingStats(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			apierrors.NotFound(c, "Meeting not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to compute meeting stats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GenerateFines handles POST /api/v1/meetings/:id/fines.
func (h *MeetingHandler) GenerateFines(c *gin.Context) {
	var req GenerateFinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	result, err := h.meetings.GenerateFines(c.Request.Context(), models.EntityID(c.Param("id")), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMeetingNotFound):
			apierrors.NotFound(c, "Meeting not found")
		case errors.Is(err, services.ErrInvalidFee), errors.Is(err, services.ErrInvalidMeeting):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to generate fines", err)
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// FineSlips handles GET /api/v1/meetings/:id/fine-slips. Renders one
// notification slip per fined house as a PDF.
func (h *MeetingHandler) FineSlips(c *gin.Context) {
	ctx := c.Request.Context()
	meetingID := models.EntityID(c.Param("id"))

	meeting, err := h.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, services.ErrMeetingNotFound) {
			apierrors.NotFound(c, "Meeting not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query meeting", err)
		return
	}

	fee, err := h.meetings.MeetingFine(ctx, meetingID)
	if err != nil {
		if errors.Is(err, services.ErrFeeNotFound) {
			apierrors.NotFound(c, "No fine has been generated for this meeting")
			return
		}
		apierrors.InternalServerError(c, "Failed to query fine", err)
		return
	}

	houses, err := h.houses.ListHouses(ctx)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list houses", err)
		return
	}

	fined := make([]models.House, 0, len(fee.TargetHouseIDs))
	for _, house := range houses {
		for _, id := range fee.TargetHouseIDs {
			if house.ID == id {
				fined = append(fined, house)
				break
			}
		}
	}

	data, err := pdf.FineSlips(meeting, fee, fined)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to render fine slips", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=multas.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
