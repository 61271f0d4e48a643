package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/services"
)

// FeeHandler handles fee catalog HTTP requests.
type FeeHandler struct {
	service services.FeeService
}

// NewFeeHandler creates a new FeeHandler instance.
func NewFeeHandler(service services.FeeService) *FeeHandler {
	return &FeeHandler{service: service}
}

// FeeListResponse represents the response for the fee list endpoint.
type FeeListResponse struct {
	Fees  []models.FeeConfig `json:"fees"`
	Count int                `json:"count"`
}

// List handles GET /api/v1/fees.
func (h *FeeHandler) List(c *gin.Context) {
	fees, err := h.service.ListFees(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list fees", err)
		return
	}

	c.JSON(http.StatusOK, FeeListResponse{
		Fees:  fees,
		Count: len(fees),
	})
}

// Create handles POST /api/v1/fees.
func (h *FeeHandler) Create(c *gin.Context) {
	var fee models.FeeConfig
	if err := c.ShouldBindJSON(&fee); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateFee(c.Request.Context(), &fee)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFee) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		if errors.Is(err, services.ErrDuplicateFee) {
			apierrors.Conflict(c, err.Error())
			return
		}
		apierrors.InternalServerError(c, "Failed to create fee", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/fees/:id.
func (h *FeeHandler) Update(c *gin.Context) {
	var fee models.FeeConfig
	if err := c.ShouldBindJSON(&fee); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	fee.ID = models.EntityID(c.Param("id"))

	updated, err := h.service.UpdateFee(c.Request.Context(), &fee)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFee) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		if errors.Is(err, services.ErrFeeNotFound) {
			apierrors.NotFound(c, "Fee not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to update fee", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/fees/:id.
func (h *FeeHandler) Delete(c *gin.Context) {
	err := h.service.DeleteFee(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrFeeNotFound) {
			apierrors.NotFound(c, "Fee not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete fee", err)
		return
	}

	c.Status(http.StatusNoContent)
}
