package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/services"
)

// HouseHandler handles house registry HTTP requests.
type HouseHandler struct {
	service services.HouseService
}

// NewHouseHandler creates a new HouseHandler instance.
func NewHouseHandler(service services.HouseService) *HouseHandler {
	return &HouseHandler{service: service}
}

// HouseListResponse represents the response for the house list endpoint.
type HouseListResponse struct {
	Houses []models.House `json:"houses"`
	Count  int            `json:"count"`
}

// UpdateHouseRequest represents the editable fields of a house. The
// unit number comes from the seeded registry and cannot change.
type UpdateHouseRequest struct {
	OwnerName     string `json:"ownerName"`
	RUT           string `json:"rut"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	HasParking    bool   `json:"hasParking"`
	ResidentType  string `json:"residentType" binding:"omitempty,oneof=propietario arrendatario"`
	IsBoardMember bool   `json:"isBoardMember"`
}

// List handles GET /api/v1/houses.
func (h *HouseHandler) List(c *gin.Context) {
	houses, err := h.service.ListHouses(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list houses", err)
		return
	}

	c.JSON(http.StatusOK, HouseListResponse{
		Houses: houses,
		Count:  len(houses),
	})
}

// Get handles GET /api/v1/houses/:id.
func (h *HouseHandler) Get(c *gin.Context) {
	house, err := h.service.GetHouse(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			apierrors.NotFound(c, "House not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query house", err)
		return
	}

	c.JSON(http.StatusOK, house)
}

// Update handles PUT /api/v1/houses/:id.
func (h *HouseHandler) Update(c *gin.Context) {
	var req UpdateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	house := &models.House{
		ID:            models.EntityID(c.Param("id")),
		OwnerName:     req.OwnerName,
		RUT:           req.RUT,
		Phone:         req.Phone,
		Email:         req.Email,
		HasParking:    req.HasParking,
		ResidentType:  req.ResidentType,
		IsBoardMember: req.IsBoardMember,
	}

	updated, err := h.service.UpdateHouse(c.Request.Context(), house)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			apierrors.NotFound(c, "House not found")
			return
		}
		if errors.Is(err, services.ErrInvalidRUT) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to update house", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
