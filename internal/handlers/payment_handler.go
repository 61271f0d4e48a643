package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/mailer"
	"github.com/condomaster/api/internal/middleware"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/pdf"
	"github.com/condomaster/api/internal/services"
)

// PaymentHandler handles payment journal HTTP requests.
type PaymentHandler struct {
	payments services.PaymentService
	houses   services.HouseService
	mail     mailer.Sender
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(payments services.PaymentService, houses services.HouseService, mail mailer.Sender) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		houses:   houses,
		mail:     mail,
	}
}

// PaymentListResponse represents the response for payment list endpoints.
type PaymentListResponse struct {
	Payments []models.Payment `json:"payments"`
	Count    int              `json:"count"`
}

// RegisterPaymentRequest represents the payment registration body. The
// optional mail fields request an emailed copy of the receipt.
type RegisterPaymentRequest struct {
	models.Payment
	SendEmail   bool   `json:"sendEmail"`
	TargetEmail string `json:"targetEmail" binding:"omitempty,email"`
}

// PeriodRequest represents the year/month query of period endpoints.
// Months are 0-indexed.
type PeriodRequest struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"min=0,max=11"`
}

// List handles GET /api/v1/payments. An optional houseId query
// restricts the journal to one house.
func (h *PaymentHandler) List(c *gin.Context) {
	var (
		payments []models.Payment
		err      error
	)

	if houseID := c.Query("houseId"); houseID != "" {
		payments, err = h.payments.ListHousePayments(c.Request.Context(), models.EntityID(houseID))
	} else {
		payments, err = h.payments.ListPayments(c.Request.Context())
	}
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list payments", err)
		return
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Payments: payments,
		Count:    len(payments),
	})
}

// Register handles POST /api/v1/payments.
func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	payment := req.Payment
	registered, err := h.payments.RegisterPayment(c.Request.Context(), &payment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayment),
			errors.Is(err, services.ErrBreakdownMismatch):
			apierrors.BadRequest(c, err.Error(), nil)
		case errors.Is(err, services.ErrDuplicateVoucher):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrHouseNotFound):
			apierrors.NotFound(c, "House not found")
		default:
			apierrors.InternalServerError(c, "Failed to register payment", err)
		}
		return
	}

	if req.SendEmail {
		h.emailReceipt(c, registered, req.TargetEmail)
	}

	c.JSON(http.StatusCreated, registered)
}

// emailReceipt dispatches the receipt copy. Mail problems are logged
// and never fail the registration that already happened.
func (h *PaymentHandler) emailReceipt(c *gin.Context, payment *models.Payment, targetEmail string) {
	log := middleware.GetLogger(c)

	house, err := h.houses.GetHouse(c.Request.Context(), payment.HouseID)
	if err != nil {
		if log != nil {
			log.Warn("Receipt email skipped, house lookup failed", map[string]interface{}{
				"house_id": payment.HouseID,
			})
		}
		return
	}

	to := targetEmail
	if to == "" {
		to = house.Email
	}
	if to == "" {
		if log != nil {
			log.Warn("Receipt email skipped, no recipient on file", map[string]interface{}{
				"house_id": payment.HouseID,
			})
		}
		return
	}

	if err := h.mail.SendReceipt(c.Request.Context(), to, payment, house); err != nil && log != nil {
		log.Error("Failed to email receipt", err, map[string]interface{}{
			"voucher": payment.VoucherID,
		})
	}
}

// Void handles DELETE /api/v1/payments/:id.
func (h *PaymentHandler) Void(c *gin.Context) {
	err := h.payments.VoidPayment(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			apierrors.NotFound(c, "Payment not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to void payment", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Voucher handles GET /api/v1/payments/:id/voucher. Returns the
// printable receipt as a PDF.
func (h *PaymentHandler) Voucher(c *gin.Context) {
	ctx := c.Request.Context()

	payment, err := h.payments.GetPayment(ctx, models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			apierrors.NotFound(c, "Payment not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query payment", err)
		return
	}

	house, err := h.houses.GetHouse(ctx, payment.HouseID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to query house", err)
		return
	}

	data, err := pdf.Voucher(payment, house)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to render voucher", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=comprobante-%s.pdf", payment.VoucherID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Statement handles GET /api/v1/houses/:id/statement?year=&month=.
func (h *PaymentHandler) Statement(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	statement, err := h.payments.StatementForHouse(c.Request.Context(), models.EntityID(c.Param("id")), req.Year, req.Month)
	if err != nil {
		if errors.Is(err, services.ErrHouseNotFound) {
			apierrors.NotFound(c, "House not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to compute statement", err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

// CollectionForm handles GET /api/v1/collection-form?year=&month=.
func (h *PaymentHandler) CollectionForm(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	form, err := h.payments.CollectionForm(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to compute collection form", err)
		return
	}

	c.JSON(http.StatusOK, form)
}
