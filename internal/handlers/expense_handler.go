package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/pdf"
	"github.com/condomaster/api/internal/services"
)

// ExpenseHandler handles operational expense HTTP requests.
type ExpenseHandler struct {
	service services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler instance.
func NewExpenseHandler(service services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// ExpenseListResponse represents the response for expense list endpoints.
type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
	Count    int              `json:"count"`
}

// List handles GET /api/v1/expenses. With year and month query
// parameters the listing is restricted to one period.
func (h *ExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		expenses []models.Expense
		err      error
	)

	if c.Query("year") != "" {
		var req PeriodRequest
		if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
			apierrors.BadRequest(c, "Invalid query parameters", nil)
			return
		}
		expenses, err = h.service.ListPeriodExpenses(ctx, req.Year, req.Month)
	} else {
		expenses, err = h.service.ListExpenses(ctx)
	}
	if err != nil {
		if errors.Is(err, services.ErrInvalidExpense) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to list expenses", err)
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Expenses: expenses,
		Count:    len(expenses),
	})
}

// Create handles POST /api/v1/expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateExpense(c.Request.Context(), &expense)
	if err != nil {
		if errors.Is(err, services.ErrInvalidExpense) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to create expense", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Delete handles DELETE /api/v1/expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	err := h.service.DeleteExpense(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			apierrors.NotFound(c, "Expense not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete expense", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary handles GET /api/v1/expenses/summary?year=&month=.
func (h *ExpenseHandler) Summary(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	summary, err := h.service.MonthlySummary(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to compute expense summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Report handles GET /api/v1/expenses/report?year=&month=. Returns the
// monthly expense report as a PDF.
func (h *ExpenseHandler) Report(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	ctx := c.Request.Context()
	summary, err := h.service.MonthlySummary(ctx, req.Year, req.Month)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to compute expense summary", err)
		return
	}

	expenses, err := h.service.ListPeriodExpenses(ctx, req.Year, req.Month)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list period expenses", err)
		return
	}

	data, err := pdf.ExpenseReport(summary, expenses)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to render expense report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=gastos-%d-%02d.pdf", req.Year, req.Month+1))
	c.Data(http.StatusOK, "application/pdf", data)
}
