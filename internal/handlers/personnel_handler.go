package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/pdf"
	"github.com/condomaster/api/internal/services"
)

// PersonnelHandler handles HR HTTP requests: employees, payroll,
// vacations, leaves and the audit trail.
type PersonnelHandler struct {
	service services.PersonnelService
}

// NewPersonnelHandler creates a new PersonnelHandler instance.
func NewPersonnelHandler(service services.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{service: service}
}

// EmployeeListResponse represents the response for the employee list endpoint.
type EmployeeListResponse struct {
	Employees []models.Employee `json:"employees"`
	Count     int               `json:"count"`
}

// VacationStatusRequest represents the vacation status change body.
type VacationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

func (h *PersonnelHandler) writeAbsenceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, "Employee not found")
	case errors.Is(err, services.ErrAbsenceNotFound):
		apierrors.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrInvalidAbsence):
		apierrors.BadRequest(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, "Failed to "+action, err)
	}
}

// ListEmployees handles GET /api/v1/employees.
func (h *PersonnelHandler) ListEmployees(c *gin.Context) {
	employees, err := h.service.ListEmployees(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list employees", err)
		return
	}

	c.JSON(http.StatusOK, EmployeeListResponse{
		Employees: employees,
		Count:     len(employees),
	})
}

// CreateEmployee handles POST /api/v1/employees.
func (h *PersonnelHandler) CreateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateEmployee(c.Request.Context(), &employee)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmployee) || errors.Is(err, services.ErrInvalidRUT) {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}
		apierrors.InternalServerError(c, "Failed to create employee", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateEmployee handles PUT /api/v1/employees/:id.
func (h *PersonnelHandler) UpdateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	employee.ID = models.EntityID(c.Param("id"))

	updated, err := h.service.UpdateEmployee(c.Request.Context(), &employee)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			apierrors.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrInvalidEmployee), errors.Is(err, services.ErrInvalidRUT):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to update employee", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEmployee handles DELETE /api/v1/employees/:id.
func (h *PersonnelHandler) DeleteEmployee(c *gin.Context) {
	err := h.service.DeleteEmployee(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			apierrors.NotFound(c, "Employee not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete employee", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Payroll handles GET /api/v1/employees/:id/payroll.
func (h *PersonnelHandler) Payroll(c *gin.Context) {
	payroll, err := h.service.Payroll(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			apierrors.NotFound(c, "Employee not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to compute payroll", err)
		return
	}

	c.JSON(http.StatusOK, payroll)
}

// PayrollSlip handles GET /api/v1/employees/:id/payroll/slip?year=&month=.
// Returns the salary settlement as a PDF.
func (h *PersonnelHandler) PayrollSlip(c *gin.Context) {
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
	id := models.EntityID(c.Param("id"))

	employee, err := h.service.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			apierrors.NotFound(c, "Employee not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to query employee", err)
		return
	}

	payroll, err := h.service.Payroll(ctx, id)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to compute payroll", err)
		return
	}

	data, err := pdf.PayrollSlip(employee, payroll, req.Year, req.Month)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to render payroll slip", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=liquidacion-%s-%d-%02d.pdf", id, req.Year, req.Month+1))
	c.Data(http.StatusOK, "application/pdf", data)
}

// VacationStats handles GET /api/v1/employees/:id/vacation-stats.
func (h *PersonnelHandler) VacationStats(c *gin.Context) {
	stats, err := h.service.VacationStats(c.Request.Context(), models.EntityID(c.Param("id")), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			apierrors.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrInvalidEmployee):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to compute vacation stats", err)
		}
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListVacations handles GET /api/v1/employees/:id/vacations.
func (h *PersonnelHandler) ListVacations(c *gin.Context) {
	vacations, err := h.service.ListVacations(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		h.writeAbsenceError(c, err, "list vacations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vacations": vacations, "count": len(vacations)})
}

// CreateVacation handles POST /api/v1/employees/:id/vacations.
func (h *PersonnelHandler) CreateVacation(c *gin.Context) {
	var req models.VacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	req.EmployeeID = models.EntityID(c.Param("id"))

	created, err := h.service.CreateVacation(c.Request.Context(), &req, actor(c))
	if err != nil {
		h.writeAbsenceError(c, err, "create vacation request")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// SetVacationStatus handles PUT /api/v1/employees/:id/vacations/:vacationId/status.
func (h *PersonnelHandler) SetVacationStatus(c *gin.Context) {
	var req VacationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	err := h.service.SetVacationStatus(c.Request.Context(),
		models.EntityID(c.Param("id")), models.EntityID(c.Param("vacationId")), req.Status, actor(c))
	if err != nil {
		h.writeAbsenceError(c, err, "update vacation status")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteVacation handles DELETE /api/v1/employees/:id/vacations/:vacationId.
func (h *PersonnelHandler) DeleteVacation(c *gin.Context) {
	err := h.service.DeleteVacation(c.Request.Context(),
		models.EntityID(c.Param("id")), models.EntityID(c.Param("vacationId")), actor(c))
	if err != nil {
		h.writeAbsenceError(c, err, "delete vacation request")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLeaves handles GET /api/v1/employees/:id/leaves.
func (h *PersonnelHandler) ListLeaves(c *gin.Context) {
	leaves, err := h.service.ListLeaves(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		h.writeAbsenceError(c, err, "list leaves")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaves": leaves, "count": len(leaves)})
}

// CreateLeave handles POST /api/v1/employees/:id/leaves.
func (h *PersonnelHandler) CreateLeave(c *gin.Context) {
	var leave models.MedicalLeave
	if err := c.ShouldBindJSON(&leave); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	leave.EmployeeID = models.EntityID(c.Param("id"))

	created, err := h.service.CreateLeave(c.Request.Context(), &leave, actor(c))
	if err != nil {
		h.writeAbsenceError(c, err, "create leave")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteLeave handles DELETE /api/v1/employees/:id/leaves/:leaveId.
func (h *PersonnelHandler) DeleteLeave(c *gin.Context) {
	err := h.service.DeleteLeave(c.Request.Context(),
		models.EntityID(c.Param("id")), models.EntityID(c.Param("leaveId")), actor(c))
	if err != nil {
		h.writeAbsenceError(c, err, "delete leave")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLogs handles GET /api/v1/employees/:id/logs.
func (h *PersonnelHandler) ListLogs(c *gin.Context) {
	logs, err := h.service.ListActionLogs(c.Request.Context(), models.EntityID(c.Param("id")))
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list action logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
