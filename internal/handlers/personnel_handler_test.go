package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "github.com/condomaster/api/internal/errors"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/services"
)

func setupPersonnelRouter(service services.PersonnelService) *gin.Engine {
	handler := NewPersonnelHandler(service)
	return setupTestRouter(func(v1 *gin.RouterGroup) {
		employees := v1.Group("/employees")
		{
			employees.GET("", handler.ListEmployees)
			employees.POST("", handler.CreateEmployee)
			employees.GET("/:id/payroll", handler.Payroll)
			employees.GET("/:id/payroll/slip", handler.PayrollSlip)
			employees.GET("/:id/vacation-stats", handler.VacationStats)
			employees.POST("/:id/vacations", handler.CreateVacation)
			employees.PUT("/:id/vacations/:vacationId/status", handler.SetVacationStatus)
		}
	})
}

func TestEmployeeCreate_InvalidRUT(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	mockService.On("CreateEmployee", mock.Anything, mock.AnythingOfType("*models.Employee")).
		Return(nil, services.ErrInvalidRUT)

	w := postJSON(t, router, "/api/v1/employees", gin.H{
		"name":      "Juan Pérez",
		"rut":       "12345678-0",
		"entryDate": "2023-01-15",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrBadRequest, response.Error.Code)
}

func TestPayrollEndpoint(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	mockService.On("Payroll", mock.Anything, models.EntityID("e1")).Return(&models.Payroll{
		GrossSalary:    500000,
		AFP:            57250,
		Fonasa:         35000,
		Cesantia:       3000,
		TotalDiscounts: 95250,
		Net:            404750,
	}, nil)

	w := get(t, router, "/api/v1/employees/e1/payroll")

	assert.Equal(t, http.StatusOK, w.Code)

	var payroll models.Payroll
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payroll))
	assert.Equal(t, 404750, payroll.Net)
}

func TestPayrollSlipEndpoint_PDF(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	employee := &models.Employee{ID: "e1", Name: "Juan Pérez", RUT: "12.345.678-5",
		EntryDate: "2023-01-15", Role: "conserje", GrossSalary: 500000}
	mockService.On("GetEmployee", mock.Anything, models.EntityID("e1")).Return(employee, nil)
	mockService.On("Payroll", mock.Anything, models.EntityID("e1")).Return(&models.Payroll{
		GrossSalary: 500000, AFP: 57250, Fonasa: 35000, Cesantia: 3000,
		TotalDiscounts: 95250, Net: 404750,
	}, nil)

	w := get(t, router, "/api/v1/employees/e1/payroll/slip?year=2024&month=3")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "liquidacion-e1-2024-04.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestVacationStatsEndpoint(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	mockService.On("VacationStats", mock.Anything, models.EntityID("e1"), mock.AnythingOfType("time.Time")).
		Return(&models.VacationStats{Earned: 17.5, Taken: 5, Available: 12.5}, nil)

	w := get(t, router, "/api/v1/employees/e1/vacation-stats")

	assert.Equal(t, http.StatusOK, w.Code)

	var stats models.VacationStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.InDelta(t, 12.5, stats.Available, 0.001)
}

func TestCreateVacationEndpoint(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	mockService.On("CreateVacation", mock.Anything, mock.MatchedBy(func(req *models.VacationRequest) bool {
		return req.EmployeeID == "e1" && req.Days == 5
	}), "").Return(&models.VacationRequest{
		ID: "v1", EmployeeID: "e1", StartDate: "2024-05-06", EndDate: "2024-05-10",
		Days: 5, Status: models.VacationPending,
	}, nil)

	w := postJSON(t, router, "/api/v1/employees/e1/vacations", gin.H{
		"startDate": "2024-05-06",
		"endDate":   "2024-05-10",
		"days":      5,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var vacation models.VacationRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vacation))
	assert.Equal(t, models.VacationPending, vacation.Status)
}

func TestSetVacationStatusEndpoint(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	mockService.On("SetVacationStatus", mock.Anything,
		models.EntityID("e1"), models.EntityID("v1"), models.VacationApproved, "").Return(nil)

	payload := []byte(`{"status":"approved"}`)
	req, err := http.NewRequest(http.MethodPut, "/api/v1/employees/e1/vacations/v1/status", strings.NewReader(string(payload)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestSetVacationStatusEndpoint_UnknownStatus(t *testing.T) {
	mockService := new(MockPersonnelService)
	router := setupPersonnelRouter(mockService)

	req, err := http.NewRequest(http.MethodPut, "/api/v1/employees/e1/vacations/v1/status",
		strings.NewReader(`{"status":"maybe"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SetVacationStatus")
}
