package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for HR management.
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidEmployee  = errors.New("invalid employee")
	ErrInvalidAbsence   = errors.New("invalid absence record")
	ErrAbsenceNotFound  = errors.New("absence record not found")
)

// VacationDaysPerMonth is the legal accrual rate for a full month of tenure.
const VacationDaysPerMonth = 1.25

// PersonnelService defines the interface for HR business logic:
// employee records, payroll, vacations, leaves and the audit trail.
type PersonnelService interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id models.EntityID) (*models.Employee, error)
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id models.EntityID) error

	// Payroll computes the deduction sheet from the employee's gross
	// salary and percentage rates, rounded to whole pesos.
	Payroll(ctx context.Context, id models.EntityID) (*models.Payroll, error)

	// VacationStats reports accrued, taken and available vacation days
	// as of the given date.
	VacationStats(ctx context.Context, id models.EntityID, asOf time.Time) (*models.VacationStats, error)

	ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error)
	CreateVacation(ctx context.Context, req *models.VacationRequest, actor string) (*models.VacationRequest, error)
	SetVacationStatus(ctx context.Context, employeeID, id models.EntityID, status, actor string) error
	DeleteVacation(ctx context.Context, employeeID, id models.EntityID, actor string) error

	ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error)
	CreateLeave(ctx context.Context, leave *models.MedicalLeave, actor string) (*models.MedicalLeave, error)
	DeleteLeave(ctx context.Context, employeeID, id models.EntityID, actor string) error

	ListActionLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error)
}

type personnelService struct {
	employees repository.EmployeeRepository
	absences  repository.AbsenceRepository
	log       *logger.Logger
}

// NewPersonnelService creates a new instance of PersonnelService.
func NewPersonnelService(
	employees repository.EmployeeRepository,
	absences repository.AbsenceRepository,
	log *logger.Logger,
) PersonnelService {
	return &personnelService{
		employees: employees,
		absences:  absences,
		log:       log,
	}
}

func (s *personnelService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		s.log.Error("Failed to list employees", err, nil)
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *personnelService) GetEmployee(ctx context.Context, id models.EntityID) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func validateEmployee(employee *models.Employee) error {
	if employee.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEmployee)
	}
	if employee.RUT != "" && !models.ValidRUT(employee.RUT) {
		return fmt.Errorf("%w: %s", ErrInvalidRUT, employee.RUT)
	}
	if employee.GrossSalary < 0 {
		return fmt.Errorf("%w: gross salary must be non-negative", ErrInvalidEmployee)
	}
	for _, pct := range []float64{employee.AFPPercentage, employee.FonasaPercentage, employee.CesantiaPercentage} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: deduction percentages must be between 0 and 100", ErrInvalidEmployee)
		}
	}
	return nil
}

func (s *personnelService) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	if err := validateEmployee(employee); err != nil {
		return nil, err
	}
	if employee.RUT != "" {
		employee.RUT = models.FormatRUT(employee.RUT)
	}

	employee.ID = models.EntityID(uuid.New().String())

	if err := s.employees.Create(ctx, employee); err != nil {
		s.log.Error("Failed to create employee", err, map[string]interface{}{
			"name": employee.Name,
		})
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.log.Info("Employee created", map[string]interface{}{
		"employee_id": employee.ID,
		"name":        employee.Name,
	})

	return employee, nil
}

func (s *personnelService) UpdateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	if _, err := s.GetEmployee(ctx, employee.ID); err != nil {
		return nil, err
	}
	if err := validateEmployee(employee); err != nil {
		return nil, err
	}
	if employee.RUT != "" {
		employee.RUT = models.FormatRUT(employee.RUT)
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		s.log.Error("Failed to update employee", err, map[string]interface{}{
			"employee_id": employee.ID,
		})
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.log.Info("Employee updated", map[string]interface{}{
		"employee_id": employee.ID,
	})

	return employee, nil
}

func (s *personnelService) DeleteEmployee(ctx context.Context, id models.EntityID) error {
	if _, err := s.GetEmployee(ctx, id); err != nil {
		return err
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete employee", err, map[string]interface{}{
			"employee_id": id,
		})
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.log.Info("Employee deleted", map[string]interface{}{
		"employee_id": id,
	})

	return nil
}

// ComputePayroll builds the deduction sheet for an employee. Each
// deduction is gross * rate / 100, rounded to the nearest peso; the net
// is the gross minus the sum of the rounded deductions.
func ComputePayroll(employee *models.Employee) *models.Payroll {
	deduction := func(pct float64) int {
		return int(math.Round(float64(employee.GrossSalary) * pct / 100))
	}

	payroll := &models.Payroll{
		GrossSalary: employee.GrossSalary,
		AFP:         deduction(employee.AFPPercentage),
		Fonasa:      deduction(employee.FonasaPercentage),
		Cesantia:    deduction(employee.CesantiaPercentage),
	}
	payroll.TotalDiscounts = payroll.AFP + payroll.Fonasa + payroll.Cesantia
	payroll.Net = payroll.GrossSalary - payroll.TotalDiscounts

	return payroll
}

func (s *personnelService) Payroll(ctx context.Context, id models.EntityID) (*models.Payroll, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return ComputePayroll(employee), nil
}

// monthsOfTenure counts full months between the entry date and asOf.
func monthsOfTenure(entry, asOf time.Time) int {
	if asOf.Before(entry) {
		return 0
	}
	months := (asOf.Year()-entry.Year())*12 + int(asOf.Month()) - int(entry.Month())
	if asOf.Day() < entry.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func (s *personnelService) VacationStats(ctx context.Context, id models.EntityID, asOf time.Time) (*models.VacationStats, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	entry, err := time.Parse("2006-01-02", employee.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry date %q is not ISO formatted", ErrInvalidEmployee, employee.EntryDate)
	}

	vacations, err := s.absences.ListVacations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}

	taken := 0
	for _, v := range vacations {
		if v.Status == models.VacationApproved {
			taken += v.Days
		}
	}

	earned := float64(monthsOfTenure(entry, asOf)) * VacationDaysPerMonth

	available := earned - float64(taken)
	if available < 0 {
		available = 0
	}

	return &models.VacationStats{
		Earned:    earned,
		Taken:     taken,
		Available: available,
	}, nil
}

func (s *personnelService) ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	vacations, err := s.absences.ListVacations(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	return vacations, nil
}

func (s *personnelService) CreateVacation(ctx context.Context, req *models.VacationRequest, actor string) (*models.VacationRequest, error) {
	if _, err := s.GetEmployee(ctx, req.EmployeeID); err != nil {
		return nil, err
	}
	if req.StartDate == "" || req.EndDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidAbsence)
	}
	if req.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidAbsence)
	}
	if req.Status == "" {
		req.Status = models.VacationPending
	}

	req.ID = models.EntityID(uuid.New().String())
	req.CreatedAt = time.Now()
	req.CreatedBy = actor

	if err := s.absences.CreateVacation(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create vacation request: %w", err)
	}

	s.audit(ctx, req.EmployeeID, models.ActionCreate, models.ModuleVacation,
		fmt.Sprintf("Vacaciones %s a %s (%d días)", req.StartDate, req.EndDate, req.Days), actor)

	return req, nil
}

func (s *personnelService) SetVacationStatus(ctx context.Context, employeeID, id models.EntityID, status, actor string) error {
	switch status {
	case models.VacationPending, models.VacationApproved, models.VacationRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAbsence, status)
	}

	if err := s.absences.UpdateVacationStatus(ctx, id, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAbsenceNotFound
		}
		return fmt.Errorf("failed to update vacation status: %w", err)
	}

	s.audit(ctx, employeeID, models.ActionUpdate, models.ModuleVacation,
		fmt.Sprintf("Solicitud %s marcada %s", id, status), actor)

	return nil
}

func (s *personnelService) DeleteVacation(ctx context.Context, employeeID, id models.EntityID, actor string) error {
	if err := s.absences.DeleteVacation(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAbsenceNotFound
		}
		return fmt.Errorf("failed to delete vacation request: %w", err)
	}

	s.audit(ctx, employeeID, models.ActionDelete, models.ModuleVacation,
		fmt.Sprintf("Solicitud %s eliminada", id), actor)

	return nil
}

func (s *personnelService) ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	leaves, err := s.absences.ListLeaves(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leaves, nil
}

func (s *personnelService) CreateLeave(ctx context.Context, leave *models.MedicalLeave, actor string) (*models.MedicalLeave, error) {
	if _, err := s.GetEmployee(ctx, leave.EmployeeID); err != nil {
		return nil, err
	}
	if leave.StartDate == "" || leave.EndDate == "" {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidAbsence)
	}
	if leave.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidAbsence)
	}
	switch leave.Type {
	case models.LeaveMedical, models.LeaveDeath, models.LeaveMarriage, models.LeaveAbsence:
	default:
		return nil, fmt.Errorf("%w: unknown leave type %q", ErrInvalidAbsence, leave.Type)
	}

	leave.ID = models.EntityID(uuid.New().String())
	leave.CreatedAt = time.Now()
	leave.CreatedBy = actor

	if err := s.absences.CreateLeave(ctx, leave); err != nil {
		return nil, fmt.Errorf("failed to create leave: %w", err)
	}

	s.audit(ctx, leave.EmployeeID, models.ActionCreate, models.ModuleLeave,
		fmt.Sprintf("Licencia %s: %s a %s (%d días)", leave.Type, leave.StartDate, leave.EndDate, leave.Days), actor)

	return leave, nil
}

func (s *personnelService) DeleteLeave(ctx context.Context, employeeID, id models.EntityID, actor string) error {
	if err := s.absences.DeleteLeave(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAbsenceNotFound
		}
		return fmt.Errorf("failed to delete leave: %w", err)
	}

	s.audit(ctx, employeeID, models.ActionDelete, models.ModuleLeave,
		fmt.Sprintf("Licencia %s eliminada", id), actor)

	return nil
}

func (s *personnelService) ListActionLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error) {
	logs, err := s.absences.ListLogs(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}
	return logs, nil
}

// audit records an HR mutation in the action log. Audit failures are
// logged but never fail the mutation they describe.
func (s *personnelService) audit(ctx context.Context, employeeID models.EntityID, action, module, description, actor string) {
	entry := &models.ActionLog{
		ID:          models.EntityID(uuid.New().String()),
		EmployeeID:  employeeID,
		Action:      action,
		Module:      module,
		Description: description,
		Timestamp:   time.Now(),
		User:        actor,
	}

	if err := s.absences.CreateLog(ctx, entry); err != nil {
		s.log.Error("Failed to write action log", err, map[string]interface{}{
			"employee_id": employeeID,
			"action":      action,
			"module":      module,
		})
	}
}
