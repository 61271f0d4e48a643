package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/condomaster/api/internal/models"
)

// Mock repositories shared by the service tests.

type MockHouseRepository struct {
	mock.Mock
}

func (m *MockHouseRepository) List(ctx context.Context) ([]models.House, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.House), args.Error(1)
}

func (m *MockHouseRepository) GetByID(ctx context.Context, id models.EntityID) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseRepository) Update(ctx context.Context, house *models.House) error {
	return m.Called(ctx, house).Error(0)
}

type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) List(ctx context.Context) ([]models.FeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeeConfig), args.Error(1)
}

func (m *MockFeeRepository) GetByID(ctx context.Context, id models.EntityID) (*models.FeeConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockFeeRepository) GetByName(ctx context.Context, name string) (*models.FeeConfig, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockFeeRepository) Create(ctx context.Context, fee *models.FeeConfig) error {
	return m.Called(ctx, fee).Error(0)
}

func (m *MockFeeRepository) Update(ctx context.Context, fee *models.FeeConfig) error {
	return m.Called(ctx, fee).Error(0)
}

func (m *MockFeeRepository) Delete(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByHouse(ctx context.Context, houseID models.EntityID) ([]models.Payment, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByVoucher(ctx context.Context, voucherID string) (*models.Payment, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) List(ctx context.Context) ([]models.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListByPeriod(ctx context.Context, year, month int) ([]models.Expense, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAbsenceRepository struct {
	mock.Mock
}

func (m *MockAbsenceRepository) ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VacationRequest), args.Error(1)
}

func (m *MockAbsenceRepository) CreateVacation(ctx context.Context, req *models.VacationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAbsenceRepository) UpdateVacationStatus(ctx context.Context, id models.EntityID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockAbsenceRepository) DeleteVacation(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAbsenceRepository) ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MedicalLeave), args.Error(1)
}

func (m *MockAbsenceRepository) CreateLeave(ctx context.Context, leave *models.MedicalLeave) error {
	return m.Called(ctx, leave).Error(0)
}

func (m *MockAbsenceRepository) DeleteLeave(ctx context.Context, id models.EntityID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAbsenceRepository) ListLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActionLog), args.Error(1)
}

func (m *MockAbsenceRepository) CreateLog(ctx context.Context, log *models.ActionLog) error {
	return m.Called(ctx, log).Error(0)
}

type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) List(ctx context.Context) ([]models.ShiftSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShiftSchedule), args.Error(1)
}

func (m *MockShiftRepository) GetByStartDate(ctx context.Context, startDate string) (*models.ShiftSchedule, error) {
	args := m.Called(ctx, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSchedule), args.Error(1)
}

func (m *MockShiftRepository) Upsert(ctx context.Context, schedule *models.ShiftSchedule) error {
	return m.Called(ctx, schedule).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id models.EntityID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id models.EntityID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
