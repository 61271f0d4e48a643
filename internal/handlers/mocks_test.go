package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/condomaster/api/internal/config"
	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/middleware"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/services"
)

// setupTestRouter creates a test router with the request middleware
// applied and hands the /api/v1 group to the caller for route
// registration.
func setupTestRouter(register func(v1 *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	log := logger.New("test")
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	v1 := router.Group("/api/v1")
	register(v1)

	return router
}

// Mock services used by the handler tests. Handlers are exercised
// through a real gin router; only the service layer is substituted.

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(ctx context.Context, cfg config.AuthConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

type MockHouseService struct {
	mock.Mock
}

func (m *MockHouseService) ListHouses(ctx context.Context) ([]models.House, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.House), args.Error(1)
}

func (m *MockHouseService) GetHouse(ctx context.Context, id models.EntityID) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseService) UpdateHouse(ctx context.Context, house *models.House) (*models.House, error) {
	args := m.Called(ctx, house)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) ListFees(ctx context.Context) ([]models.FeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeeConfig), args.Error(1)
}

func (m *MockFeeService) GetFee(ctx context.Context, id models.EntityID) (*models.FeeConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockFeeService) CreateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error) {
	args := m.Called(ctx, fee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockFeeService) UpdateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error) {
	args := m.Called(ctx, fee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockFeeService) DeleteFee(ctx context.Context, id models.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentService) ListHousePayments(ctx context.Context, houseID models.EntityID) ([]models.Payment, error) {
	args := m.Called(ctx, houseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id models.EntityID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPaymentByVoucher(ctx context.Context, voucherID string) (*models.Payment, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) RegisterPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) VoidPayment(ctx context.Context, id models.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentService) StatementForHouse(ctx context.Context, houseID models.EntityID, year, month int) (*services.HouseStatement, error) {
	args := m.Called(ctx, houseID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.HouseStatement), args.Error(1)
}

func (m *MockPaymentService) CollectionForm(ctx context.Context, year, month int) (*services.CollectionForm, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CollectionForm), args.Error(1)
}

type MockMeetingService struct {
	mock.Mock
}

func (m *MockMeetingService) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meeting), args.Error(1)
}

func (m *MockMeetingService) GetMeeting(ctx context.Context, id models.EntityID) (*models.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingService) CreateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error) {
	args := m.Called(ctx, meeting, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingService) UpdateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error) {
	args := m.Called(ctx, meeting, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingService) DeleteMeeting(ctx context.Context, id models.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingService) MeetingStats(ctx context.Context, id models.EntityID) (*models.MeetingStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MeetingStats), args.Error(1)
}

func (m *MockMeetingService) MeetingFine(ctx context.Context, meetingID models.EntityID) (*models.FeeConfig, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfig), args.Error(1)
}

func (m *MockMeetingService) GenerateFines(ctx context.Context, meetingID models.EntityID, amount int) (*services.FineGenerationResult, error) {
	args := m.Called(ctx, meetingID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FineGenerationResult), args.Error(1)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseService) ListPeriodExpenses(ctx context.Context, year, month int) ([]models.Expense, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	args := m.Called(ctx, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, id models.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseService) MonthlySummary(ctx context.Context, year, month int) (*models.ExpenseSummary, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExpenseSummary), args.Error(1)
}

type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) GetRoster(ctx context.Context, startDate string) (*models.ShiftSchedule, error) {
	args := m.Called(ctx, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSchedule), args.Error(1)
}

func (m *MockShiftService) SaveRoster(ctx context.Context, schedule *models.ShiftSchedule) (*models.ShiftSchedule, error) {
	args := m.Called(ctx, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShiftSchedule), args.Error(1)
}

func (m *MockShiftService) WeeklyHours(ctx context.Context, startDate string) ([]models.WeeklyTotal, error) {
	args := m.Called(ctx, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WeeklyTotal), args.Error(1)
}

type MockPersonnelService struct {
	mock.Mock
}

func (m *MockPersonnelService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockPersonnelService) GetEmployee(ctx context.Context, id models.EntityID) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockPersonnelService) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockPersonnelService) UpdateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockPersonnelService) DeleteEmployee(ctx context.Context, id models.EntityID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPersonnelService) Payroll(ctx context.Context, id models.EntityID) (*models.Payroll, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payroll), args.Error(1)
}

func (m *MockPersonnelService) VacationStats(ctx context.Context, id models.EntityID, asOf time.Time) (*models.VacationStats, error) {
	args := m.Called(ctx, id, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VacationStats), args.Error(1)
}

func (m *MockPersonnelService) ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VacationRequest), args.Error(1)
}

func (m *MockPersonnelService) CreateVacation(ctx context.Context, req *models.VacationRequest, actor string) (*models.VacationRequest, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VacationRequest), args.Error(1)
}

func (m *MockPersonnelService) SetVacationStatus(ctx context.Context, employeeID, id models.EntityID, status, actor string) error {
	args := m.Called(ctx, employeeID, id, status, actor)
	return args.Error(0)
}

func (m *MockPersonnelService) DeleteVacation(ctx context.Context, employeeID, id models.EntityID, actor string) error {
	args := m.Called(ctx, employeeID, id, actor)
	return args.Error(0)
}

func (m *MockPersonnelService) ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MedicalLeave), args.Error(1)
}

func (m *MockPersonnelService) CreateLeave(ctx context.Context, leave *models.MedicalLeave, actor string) (*models.MedicalLeave, error) {
	args := m.Called(ctx, leave, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MedicalLeave), args.Error(1)
}

func (m *MockPersonnelService) DeleteLeave(ctx context.Context, employeeID, id models.EntityID, actor string) error {
	args := m.Called(ctx, employeeID, id, actor)
	return args.Error(0)
}

func (m *MockPersonnelService) ListActionLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActionLog), args.Error(1)
}

// MockSender records outgoing receipt mail without touching Gmail.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendReceipt(ctx context.Context, to string, payment *models.Payment, house *models.House) error {
	args := m.Called(ctx, to, payment, house)
	return args.Error(0)
}
