package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
)

func newPaymentService(payments *MockPaymentRepository, houses *MockHouseRepository, fees *MockFeeRepository) PaymentService {
	return NewPaymentService(payments, houses, fees, logger.New("test"))
}

func TestRegisterPayment_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	mockHouses.On("GetByID", ctx, models.EntityID("12")).Return(&models.House{ID: "12", Number: "12"}, nil)
	mockPayments.On("GetByVoucher", ctx, mock.AnythingOfType("string")).Return(nil, nil)
	mockPayments.On("Create", ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	registered, err := service.RegisterPayment(ctx, &models.Payment{
		HouseID: "12",
		Year:    2024,
		Month:   3,
		Amount:  25000,
		Breakdown: []models.FeeBreakdown{
			{FeeID: "f1", Name: "Gasto Común", Amount: 25000},
		},
		PayerName: "María Soto",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Len(t, registered.VoucherID, 8, "voucher folio should be 8 characters")
	assert.NotEmpty(t, registered.Date, "payment date should default to today")
	mockPayments.AssertExpectations(t)
	mockHouses.AssertExpectations(t)
}

func TestRegisterPayment_BreakdownMismatch(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	registered, err := service.RegisterPayment(context.Background(), &models.Payment{
		HouseID: "12",
		Year:    2024,
		Month:   3,
		Amount:  30000,
		Breakdown: []models.FeeBreakdown{
			{FeeID: "f1", Name: "Gasto Común", Amount: 25000},
		},
	})

	assert.Nil(t, registered)
	assert.ErrorIs(t, err, ErrBreakdownMismatch)
	mockPayments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterPayment_Validation(t *testing.T) {
	tests := []struct {
		name    string
		payment models.Payment
	}{
		{
			name:    "zero amount",
			payment: models.Payment{HouseID: "12", Year: 2024, Month: 0},
		},
		{
			name:    "month out of range",
			payment: models.Payment{HouseID: "12", Year: 2024, Month: 12, Amount: 1000},
		},
		{
			name:    "missing breakdown",
			payment: models.Payment{HouseID: "12", Year: 2024, Month: 0, Amount: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPayments := new(MockPaymentRepository)
			mockHouses := new(MockHouseRepository)
			mockFees := new(MockFeeRepository)
			service := newPaymentService(mockPayments, mockHouses, mockFees)

			payment := tt.payment
			registered, err := service.RegisterPayment(context.Background(), &payment)

			assert.Nil(t, registered)
			assert.ErrorIs(t, err, ErrInvalidPayment)
			mockPayments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterPayment_HouseNotFound(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	mockHouses.On("GetByID", ctx, models.EntityID("999")).Return(nil, nil)

	registered, err := service.RegisterPayment(ctx, &models.Payment{
		HouseID: "999",
		Year:    2024,
		Month:   0,
		Amount:  1000,
		Breakdown: []models.FeeBreakdown{
			{FeeID: "f1", Name: "Gasto Común", Amount: 1000},
		},
	})

	assert.Nil(t, registered)
	assert.ErrorIs(t, err, ErrHouseNotFound)
	mockPayments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterPayment_DuplicateVoucher(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	mockHouses.On("GetByID", ctx, models.EntityID("12")).Return(&models.House{ID: "12", Number: "12"}, nil)
	mockPayments.On("GetByVoucher", ctx, "A1B2C3D4").Return(&models.Payment{ID: "p1", VoucherID: "A1B2C3D4"}, nil)

	registered, err := service.RegisterPayment(ctx, &models.Payment{
		HouseID: "12",
		Year:    2024,
		Month:   3,
		Amount:  25000,
		Breakdown: []models.FeeBreakdown{
			{FeeID: "f1", Name: "Gasto Común", Amount: 25000},
		},
		VoucherID: "A1B2C3D4",
	})

	assert.Nil(t, registered)
	assert.ErrorIs(t, err, ErrDuplicateVoucher)
	mockPayments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoidPayment_NotFound(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	mockPayments.On("Delete", ctx, models.EntityID("missing")).Return(pgx.ErrNoRows)

	err := service.VoidPayment(ctx, "missing")

	assert.ErrorIs(t, err, ErrPaymentNotFound)
	mockPayments.AssertExpectations(t)
}

func TestGetPaymentByVoucher_NotFound(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	mockPayments.On("GetByVoucher", ctx, "ZZZZZZZZ").Return(nil, nil)

	payment, err := service.GetPaymentByVoucher(ctx, "ZZZZZZZZ")

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	mockPayments.AssertExpectations(t)
}

func TestStatementForHouse(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	house := &models.House{ID: "10", Number: "10", HasParking: false}
	fees := []models.FeeConfig{
		{ID: "gc", Name: "Gasto Común", DefaultAmount: 25000, StartYear: 2024},
		{ID: "est", Name: "Estacionamiento", DefaultAmount: 5000, StartYear: 2024},
		{
			ID: "fine", Name: "Multa: Asamblea Abril", DefaultAmount: 10000,
			StartYear: 2024, Category: models.FeeCategoryFine,
			TargetHouseIDs: []models.EntityID{"11"},
		},
	}
	payments := []models.Payment{
		{
			ID: "p1", HouseID: "10", Year: 2024, Month: 3, Amount: 10000,
			Breakdown: []models.FeeBreakdown{{FeeID: "gc", Name: "Gasto Común", Amount: 10000}},
		},
	}

	mockHouses.On("GetByID", ctx, models.EntityID("10")).Return(house, nil)
	mockFees.On("List", ctx).Return(fees, nil)
	mockPayments.On("ListByHouse", ctx, models.EntityID("10")).Return(payments, nil)

	statement, err := service.StatementForHouse(ctx, "10", 2024, 3)

	require.NoError(t, err)
	// No parking slot and not on the fine's target list, so only the
	// common expense line remains.
	require.Len(t, statement.Lines, 1)
	assert.Equal(t, models.EntityID("gc"), statement.Lines[0].FeeID)
	assert.Equal(t, 25000, statement.Lines[0].Expected)
	assert.Equal(t, 10000, statement.Lines[0].Paid)
	assert.Equal(t, 15000, statement.Lines[0].Remainder)

	assert.Equal(t, 25000, statement.TotalExpected)
	assert.Equal(t, 10000, statement.TotalPaid)
	// January through March unpaid plus the April shortfall.
	assert.Equal(t, 3*25000+15000, statement.Debt)
}

func TestCollectionForm(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockHouses := new(MockHouseRepository)
	mockFees := new(MockFeeRepository)
	service := newPaymentService(mockPayments, mockHouses, mockFees)

	ctx := context.Background()
	houses := []models.House{
		{ID: "1", Number: "1", OwnerName: "María Soto"},
		{ID: "2", Number: "2", OwnerName: "Pedro Rojas"},
	}
	fees := []models.FeeConfig{
		{ID: "gc", Name: "Gasto Común", DefaultAmount: 25000, StartYear: 2024},
	}
	payments := []models.Payment{
		{
			ID: "p1", HouseID: "1", Year: 2024, Month: 0, Amount: 25000,
			Breakdown: []models.FeeBreakdown{{FeeID: "gc", Name: "Gasto Común", Amount: 25000}},
		},
	}

	mockHouses.On("List", ctx).Return(houses, nil)
	mockFees.On("List", ctx).Return(fees, nil)
	mockPayments.On("List", ctx).Return(payments, nil)

	form, err := service.CollectionForm(ctx, 2024, 0)

	require.NoError(t, err)
	require.Len(t, form.Rows, 2)

	assert.Equal(t, "María Soto", form.Rows[0].OwnerName)
	assert.Equal(t, 25000, form.Rows[0].Expected)
	assert.Equal(t, 25000, form.Rows[0].Paid)
	assert.Equal(t, 0, form.Rows[0].Debt)

	assert.Equal(t, 25000, form.Rows[1].Expected)
	assert.Equal(t, 0, form.Rows[1].Paid)
	assert.Equal(t, 25000, form.Rows[1].Debt)
}

func TestNewFolio(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		folio, err := newFolio()
		require.NoError(t, err)
		require.Len(t, folio, folioLength)
		for _, c := range folio {
			assert.Contains(t, folioCharset, string(c))
		}
		seen[folio] = true
	}
	assert.Greater(t, len(seen), 1, "folios should not repeat constantly")
}
