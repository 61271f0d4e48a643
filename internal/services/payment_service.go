package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/ledger"
	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for the payment journal.
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidPayment    = errors.New("invalid payment")
	ErrBreakdownMismatch = errors.New("payment amount does not match breakdown total")
	ErrDuplicateVoucher  = errors.New("voucher folio already in use")
)

// StatementLine is one concept row of a house statement: what the fee
// charges for the period, what has been paid against it, and what
// remains owed.
type StatementLine struct {
	FeeID     models.EntityID `json:"feeId"`
	Name      string          `json:"name"`
	Expected  int             `json:"expected"`
	Paid      int             `json:"paid"`
	Remainder int             `json:"remainder"`
}

// HouseStatement is the full billing picture of one house for one period.
type HouseStatement struct {
	HouseID       models.EntityID `json:"houseId"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	Lines         []StatementLine `json:"lines"`
	TotalExpected int             `json:"totalExpected"`
	TotalPaid     int             `json:"totalPaid"`
	// Debt is the accumulated shortfall for the statement year through
	// the statement month.
	Debt int `json:"debt"`
}

// CollectionRow is one house's line on the monthly collection form.
type CollectionRow struct {
	HouseID   models.EntityID `json:"houseId"`
	Number    string          `json:"number"`
	OwnerName string          `json:"ownerName"`
	Expected  int             `json:"expected"`
	Paid      int             `json:"paid"`
	Debt      int             `json:"debt"`
}

// CollectionForm is the registry-wide collection sheet for one period.
type CollectionForm struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Rows  []CollectionRow `json:"rows"`
}

// PaymentService defines the interface for payment journal business logic.
type PaymentService interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListHousePayments(ctx context.Context, houseID models.EntityID) ([]models.Payment, error)

	// GetPayment retrieves one payment. Returns ErrPaymentNotFound.
	GetPayment(ctx context.Context, id models.EntityID) (*models.Payment, error)

	// GetPaymentByVoucher retrieves a payment by its printed folio.
	GetPaymentByVoucher(ctx context.Context, voucherID string) (*models.Payment, error)

	// RegisterPayment validates and stores a collection event, assigning
	// its id and voucher folio. The declared amount must equal the sum
	// of the breakdown lines exactly.
	RegisterPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)

	// VoidPayment removes a mistaken receipt from the journal.
	// Returns ErrPaymentNotFound.
	VoidPayment(ctx context.Context, id models.EntityID) error

	// StatementForHouse computes the per-concept billing statement of
	// one house for a period, plus the accumulated debt through it.
	StatementForHouse(ctx context.Context, houseID models.EntityID, year, month int) (*HouseStatement, error)

	// CollectionForm computes the registry-wide collection sheet for a
	// period: expected, paid and accumulated debt per house.
	CollectionForm(ctx context.Context, year, month int) (*CollectionForm, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	houses   repository.HouseRepository
	fees     repository.FeeRepository
	log      *logger.Logger
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	payments repository.PaymentRepository,
	houses repository.HouseRepository,
	fees repository.FeeRepository,
	log *logger.Logger,
) PaymentService {
	return &paymentService{
		payments: payments,
		houses:   houses,
		fees:     fees,
		log:      log,
	}
}

const folioCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const folioLength = 8

// newFolio generates the human-facing receipt number.
func newFolio() (string, error) {
	buf := make([]byte, folioLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate folio: %w", err)
	}
	for i, b := range buf {
		buf[i] = folioCharset[int(b)%len(folioCharset)]
	}
	return string(buf), nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		s.log.Error("Failed to list payments", err, nil)
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) ListHousePayments(ctx context.Context, houseID models.EntityID) ([]models.Payment, error) {
	payments, err := s.payments.ListByHouse(ctx, houseID)
	if err != nil {
		s.log.Error("Failed to list house payments", err, map[string]interface{}{
			"house_id": houseID,
		})
		return nil, fmt.Errorf("failed to list house payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id models.EntityID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *paymentService) GetPaymentByVoucher(ctx context.Context, voucherID string) (*models.Payment, error) {
	payment, err := s.payments.GetByVoucher(ctx, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment by voucher: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *paymentService) RegisterPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if payment.Month < 0 || payment.Month > 11 {
		return nil, fmt.Errorf("%w: month must be between 0 and 11", ErrInvalidPayment)
	}
	if len(payment.Breakdown) == 0 {
		return nil, fmt.Errorf("%w: breakdown is required", ErrInvalidPayment)
	}

	// The receipt must account for every peso. The breakdown is the
	// authoritative itemization; a mismatched header amount is rejected
	// rather than silently corrected.
	if total := payment.BreakdownTotal(); total != payment.Amount {
		return nil, fmt.Errorf("%w: declared %d, breakdown sums to %d",
			ErrBreakdownMismatch, payment.Amount, total)
	}

	house, err := s.houses.GetByID(ctx, payment.HouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query house: %w", err)
	}
	if house == nil {
		return nil, ErrHouseNotFound
	}

	payment.ID = models.EntityID(uuid.New().String())
	if payment.VoucherID == "" {
		folio, err := newFolio()
		if err != nil {
			return nil, err
		}
		payment.VoucherID = folio
	}

	// The folio is the printed receipt number; two receipts must never
	// share one.
	existing, err := s.payments.GetByVoucher(ctx, payment.VoucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment by voucher: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateVoucher, payment.VoucherID)
	}
	if payment.Date == "" {
		payment.Date = time.Now().Format("2006-01-02")
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		s.log.Error("Failed to register payment", err, map[string]interface{}{
			"house_id": payment.HouseID,
			"year":     payment.Year,
			"month":    payment.Month,
		})
		return nil, fmt.Errorf("failed to register payment: %w", err)
	}

	s.log.Info("Payment registered", map[string]interface{}{
		"payment_id": payment.ID,
		"house_id":   payment.HouseID,
		"amount":     payment.Amount,
		"voucher":    payment.VoucherID,
	})

	return payment, nil
}

func (s *paymentService) VoidPayment(ctx context.Context, id models.EntityID) error {
	err := s.payments.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPaymentNotFound
		}
		s.log.Error("Failed to void payment", err, map[string]interface{}{
			"payment_id": id,
		})
		return fmt.Errorf("failed to void payment: %w", err)
	}

	s.log.Info("Payment voided", map[string]interface{}{
		"payment_id": id,
	})

	return nil
}

func (s *paymentService) StatementForHouse(ctx context.Context, houseID models.EntityID, year, month int) (*HouseStatement, error) {
	house, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query house: %w", err)
	}
	if house == nil {
		return nil, ErrHouseNotFound
	}

	fees, err := s.fees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}

	payments, err := s.payments.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list house payments: %w", err)
	}

	statement := &HouseStatement{
		HouseID: houseID,
		Year:    year,
		Month:   month,
		Lines:   []StatementLine{},
	}

	for _, fee := range fees {
		if !ledger.Applicable(fee, *house, year, month) {
			continue
		}
		paid := ledger.AmountPaidForFee(houseID, year, month, fee.ID, payments)
		statement.Lines = append(statement.Lines, StatementLine{
			FeeID:     fee.ID,
			Name:      fee.Name,
			Expected:  fee.DefaultAmount,
			Paid:      paid,
			Remainder: ledger.PerConceptRemainder(*house, year, month, fee, payments),
		})
	}

	statement.TotalExpected = ledger.ExpectedAmount(*house, year, month, fees)
	statement.TotalPaid = ledger.AmountPaid(houseID, year, month, payments)
	statement.Debt = ledger.AccumulatedDebt(*house, year, fees, payments, year, month)

	return statement, nil
}

func (s *paymentService) CollectionForm(ctx context.Context, year, month int) (*CollectionForm, error) {
	houses, err := s.houses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}

	fees, err := s.fees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}

	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	form := &CollectionForm{
		Year:  year,
		Month: month,
		Rows:  make([]CollectionRow, 0, len(houses)),
	}

	for _, house := range houses {
		form.Rows = append(form.Rows, CollectionRow{
			HouseID:   house.ID,
			Number:    house.Number,
			OwnerName: house.OwnerName,
			Expected:  ledger.ExpectedAmount(house, year, month, fees),
			Paid:      ledger.AmountPaid(house.ID, year, month, payments),
			Debt:      ledger.AccumulatedDebt(house, year, fees, payments, year, month),
		})
	}

	return form, nil
}
