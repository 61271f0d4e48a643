package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// PaymentRepository defines the interface for payment journal data access.
// Payments are never edited: a mistaken receipt is voided by deletion
// and registered again.
type PaymentRepository interface {
	// List returns every payment, newest first.
	List(ctx context.Context) ([]models.Payment, error)

	// ListByHouse returns every payment recorded for one house.
	ListByHouse(ctx context.Context, houseID models.EntityID) ([]models.Payment, error)

	// GetByID returns a single payment. Returns nil, nil if it does not exist.
	GetByID(ctx context.Context, id models.EntityID) (*models.Payment, error)

	// GetByVoucher returns the payment carrying the given folio.
	// Returns nil, nil if it does not exist.
	GetByVoucher(ctx context.Context, voucherID string) (*models.Payment, error)

	Create(ctx context.Context, payment *models.Payment) error

	// Delete voids a payment. Returns pgx.ErrNoRows if it does not exist.
	Delete(ctx context.Context, id models.EntityID) error
}

type paymentRepository struct {
	db *database.Database
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *database.Database) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `
	id,
	house_id,
	year,
	month,
	amount,
	breakdown,
	payer_name,
	paid_on,
	receiver,
	voucher_id,
	type`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var payment models.Payment
	var id, houseID string
	var breakdownJSON []byte

	err := row.Scan(
		&id,
		&houseID,
		&payment.Year,
		&payment.Month,
		&payment.Amount,
		&breakdownJSON,
		&payment.PayerName,
		&payment.Date,
		&payment.Receiver,
		&payment.VoucherID,
		&payment.Type,
	)
	if err != nil {
		return nil, err
	}

	payment.ID = models.EntityID(id)
	payment.HouseID = models.EntityID(houseID)

	if err := json.Unmarshal(breakdownJSON, &payment.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to parse breakdown for payment %s: %w", id, err)
	}

	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments ORDER BY year DESC, month DESC, paid_on DESC`
	return r.queryPayments(ctx, query)
}

func (r *paymentRepository) ListByHouse(ctx context.Context, houseID models.EntityID) ([]models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE house_id = $1 ORDER BY year, month, paid_on`
	return r.queryPayments(ctx, query, string(houseID))
}

func (r *paymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.Pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payment %s: %w", id, err)
	}

	return payment, nil
}

func (r *paymentRepository) GetByVoucher(ctx context.Context, voucherID string) (*models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE voucher_id = $1`

	payment, err := scanPayment(r.db.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payment by voucher %s: %w", voucherID, err)
	}

	return payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	breakdownJSON, err := json.Marshal(payment.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode breakdown for payment %s: %w", payment.ID, err)
	}

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		string(payment.ID),
		string(payment.HouseID),
		payment.Year,
		payment.Month,
		payment.Amount,
		breakdownJSON,
		payment.PayerName,
		payment.Date,
		payment.Receiver,
		payment.VoucherID,
		payment.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.ID, err)
	}

	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
