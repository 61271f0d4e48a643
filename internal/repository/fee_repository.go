package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// FeeRepository defines the interface for fee catalog data access.
type FeeRepository interface {
	// List returns the whole fee catalog ordered by start of validity.
	List(ctx context.Context) ([]models.FeeConfig, error)

	// GetByID returns a single fee. Returns nil, nil if it does not exist.
	GetByID(ctx context.Context, id models.EntityID) (*models.FeeConfig, error)

	// GetByName returns the first fee with the exact given name.
	// Returns nil, nil if none exists. Used for fine idempotency checks.
	GetByName(ctx context.Context, name string) (*models.FeeConfig, error)

	Create(ctx context.Context, fee *models.FeeConfig) error
	Update(ctx context.Context, fee *models.FeeConfig) error
	Delete(ctx context.Context, id models.EntityID) error
}

type feeRepository struct {
	db *database.Database
}

// NewFeeRepository creates a new instance of FeeRepository.
func NewFeeRepository(db *database.Database) FeeRepository {
	return &feeRepository{db: db}
}

const feeColumns = `
	id,
	name,
	default_amount,
	start_year,
	start_month,
	end_year,
	end_month,
	applicable_months,
	category,
	target_house_ids`

func scanFee(row pgx.Row) (*models.FeeConfig, error) {
	var fee models.FeeConfig
	var id string
	var months []int32
	var targets []string

	err := row.Scan(
		&id,
		&fee.Name,
		&fee.DefaultAmount,
		&fee.StartYear,
		&fee.StartMonth,
		&fee.EndYear,
		&fee.EndMonth,
		&months,
		&fee.Category,
		&targets,
	)
	if err != nil {
		return nil, err
	}

	fee.ID = models.EntityID(id)
	if months != nil {
		fee.ApplicableMonths = make([]int, len(months))
		for i, m := range months {
			fee.ApplicableMonths[i] = int(m)
		}
	}
	// NULL and empty arrays must stay distinguishable: NULL means the fine
	// has no targeting, an empty list targets no house at all.
	if targets != nil {
		fee.TargetHouseIDs = make([]models.EntityID, len(targets))
		for i, t := range targets {
			fee.TargetHouseIDs[i] = models.EntityID(t)
		}
	}

	return &fee, nil
}

func feeParams(fee *models.FeeConfig) []interface{} {
	var months []int32
	if fee.ApplicableMonths != nil {
		months = make([]int32, len(fee.ApplicableMonths))
		for i, m := range fee.ApplicableMonths {
			months[i] = int32(m)
		}
	}

	var targets []string
	if fee.TargetHouseIDs != nil {
		targets = make([]string, len(fee.TargetHouseIDs))
		for i, t := range fee.TargetHouseIDs {
			targets[i] = string(t)
		}
	}

	return []interface{}{
		string(fee.ID),
		fee.Name,
		fee.DefaultAmount,
		fee.StartYear,
		fee.StartMonth,
		fee.EndYear,
		fee.EndMonth,
		months,
		fee.Category,
		targets,
	}
}

func (r *feeRepository) List(ctx context.Context) ([]models.FeeConfig, error) {
	query := `SELECT` + feeColumns + ` FROM fee_configs ORDER BY start_year, start_month, name`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee configs: %w", err)
	}
	defer rows.Close()

	fees := []models.FeeConfig{}
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee config row: %w", err)
		}
		fees = append(fees, *fee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee config rows: %w", err)
	}

	return fees, nil
}

func (r *feeRepository) GetByID(ctx context.Context, id models.EntityID) (*models.FeeConfig, error) {
	query := `SELECT` + feeColumns + ` FROM fee_configs WHERE id = $1`

	fee, err := scanFee(r.db.Pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query fee config %s: %w", id, err)
	}

	return fee, nil
}

func (r *feeRepository) GetByName(ctx context.Context, name string) (*models.FeeConfig, error) {
	query := `SELECT` + feeColumns + ` FROM fee_configs WHERE name = $1 LIMIT 1`

	fee, err := scanFee(r.db.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query fee config by name %q: %w", name, err)
	}

	return fee, nil
}

func (r *feeRepository) Create(ctx context.Context, fee *models.FeeConfig) error {
	query := `
		INSERT INTO fee_configs (` + feeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := r.db.Pool.Exec(ctx, query, feeParams(fee)...); err != nil {
		return fmt.Errorf("failed to insert fee config %q: %w", fee.Name, err)
	}

	return nil
}

func (r *feeRepository) Update(ctx context.Context, fee *models.FeeConfig) error {
	query := `
		UPDATE fee_configs
		SET name = $2,
			default_amount = $3,
			start_year = $4,
			start_month = $5,
			end_year = $6,
			end_month = $7,
			applicable_months = $8,
			category = $9,
			target_house_ids = $10
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, feeParams(fee)...)
	if err != nil {
		return fmt.Errorf("failed to update fee config %s: %w", fee.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *feeRepository) Delete(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM fee_configs WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete fee config %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
