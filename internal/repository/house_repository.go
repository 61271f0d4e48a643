package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// HouseRepository defines the interface for house registry data access.
type HouseRepository interface {
	// List returns every house ordered by its numeric identifier.
	List(ctx context.Context) ([]models.House, error)

	// GetByID returns a single house.
	// Returns nil, nil if the house does not exist.
	GetByID(ctx context.Context, id models.EntityID) (*models.House, error)

	// Update replaces the editable fields of an existing house.
	Update(ctx context.Context, house *models.House) error
}

type houseRepository struct {
	db *database.Database
}

// NewHouseRepository creates a new instance of HouseRepository.
func NewHouseRepository(db *database.Database) HouseRepository {
	return &houseRepository{db: db}
}

const houseColumns = `
	id,
	number,
	owner_name,
	rut,
	phone,
	email,
	has_parking,
	resident_type,
	is_board_member`

func scanHouse(row pgx.Row) (*models.House, error) {
	var house models.House
	var id string

	err := row.Scan(
		&id,
		&house.Number,
		&house.OwnerName,
		&house.RUT,
		&house.Phone,
		&house.Email,
		&house.HasParking,
		&house.ResidentType,
		&house.IsBoardMember,
	)
	if err != nil {
		return nil, err
	}

	house.ID = models.EntityID(id)
	return &house, nil
}

func (r *houseRepository) List(ctx context.Context) ([]models.House, error) {
	// House ids are seeded as plain integers, so cast for natural ordering.
	query := `SELECT` + houseColumns + ` FROM houses ORDER BY id::BIGINT`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query houses: %w", err)
	}
	defer rows.Close()

	houses := []models.House{}
	for rows.Next() {
		house, err := scanHouse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan house row: %w", err)
		}
		houses = append(houses, *house)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating house rows: %w", err)
	}

	return houses, nil
}

func (r *houseRepository) GetByID(ctx context.Context, id models.EntityID) (*models.House, error) {
	query := `SELECT` + houseColumns + ` FROM houses WHERE id = $1`

	house, err := scanHouse(r.db.Pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query house %s: %w", id, err)
	}

	return house, nil
}

func (r *houseRepository) Update(ctx context.Context, house *models.House) error {
	query := `
		UPDATE houses
		SET number = $2,
			owner_name = $3,
			rut = $4,
			phone = $5,
			email = $6,
			has_parking = $7,
			resident_type = $8,
			is_board_member = $9
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		string(house.ID),
		house.Number,
		house.OwnerName,
		house.RUT,
		house.Phone,
		house.Email,
		house.HasParking,
		house.ResidentType,
		house.IsBoardMember,
	)
	if err != nil {
		return fmt.Errorf("failed to update house %s: %w", house.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
