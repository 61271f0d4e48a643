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

// ShiftRepository defines the interface for roster data access.
// Rosters are keyed by their Monday start date; saving the same period
// twice replaces the assignments.
type ShiftRepository interface {
	// List returns every stored roster ordered by start date.
	List(ctx context.Context) ([]models.ShiftSchedule, error)

	// GetByStartDate returns the roster beginning on the given ISO date.
	// Returns nil, nil if no roster exists for that period.
	GetByStartDate(ctx context.Context, startDate string) (*models.ShiftSchedule, error)

	// Upsert inserts the roster or replaces the assignments of the
	// existing roster with the same start date.
	Upsert(ctx context.Context, schedule *models.ShiftSchedule) error
}

type shiftRepository struct {
	db *database.Database
}

// NewShiftRepository creates a new instance of ShiftRepository.
func NewShiftRepository(db *database.Database) ShiftRepository {
	return &shiftRepository{db: db}
}

func scanSchedule(row pgx.Row) (*models.ShiftSchedule, error) {
	var schedule models.ShiftSchedule
	var id string
	var assignmentsJSON []byte

	if err := row.Scan(&id, &schedule.StartDate, &assignmentsJSON); err != nil {
		return nil, err
	}

	schedule.ID = models.EntityID(id)

	if err := json.Unmarshal(assignmentsJSON, &schedule.Assignments); err != nil {
		return nil, fmt.Errorf("failed to parse assignments for schedule %s: %w", id, err)
	}

	return &schedule, nil
}

func (r *shiftRepository) List(ctx context.Context) ([]models.ShiftSchedule, error) {
	query := `SELECT id, start_date, assignments FROM shift_schedules ORDER BY start_date`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	schedules := []models.ShiftSchedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule row: %w", err)
		}
		schedules = append(schedules, *schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift schedule rows: %w", err)
	}

	return schedules, nil
}

func (r *shiftRepository) GetByStartDate(ctx context.Context, startDate string) (*models.ShiftSchedule, error) {
	query := `SELECT id, start_date, assignments FROM shift_schedules WHERE start_date = $1`

	schedule, err := scanSchedule(r.db.Pool.QueryRow(ctx, query, startDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query shift schedule for %s: %w", startDate, err)
	}

	return schedule, nil
}

func (r *shiftRepository) Upsert(ctx context.Context, schedule *models.ShiftSchedule) error {
	assignmentsJSON, err := json.Marshal(schedule.Assignments)
	if err != nil {
		return fmt.Errorf("failed to encode assignments for schedule %s: %w", schedule.ID, err)
	}

	query := `
		INSERT INTO shift_schedules (id, start_date, assignments)
		VALUES ($1, $2, $3)
		ON CONFLICT (start_date) DO UPDATE SET assignments = EXCLUDED.assignments
	`

	_, err = r.db.Pool.Exec(ctx, query,
		string(schedule.ID),
		schedule.StartDate,
		assignmentsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert shift schedule for %s: %w", schedule.StartDate, err)
	}

	return nil
}
