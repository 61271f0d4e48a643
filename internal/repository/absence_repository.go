package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// AbsenceRepository defines the interface for vacation, leave and audit
// trail data access. The three record types always move together in the
// HR workflows, so they share a repository.
type AbsenceRepository interface {
	ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error)
	CreateVacation(ctx context.Context, req *models.VacationRequest) error
	UpdateVacationStatus(ctx context.Context, id models.EntityID, status string) error
	DeleteVacation(ctx context.Context, id models.EntityID) error

	ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error)
	CreateLeave(ctx context.Context, leave *models.MedicalLeave) error
	DeleteLeave(ctx context.Context, id models.EntityID) error

	ListLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error)
	CreateLog(ctx context.Context, log *models.ActionLog) error
}

type absenceRepository struct {
	db *database.Database
}

// NewAbsenceRepository creates a new instance of AbsenceRepository.
func NewAbsenceRepository(db *database.Database) AbsenceRepository {
	return &absenceRepository{db: db}
}

func (r *absenceRepository) ListVacations(ctx context.Context, employeeID models.EntityID) ([]models.VacationRequest, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, days, status, created_at, created_by
		FROM vacation_requests
		WHERE employee_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Pool.Query(ctx, query, string(employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query vacation requests: %w", err)
	}
	defer rows.Close()

	requests := []models.VacationRequest{}
	for rows.Next() {
		var req models.VacationRequest
		var id, empID string

		err := rows.Scan(&id, &empID, &req.StartDate, &req.EndDate, &req.Days, &req.Status, &req.CreatedAt, &req.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request row: %w", err)
		}

		req.ID = models.EntityID(id)
		req.EmployeeID = models.EntityID(empID)
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacation request rows: %w", err)
	}

	return requests, nil
}

func (r *absenceRepository) CreateVacation(ctx context.Context, req *models.VacationRequest) error {
	query := `
		INSERT INTO vacation_requests (id, employee_id, start_date, end_date, days, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(req.ID),
		string(req.EmployeeID),
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Status,
		req.CreatedAt,
		req.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vacation request %s: %w", req.ID, err)
	}

	return nil
}

func (r *absenceRepository) UpdateVacationStatus(ctx context.Context, id models.EntityID, status string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE vacation_requests SET status = $2 WHERE id = $1`,
		string(id), status,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacation request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *absenceRepository) DeleteVacation(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vacation_requests WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete vacation request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *absenceRepository) ListLeaves(ctx context.Context, employeeID models.EntityID) ([]models.MedicalLeave, error) {
	query := `
		SELECT id, employee_id, start_date, end_date, days, type, created_at, created_by
		FROM medical_leaves
		WHERE employee_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Pool.Query(ctx, query, string(employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query medical leaves: %w", err)
	}
	defer rows.Close()

	leaves := []models.MedicalLeave{}
	for rows.Next() {
		var leave models.MedicalLeave
		var id, empID string

		err := rows.Scan(&id, &empID, &leave.StartDate, &leave.EndDate, &leave.Days, &leave.Type, &leave.CreatedAt, &leave.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medical leave row: %w", err)
		}

		leave.ID = models.EntityID(id)
		leave.EmployeeID = models.EntityID(empID)
		leaves = append(leaves, leave)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical leave rows: %w", err)
	}

	return leaves, nil
}

func (r *absenceRepository) CreateLeave(ctx context.Context, leave *models.MedicalLeave) error {
	query := `
		INSERT INTO medical_leaves (id, employee_id, start_date, end_date, days, type, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(leave.ID),
		string(leave.EmployeeID),
		leave.StartDate,
		leave.EndDate,
		leave.Days,
		leave.Type,
		leave.CreatedAt,
		leave.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert medical leave %s: %w", leave.ID, err)
	}

	return nil
}

func (r *absenceRepository) DeleteLeave(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM medical_leaves WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete medical leave %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *absenceRepository) ListLogs(ctx context.Context, employeeID models.EntityID) ([]models.ActionLog, error) {
	query := `
		SELECT id, employee_id, action, module, description, logged_at, user_name
		FROM action_logs
		WHERE employee_id = $1
		ORDER BY logged_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, string(employeeID))
	if err != nil {
		return nil, fmt.Errorf("failed to query action logs: %w", err)
	}
	defer rows.Close()

	logs := []models.ActionLog{}
	for rows.Next() {
		var log models.ActionLog
		var id, empID string

		err := rows.Scan(&id, &empID, &log.Action, &log.Module, &log.Description, &log.Timestamp, &log.User)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action log row: %w", err)
		}

		log.ID = models.EntityID(id)
		log.EmployeeID = models.EntityID(empID)
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating action log rows: %w", err)
	}

	return logs, nil
}

func (r *absenceRepository) CreateLog(ctx context.Context, log *models.ActionLog) error {
	query := `
		INSERT INTO action_logs (id, employee_id, action, module, description, logged_at, user_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(log.ID),
		string(log.EmployeeID),
		log.Action,
		log.Module,
		log.Description,
		log.Timestamp,
		log.User,
	)
	if err != nil {
		return fmt.Errorf("failed to insert action log %s: %w", log.ID, err)
	}

	return nil
}
