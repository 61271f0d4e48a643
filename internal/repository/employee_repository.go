package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// EmployeeRepository defines the interface for HR record data access.
type EmployeeRepository interface {
	// List returns every employee ordered by name.
	List(ctx context.Context) ([]models.Employee, error)

	// GetByID returns a single employee. Returns nil, nil if it does not exist.
	GetByID(ctx context.Context, id models.EntityID) (*models.Employee, error)

	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id models.EntityID) error
}

type employeeRepository struct {
	db *database.Database
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *database.Database) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id,
	name,
	rut,
	entry_date,
	role,
	gross_salary,
	afp_percentage,
	fonasa_percentage,
	cesantia_percentage`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var employee models.Employee
	var id string

	err := row.Scan(
		&id,
		&employee.Name,
		&employee.RUT,
		&employee.EntryDate,
		&employee.Role,
		&employee.GrossSalary,
		&employee.AFPPercentage,
		&employee.FonasaPercentage,
		&employee.CesantiaPercentage,
	)
	if err != nil {
		return nil, err
	}

	employee.ID = models.EntityID(id)
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	query := `SELECT` + employeeColumns + ` FROM employees ORDER BY name`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		employees = append(employees, *employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Employee, error) {
	query := `SELECT` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(r.db.Pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query employee %s: %w", id, err)
	}

	return employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(employee.ID),
		employee.Name,
		employee.RUT,
		employee.EntryDate,
		employee.Role,
		employee.GrossSalary,
		employee.AFPPercentage,
		employee.FonasaPercentage,
		employee.CesantiaPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert employee %q: %w", employee.Name, err)
	}

	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	query := `
		UPDATE employees
		SET name = $2,
			rut = $3,
			entry_date = $4,
			role = $5,
			gross_salary = $6,
			afp_percentage = $7,
			fonasa_percentage = $8,
			cesantia_percentage = $9
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		string(employee.ID),
		employee.Name,
		employee.RUT,
		employee.EntryDate,
		employee.Role,
		employee.GrossSalary,
		employee.AFPPercentage,
		employee.FonasaPercentage,
		employee.CesantiaPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", employee.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
