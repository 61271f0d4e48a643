package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/models"
)

// ExpenseRepository defines the interface for operational expense data access.
type ExpenseRepository interface {
	// List returns every expense, newest period first.
	List(ctx context.Context) ([]models.Expense, error)

	// ListByPeriod returns the expenses of one (year, month) period.
	ListByPeriod(ctx context.Context, year, month int) ([]models.Expense, error)

	Create(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id models.EntityID) error
}

type expenseRepository struct {
	db *database.Database
}

// NewExpenseRepository creates a new instance of ExpenseRepository.
func NewExpenseRepository(db *database.Database) ExpenseRepository {
	return &expenseRepository{db: db}
}

const expenseColumns = `
	id,
	year,
	month,
	description,
	amount,
	category`

func (r *expenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	query := `SELECT` + expenseColumns + ` FROM expenses ORDER BY year DESC, month DESC, category`
	return r.queryExpenses(ctx, query)
}

func (r *expenseRepository) ListByPeriod(ctx context.Context, year, month int) ([]models.Expense, error) {
	query := `SELECT` + expenseColumns + ` FROM expenses WHERE year = $1 AND month = $2 ORDER BY category`
	return r.queryExpenses(ctx, query, year, month)
}

func (r *expenseRepository) queryExpenses(ctx context.Context, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var expense models.Expense
		var id string

		err := rows.Scan(
			&id,
			&expense.Year,
			&expense.Month,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}

		expense.ID = models.EntityID(id)
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		string(expense.ID),
		expense.Year,
		expense.Month,
		expense.Description,
		expense.Amount,
		expense.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ID, err)
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
