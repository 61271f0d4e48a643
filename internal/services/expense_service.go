package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for operational expenses.
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidExpense  = errors.New("invalid expense")
)

// ExpenseService defines the interface for expense tracking business logic.
type ExpenseService interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListPeriodExpenses(ctx context.Context, year, month int) ([]models.Expense, error)

	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id models.EntityID) error

	// MonthlySummary aggregates one period's expenses by category,
	// including each category's share of the total.
	MonthlySummary(ctx context.Context, year, month int) (*models.ExpenseSummary, error)
}

type expenseService struct {
	repo repository.ExpenseRepository
	log  *logger.Logger
}

// NewExpenseService creates a new instance of ExpenseService.
func NewExpenseService(repo repository.ExpenseRepository, log *logger.Logger) ExpenseService {
	return &expenseService{
		repo: repo,
		log:  log,
	}
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list expenses", err, nil)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) ListPeriodExpenses(ctx context.Context, year, month int) ([]models.Expense, error) {
	if month < 0 || month > 11 {
		return nil, fmt.Errorf("%w: month must be between 0 and 11", ErrInvalidExpense)
	}

	expenses, err := s.repo.ListByPeriod(ctx, year, month)
	if err != nil {
		s.log.Error("Failed to list period expenses", err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		return nil, fmt.Errorf("failed to list period expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if expense.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if expense.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if expense.Month < 0 || expense.Month > 11 {
		return nil, fmt.Errorf("%w: month must be between 0 and 11", ErrInvalidExpense)
	}

	expense.ID = models.EntityID(uuid.New().String())

	if err := s.repo.Create(ctx, expense); err != nil {
		s.log.Error("Failed to create expense", err, map[string]interface{}{
			"description": expense.Description,
		})
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.log.Info("Expense recorded", map[string]interface{}{
		"expense_id": expense.ID,
		"amount":     expense.Amount,
		"category":   expense.Category,
	})

	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id models.EntityID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExpenseNotFound
		}
		s.log.Error("Failed to delete expense", err, map[string]interface{}{
			"expense_id": id,
		})
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.log.Info("Expense deleted", map[string]interface{}{
		"expense_id": id,
	})

	return nil
}

func (s *expenseService) MonthlySummary(ctx context.Context, year, month int) (*models.ExpenseSummary, error) {
	expenses, err := s.ListPeriodExpenses(ctx, year, month)
	if err != nil {
		return nil, err
	}

	summary := &models.ExpenseSummary{
		Year:       year,
		Month:      month,
		Count:      len(expenses),
		Categories: []models.CategoryTotal{},
	}

	byCategory := map[string]int{}
	for _, expense := range expenses {
		summary.Total += expense.Amount
		byCategory[expense.Category] += expense.Amount
	}

	for category, amount := range byCategory {
		share := 0.0
		if summary.Total > 0 {
			share = float64(amount) / float64(summary.Total) * 100
		}
		summary.Categories = append(summary.Categories, models.CategoryTotal{
			Category: category,
			Amount:   amount,
			Share:    share,
		})
	}

	// Largest categories first for the report.
	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Amount != summary.Categories[j].Amount {
			return summary.Categories[i].Amount > summary.Categories[j].Amount
		}
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary, nil
}
