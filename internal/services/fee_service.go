package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for the fee catalog.
var (
	ErrFeeNotFound  = errors.New("fee not found")
	ErrInvalidFee   = errors.New("invalid fee configuration")
	ErrDuplicateFee = errors.New("a fee with that name already exists")
)

// FeeService defines the interface for fee catalog business logic.
type FeeService interface {
	ListFees(ctx context.Context) ([]models.FeeConfig, error)

	// GetFee retrieves one fee. Returns ErrFeeNotFound if it does not exist.
	GetFee(ctx context.Context, id models.EntityID) (*models.FeeConfig, error)

	// CreateFee validates and stores a new fee, assigning its id.
	// Returns ErrInvalidFee or ErrDuplicateFee.
	CreateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error)

	// UpdateFee replaces an existing fee's configuration.
	UpdateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error)

	// DeleteFee removes a fee from the catalog. Historical payment
	// breakdowns are snapshots and survive the deletion untouched.
	DeleteFee(ctx context.Context, id models.EntityID) error
}

type feeService struct {
	repo repository.FeeRepository
	log  *logger.Logger
}

// NewFeeService creates a new instance of FeeService.
func NewFeeService(repo repository.FeeRepository, log *logger.Logger) FeeService {
	return &feeService{
		repo: repo,
		log:  log,
	}
}

// validateFee checks the structural invariants of a fee configuration.
func validateFee(fee *models.FeeConfig) error {
	if fee.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFee)
	}
	if fee.DefaultAmount < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidFee)
	}
	if fee.StartMonth < 0 || fee.StartMonth > 11 {
		return fmt.Errorf("%w: start month must be between 0 and 11", ErrInvalidFee)
	}

	// The end of the validity window is all-or-nothing.
	if (fee.EndYear == nil) != (fee.EndMonth == nil) {
		return fmt.Errorf("%w: end year and end month must be set together", ErrInvalidFee)
	}
	if fee.Closed() {
		if *fee.EndMonth < 0 || *fee.EndMonth > 11 {
			return fmt.Errorf("%w: end month must be between 0 and 11", ErrInvalidFee)
		}
		if *fee.EndYear*12+*fee.EndMonth < fee.StartYear*12+fee.StartMonth {
			return fmt.Errorf("%w: validity window ends before it starts", ErrInvalidFee)
		}
	}

	for _, m := range fee.ApplicableMonths {
		if m < 0 || m > 11 {
			return fmt.Errorf("%w: applicable months must be between 0 and 11", ErrInvalidFee)
		}
	}

	switch fee.Category {
	case "", models.FeeCategoryMonthly, models.FeeCategoryFine:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidFee, fee.Category)
	}

	return nil
}

func (s *feeService) ListFees(ctx context.Context) ([]models.FeeConfig, error) {
	fees, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list fees", err, nil)
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, nil
}

func (s *feeService) GetFee(ctx context.Context, id models.EntityID) (*models.FeeConfig, error) {
	fee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query fee", err, map[string]interface{}{
			"fee_id": id,
		})
		return nil, fmt.Errorf("failed to query fee: %w", err)
	}
	if fee == nil {
		return nil, ErrFeeNotFound
	}
	return fee, nil
}

func (s *feeService) CreateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error) {
	if err := validateFee(fee); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, fee.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check fee name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateFee, fee.Name)
	}

	if fee.Category == "" {
		fee.Category = models.FeeCategoryMonthly
	}
	fee.ID = models.EntityID(uuid.New().String())

	if err := s.repo.Create(ctx, fee); err != nil {
		s.log.Error("Failed to create fee", err, map[string]interface{}{
			"name": fee.Name,
		})
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}

	s.log.Info("Fee created", map[string]interface{}{
		"fee_id":   fee.ID,
		"name":     fee.Name,
		"category": fee.Category,
	})

	return fee, nil
}

func (s *feeService) UpdateFee(ctx context.Context, fee *models.FeeConfig) (*models.FeeConfig, error) {
	if err := validateFee(fee); err != nil {
		return nil, err
	}

	existing, err := s.GetFee(ctx, fee.ID)
	if err != nil {
		return nil, err
	}

	if fee.Category == "" {
		fee.Category = existing.Category
	}

	if err := s.repo.Update(ctx, fee); err != nil {
		s.log.Error("Failed to update fee", err, map[string]interface{}{
			"fee_id": fee.ID,
		})
		return nil, fmt.Errorf("failed to update fee: %w", err)
	}

	s.log.Info("Fee updated", map[string]interface{}{
		"fee_id": fee.ID,
		"name":   fee.Name,
	})

	return fee, nil
}

func (s *feeService) DeleteFee(ctx context.Context, id models.EntityID) error {
	if _, err := s.GetFee(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete fee", err, map[string]interface{}{
			"fee_id": id,
		})
		return fmt.Errorf("failed to delete fee: %w", err)
	}

	s.log.Info("Fee deleted", map[string]interface{}{
		"fee_id": id,
	})

	return nil
}
