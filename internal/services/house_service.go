package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for the house registry.
var (
	ErrHouseNotFound = errors.New("house not found")
	ErrInvalidRUT    = errors.New("invalid RUT")
)

// HouseService defines the interface for house registry business logic.
type HouseService interface {
	// ListHouses returns the full registry.
	ListHouses(ctx context.Context) ([]models.House, error)

	// GetHouse retrieves one house. Returns ErrHouseNotFound if it does not exist.
	GetHouse(ctx context.Context, id models.EntityID) (*models.House, error)

	// UpdateHouse replaces the editable fields of a house. The RUT, when
	// present, is check-digit validated and stored normalized.
	// Returns ErrHouseNotFound or ErrInvalidRUT.
	UpdateHouse(ctx context.Context, house *models.House) (*models.House, error)
}

type houseService struct {
	repo repository.HouseRepository
	log  *logger.Logger
}

// NewHouseService creates a new instance of HouseService.
func NewHouseService(repo repository.HouseRepository, log *logger.Logger) HouseService {
	return &houseService{
		repo: repo,
		log:  log,
	}
}

func (s *houseService) ListHouses(ctx context.Context) ([]models.House, error) {
	houses, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list houses", err, nil)
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	return houses, nil
}

func (s *houseService) GetHouse(ctx context.Context, id models.EntityID) (*models.House, error) {
	house, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to query house", err, map[string]interface{}{
			"house_id": id,
		})
		return nil, fmt.Errorf("failed to query house: %w", err)
	}
	if house == nil {
		return nil, ErrHouseNotFound
	}
	return house, nil
}

func (s *houseService) UpdateHouse(ctx context.Context, house *models.House) (*models.House, error) {
	existing, err := s.GetHouse(ctx, house.ID)
	if err != nil {
		return nil, err
	}

	if house.RUT != "" {
		if !models.ValidRUT(house.RUT) {
			s.log.Warn("Rejected house update with invalid RUT", map[string]interface{}{
				"house_id": house.ID,
				"rut":      house.RUT,
			})
			return nil, fmt.Errorf("%w: %s", ErrInvalidRUT, house.RUT)
		}
		house.RUT = models.FormatRUT(house.RUT)
	}

	// The unit number is fixed by the seed; only contact and status
	// fields are editable.
	house.Number = existing.Number

	if house.ResidentType == "" {
		house.ResidentType = existing.ResidentType
	}

	if err := s.repo.Update(ctx, house); err != nil {
		s.log.Error("Failed to update house", err, map[string]interface{}{
			"house_id": house.ID,
		})
		return nil, fmt.Errorf("failed to update house: %w", err)
	}

	s.log.Info("House updated", map[string]interface{}{
		"house_id": house.ID,
	})

	return house, nil
}
