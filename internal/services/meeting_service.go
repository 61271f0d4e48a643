package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for assemblies.
var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrInvalidMeeting  = errors.New("invalid meeting")
)

// FineGenerationResult reports the outcome of generating absence fines
// for a meeting.
type FineGenerationResult struct {
	Fee          *models.FeeConfig `json:"fee"`
	AbsentHouses int               `json:"absentHouses"`
	// Created is false when the fine already existed and was left untouched.
	Created bool `json:"created"`
}

// MeetingService defines the interface for assembly business logic.
type MeetingService interface {
	ListMeetings(ctx context.Context) ([]models.Meeting, error)

	// GetMeeting retrieves one meeting. Returns ErrMeetingNotFound.
	GetMeeting(ctx context.Context, id models.EntityID) (*models.Meeting, error)

	CreateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id models.EntityID) error

	// MeetingStats summarizes attendance over the full registry. Houses
	// absent from the attendance map count as absent.
	MeetingStats(ctx context.Context, id models.EntityID) (*models.MeetingStats, error)

	// MeetingFine returns the absence fine generated for a meeting.
	// Returns ErrFeeNotFound when no fine has been generated yet.
	MeetingFine(ctx context.Context, meetingID models.EntityID) (*models.FeeConfig, error)

	// GenerateFines creates the absence fine for a meeting: a fine fee
	// named after the meeting, applicable only in the meeting's month
	// and targeting exactly the absent houses. Calling it again for the
	// same meeting is a no-op.
	GenerateFines(ctx context.Context, meetingID models.EntityID, amount int) (*FineGenerationResult, error)
}

type meetingService struct {
	meetings repository.MeetingRepository
	houses   repository.HouseRepository
	fees     repository.FeeRepository
	log      *logger.Logger
}

// NewMeetingService creates a new instance of MeetingService.
func NewMeetingService(
	meetings repository.MeetingRepository,
	houses repository.HouseRepository,
	fees repository.FeeRepository,
	log *logger.Logger,
) MeetingService {
	return &meetingService{
		meetings: meetings,
		houses:   houses,
		fees:     fees,
		log:      log,
	}
}

func (s *meetingService) ListMeetings(ctx context.Context) ([]models.Meeting, error) {
	meetings, err := s.meetings.List(ctx)
	if err != nil {
		s.log.Error("Failed to list meetings", err, nil)
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

func (s *meetingService) GetMeeting(ctx context.Context, id models.EntityID) (*models.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting: %w", err)
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	return meeting, nil
}

func (s *meetingService) CreateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error) {
	if meeting.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMeeting)
	}
	if meeting.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidMeeting)
	}

	now := time.Now()
	meeting.ID = models.EntityID(uuid.New().String())
	meeting.CreatedBy = actor
	meeting.UpdatedBy = actor
	meeting.CreatedAt = now
	meeting.UpdatedAt = now
	if meeting.Attendance == nil {
		meeting.Attendance = map[models.EntityID]string{}
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		s.log.Error("Failed to create meeting", err, map[string]interface{}{
			"name": meeting.Name,
		})
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.log.Info("Meeting created", map[string]interface{}{
		"meeting_id": meeting.ID,
		"name":       meeting.Name,
	})

	return meeting, nil
}

func (s *meetingService) UpdateMeeting(ctx context.Context, meeting *models.Meeting, actor string) (*models.Meeting, error) {
	existing, err := s.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}

	if meeting.Name == "" {
		meeting.Name = existing.Name
	}
	if meeting.Date == "" {
		meeting.Date = existing.Date
	}
	if meeting.Attendance == nil {
		meeting.Attendance = existing.Attendance
	}
	meeting.UpdatedBy = actor
	meeting.UpdatedAt = time.Now()

	if err := s.meetings.Update(ctx, meeting); err != nil {
		s.log.Error("Failed to update meeting", err, map[string]interface{}{
			"meeting_id": meeting.ID,
		})
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	s.log.Info("Meeting updated", map[string]interface{}{
		"meeting_id": meeting.ID,
		"updated_by": actor,
	})

	return meeting, nil
}

func (s *meetingService) DeleteMeeting(ctx context.Context, id models.EntityID) error {
	if _, err := s.GetMeeting(ctx, id); err != nil {
		return err
	}

	if err := s.meetings.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete meeting", err, map[string]interface{}{
			"meeting_id": id,
		})
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.log.Info("Meeting deleted", map[string]interface{}{
		"meeting_id": id,
	})

	return nil
}

func (s *meetingService) MeetingStats(ctx context.Context, id models.EntityID) (*models.MeetingStats, error) {
	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	houses, err := s.houses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}

	stats := &models.MeetingStats{Total: len(houses)}
	for _, house := range houses {
		switch meeting.Attendance[house.ID] {
		case models.AttendancePresent:
			stats.Present++
		case models.AttendanceJustified:
			stats.Justified++
		default:
			stats.Absent++
		}
	}

	if stats.Total > 0 {
		stats.Percent = float64(stats.Present) / float64(stats.Total) * 100
	}

	return stats, nil
}

// fineName derives the fee name that keys a meeting's absence fine.
func fineName(meeting *models.Meeting) string {
	return "Multa: " + meeting.Name
}

// absentHouses returns the ids of every house neither present nor
// justified at the meeting, in registry order.
func absentHouses(meeting *models.Meeting, houses []models.House) []models.EntityID {
	absent := []models.EntityID{}
	for _, house := range houses {
		switch meeting.Attendance[house.ID] {
		case models.AttendancePresent, models.AttendanceJustified:
		default:
			absent = append(absent, house.ID)
		}
	}
	return absent
}

func (s *meetingService) MeetingFine(ctx context.Context, meetingID models.EntityID) (*models.FeeConfig, error) {
	meeting, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	fee, err := s.fees.GetByName(ctx, fineName(meeting))
	if err != nil {
		return nil, fmt.Errorf("failed to query fine: %w", err)
	}
	if fee == nil {
		return nil, ErrFeeNotFound
	}
	return fee, nil
}

func (s *meetingService) GenerateFines(ctx context.Context, meetingID models.EntityID, amount int) (*FineGenerationResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: fine amount must be positive", ErrInvalidFee)
	}

	meeting, err := s.GetMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	meetingDate, err := time.Parse("2006-01-02", meeting.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: meeting date %q is not ISO formatted", ErrInvalidMeeting, meeting.Date)
	}

	name := fineName(meeting)

	// Fine generation is idempotent by name: a second run for the same
	// meeting must not double-charge the absent houses.
	existing, err := s.fees.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check fine name: %w", err)
	}
	if existing != nil {
		return &FineGenerationResult{
			Fee:          existing,
			AbsentHouses: len(existing.TargetHouseIDs),
			Created:      false,
		}, nil
	}

	houses, err := s.houses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	absent := absentHouses(meeting, houses)

	year := meetingDate.Year()
	month := int(meetingDate.Month()) - 1

	fee := &models.FeeConfig{
		ID:               models.EntityID(uuid.New().String()),
		Name:             name,
		DefaultAmount:    amount,
		StartYear:        year,
		StartMonth:       month,
		EndYear:          &year,
		EndMonth:         &month,
		ApplicableMonths: []int{month},
		Category:         models.FeeCategoryFine,
		// Always present, even when empty: an assembly without absences
		// produces a fine charging nobody.
		TargetHouseIDs: absent,
	}

	if err := s.fees.Create(ctx, fee); err != nil {
		s.log.Error("Failed to create absence fine", err, map[string]interface{}{
			"meeting_id": meetingID,
			"name":       name,
		})
		return nil, fmt.Errorf("failed to create absence fine: %w", err)
	}

	s.log.Info("Absence fine generated", map[string]interface{}{
		"meeting_id":    meetingID,
		"fee_id":        fee.ID,
		"absent_houses": len(absent),
		"amount":        amount,
	})

	return &FineGenerationResult{
		Fee:          fee,
		AbsentHouses: len(absent),
		Created:      true,
	}, nil
}
