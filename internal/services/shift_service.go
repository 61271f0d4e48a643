package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/models"
	"github.com/condomaster/api/internal/repository"
)

// Service-level errors for shift rosters.
var (
	ErrInvalidSchedule = errors.New("invalid shift schedule")
)

// RosterDays is the length of one roster period.
const RosterDays = 14

// ShiftService defines the interface for roster business logic.
type ShiftService interface {
	// GetRoster returns the roster starting on the given Monday. When no
	// roster has been saved yet an empty one is returned, not an error.
	GetRoster(ctx context.Context, startDate string) (*models.ShiftSchedule, error)

	// SaveRoster stores a 14-day roster. The start date must be a
	// Monday; assignment dates must fall inside the period.
	SaveRoster(ctx context.Context, schedule *models.ShiftSchedule) (*models.ShiftSchedule, error)

	// WeeklyHours totals each employee's hours per roster week and
	// flags totals above the legal cap. The cap is advisory: an
	// over-limit week is reported, never rejected.
	WeeklyHours(ctx context.Context, startDate string) ([]models.WeeklyTotal, error)
}

type shiftService struct {
	repo repository.ShiftRepository
	log  *logger.Logger
}

// NewShiftService creates a new instance of ShiftService.
func NewShiftService(repo repository.ShiftRepository, log *logger.Logger) ShiftService {
	return &shiftService{
		repo: repo,
		log:  log,
	}
}

// parseRosterStart validates a roster start date: ISO formatted, Monday.
func parseRosterStart(startDate string) (time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date %q is not ISO formatted", ErrInvalidSchedule, startDate)
	}
	if start.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("%w: roster must start on a Monday", ErrInvalidSchedule)
	}
	return start, nil
}

func (s *shiftService) GetRoster(ctx context.Context, startDate string) (*models.ShiftSchedule, error) {
	if _, err := parseRosterStart(startDate); err != nil {
		return nil, err
	}

	schedule, err := s.repo.GetByStartDate(ctx, startDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	if schedule == nil {
		// An unsaved period starts blank.
		return &models.ShiftSchedule{
			StartDate:   startDate,
			Assignments: map[models.EntityID]map[string]models.DayAssignment{},
		}, nil
	}

	return schedule, nil
}

func (s *shiftService) SaveRoster(ctx context.Context, schedule *models.ShiftSchedule) (*models.ShiftSchedule, error) {
	start, err := parseRosterStart(schedule.StartDate)
	if err != nil {
		return nil, err
	}

	end := start.AddDate(0, 0, RosterDays-1)
	for employeeID, days := range schedule.Assignments {
		for date, assignment := range days {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				return nil, fmt.Errorf("%w: assignment date %q is not ISO formatted", ErrInvalidSchedule, date)
			}
			if day.Before(start) || day.After(end) {
				return nil, fmt.Errorf("%w: assignment %s for employee %s falls outside the period",
					ErrInvalidSchedule, date, employeeID)
			}
			switch assignment.Type {
			case models.ShiftDay, models.ShiftNight, models.ShiftOff:
			default:
				return nil, fmt.Errorf("%w: unknown shift type %q", ErrInvalidSchedule, assignment.Type)
			}
			if assignment.ExtraHours < 0 {
				return nil, fmt.Errorf("%w: extra hours must be non-negative", ErrInvalidSchedule)
			}
		}
	}

	if schedule.ID == "" {
		schedule.ID = models.EntityID(uuid.New().String())
	}
	if schedule.Assignments == nil {
		schedule.Assignments = map[models.EntityID]map[string]models.DayAssignment{}
	}

	if err := s.repo.Upsert(ctx, schedule); err != nil {
		s.log.Error("Failed to save roster", err, map[string]interface{}{
			"start_date": schedule.StartDate,
		})
		return nil, fmt.Errorf("failed to save roster: %w", err)
	}

	s.log.Info("Roster saved", map[string]interface{}{
		"start_date": schedule.StartDate,
		"employees":  len(schedule.Assignments),
	})

	return schedule, nil
}

// WeeklyTotals computes per-week hour totals from a roster without
// touching storage. Week 0 covers days 0 to 6, week 1 days 7 to 13.
func WeeklyTotals(schedule *models.ShiftSchedule) ([]models.WeeklyTotal, error) {
	start, err := time.Parse("2006-01-02", schedule.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q is not ISO formatted", ErrInvalidSchedule, schedule.StartDate)
	}

	ids := make([]models.EntityID, 0, len(schedule.Assignments))
	for id := range schedule.Assignments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	totals := []models.WeeklyTotal{}
	for _, employeeID := range ids {
		hours := [2]int{}
		for date, assignment := range schedule.Assignments[employeeID] {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				continue
			}
			offset := int(day.Sub(start).Hours() / 24)
			if offset < 0 || offset >= RosterDays {
				continue
			}
			hours[offset/7] += assignment.Hours()
		}

		for week, h := range hours {
			totals = append(totals, models.WeeklyTotal{
				EmployeeID: employeeID,
				Week:       week,
				Hours:      h,
				OverLimit:  h > models.WeeklyHourLimit,
			})
		}
	}

	return totals, nil
}

func (s *shiftService) WeeklyHours(ctx context.Context, startDate string) ([]models.WeeklyTotal, error) {
	schedule, err := s.GetRoster(ctx, startDate)
	if err != nil {
		return nil, err
	}

	totals, err := WeeklyTotals(schedule)
	if err != nil {
		return nil, err
	}

	for _, t := range totals {
		if t.OverLimit {
			s.log.Warn("Weekly hour limit exceeded", map[string]interface{}{
				"employee_id": t.EmployeeID,
				"week":        t.Week,
				"hours":       t.Hours,
			})
		}
	}

	return totals, nil
}
