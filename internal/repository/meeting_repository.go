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

// MeetingRepository defines the interface for assembly data access.
type MeetingRepository interface {
	// List returns every meeting, most recent first.
	List(ctx context.Context) ([]models.Meeting, error)

	// GetByID returns a single meeting. Returns nil, nil if it does not exist.
	GetByID(ctx context.Context, id models.EntityID) (*models.Meeting, error)

	Create(ctx context.Context, meeting *models.Meeting) error
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, id models.EntityID) error
}

type meetingRepository struct {
	db *database.Database
}

// NewMeetingRepository creates a new instance of MeetingRepository.
func NewMeetingRepository(db *database.Database) MeetingRepository {
	return &meetingRepository{db: db}
}

const meetingColumns = `
	id,
	name,
	meeting_date,
	attendance,
	created_by,
	updated_by,
	created_at,
	updated_at`

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var meeting models.Meeting
	var id string
	var attendanceJSON []byte

	err := row.Scan(
		&id,
		&meeting.Name,
		&meeting.Date,
		&attendanceJSON,
		&meeting.CreatedBy,
		&meeting.UpdatedBy,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	meeting.ID = models.EntityID(id)

	if err := json.Unmarshal(attendanceJSON, &meeting.Attendance); err != nil {
		return nil, fmt.Errorf("failed to parse attendance for meeting %s: %w", id, err)
	}

	return &meeting, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]models.Meeting, error) {
	query := `SELECT` + meetingColumns + ` FROM meetings ORDER BY meeting_date DESC, created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	meetings := []models.Meeting{}
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		meetings = append(meetings, *meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}

	return meetings, nil
}

func (r *meetingRepository) GetByID(ctx context.Context, id models.EntityID) (*models.Meeting, error) {
	query := `SELECT` + meetingColumns + ` FROM meetings WHERE id = $1`

	meeting, err := scanMeeting(r.db.Pool.QueryRow(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query meeting %s: %w", id, err)
	}

	return meeting, nil
}

func (r *meetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	attendanceJSON, err := json.Marshal(meeting.Attendance)
	if err != nil {
		return fmt.Errorf("failed to encode attendance for meeting %s: %w", meeting.ID, err)
	}

	query := `
		INSERT INTO meetings (id, name, meeting_date, attendance, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		string(meeting.ID),
		meeting.Name,
		meeting.Date,
		attendanceJSON,
		meeting.CreatedBy,
		meeting.UpdatedBy,
		meeting.CreatedAt,
		meeting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meeting %q: %w", meeting.Name, err)
	}

	return nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *models.Meeting) error {
	attendanceJSON, err := json.Marshal(meeting.Attendance)
	if err != nil {
		return fmt.Errorf("failed to encode attendance for meeting %s: %w", meeting.ID, err)
	}

	query := `
		UPDATE meetings
		SET name = $2,
			meeting_date = $3,
			attendance = $4,
			updated_by = $5,
			updated_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		string(meeting.ID),
		meeting.Name,
		meeting.Date,
		attendanceJSON,
		meeting.UpdatedBy,
		meeting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting %s: %w", meeting.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

func (r *meetingRepository) Delete(ctx context.Context, id models.EntityID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete meeting %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
