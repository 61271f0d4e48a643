package models

import "time"

// Attendance states for a house at a meeting.
const (
	AttendancePresent   = "present"
	AttendanceJustified = "justified"
	AttendanceAbsent    = "absent"
)

// Meeting is one assembly with a per-house attendance map.
// Houses missing from the map count as absent.
type Meeting struct {
	ID         EntityID            `json:"id"`
	Name       string              `json:"name"`
	Date       string              `json:"date"`
	Attendance map[EntityID]string `json:"attendance"`
	CreatedBy  string              `json:"createdBy,omitempty"`
	UpdatedBy  string              `json:"updatedBy,omitempty"`
	CreatedAt  time.Time           `json:"createdAt,omitempty"`
	UpdatedAt  time.Time           `json:"updatedAt,omitempty"`
}

// MeetingStats summarizes attendance over the full house registry.
type MeetingStats struct {
	Total     int     `json:"total"`
	Present   int     `json:"present"`
	Justified int     `json:"justified"`
	Absent    int     `json:"absent"`
	Percent   float64 `json:"percent"`
}
