package models

// Shift types for one roster day.
const (
	ShiftDay   = "day"
	ShiftNight = "night"
	ShiftOff   = "off"
)

// Base hours per shift type. Night shifts carry a one hour bonus.
const (
	DayShiftHours   = 11
	NightShiftHours = 12
)

// WeeklyHourLimit is the legal weekly cap; totals above it are flagged
// on the roster, not rejected.
const WeeklyHourLimit = 44

// DayAssignment is the shift assigned to one employee on one date,
// plus manually authorized overtime hours.
type DayAssignment struct {
	Type       string `json:"type"`
	ExtraHours int    `json:"extraHours"`
}

// Hours returns the total worked hours this assignment represents.
func (a DayAssignment) Hours() int {
	base := 0
	switch a.Type {
	case ShiftDay:
		base = DayShiftHours
	case ShiftNight:
		base = NightShiftHours
	}
	return base + a.ExtraHours
}

// ShiftSchedule is a 14-day roster starting on a Monday. Assignments
// map employee ID -> ISO date -> the day's assignment; missing entries
// mean a day off.
type ShiftSchedule struct {
	ID          EntityID                              `json:"id"`
	StartDate   string                                `json:"startDate"`
	Assignments map[EntityID]map[string]DayAssignment `json:"assignments"`
}

// WeeklyTotal is one employee's hour count for one roster week, with
// the over-cap flag already evaluated.
type WeeklyTotal struct {
	EmployeeID EntityID `json:"employeeId"`
	Week       int      `json:"week"`
	Hours      int      `json:"hours"`
	OverLimit  bool     `json:"overLimit"`
}
