package models

import "time"

// Vacation request states.
const (
	VacationPending  = "pending"
	VacationApproved = "approved"
	VacationRejected = "rejected"
)

// Medical leave types.
const (
	LeaveMedical  = "medical"
	LeaveDeath    = "death"
	LeaveMarriage = "marriage"
	LeaveAbsence  = "absence"
)

// VacationRequest is one vacation period for an employee.
type VacationRequest struct {
	ID         EntityID  `json:"id"`
	EmployeeID EntityID  `json:"employeeId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Days       int       `json:"days"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// MedicalLeave is one leave or justified absence period for an employee.
type MedicalLeave struct {
	ID         EntityID  `json:"id"`
	EmployeeID EntityID  `json:"employeeId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Days       int       `json:"days"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
}

// Action log actions and modules.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"

	ModuleVacation = "VACATION"
	ModuleLeave    = "LEAVE"
)

// ActionLog is one audit trail entry for HR record mutations.
type ActionLog struct {
	ID          EntityID  `json:"id"`
	EmployeeID  EntityID  `json:"employeeId"`
	Action      string    `json:"action"`
	Module      string    `json:"module"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	User        string    `json:"user"`
}
