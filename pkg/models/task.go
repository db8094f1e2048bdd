package models

import "fmt"

type Priority string

const (
	LowPriority    Priority = "LOW"
	MediumPriority Priority = "MEDIUM"
	HighPriority   Priority = "HIGH"
)

// ParsePriority maps a wire string onto a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case LowPriority, MediumPriority, HighPriority:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q", s)
}

type Status string

const (
	PendingStatus    Status = "PENDING"
	InProgressStatus Status = "IN_PROGRESS"
	CompletedStatus  Status = "COMPLETED"
	LateStatus       Status = "LATE"
)

// ParseStatus maps a wire string onto a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case PendingStatus, InProgressStatus, CompletedStatus, LateStatus:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Task is the schedulable unit of work tracked by the service. The ID is
// assigned by the store on creation and immutable afterwards. Status is
// optional and empty until somebody sets it.
type Task struct {
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description,omitempty" db:"description"`
	StartDate   Date     `json:"startDate" db:"start_date"`
	EndDate     Date     `json:"endDate" db:"end_date"`
	Priority    Priority `json:"priority" db:"priority"`
	Status      Status   `json:"status,omitempty" db:"status"`
	EmployeeID  int64    `json:"employeeId" db:"employee_id"`
}
