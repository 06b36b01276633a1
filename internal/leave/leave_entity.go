package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// LeaveBalance keeps remaining = allocated - used.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	Year        int       `gorm:"not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	Allocated   int       `gorm:"not null;default:0"`
	Used        int       `gorm:"not null;default:0"`
	Remaining   int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	EmployeeName  string `gorm:"->;-:migration"`
	LeaveTypeName string `gorm:"->;-:migration"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

type LeaveApplication struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_leave_applications_employee_dates"`
	LeaveTypeID     uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate       time.Time  `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	EndDate         time.Time  `gorm:"type:date;not null;index:idx_leave_applications_employee_dates"`
	TotalDays       int        `gorm:"not null;default:1"`
	Reason          string     `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	WorkflowID      *uuid.UUID `gorm:"type:uuid"`
	CurrentStep     int        `gorm:"not null;default:0"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CancelledAt     *time.Time
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`

	EmployeeName  string `gorm:"->;-:migration"`
	LeaveTypeName string `gorm:"->;-:migration"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// Overlaps reports whether [start, end] shares at least one day with the application.
func (l LeaveApplication) Overlaps(start, end time.Time) bool {
	return !l.EndDate.Before(start) && !l.StartDate.After(end)
}

// LeaveApprovalLog records every approve or reject action on an application.
type LeaveApprovalLog struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveApplicationID uuid.UUID `gorm:"type:uuid;not null;index"`
	StepOrder          int       `gorm:"not null;default:0"`
	ApproverID         uuid.UUID `gorm:"type:uuid;not null"`
	Action             string    `gorm:"type:varchar(20);not null"`
	Remarks            string    `gorm:"type:text"`
	ActedAt            time.Time `gorm:"not null"`
}

func (LeaveApprovalLog) TableName() string {
	return "leave_approval_logs"
}

// DaysInclusive counts calendar days from start to end, both included.
func DaysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
