package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
	StatusOnLeave = "ON_LEAVE"
)

const (
	SourceSelf   = "SELF"
	SourceManual = "MANUAL"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendances_employee_date;index"`
	ClockIn        *time.Time `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time `gorm:"column:clock_out;type:timestamptz"`
	WorkedMinutes  int        `gorm:"column:worked_minutes;not null;default:0"`
	Latitude       *float64   `gorm:"column:latitude"`
	Longitude      *float64   `gorm:"column:longitude"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source         string     `gorm:"column:source;type:varchar(30);not null;default:SELF"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`

	EmployeeName string `gorm:"->;-:migration"`
}

func (Attendance) TableName() string {
	return "attendances"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusHalfDay, StatusOnLeave:
		return true
	}
	return false
}

// workedMinutes is zero until both ends of the day are known.
func workedMinutes(in, out *time.Time) int {
	if in == nil || out == nil || out.Before(*in) {
		return 0
	}
	return int(out.Sub(*in).Minutes())
}
