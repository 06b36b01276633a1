package shift

import (
	"time"

	"github.com/google/uuid"
)

const ClockLayout = "15:04"

type Shift struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_shifts_name"`
	StartTime    string    `gorm:"type:varchar(5);not null"`
	EndTime      string    `gorm:"type:varchar(5);not null"`
	GraceMinutes int       `gorm:"not null;default:0"`
	Description  string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Overnight reports whether the shift ends on the following day.
func (s Shift) Overnight() bool {
	return s.EndTime < s.StartTime
}

// LateAfter returns the instant on day after which a check-in counts as late.
func (s Shift) LateAfter(day time.Time) (time.Time, error) {
	start, err := time.Parse(ClockLayout, s.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	at := time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, day.Location())
	return at.Add(time.Duration(s.GraceMinutes) * time.Minute), nil
}

// ParseClock normalises "9:05" or "09:05" into "09:05".
func ParseClock(v string) (string, error) {
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		t, err = time.Parse("3:04", v)
		if err != nil {
			return "", err
		}
	}
	return t.Format(ClockLayout), nil
}
