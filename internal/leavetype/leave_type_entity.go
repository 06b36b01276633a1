package leavetype

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Codes whose approved days are deducted from pay.
const (
	CodeUnpaid = "UNPAID"
	CodeCasual = "CASUAL"
	CodeSick   = "SICK"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_types_code"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_leave_types_name"`
	DefaultDays int       `gorm:"not null;default:0"`
	IsPaid      bool      `gorm:"not null;default:true"`
	IsActive    bool      `gorm:"not null;default:true"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// DeductsPay reports whether approved leave of this type reduces net salary.
func (lt LeaveType) DeductsPay() bool {
	if !lt.IsPaid {
		return true
	}
	return lt.Matches(IsDeductible)
}

// Matches reports whether the code or any single word of the name satisfies
// fn, so "Sick Leave" matches SICK.
func (lt LeaveType) Matches(fn func(string) bool) bool {
	if fn(lt.Code) {
		return true
	}
	words := strings.FieldsFunc(lt.Name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if fn(w) {
			return true
		}
	}
	return false
}

func IsDeductible(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case CodeUnpaid, CodeCasual, CodeSick:
		return true
	}
	return false
}
