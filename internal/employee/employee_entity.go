package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code          string          `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_code"`
	FullName      string          `gorm:"type:varchar(150);not null"`
	Email         string          `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Phone         string          `gorm:"type:varchar(30)"`
	RoleID        *uuid.UUID      `gorm:"type:uuid;index"`
	DepartmentID  *uuid.UUID      `gorm:"type:uuid;index"`
	DesignationID *uuid.UUID      `gorm:"type:uuid;index"`
	ShiftID       *uuid.UUID      `gorm:"type:uuid;index"`
	JoiningDate   time.Time       `gorm:"type:date;not null"`
	BasicSalary   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`

	RoleName        string `gorm:"->;-:migration"`
	DepartmentName  string `gorm:"->;-:migration"`
	DesignationName string `gorm:"->;-:migration"`
}

func (Employee) TableName() string {
	return "employees"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusTerminated:
		return true
	}
	return false
}
