package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the administrative view of a login account. Accounts are created
// through auth registration; this package only reads and maintains them.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null"`
	Password   string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	EmployeeCode string `gorm:"->;-:migration"`
	EmployeeName string `gorm:"->;-:migration"`
	RoleName     string `gorm:"->;-:migration"`
}

func (User) TableName() string {
	return "users"
}
