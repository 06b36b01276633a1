package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login identity. Every user belongs to exactly one employee, the
// employee's role drives authorization.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_users_employee"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password   string    `gorm:"type:varchar(255);not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	LastLogin  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	// filled from employees.role_id -> roles.name, not a column
	Role string `gorm:"-"`
}

func (User) TableName() string {
	return "users"
}
