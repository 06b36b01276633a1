package designation

import (
	"time"

	"github.com/google/uuid"
)

type Designation struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code         string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_designations_code"`
	Name         string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_designations_name"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	Description  string     `gorm:"type:text"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`

	DepartmentName string `gorm:"->;-:migration"`
}

func (Designation) TableName() string {
	return "designations"
}
