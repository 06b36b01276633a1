package hiringstage

import (
	"time"

	"github.com/google/uuid"
)

type HiringStage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_hiring_stages_code"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_hiring_stages_name"`
	Sequence    int       `gorm:"not null;uniqueIndex:uq_hiring_stages_sequence"`
	Description string    `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (HiringStage) TableName() string {
	return "hiring_stages"
}
