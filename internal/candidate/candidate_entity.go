package candidate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive    = "ACTIVE"
	StatusHired     = "HIRED"
	StatusRejected  = "REJECTED"
	StatusWithdrawn = "WITHDRAWN"
)

type Candidate struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	JobPostingID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_candidates_posting_email,where:deleted_at IS NULL"`
	Name            string         `gorm:"type:varchar(150);not null"`
	Email           string         `gorm:"type:varchar(150);not null;uniqueIndex:uq_candidates_posting_email,where:deleted_at IS NULL"`
	Phone           string         `gorm:"type:varchar(30)"`
	CurrentStageID  *uuid.UUID     `gorm:"type:uuid;index"`
	Status          string         `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ResumeURL       string         `gorm:"type:text"`
	Notes           string         `gorm:"type:text"`
	RejectionReason string         `gorm:"type:text"`
	AppliedAt       time.Time      `gorm:"not null"`
	HiredAt         *time.Time     `gorm:"default:null"`
	RejectedAt      *time.Time     `gorm:"default:null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	JobPostingCode  string `gorm:"->;-:migration"`
	JobPostingTitle string `gorm:"->;-:migration"`
	StageName       string `gorm:"->;-:migration"`
	StageSequence   *int   `gorm:"->;-:migration"`
}

func (Candidate) TableName() string {
	return "candidates"
}

func (c Candidate) IsActive() bool {
	return c.Status == StatusActive
}

type Attachment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CandidateID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AttachmentTypeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FileName         string     `gorm:"type:varchar(255);not null"`
	ContentType      string     `gorm:"type:varchar(100)"`
	SizeBytes        int64      `gorm:"not null"`
	StorageKey       string     `gorm:"type:text;not null"`
	FileURL          string     `gorm:"type:text;not null"`
	UploadedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`

	AttachmentTypeName string `gorm:"->;-:migration"`
}

func (Attachment) TableName() string {
	return "candidate_attachments"
}
