package jobposting

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft  = "DRAFT"
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

const (
	EmploymentFullTime   = "FULL_TIME"
	EmploymentPartTime   = "PART_TIME"
	EmploymentContract   = "CONTRACT"
	EmploymentInternship = "INTERNSHIP"
)

type JobPosting struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code           string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_job_postings_code"`
	Title          string     `gorm:"type:varchar(150);not null"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	DesignationID  *uuid.UUID `gorm:"type:uuid;index"`
	Description    string     `gorm:"type:text"`
	Requirements   string     `gorm:"type:text"`
	Location       string     `gorm:"type:varchar(150)"`
	EmploymentType string     `gorm:"type:varchar(20);not null;default:'FULL_TIME'"`
	Vacancies      int        `gorm:"not null;default:1"`
	Status         string     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	PostedDate     *time.Time `gorm:"type:date"`
	ClosingDate    *time.Time `gorm:"type:date"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	DepartmentName  string `gorm:"->;-:migration"`
	DesignationName string `gorm:"->;-:migration"`
	CandidateCount  int64  `gorm:"->;-:migration"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// AcceptsCandidates reports whether new applications may be recorded.
func (j JobPosting) AcceptsCandidates() bool {
	return j.Status == StatusOpen
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusOpen, StatusClosed:
		return true
	}
	return false
}
