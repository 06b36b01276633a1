package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryEarnings   = "Earnings"
	CategoryDeductions = "Deductions"
)

type SalaryStructure struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID             `gorm:"type:uuid;not null;index:idx_salary_structures_employee_period"`
	Name        string                `gorm:"type:varchar(100);not null"`
	StartDate   time.Time             `gorm:"type:date;not null;index:idx_salary_structures_employee_period"`
	EndDate     *time.Time            `gorm:"type:date"`
	Description string                `gorm:"type:text"`
	Items       []SalaryStructureItem `gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"autoUpdateTime"`

	EmployeeName string `gorm:"->;-:migration"`
	EmployeeCode string `gorm:"->;-:migration"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

type SalaryStructureItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StructureID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Category    string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	SortOrder   int             `gorm:"not null;default:0"`
}

func (SalaryStructureItem) TableName() string {
	return "salary_structure_items"
}

func IsValidCategory(c string) bool {
	return c == CategoryEarnings || c == CategoryDeductions
}

// Totals sums the items per category.
func (s SalaryStructure) Totals() (earnings, deductions decimal.Decimal) {
	for _, it := range s.Items {
		switch it.Category {
		case CategoryEarnings:
			earnings = earnings.Add(it.Amount)
		case CategoryDeductions:
			deductions = deductions.Add(it.Amount)
		}
	}
	return earnings, deductions
}

// Covers reports whether the structure is in force on day.
func (s SalaryStructure) Covers(day time.Time) bool {
	if day.Before(s.StartDate) {
		return false
	}
	return s.EndDate == nil || !day.After(*s.EndDate)
}
