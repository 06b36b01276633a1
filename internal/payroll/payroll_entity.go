package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
)

const (
	SlipStatusGenerated = "GENERATED"
	SlipStatusPaid      = "PAID"
)

// PayrollProcessing is the aggregate record of one monthly run.
type PayrollProcessing struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Month                int             `gorm:"not null;uniqueIndex:uq_payroll_processings_period"`
	Year                 int             `gorm:"not null;uniqueIndex:uq_payroll_processings_period"`
	Status               string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	EmployeeCount        int             `gorm:"not null;default:0"`
	TotalEarnings        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalDeductions      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalLeaveDeductions decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalNetSalary       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Remarks              string          `gorm:"type:text"`
	CreatedBy            *uuid.UUID      `gorm:"type:uuid"`
	ProcessedBy          *uuid.UUID      `gorm:"type:uuid"`
	ProcessedAt          *time.Time
	PaidAt               *time.Time
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (PayrollProcessing) TableName() string {
	return "payroll_processings"
}

// SetTotals recomputes the aggregate from slips so that
// TotalNetSalary = TotalEarnings - TotalDeductions - TotalLeaveDeductions.
func (p *PayrollProcessing) SetTotals(slips []SalarySlip) {
	p.EmployeeCount = len(slips)
	p.TotalEarnings = decimal.Zero
	p.TotalDeductions = decimal.Zero
	p.TotalLeaveDeductions = decimal.Zero
	for _, s := range slips {
		p.TotalEarnings = p.TotalEarnings.Add(s.TotalEarnings)
		p.TotalDeductions = p.TotalDeductions.Add(s.TotalDeductions)
		p.TotalLeaveDeductions = p.TotalLeaveDeductions.Add(s.LeaveDeduction)
	}
	p.TotalNetSalary = p.TotalEarnings.Sub(p.TotalDeductions).Sub(p.TotalLeaveDeductions)
}

type SalarySlip struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_slips_payroll_employee"`
	EmployeeID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_slips_payroll_employee;index"`
	SalaryStructureID  *uuid.UUID      `gorm:"type:uuid;index"`
	Month              int             `gorm:"not null"`
	Year               int             `gorm:"not null"`
	BasicSalary        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalEarnings      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	TotalDeductions    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	WorkingDays        int             `gorm:"not null"`
	LeaveDays          int             `gorm:"not null;default:0"`
	LeaveDeduction     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	NetSalary          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Status             string          `gorm:"type:varchar(20);not null;default:'GENERATED'"`
	Remarks            string          `gorm:"type:text"`
	PayslipURL         *string         `gorm:"type:text"`
	PayslipKey         *string         `gorm:"type:text"`
	PayslipGeneratedAt *time.Time
	Items              []SalarySlipItem `gorm:"foreignKey:SlipID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time        `gorm:"autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime"`

	EmployeeName string `gorm:"->;-:migration"`
	EmployeeCode string `gorm:"->;-:migration"`
}

func (SalarySlip) TableName() string {
	return "salary_slips"
}

// SalarySlipItem snapshots a structure line so later edits to the structure
// do not rewrite issued slips.
type SalarySlipItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SlipID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name     string          `gorm:"type:varchar(120);not null"`
	Category string          `gorm:"type:varchar(20);not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
}

func (SalarySlipItem) TableName() string {
	return "salary_slip_items"
}

// PayrollEmployee is the slice of employees that payroll reads.
type PayrollEmployee struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"column:code"`
	FullName    string          `gorm:"column:full_name"`
	BasicSalary decimal.Decimal `gorm:"column:basic_salary"`
	JoiningDate time.Time       `gorm:"column:joining_date"`
	Status      string          `gorm:"column:status"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
