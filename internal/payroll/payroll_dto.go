package payroll

import "github.com/shopspring/decimal"

type CreatePayrollRequest struct {
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Year    int    `json:"year" binding:"required,min=2000,max=2100"`
	Remarks string `json:"remarks"`
}

// ProcessPayrollRequest runs payroll for every eligible employee, or only
// for EmployeeIDs when given.
type ProcessPayrollRequest struct {
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=2000,max=2100"`
	EmployeeIDs []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
	Remarks     string   `json:"remarks"`
}

type RunFilter struct {
	Status string
	Year   int
}

type PayrollResponse struct {
	ID                   string          `json:"id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Status               string          `json:"status"`
	EmployeeCount        int             `json:"employee_count"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	TotalLeaveDeductions decimal.Decimal `json:"total_leave_deductions"`
	TotalNetSalary       decimal.Decimal `json:"total_net_salary"`
	Remarks              string          `json:"remarks,omitempty"`
	ProcessedBy          *string         `json:"processed_by,omitempty"`
	ProcessedAt          *string         `json:"processed_at,omitempty"`
	PaidAt               *string         `json:"paid_at,omitempty"`
	CreatedAt            string          `json:"created_at"`
}

type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason"`
}

type ProcessResult struct {
	Payroll PayrollResponse   `json:"payroll"`
	Slips   int               `json:"slips"`
	Skipped []SkippedEmployee `json:"skipped"`
}

type SlipFilter struct {
	PayrollID  string
	EmployeeID string
	Month      int
	Year       int
	Status     string
}

type UpdateSlipRequest struct {
	Remarks *string `json:"remarks"`
	Status  *string `json:"status" binding:"omitempty,oneof=GENERATED PAID"`
}

type SlipItemResponse struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type SlipResponse struct {
	ID                string             `json:"id"`
	PayrollID         string             `json:"payroll_id"`
	EmployeeID        string             `json:"employee_id"`
	EmployeeName      string             `json:"employee_name,omitempty"`
	EmployeeCode      string             `json:"employee_code,omitempty"`
	SalaryStructureID *string            `json:"salary_structure_id,omitempty"`
	Month             int                `json:"month"`
	Year              int                `json:"year"`
	BasicSalary       decimal.Decimal    `json:"basic_salary"`
	TotalEarnings     decimal.Decimal    `json:"total_earnings"`
	TotalDeductions   decimal.Decimal    `json:"total_deductions"`
	WorkingDays       int                `json:"working_days"`
	LeaveDays         int                `json:"leave_days"`
	LeaveDeduction    decimal.Decimal    `json:"leave_deduction"`
	NetSalary         decimal.Decimal    `json:"net_salary"`
	Status            string             `json:"status"`
	Remarks           string             `json:"remarks,omitempty"`
	PayslipURL        *string            `json:"payslip_url,omitempty"`
	Items             []SlipItemResponse `json:"items,omitempty"`
}

// Payslip is a rendered slip ready to be served.
type Payslip struct {
	FileName    string
	ContentType string
	Content     []byte
}
